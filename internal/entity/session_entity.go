package entity

type SessionState string

const (
	SessionAnonymous SessionState = "anonymous"
	SessionViewer    SessionState = "viewer"
	SessionAdmin     SessionState = "admin"
)

type Session struct {
	State  SessionState
	UserId string
}

func (s Session) IsAdmin() bool {
	return s.State == SessionAdmin
}
