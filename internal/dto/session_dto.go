package dto

type SessionResponse struct {
	State  string `json:"state"`
	UserId string `json:"user_id,omitempty"`
	Admin  bool   `json:"admin"`
}
