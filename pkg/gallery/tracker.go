package gallery

import (
	"errors"
	"sync"
	"time"
)

var ErrUploadInProgress = errors.New("an upload for this slot is already in progress")

type UploadPhase string

const (
	PhaseIdle      UploadPhase = "idle"
	PhaseUploading UploadPhase = "uploading"
	PhaseFailed    UploadPhase = "failed"
)

// Failure reasons are public; they end up in the Load response.
const (
	ReasonStorageUnavailable = "storage_unavailable"
	ReasonConflict           = "conflict"
	ReasonRejected           = "rejected"
	ReasonFailed             = "failed"
)

type UploadState struct {
	Phase  UploadPhase `json:"phase"`
	Reason string      `json:"reason,omitempty"`
	Since  time.Time   `json:"since,omitempty"`
}

// UploadTracker keeps one upload state per (gallery, slot). Different slots
// upload independently; a slot that is already uploading refuses a second start.
type UploadTracker struct {
	mu     sync.Mutex
	states map[string]UploadState
	now    func() time.Time
}

func NewUploadTracker() *UploadTracker {
	return &UploadTracker{
		states: make(map[string]UploadState),
		now:    time.Now,
	}
}

func trackerKey(prefix, slotId string) string {
	return prefix + "/" + slotId
}

// Begin moves the slot to Uploading. Failed slots may be retried.
func (t *UploadTracker) Begin(prefix, slotId string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	key := trackerKey(prefix, slotId)
	if s, ok := t.states[key]; ok && s.Phase == PhaseUploading {
		return ErrUploadInProgress
	}
	t.states[key] = UploadState{Phase: PhaseUploading, Since: t.now()}
	return nil
}

// Finish returns the slot to Idle.
func (t *UploadTracker) Finish(prefix, slotId string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.states, trackerKey(prefix, slotId))
}

// Fail records a failed upload. reason should be one of the Reason constants,
// never raw error text.
func (t *UploadTracker) Fail(prefix, slotId, reason string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.states[trackerKey(prefix, slotId)] = UploadState{Phase: PhaseFailed, Reason: reason, Since: t.now()}
}

func (t *UploadTracker) State(prefix, slotId string) UploadState {
	t.mu.Lock()
	defer t.mu.Unlock()
	if s, ok := t.states[trackerKey(prefix, slotId)]; ok {
		return s
	}
	return UploadState{Phase: PhaseIdle}
}
