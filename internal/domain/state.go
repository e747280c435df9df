package domain

import "fmt"

// RequestPhase is the phase of the submission state machine.
//
//	Idle --submit--> Pending --success--> Succeeded
//	                 Pending --failure--> Failed
//	Succeeded|Failed --submit--> Pending
type RequestPhase int

const (
	PhaseIdle RequestPhase = iota
	PhasePending
	PhaseSucceeded
	PhaseFailed
)

// String returns the string representation of RequestPhase
func (p RequestPhase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePending:
		return "pending"
	case PhaseSucceeded:
		return "succeeded"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result is a successful analysis returned by the service
type Result struct {
	Count       int
	CountType   string
	Query       string
	VerboseInfo string
}

// Summary returns the headline shown above the query
func (r Result) Summary() string {
	return fmt.Sprintf("Found %d %s", r.Count, r.CountType)
}

// RequestState is the current state of the submission lifecycle.
// Result is set only in PhaseSucceeded, Message only in PhaseFailed.
type RequestState struct {
	Phase     RequestPhase
	RequestID uint64
	Result    *Result
	Message   string
}

// Idle returns the initial state
func Idle() RequestState {
	return RequestState{Phase: PhaseIdle}
}

// Pending returns the state for an outstanding request
func Pending(id uint64) RequestState {
	return RequestState{Phase: PhasePending, RequestID: id}
}

// Succeeded returns the state for a successful response
func Succeeded(id uint64, r Result) RequestState {
	return RequestState{Phase: PhaseSucceeded, RequestID: id, Result: &r}
}

// Failed returns the state for a failed request
func Failed(id uint64, message string) RequestState {
	return RequestState{Phase: PhaseFailed, RequestID: id, Message: message}
}

// IsBusy returns true while a request is outstanding
func (s RequestState) IsBusy() bool {
	return s.Phase == PhasePending
}
