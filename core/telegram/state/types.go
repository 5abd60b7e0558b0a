package state

// State identifies the conversation step a user is in.
type State string

const (
	// StateIdle indicates there is no active conversation with the user.
	StateIdle State = "idle"
)

// Manager owns user sessions. Telegram updates are handled concurrently, so
// implementations must be safe for use from multiple goroutines.
type Manager interface {
	GetState(userID int64) State
	SetState(userID int64, st State)
	// Transition reads the current state and stores fn's result under one exclusive
	// lock, returning the state seen before the change.
	Transition(userID int64, fn func(State) State) State
	// Clear drops the session and returns the state it held.
	Clear(userID int64) State
	// Count reports how many sessions are in each state.
	Count() map[State]int
}
