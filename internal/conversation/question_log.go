package conversation

import (
	"sync"
	"time"
)

// DefaultHistoryLimit is the number of questions kept per user.
const DefaultHistoryLimit = 20

// Entry is a text message received from a user.
type Entry struct {
	At   time.Time
	Text string
}

// QuestionLog keeps the most recent texts of each user in memory, oldest evicted first.
type QuestionLog struct {
	mu     sync.Mutex
	limit  int
	byUser map[int64][]Entry
}

// NewQuestionLog creates a log holding up to limit entries per user.
// A non-positive limit selects DefaultHistoryLimit.
func NewQuestionLog(limit int) *QuestionLog {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &QuestionLog{limit: limit, byUser: make(map[int64][]Entry)}
}

// Append records text for the user and trims the history to the limit.
func (l *QuestionLog) Append(userID int64, at time.Time, text string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	entries := append(l.byUser[userID], Entry{At: at, Text: text})
	if over := len(entries) - l.limit; over > 0 {
		entries = append([]Entry(nil), entries[over:]...)
	}
	l.byUser[userID] = entries
}

// Entries returns a copy of the user's history, oldest first.
func (l *QuestionLog) Entries(userID int64) []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Entry(nil), l.byUser[userID]...)
}

// Len returns the total number of entries over all users.
func (l *QuestionLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, e := range l.byUser {
		n += len(e)
	}
	return n
}

// Limit returns the per-user capacity.
func (l *QuestionLog) Limit() int {
	return l.limit
}
