package intake

import "sync"

// State identifies a step of the application conversation.
type State string

const (
	// StateAwaitingName expects the applicant's full name.
	StateAwaitingName State = "awaiting_name"
	// StateAwaitingBirthDate expects the birth date in DD.MM.YYYY form.
	StateAwaitingBirthDate State = "awaiting_birth_date"
	// StateAwaitingNumber expects the phone number.
	StateAwaitingNumber State = "awaiting_number"
)

// Session accumulates form answers for one user. A field is populated only
// once its owning step has passed; terminal transitions remove the session
// entirely, so session absence doubles as the idle state.
type Session struct {
	State     State
	UserID    int64
	Username  string
	FullName  string
	BirthDate string
	Age       int
	Phone     string
}

// Application is the fully assembled payload handed to the review flow.
// It lives only long enough to be rendered into the reviewer notification.
type Application struct {
	UserID    int64
	Username  string
	FullName  string
	BirthDate string
	Age       int
	Phone     string
}

// Store keeps at most one live session per user.
type Store interface {
	Get(userID int64) (Session, bool)
	Set(userID int64, sess Session)
	Clear(userID int64)
}

type memoryStore struct {
	mu       sync.RWMutex
	sessions map[int64]Session
}

// NewMemoryStore constructs the in-memory Store used in production and tests.
func NewMemoryStore() Store {
	return &memoryStore{
		sessions: make(map[int64]Session),
	}
}

// Get returns the session for a user if one exists.
func (m *memoryStore) Get(userID int64) (Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sess, ok := m.sessions[userID]
	return sess, ok
}

// Set stores the session for a user, replacing any previous one.
func (m *memoryStore) Set(userID int64, sess Session) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[userID] = sess
}

// Clear removes the entire session for a user.
func (m *memoryStore) Clear(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, userID)
}
