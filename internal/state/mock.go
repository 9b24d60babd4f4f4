package state

import "database/sql"

// Mock is a test double for Manager.
type Mock struct {
	session *Session
	closed  bool
}

// NewMock creates a new mock state manager for testing.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) DB() *sql.DB { return nil }

func (m *Mock) GetSession() (*Session, error) {
	return m.session, nil
}

func (m *Mock) SaveSession(s Session) {
	m.session = &s
}

func (m *Mock) Close() error {
	m.closed = true
	return nil
}

// Test helpers

func (m *Mock) SetSession(s *Session) { m.session = s }

func (m *Mock) IsClosed() bool { return m.closed }

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
