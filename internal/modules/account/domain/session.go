package domain

import "sync"

// Session holds the plugin-list state a caller keeps between queries. Each
// query overwrites it; readers wait for the query's completion before looking.
type Session struct {
	credentials Credentials

	mu        sync.Mutex
	busy      bool
	plugins   []string
	lastError error
}

func NewSession(credentials Credentials) *Session {
	return &Session{credentials: credentials, plugins: []string{}}
}

func (s *Session) Credentials() Credentials {
	return s.credentials
}

// Begin marks a query as running. Overlapping queries on one session are
// refused with ErrQueryInFlight.
func (s *Session) Begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return ErrQueryInFlight
	}
	s.busy = true
	return nil
}

// Complete stores a successful plugin list and clears the last error.
func (s *Session) Complete(plugins []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plugins = append([]string(nil), plugins...)
	s.lastError = nil
	s.busy = false
}

// Fail records err as the last error. The plugin list is left as is.
func (s *Session) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = err
	s.busy = false
}

func (s *Session) Plugins() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string{}, s.plugins...)
}

// LastError is the message of the last failed query, empty after a success.
func (s *Session) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastError == nil {
		return ""
	}
	return s.lastError.Error()
}

func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}
