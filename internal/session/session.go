// Package session holds the identity of the currently logged-in user on the
// client side. The identity is a convenience cache, not a credential: it is
// mirrored to a single JSON file so that it survives program restarts, and
// the server never validates it.
package session

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"

	"gitlab.com/dirk.krummacker/contact-list/pkg/model"
)

// identityFileName is the fixed name under which the identity record is
// persisted.
const identityFileName = "identity.json"

// Authenticator is the slice of the API client the session needs.
type Authenticator interface {
	Authenticate(username string, password string, action string) (*model.Identity, error)
}

// Session holds at most one identity at a time. Consumers treat a nil
// Current() as "not authenticated".
type Session struct {
	api      Authenticator
	path     string
	identity *model.Identity
}

// DefaultPath returns the identity file location under the user's
// configuration directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "contact-list", identityFileName), nil
}

// New creates a Session that authenticates through api and persists to the
// file at path. A previously persisted identity is restored, if present.
func New(api Authenticator, path string) *Session {
	s := &Session{api: api, path: path}
	s.restore()
	return s
}

// Current returns the logged-in identity, or nil when not authenticated.
func (s *Session) Current() *model.Identity {
	return s.identity
}

// Login authenticates with action=login. On success the identity is cached
// in memory and persisted; on failure the cause is logged and false is
// returned. Login never panics into its caller.
func (s *Session) Login(username string, password string) bool {
	return s.authenticate(username, password, "login")
}

// Signup authenticates with action=signup, otherwise symmetric to Login.
func (s *Session) Signup(username string, password string) bool {
	return s.authenticate(username, password, "signup")
}

// Logout clears the in-memory identity and removes the persisted file
// synchronously.
func (s *Session) Logout() {
	s.identity = nil
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		log.Printf("removing session file: %v", err)
	}
}

func (s *Session) authenticate(username string, password string, action string) bool {
	identity, err := s.api.Authenticate(username, password, action)
	if err != nil {
		log.Printf("%s failed: %v", action, err)
		return false
	}
	s.identity = identity
	s.persist()
	return true
}

// restore loads a persisted identity. A missing file simply means logged
// out; an unreadable file is discarded.
func (s *Session) restore() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return
	}
	var identity model.Identity
	if err := json.Unmarshal(data, &identity); err != nil {
		log.Printf("discarding unreadable session file: %v", err)
		return
	}
	s.identity = &identity
}

func (s *Session) persist() {
	data, err := json.Marshal(s.identity)
	if err != nil {
		log.Printf("serializing session: %v", err)
		return
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		log.Printf("creating session directory: %v", err)
		return
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		log.Printf("writing session file: %v", err)
	}
}
