package session

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"gitlab.com/dirk.krummacker/contact-list/pkg/model"
)

// stubAuth fakes the auth endpoint. It records the last action so tests can
// check which one was requested.
type stubAuth struct {
	identity   *model.Identity
	err        error
	lastAction string
}

func (s *stubAuth) Authenticate(username string, password string, action string) (*model.Identity, error) {
	s.lastAction = action
	if s.err != nil {
		return nil, s.err
	}
	return s.identity, nil
}

func sessionPath(t *testing.T) string {
	return filepath.Join(t.TempDir(), "identity.json")
}

// TestLoginPersistsIdentity logs in and expects the identity to be cached in
// memory, written to disk, and restored by a fresh Session.
func TestLoginPersistsIdentity(t *testing.T) {
	auth := &stubAuth{identity: &model.Identity{Id: 7, Username: "alice"}}
	path := sessionPath(t)

	session := New(auth, path)
	assert.Nil(t, session.Current())
	assert.True(t, session.Login("alice", "pw1"))
	assert.Equal(t, "login", auth.lastAction)
	assert.Equal(t, int64(7), session.Current().Id)

	// A second session object simulates a program restart.
	restarted := New(auth, path)
	assert.NotNil(t, restarted.Current())
	assert.Equal(t, int64(7), restarted.Current().Id)
	assert.Equal(t, "alice", restarted.Current().Username)
}

// TestSignupUsesSignupAction expects the signup path to authenticate with
// action=signup, otherwise behaving like login.
func TestSignupUsesSignupAction(t *testing.T) {
	auth := &stubAuth{identity: &model.Identity{Id: 8, Username: "berta"}}
	session := New(auth, sessionPath(t))

	assert.True(t, session.Signup("berta", "pw2"))
	assert.Equal(t, "signup", auth.lastAction)
	assert.Equal(t, "berta", session.Current().Username)
}

// TestLoginFailure expects a failed authentication to leave the session
// logged out and nothing on disk. The failure must not panic into the
// caller.
func TestLoginFailure(t *testing.T) {
	auth := &stubAuth{err: errors.New("server: invalid password")}
	path := sessionPath(t)

	session := New(auth, path)
	assert.False(t, session.Login("alice", "wrong"))
	assert.Nil(t, session.Current())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

// TestLogoutClears logs out and expects both the in-memory identity and the
// persisted file to be gone. A second logout is harmless.
func TestLogoutClears(t *testing.T) {
	auth := &stubAuth{identity: &model.Identity{Id: 7, Username: "alice"}}
	path := sessionPath(t)

	session := New(auth, path)
	assert.True(t, session.Login("alice", "pw1"))

	session.Logout()
	assert.Nil(t, session.Current())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	session.Logout()
	assert.Nil(t, session.Current())
}

// TestRestoreUnreadableFile expects a corrupt session file to be treated as
// logged out instead of failing.
func TestRestoreUnreadableFile(t *testing.T) {
	path := sessionPath(t)
	assert.NoError(t, os.WriteFile(path, []byte("not JSON"), 0o600))

	session := New(&stubAuth{}, path)
	assert.Nil(t, session.Current())
}
