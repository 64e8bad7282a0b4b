package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"gitlab.com/dirk.krummacker/contact-list/pkg/model"
)

// newTestServer fakes the contact-list endpoints with canned data: user
// alice/pw1 with id 7, and a single contact with id 56.
func newTestServer() *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth", func(w http.ResponseWriter, r *http.Request) {
		var creds model.Credentials
		json.NewDecoder(r.Body).Decode(&creds)
		w.Header().Set("Content-Type", "application/json")
		switch {
		case creds.Action != "login" && creds.Action != "signup":
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"message": "invalid action"})
		case creds.Username != "alice":
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"message": "user not found"})
		case creds.Password != "pw1":
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"message": "invalid password"})
		default:
			json.NewEncoder(w).Encode(model.Identity{Id: 7, Username: "alice"})
		}
	})
	mux.HandleFunc("/contacts", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodGet:
			if r.URL.Query().Get("userId") != "7" {
				json.NewEncoder(w).Encode([]model.Contact{})
				return
			}
			json.NewEncoder(w).Encode([]model.Contact{
				{Id: 56, UserId: 7, Name: "Bob", Email: "b@x.com", Phone: "1"},
			})
		case http.MethodPost:
			var contact model.Contact
			json.NewDecoder(r.Body).Decode(&contact)
			contact.Id = 57
			json.NewEncoder(w).Encode(contact)
		}
	})
	mux.HandleFunc("/contacts/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		id := strings.TrimPrefix(r.URL.Path, "/contacts/")
		if id != "56" {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"message": "contact not found"})
			return
		}
		switch r.Method {
		case http.MethodPut:
			var contact model.Contact
			json.NewDecoder(r.Body).Decode(&contact)
			contact.Id = 56
			json.NewEncoder(w).Encode(contact)
		case http.MethodDelete:
			json.NewEncoder(w).Encode(map[string]string{"message": "contact deleted"})
		}
	})
	return httptest.NewServer(mux)
}

// TestAuthenticate logs in with correct credentials and expects the identity
// the server assigned.
func TestAuthenticate(t *testing.T) {
	server := newTestServer()
	defer server.Close()

	identity, err := New(server.URL).Authenticate("alice", "pw1", "login")
	assert.NoError(t, err)
	assert.Equal(t, int64(7), identity.Id)
	assert.Equal(t, "alice", identity.Username)
}

// TestAuthenticateFailure expects the server's message in the returned
// error.
func TestAuthenticateFailure(t *testing.T) {
	server := newTestServer()
	defer server.Close()

	identity, err := New(server.URL).Authenticate("alice", "wrong", "login")
	assert.Nil(t, identity)
	assert.ErrorContains(t, err, "invalid password")

	identity, err = New(server.URL).Authenticate("nobody", "pw1", "login")
	assert.Nil(t, identity)
	assert.ErrorContains(t, err, "user not found")
}

// TestListContacts fetches the contacts of an owner.
func TestListContacts(t *testing.T) {
	server := newTestServer()
	defer server.Close()

	contacts, err := New(server.URL).ListContacts(7)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(contacts))
	assert.Equal(t, "Bob", contacts[0].Name)

	contacts, err = New(server.URL).ListContacts(9)
	assert.NoError(t, err)
	assert.Equal(t, 0, len(contacts))
}

// TestCreateContact stores a contact and expects the assigned id back.
func TestCreateContact(t *testing.T) {
	server := newTestServer()
	defer server.Close()

	created, err := New(server.URL).CreateContact(model.Contact{
		UserId: 7, Name: "Carla", Email: "c@x.com", Phone: "2",
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(57), created.Id)
	assert.Equal(t, "Carla", created.Name)
}

// TestUpdateContact overwrites an existing contact and maps an unknown id to
// ErrNotFound.
func TestUpdateContact(t *testing.T) {
	server := newTestServer()
	defer server.Close()

	updated, err := New(server.URL).UpdateContact(56, model.Contact{Name: "Bobby"})
	assert.NoError(t, err)
	assert.Equal(t, int64(56), updated.Id)
	assert.Equal(t, "Bobby", updated.Name)

	updated, err = New(server.URL).UpdateContact(9999, model.Contact{Name: "Bobby"})
	assert.Nil(t, updated)
	assert.ErrorIs(t, err, ErrNotFound)
}

// TestDeleteContact removes an existing contact and maps an unknown id to
// ErrNotFound.
func TestDeleteContact(t *testing.T) {
	server := newTestServer()
	defer server.Close()

	assert.NoError(t, New(server.URL).DeleteContact(56))
	assert.ErrorIs(t, New(server.URL).DeleteContact(9999), ErrNotFound)
}
