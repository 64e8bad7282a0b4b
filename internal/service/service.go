// Package service implements the REST API of the contact-list application:
// a single auth endpoint for signup and login, and CRUD endpoints for the
// contacts owned by a user.
package service

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gitlab.com/dirk.krummacker/contact-list/internal/model"
	"gitlab.com/dirk.krummacker/contact-list/internal/store"
	wire "gitlab.com/dirk.krummacker/contact-list/pkg/model"
)

// Service bundles the request handlers with their injected store handles.
// The stores are constructed once at process start and shared read-only by
// all requests.
type Service struct {
	users    *store.UserStore
	contacts *store.ContactStore
	log      *zap.SugaredLogger
}

// New creates a Service on top of the given stores.
func New(users *store.UserStore, contacts *store.ContactStore, log *zap.SugaredLogger) *Service {
	return &Service{users: users, contacts: contacts, log: log}
}

// SetupHttpRouter initializes the REST API router and registers all
// endpoints. Setting ginLogging to "off" disables gin's per-request log
// while keeping panic recovery.
func (s *Service) SetupHttpRouter(ginLogging string) *gin.Engine {
	var router *gin.Engine
	if strings.EqualFold(ginLogging, "off") {
		router = gin.New()
		router.Use(gin.Recovery())
	} else {
		router = gin.Default()
	}
	router.POST("/auth", s.authenticate)
	router.GET("/contacts", s.findContacts)
	router.POST("/contacts", s.createContact)
	router.PUT("/contacts/:id", s.updateContactByID)
	router.DELETE("/contacts/:id", s.deleteContactByID)
	return router
}

// internalError logs the underlying cause and answers with a generic
// message. Store-layer errors are never passed through to the client raw.
func (s *Service) internalError(c *gin.Context, msg string, err error) {
	s.log.Errorw(msg, "error", err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
}

// authenticate implements signup and login in a single endpoint. The action
// field of the request body selects the transition; any other value is
// rejected.
//
// Example REST API calls:
//
//	> curl http://localhost:8080/auth --request "POST" --include --header "Content-Type: application/json" --data '{"username": "alice", "password": "pw1", "action": "signup"}'
//	> curl http://localhost:8080/auth --request "POST" --include --header "Content-Type: application/json" --data '{"username": "alice", "password": "pw1", "action": "login"}'
func (s *Service) authenticate(c *gin.Context) {
	var creds wire.Credentials
	if err := c.BindJSON(&creds); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid JSON"})
		return
	}
	switch creds.Action {
	case "signup":
		s.signup(c, creds)
	case "login":
		s.login(c, creds)
	default:
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid action"})
	}
}

// signup creates a new user account. A taken username fails without touching
// the store; the response never contains the password in any form.
func (s *Service) signup(c *gin.Context, creds wire.Credentials) {
	_, err := s.users.FindByUsername(creds.Username)
	if err == nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "username already exists"})
		return
	}
	if !errors.Is(err, store.ErrNotFound) {
		s.internalError(c, "signup: user lookup failed", err)
		return
	}
	user, err := s.users.Create(creds.Username, creds.Password)
	if err != nil {
		// Two concurrent signups can both pass the lookup above; the unique
		// index then fails the later insert.
		if errors.Is(err, store.ErrDuplicateUsername) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "username already exists"})
			return
		}
		s.internalError(c, "signup: user creation failed", err)
		return
	}
	c.IndentedJSON(http.StatusOK, wire.Identity{Id: user.Id, Username: user.Username})
}

// login verifies the submitted credentials against the stored password hash
// and responds with the identity assigned at signup.
func (s *Service) login(c *gin.Context, creds wire.Credentials) {
	user, err := s.users.FindByUsername(creds.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "user not found"})
			return
		}
		s.internalError(c, "login: user lookup failed", err)
		return
	}
	if !s.users.VerifyPassword(user, creds.Password) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid password"})
		return
	}
	c.IndentedJSON(http.StatusOK, wire.Identity{Id: user.Id, Username: user.Username})
}

// findContacts responds with the list of contacts owned by the user given in
// the 'userId' URL parameter. An owner without contacts yields an empty
// list, not an error.
//
// The caller self-reports which owner to filter by; the server does not
// verify that the caller is that user.
//
// Example REST API call:
//
//	> curl "http://localhost:8080/contacts?userId=1"
func (s *Service) findContacts(c *gin.Context) {
	userId := c.Query("userId")
	if userId == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "userId URL parameter is required"})
		return
	}
	ownerId, err := strconv.ParseInt(userId, 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid userId parameter"})
		return
	}
	contacts, err := s.contacts.ListByOwner(ownerId)
	if err != nil {
		s.internalError(c, "listing contacts failed", err)
		return
	}
	c.IndentedJSON(http.StatusOK, contacts)
}

// createContact inserts the contact specified in the request's JSON into the
// database. It responds with the full contact data including the newly
// assigned id. Beyond well-formed JSON there is no field validation; the
// owner id is taken from the body as submitted.
//
// Example REST API call:
//
//	> curl http://localhost:8080/contacts --request "POST" --include --header "Content-Type: application/json" --data '{"name": "Bob", "email": "b@x.com", "phone": "0815", "userId": 1}'
func (s *Service) createContact(c *gin.Context) {
	var newContact model.Contact
	if err := c.BindJSON(&newContact); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid JSON"})
		return
	}
	created, err := s.contacts.Create(&newContact)
	if err != nil {
		s.internalError(c, "creating contact failed", err)
		return
	}
	c.IndentedJSON(http.StatusOK, created)
}

// updateContactByID updates the contact whose ID value matches the id
// parameter of the request URL, overwrites the values specified in the JSON
// (and only those), and finally responds with the new version of the
// contact.
//
// Example REST API calls:
//
//	> curl http://localhost:8080/contacts/56 --request "PUT" --include --header "Content-Type: application/json" --data '{"phone": "81970"}'
//	> curl http://localhost:8080/contacts/56 --request "PUT" --include --header "Content-Type: application/json" --data '{"name": "Bob", "email": "bob@x.com", "phone": "1"}'
func (s *Service) updateContactByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "invalid id parameter"})
		return
	}
	var submitted model.Contact
	if errBind := c.BindJSON(&submitted); errBind != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid JSON"})
		return
	}
	updated, err := s.contacts.Update(id, submitted)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "contact not found"})
			return
		}
		s.internalError(c, "updating contact failed", err)
		return
	}
	c.IndentedJSON(http.StatusOK, updated)
}

// deleteContactByID deletes the contact whose ID value matches the id
// parameter of the request URL from the database.
//
// Example REST API call:
//
//	> curl http://localhost:8080/contacts/56 --request "DELETE"
func (s *Service) deleteContactByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "invalid id parameter"})
		return
	}
	if err := s.contacts.Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "contact not found"})
			return
		}
		s.internalError(c, "deleting contact failed", err)
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"message": "contact deleted"})
}
