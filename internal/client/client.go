// Package client is a typed HTTP client for the contact-list REST API.
package client

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-resty/resty/v2"

	"gitlab.com/dirk.krummacker/contact-list/pkg/model"
)

// ErrNotFound is returned when the server answers 404 for a contact id.
var ErrNotFound = errors.New("contact not found")

// apiError is the error body the server sends for failed requests.
type apiError struct {
	Message string `json:"message"`
}

// Client calls the contact-list endpoints. Every request is an independent,
// synchronous round trip; there are no retries or queues.
type Client struct {
	http *resty.Client
}

// New creates a Client against the given base URL, e.g.
// "http://localhost:8080".
func New(baseURL string) *Client {
	return &Client{http: resty.New().SetBaseURL(baseURL)}
}

// toError converts a non-2xx response into an error carrying the server's
// message.
func toError(resp *resty.Response) error {
	if apiErr, ok := resp.Error().(*apiError); ok && apiErr.Message != "" {
		return fmt.Errorf("server: %s", apiErr.Message)
	}
	return fmt.Errorf("server: %s", resp.Status())
}

// Authenticate performs a signup or login round trip and returns the
// identity the server assigned.
func (c *Client) Authenticate(username string, password string, action string) (*model.Identity, error) {
	var identity model.Identity
	resp, err := c.http.R().
		SetBody(model.Credentials{Username: username, Password: password, Action: action}).
		SetResult(&identity).
		SetError(&apiError{}).
		Post("/auth")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, toError(resp)
	}
	return &identity, nil
}

// ListContacts fetches all contacts owned by the given user id.
func (c *Client) ListContacts(userID int64) ([]model.Contact, error) {
	var contacts []model.Contact
	resp, err := c.http.R().
		SetQueryParam("userId", strconv.FormatInt(userID, 10)).
		SetResult(&contacts).
		SetError(&apiError{}).
		Get("/contacts")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, toError(resp)
	}
	return contacts, nil
}

// CreateContact stores a new contact and returns it including the assigned
// id. The owner id travels in the contact itself.
func (c *Client) CreateContact(contact model.Contact) (*model.Contact, error) {
	var created model.Contact
	resp, err := c.http.R().
		SetBody(contact).
		SetResult(&created).
		SetError(&apiError{}).
		Post("/contacts")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, toError(resp)
	}
	return &created, nil
}

// UpdateContact overwrites the submitted fields of the contact with the
// given id and returns the record after the update. It returns ErrNotFound
// if the server does not know the id.
func (c *Client) UpdateContact(id int64, contact model.Contact) (*model.Contact, error) {
	var updated model.Contact
	resp, err := c.http.R().
		SetBody(contact).
		SetResult(&updated).
		SetError(&apiError{}).
		Put(fmt.Sprintf("/contacts/%d", id))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.IsError() {
		return nil, toError(resp)
	}
	return &updated, nil
}

// DeleteContact removes the contact with the given id. It returns
// ErrNotFound if the server does not know the id.
func (c *Client) DeleteContact(id int64) error {
	resp, err := c.http.R().
		SetError(&apiError{}).
		Delete(fmt.Sprintf("/contacts/%d", id))
	if err != nil {
		return err
	}
	if resp.StatusCode() == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.IsError() {
		return toError(resp)
	}
	return nil
}
