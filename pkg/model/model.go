// Package model contains the wire types of the contact-list REST API as seen
// by clients of the service.
package model

// Credentials is the request body of the auth endpoint. Action selects
// between "signup" and "login".
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Action   string `json:"action"`
}

// Identity is the record returned by a successful signup or login. It is not
// a security token; the server does not validate it on later requests.
type Identity struct {
	Id       int64  `json:"id"`
	Username string `json:"username"`
}

// Contact is one entry in a user's contact list.
type Contact struct {
	Id     int64  `json:"id"`
	UserId int64  `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
}
