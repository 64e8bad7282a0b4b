package model

import "time"

// User is an account that owns contacts. The Password field holds the bcrypt
// hash of the password, never the clear form, and is excluded from JSON.
type User struct {
	Id        int64     `json:"id"       db:"id"`
	Username  string    `json:"username" db:"username"`
	Password  string    `json:"-"        db:"password"`
	CreatedAt time.Time `json:"-"        db:"created_at"`
	UpdatedAt time.Time `json:"-"        db:"updated_at"`
}

// Contact is one entry in a user's contact list. All fields with the
// exception of Id and UserId are optional. Nil pointers mark fields that a
// PUT request did not submit, so that partial updates leave them untouched.
type Contact struct {
	Id     int64   `json:"id"              db:"id"`
	UserId int64   `json:"userId"          db:"user_id"`
	Name   *string `json:"name,omitempty"  db:"name"`
	Email  *string `json:"email,omitempty" db:"email"`
	Phone  *string `json:"phone,omitempty" db:"phone"`
}
