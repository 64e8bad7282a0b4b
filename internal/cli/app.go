// Package cli is the interactive terminal UI of the contact list. It drives
// the REST endpoints through the API client and keeps the fetched list in
// memory, patching it in place after successful edits instead of re-fetching.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strconv"

	"gitlab.com/dirk.krummacker/contact-list/pkg/model"
)

// api defines the endpoint surface the UI needs. The real client satisfies
// this interface; tests can provide a lightweight stub.
type api interface {
	ListContacts(userID int64) ([]model.Contact, error)
	CreateContact(contact model.Contact) (*model.Contact, error)
	UpdateContact(id int64, contact model.Contact) (*model.Contact, error)
	DeleteContact(id int64) error
}

// sessionState is the slice of the session object the UI needs.
type sessionState interface {
	Current() *model.Identity
	Login(username string, password string) bool
	Signup(username string, password string) bool
	Logout()
}

// App holds the state of one UI run: the local copy of the contact list and
// the contact currently being edited, if any. At most one contact is in edit
// mode at a time; the shared entry form dispatches create or update
// depending on whether an edit target is set.
type App struct {
	api     api
	session sessionState
	reader  *bufio.Scanner
	out     io.Writer

	contacts []model.Contact
	editing  *model.Contact
}

// NewApp creates the terminal UI reading commands from in and writing to
// out.
func NewApp(api api, session sessionState, in io.Reader, out io.Writer) *App {
	return &App{api: api, session: session, reader: bufio.NewScanner(in), out: out}
}

func (a *App) isLoggedIn() bool {
	return a.session.Current() != nil
}

// prompt prints a label and reads one line of input.
func (a *App) prompt(label string) string {
	fmt.Fprintf(a.out, "%s: ", label)
	if !a.reader.Scan() {
		return ""
	}
	return a.reader.Text()
}

// Login asks for credentials and authenticates. On success the contact list
// is fetched immediately.
func (a *App) Login() {
	username := a.prompt("Username")
	password := a.prompt("Password")
	if !a.session.Login(username, password) {
		fmt.Fprintln(a.out, "Login failed.")
		return
	}
	fmt.Fprintln(a.out, "Logged in.")
	a.loadContacts()
}

// Signup asks for credentials and creates a new account, symmetric to
// Login.
func (a *App) Signup() {
	username := a.prompt("Username")
	password := a.prompt("Password")
	if !a.session.Signup(username, password) {
		fmt.Fprintln(a.out, "Signup failed.")
		return
	}
	fmt.Fprintln(a.out, "Account created.")
	a.loadContacts()
}

// loadContacts fetches the list scoped to the session identity. While the
// fetch is outstanding a loading indicator is shown; on failure the cause is
// logged and the list stays empty. There is no retry.
func (a *App) loadContacts() {
	identity := a.session.Current()
	if identity == nil {
		return
	}
	fmt.Fprintln(a.out, "loading...")
	contacts, err := a.api.ListContacts(identity.Id)
	if err != nil {
		log.Printf("fetching contacts: %v", err)
		a.contacts = nil
		return
	}
	a.contacts = contacts
}

// List prints the local copy of the contact list.
func (a *App) List() {
	if len(a.contacts) == 0 {
		fmt.Fprintln(a.out, "No contacts.")
		return
	}
	for _, contact := range a.contacts {
		fmt.Fprintf(a.out, "%6d  %-25s %-30s %s\n", contact.Id, contact.Name, contact.Email, contact.Phone)
	}
}

// Add runs the entry form in create mode.
func (a *App) Add() {
	a.editing = nil
	a.submitForm()
}

// Edit selects the contact with the given id as the edit target and runs the
// entry form in update mode.
func (a *App) Edit(idArg string) {
	id, err := strconv.ParseInt(idArg, 10, 64)
	if err != nil {
		fmt.Fprintln(a.out, "Invalid contact id.")
		return
	}
	for i := range a.contacts {
		if a.contacts[i].Id == id {
			a.editing = &a.contacts[i]
			a.submitForm()
			return
		}
	}
	fmt.Fprintln(a.out, "No such contact in the list.")
}

// submitForm prompts for the contact fields and dispatches to create or
// update depending on the edit target. After success the local list is
// patched in place (update) or appended to (create) without a re-fetch.
func (a *App) submitForm() {
	name := a.prompt("Name")
	email := a.prompt("Email")
	phone := a.prompt("Phone")

	if a.editing != nil {
		target := a.editing
		a.editing = nil
		updated, err := a.api.UpdateContact(target.Id, model.Contact{
			UserId: target.UserId,
			Name:   name,
			Email:  email,
			Phone:  phone,
		})
		if err != nil {
			log.Printf("updating contact: %v", err)
			fmt.Fprintln(a.out, "Update failed.")
			return
		}
		for i := range a.contacts {
			if a.contacts[i].Id == updated.Id {
				a.contacts[i] = *updated
			}
		}
		fmt.Fprintln(a.out, "Contact updated.")
		return
	}

	created, err := a.api.CreateContact(model.Contact{
		UserId: a.session.Current().Id,
		Name:   name,
		Email:  email,
		Phone:  phone,
	})
	if err != nil {
		log.Printf("creating contact: %v", err)
		fmt.Fprintln(a.out, "Create failed.")
		return
	}
	a.contacts = append(a.contacts, *created)
	fmt.Fprintln(a.out, "Contact added.")
}

// Delete removes the contact with the given id. The local list is only
// touched after the server confirms the deletion.
func (a *App) Delete(idArg string) {
	id, err := strconv.ParseInt(idArg, 10, 64)
	if err != nil {
		fmt.Fprintln(a.out, "Invalid contact id.")
		return
	}
	if err := a.api.DeleteContact(id); err != nil {
		log.Printf("deleting contact: %v", err)
		fmt.Fprintln(a.out, "Delete failed.")
		return
	}
	for i := range a.contacts {
		if a.contacts[i].Id == id {
			a.contacts = append(a.contacts[:i], a.contacts[i+1:]...)
			break
		}
	}
	fmt.Fprintln(a.out, "Contact deleted.")
}

// Logout clears the session and all local state.
func (a *App) Logout() {
	a.session.Logout()
	a.contacts = nil
	a.editing = nil
	fmt.Fprintln(a.out, "Logged out.")
}
