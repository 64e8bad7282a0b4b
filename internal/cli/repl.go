package cli

import (
	"fmt"
	"strings"
)

// Run starts a simple read-eval-print loop. It reads a line, parses the
// first token as the command, and dispatches to the App methods. Commands
// that need an account are refused while logged out and the user is pointed
// to login instead. The loop exits on input EOF or when the user types
// "exit" or "quit".
func (a *App) Run() {
	if a.isLoggedIn() {
		// A persisted session from an earlier run is still valid.
		a.loadContacts()
	}
	for {
		fmt.Fprintf(a.out, "contacts [%s]> ", a.status())
		if !a.reader.Scan() {
			return
		}
		line := strings.TrimSpace(a.reader.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		cmd, args := fields[0], fields[1:]
		switch cmd {
		case "exit", "quit":
			return
		case "help":
			a.printHelp()
		case "login":
			a.Login()
		case "signup":
			a.Signup()
		case "logout":
			if !a.isLoggedIn() {
				fmt.Fprintln(a.out, "Not logged in.")
				continue
			}
			a.Logout()
		case "list", "add", "edit", "delete":
			if !a.isLoggedIn() {
				fmt.Fprintln(a.out, "Please login or signup first.")
				continue
			}
			a.dispatchLoggedIn(cmd, args)
		default:
			fmt.Fprintf(a.out, "Unknown command %q. Type 'help'.\n", cmd)
		}
	}
}

func (a *App) dispatchLoggedIn(cmd string, args []string) {
	switch cmd {
	case "list":
		a.List()
	case "add":
		a.Add()
	case "edit":
		if len(args) != 1 {
			fmt.Fprintln(a.out, "Usage: edit <id>")
			return
		}
		a.Edit(args[0])
	case "delete":
		if len(args) != 1 {
			fmt.Fprintln(a.out, "Usage: delete <id>")
			return
		}
		a.Delete(args[0])
	}
}

func (a *App) status() string {
	if identity := a.session.Current(); identity != nil {
		return identity.Username
	}
	return "not logged in"
}

func (a *App) printHelp() {
	fmt.Fprintln(a.out, "Commands:")
	fmt.Fprintln(a.out, "  signup          create an account")
	fmt.Fprintln(a.out, "  login           log in")
	fmt.Fprintln(a.out, "  list            show your contacts")
	fmt.Fprintln(a.out, "  add             add a contact")
	fmt.Fprintln(a.out, "  edit <id>       edit a contact")
	fmt.Fprintln(a.out, "  delete <id>     delete a contact")
	fmt.Fprintln(a.out, "  logout          log out")
	fmt.Fprintln(a.out, "  exit            leave the program")
}
