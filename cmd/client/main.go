package main

import (
	"flag"
	"log"
	"os"

	"gitlab.com/dirk.krummacker/contact-list/internal/cli"
	"gitlab.com/dirk.krummacker/contact-list/internal/client"
	"gitlab.com/dirk.krummacker/contact-list/internal/session"
)

// Usage example on the command line:
// > go run main.go -server=http://localhost:8080
func main() {
	serverPtr := flag.String("server", "http://localhost:8080", "base URL of the contact-list service")
	flag.Parse()

	api := client.New(*serverPtr)
	path, err := session.DefaultPath()
	if err != nil {
		log.Fatal(err)
	}
	sess := session.New(api, path)
	cli.NewApp(api, sess, os.Stdin, os.Stdout).Run()
}
