package main

import (
	"flag"
	"fmt"
	"net/http"
	"time"
)

// Polls the contact-list service until it answers the list endpoint, for use
// in scripted integration runs.
//
// Usage example on the command line:
// > go run main.go -server=http://localhost:8080
func main() {
	serverPtr := flag.String("server", "http://localhost:8080", "base URL of the contact-list service")
	flag.Parse()

	totalWaitTime := 0
	for {
		res, err := http.Get(*serverPtr + "/contacts?userId=1")
		if err == nil {
			if res.StatusCode == http.StatusOK {
				fmt.Println(res)
				break
			} else {
				fmt.Println(res)
			}
		} else {
			fmt.Println(err)
		}
		totalWaitTime += 5
		fmt.Printf("Waiting %d seconds", totalWaitTime)
		fmt.Println()
		time.Sleep(5 * time.Second)
	}
}
