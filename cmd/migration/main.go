package main

import (
	"bufio"
	"flag"
	"log"
	"os"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

// Usage example on the command line:
// > DATABASE_DSN="dirk:bullo92@tcp(localhost)/test?parseTime=true" go run main.go -file=../../scripts/database.sql
func main() {
	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		log.Fatal("DATABASE_DSN must be set")
	}
	db, err := sqlx.Open("mysql", dsn)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	filePtr := flag.String("file", "database.sql", "the sql file to execute")
	flag.Parse()

	readFile, err := os.Open(*filePtr) // nosemgrep
	if err != nil {
		panic(err)
	}
	defer readFile.Close()

	fileScanner := bufio.NewScanner(readFile)
	fileScanner.Split(bufio.ScanLines)
	builder := strings.Builder{}
	for fileScanner.Scan() {
		line := fileScanner.Text()
		builder.WriteString(line)
		builder.WriteString(" ")
		if strings.Contains(line, ";") {
			sql := builder.String()
			db.MustExec(sql)
			builder = strings.Builder{}
		}
	}
}
