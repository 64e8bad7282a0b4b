package store

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// ErrNotFound is returned when the requested record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrDuplicateUsername is returned when creating a user whose username is
// already taken. The unique index on users.username is the authority; the
// store maps the driver's duplicate-key error to this sentinel.
var ErrDuplicateUsername = errors.New("username already exists")

// mysqlDuplicateEntry is the MySQL error number for a unique key violation.
const mysqlDuplicateEntry = 1062

// isDuplicateEntry reports whether err is a MySQL duplicate-key error.
func isDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
}
