package store

import (
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"gitlab.com/dirk.krummacker/contact-list/internal/model"
)

// bcryptCost is the fixed work factor for password hashing.
const bcryptCost = 12

// UserStore persists user accounts and owns password hashing and
// verification. It holds an injected database handle and prepared statements
// that are reused across requests.
type UserStore struct {
	db               *sqlx.DB
	insert           *sqlx.NamedStmt
	selectByUsername *sqlx.Stmt
}

// NewUserStore prepares all statements of the user store on the given
// database handle.
//
// Prepared statements offer a significant speed increase if executed many
// times.
func NewUserStore(db *sqlx.DB) (*UserStore, error) {
	insert, err := db.PrepareNamed(`
		INSERT INTO users (username, password)
		VALUES (:username, :password)
	`)
	if err != nil {
		return nil, err
	}
	selectByUsername, err := db.Preparex(`
		SELECT * FROM users WHERE username = ?
	`)
	if err != nil {
		return nil, err
	}
	return &UserStore{
		db:               db,
		insert:           insert,
		selectByUsername: selectByUsername,
	}, nil
}

// Create hashes the password with bcrypt and inserts a new user. Hashing
// happens exactly once, here and nowhere else, so a user row is never
// re-hashed by later writes. The clear password is neither stored nor
// returned; the returned record carries only the assigned id and the
// username. If the username is already taken, ErrDuplicateUsername is
// returned and the database is left unchanged.
func (s *UserStore) Create(username string, password string) (*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, err
	}
	result, err := s.insert.Exec(&model.User{Username: username, Password: string(hash)})
	if err != nil {
		if isDuplicateEntry(err) {
			return nil, ErrDuplicateUsername
		}
		return nil, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &model.User{Id: id, Username: username}, nil
}

// FindByUsername returns the user with the given username, including the
// stored password hash for verification, or ErrNotFound.
func (s *UserStore) FindByUsername(username string) (*model.User, error) {
	var users []model.User
	if err := s.selectByUsername.Select(&users, username); err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, ErrNotFound
	}
	return &users[0], nil
}

// VerifyPassword reports whether the candidate password matches the user's
// stored hash. The comparison is constant-time inside the bcrypt library.
func (s *UserStore) VerifyPassword(user *model.User, candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(candidate)) == nil
}
