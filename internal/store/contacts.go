package store

import (
	"github.com/jmoiron/sqlx"

	"gitlab.com/dirk.krummacker/contact-list/internal/model"
)

// ContactStore persists contacts scoped by their owner's user id. Listing is
// always filtered by the owner id the caller supplies; the store itself does
// not verify that the caller is that user.
type ContactStore struct {
	db            *sqlx.DB
	insert        *sqlx.NamedStmt
	selectByOwner *sqlx.Stmt
	selectWhereId *sqlx.Stmt
	deleteWhereId *sqlx.Stmt
}

// NewContactStore prepares all statements of the contact store on the given
// database handle.
func NewContactStore(db *sqlx.DB) (*ContactStore, error) {
	insert, err := db.PrepareNamed(`
		INSERT INTO contacts (user_id, name, email, phone)
		VALUES (:user_id, :name, :email, :phone)
	`)
	if err != nil {
		return nil, err
	}
	selectByOwner, err := db.Preparex(`
		SELECT * FROM contacts WHERE user_id = ?
	`)
	if err != nil {
		return nil, err
	}
	selectWhereId, err := db.Preparex(`
		SELECT * FROM contacts WHERE id = ?
	`)
	if err != nil {
		return nil, err
	}
	deleteWhereId, err := db.Preparex(`
		DELETE FROM contacts WHERE id = ?
	`)
	if err != nil {
		return nil, err
	}
	return &ContactStore{
		db:            db,
		insert:        insert,
		selectByOwner: selectByOwner,
		selectWhereId: selectWhereId,
		deleteWhereId: deleteWhereId,
	}, nil
}

// ListByOwner returns all contacts whose owner is the given user id. An
// owner without contacts yields an empty slice, not an error. No order is
// guaranteed.
func (s *ContactStore) ListByOwner(userID int64) ([]model.Contact, error) {
	var contacts []model.Contact
	if err := s.selectByOwner.Select(&contacts, userID); err != nil {
		return nil, err
	}
	if contacts == nil {
		contacts = []model.Contact{}
	}
	return contacts, nil
}

// Create inserts the contact and returns it with the newly assigned id. The
// store performs no field validation; absent fields are stored as NULL.
func (s *ContactStore) Create(contact *model.Contact) (*model.Contact, error) {
	result, err := s.insert.Exec(contact)
	if err != nil {
		return nil, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	contact.Id = id
	return contact, nil
}

// Update overwrites the submitted fields of the contact with the given id
// (and only those) and returns the full record after the update. It returns
// ErrNotFound if no such contact exists. Concurrent updates are not
// detected; the last write wins.
func (s *ContactStore) Update(id int64, submitted model.Contact) (*model.Contact, error) {
	var args []interface{}
	sql := "UPDATE contacts SET "
	if submitted.Name != nil {
		args = append(args, submitted.Name)
		sql += "name=?, "
	}
	if submitted.Email != nil {
		args = append(args, submitted.Email)
		sql += "email=?, "
	}
	if submitted.Phone != nil {
		args = append(args, submitted.Phone)
		sql += "phone=?, "
	}
	if len(args) == 0 {
		// Nothing to do; report the current record.
		return s.findById(id)
	}
	sql = sql[:len(sql)-2]
	sql += " WHERE id=?"
	args = append(args, id)
	if _, err := s.db.Exec(sql, args...); err != nil {
		return nil, err
	}
	// The MySQL driver reports changed rows, not matched rows, so an update
	// that re-submits the current values affects zero rows just like a
	// missing id would. The re-read tells the two apart: it returns the
	// record when it exists and ErrNotFound when it does not.
	return s.findById(id)
}

// findById returns the contact with the given id or ErrNotFound.
func (s *ContactStore) findById(id int64) (*model.Contact, error) {
	var contacts []model.Contact
	if err := s.selectWhereId.Select(&contacts, id); err != nil {
		return nil, err
	}
	if len(contacts) == 0 {
		return nil, ErrNotFound
	}
	return &contacts[0], nil
}

// Delete removes the contact with the given id. It returns ErrNotFound if no
// row was deleted.
func (s *ContactStore) Delete(id int64) error {
	result, err := s.deleteWhereId.Exec(id)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
