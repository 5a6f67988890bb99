package repository

import (
	"database/sql"
	"fmt"

	"movie-catalog-api/internal/models"
)

// UserRepository handles database operations for user accounts.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByEmail returns the account row for email, or sql.ErrNoRows.
func (r *UserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	var firstName, lastName, address sql.NullString
	var dob sql.NullTime

	err := r.db.QueryRow(`
		SELECT id, email, password_hash, first_name, last_name, dob, address
		FROM users
		WHERE email = $1
	`, email).Scan(&user.ID, &user.Email, &user.PasswordHash, &firstName, &lastName, &dob, &address)
	if err != nil {
		return nil, err
	}

	user.FirstName = nullString(firstName)
	user.LastName = nullString(lastName)
	user.Address = nullString(address)
	if dob.Valid {
		d := dob.Time
		user.DOB = &d
	}
	return &user, nil
}

// Create inserts a new account.
func (r *UserRepository) Create(email, passwordHash string) error {
	_, err := r.db.Exec(`
		INSERT INTO users (email, password_hash)
		VALUES ($1, $2)
	`, email, passwordHash)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// UpdateProfile writes the profile fields for email. dob arrives as a
// validated YYYY-MM-DD string.
func (r *UserRepository) UpdateProfile(email, firstName, lastName, dob, address string) error {
	_, err := r.db.Exec(`
		UPDATE users
		SET first_name = $1, last_name = $2, dob = $3::date, address = $4
		WHERE email = $5
	`, firstName, lastName, dob, address, email)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}
