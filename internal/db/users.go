package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

type User struct {
	TelegramUserID int64     `db:"telegram_user_id"`
	FullName       string    `db:"full_name"`
	CreatedAt      time.Time `db:"created_at"`
}

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

func (r *UserRepository) Create(user *User) error {
	_, err := r.db.Exec(`
	    INSERT INTO users (telegram_user_id, full_name)
		VALUES ($1, $2)
		ON CONFLICT (telegram_user_id) DO NOTHING
	`,
		user.TelegramUserID,
		user.FullName,
	)

	if err != nil {
		return fmt.Errorf("UserRepository.Create: %w", err)
	}

	return nil
}

// GetByTelegramUserID returns nil without error when the user is not registered.
func (r *UserRepository) GetByTelegramUserID(telegramUserID int64) (*User, error) {
	var user User

	err := r.db.Get(&user, `
	    SELECT * FROM users
		WHERE telegram_user_id = $1
	`, telegramUserID)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("UserRepository.GetByTelegramUserID: %w", err)
	}

	return &user, nil
}

func (r *UserRepository) GetAll() ([]User, error) {
	var users []User

	err := r.db.Select(&users, `
	    SELECT * FROM users
		ORDER BY full_name ASC
	`)

	if err != nil {
		return nil, fmt.Errorf("UserRepository.GetAll: %w", err)
	}

	return users, nil
}
