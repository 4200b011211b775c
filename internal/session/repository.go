package session

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrSessionNotFound is returned when no session row matches.
	ErrSessionNotFound = errors.New("session not found")
)

// Session is one server-side gateway session. The browser holds
// "<id>.<secret>"; only the bcrypt hash of the secret is stored, so a
// leaked sessions table cannot be replayed.
type Session struct {
	ID             string
	SecretHash     string
	UserEmail      string
	AccessToken    string
	OrganizationID *string
	CreatedAt      time.Time
	ExpiresAt      time.Time
}

// Repository persists gateway sessions in Postgres.
type Repository interface {
	Create(s *Session) error
	FindByID(id string) (*Session, error)
	SetOrganization(id, orgID string) error
	Delete(id string) error
	DeleteExpired(now time.Time) (int64, error)
}

type repository struct {
	db *sql.DB
}

// NewRepository creates a session repository backed by db.
func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(s *Session) error {
	query := `
		INSERT INTO sessions (id, secret_hash, user_email, access_token, organization_id, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.Exec(query, s.ID, s.SecretHash, s.UserEmail, s.AccessToken, s.OrganizationID, s.CreatedAt, s.ExpiresAt)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

func (r *repository) FindByID(id string) (*Session, error) {
	query := `
		SELECT id, secret_hash, user_email, access_token, organization_id, created_at, expires_at
		FROM sessions WHERE id = $1`
	s := &Session{}
	err := r.db.QueryRow(query, id).Scan(
		&s.ID, &s.SecretHash, &s.UserEmail, &s.AccessToken, &s.OrganizationID, &s.CreatedAt, &s.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("find session: %w", err)
	}
	return s, nil
}

func (r *repository) SetOrganization(id, orgID string) error {
	result, err := r.db.Exec(`UPDATE sessions SET organization_id = $1 WHERE id = $2`, orgID, id)
	if err != nil {
		return fmt.Errorf("set session organization: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set session organization: %w", err)
	}
	if rows == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func (r *repository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if rows == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func (r *repository) DeleteExpired(now time.Time) (int64, error) {
	result, err := r.db.Exec(`DELETE FROM sessions WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return result.RowsAffected()
}
