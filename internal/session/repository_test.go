package session

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepositoryCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	s := &Session{
		ID:          "s1",
		SecretHash:  "hash",
		UserEmail:   "ana@casa.test",
		AccessToken: "tok",
		CreatedAt:   now,
		ExpiresAt:   now.Add(time.Hour),
	}

	mock.ExpectExec("INSERT INTO sessions").
		WithArgs(s.ID, s.SecretHash, s.UserEmail, s.AccessToken, nil, s.CreatedAt, s.ExpiresAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewRepository(db)
	require.NoError(t, repo.Create(s))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryFindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	org := "org-1"
	rows := sqlmock.NewRows([]string{"id", "secret_hash", "user_email", "access_token", "organization_id", "created_at", "expires_at"}).
		AddRow("s1", "hash", "ana@casa.test", "tok", org, now, now.Add(time.Hour))

	mock.ExpectQuery("SELECT id, secret_hash, user_email, access_token, organization_id, created_at, expires_at").
		WithArgs("s1").
		WillReturnRows(rows)

	repo := NewRepository(db)
	s, err := repo.FindByID("s1")
	require.NoError(t, err)
	assert.Equal(t, "ana@casa.test", s.UserEmail)
	require.NotNil(t, s.OrganizationID)
	assert.Equal(t, "org-1", *s.OrganizationID)
}

func TestRepositoryFindByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT id, secret_hash").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id", "secret_hash", "user_email", "access_token", "organization_id", "created_at", "expires_at"}))

	repo := NewRepository(db)
	_, err = repo.FindByID("missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRepositorySetOrganizationMissingSession(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE sessions SET organization_id").
		WithArgs("org-1", "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewRepository(db)
	assert.ErrorIs(t, repo.SetOrganization("missing", "org-1"), ErrSessionNotFound)
}

func TestRepositoryDeleteExpired(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectExec("DELETE FROM sessions WHERE expires_at").
		WithArgs(now).
		WillReturnResult(sqlmock.NewResult(0, 3))

	repo := NewRepository(db)
	n, err := repo.DeleteExpired(now)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}
