package session

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	sessions map[string]*Session
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{sessions: make(map[string]*Session)}
}

func (r *memoryRepo) Create(s *Session) error {
	r.sessions[s.ID] = s
	return nil
}

func (r *memoryRepo) FindByID(id string) (*Session, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func (r *memoryRepo) SetOrganization(id, orgID string) error {
	s, ok := r.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	s.OrganizationID = &orgID
	return nil
}

func (r *memoryRepo) Delete(id string) error {
	if _, ok := r.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(r.sessions, id)
	return nil
}

func (r *memoryRepo) DeleteExpired(now time.Time) (int64, error) {
	var n int64
	for id, s := range r.sessions {
		if !s.ExpiresAt.After(now) {
			delete(r.sessions, id)
			n++
		}
	}
	return n, nil
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "ana@casa.test",
		"exp": exp.Unix(),
	})
	signed, err := token.SignedString([]byte("upstream-secret"))
	require.NoError(t, err)
	return signed
}

func TestIssueAndResolveRoundTrip(t *testing.T) {
	m := NewManager(newMemoryRepo(), time.Hour)
	token := signedToken(t, time.Now().Add(2*time.Hour))

	cookie, sess, err := m.Issue("ana@casa.test", token)
	require.NoError(t, err)
	assert.Contains(t, cookie, ".")
	assert.Equal(t, "ana@casa.test", sess.UserEmail)

	resolved, err := m.Resolve(cookie)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, resolved.ID)
	assert.Equal(t, token, resolved.AccessToken)
}

func TestSessionExpiryClampsToTokenExpiry(t *testing.T) {
	m := NewManager(newMemoryRepo(), 12*time.Hour)
	tokenExp := time.Now().Add(30 * time.Minute)

	_, sess, err := m.Issue("ana@casa.test", signedToken(t, tokenExp))
	require.NoError(t, err)
	assert.WithinDuration(t, tokenExp, sess.ExpiresAt, 2*time.Second,
		"the session must not outlive the upstream token")
}

func TestResolveRejectsForgedSecret(t *testing.T) {
	m := NewManager(newMemoryRepo(), time.Hour)
	cookie, _, err := m.Issue("ana@casa.test", signedToken(t, time.Now().Add(2*time.Hour)))
	require.NoError(t, err)

	id, _, _ := strings.Cut(cookie, ".")
	_, err = m.Resolve(id + ".wrong-secret")
	assert.ErrorIs(t, err, ErrInvalidCookie)
}

func TestResolveRejectsMalformedCookie(t *testing.T) {
	m := NewManager(newMemoryRepo(), time.Hour)

	for _, cookie := range []string{"", "no-separator", ".", "id.", ".secret"} {
		_, err := m.Resolve(cookie)
		assert.ErrorIs(t, err, ErrInvalidCookie, "cookie %q", cookie)
	}
}

func TestResolveRejectsUnknownSession(t *testing.T) {
	m := NewManager(newMemoryRepo(), time.Hour)
	_, err := m.Resolve("unknown-id.some-secret")
	assert.ErrorIs(t, err, ErrInvalidCookie)
}

func TestExpiredSessionIsRejectedAndDeleted(t *testing.T) {
	repo := newMemoryRepo()
	m := NewManager(repo, time.Hour)

	cookie, sess, err := m.Issue("ana@casa.test", signedToken(t, time.Now().Add(2*time.Hour)))
	require.NoError(t, err)

	repo.sessions[sess.ID].ExpiresAt = time.Now().Add(-time.Minute)

	_, err = m.Resolve(cookie)
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.Empty(t, repo.sessions, "resolution cleans up the expired row")
}

func TestDestroyIsIdempotent(t *testing.T) {
	repo := newMemoryRepo()
	m := NewManager(repo, time.Hour)

	_, sess, err := m.Issue("ana@casa.test", signedToken(t, time.Now().Add(2*time.Hour)))
	require.NoError(t, err)

	require.NoError(t, m.Destroy(sess.ID))
	require.NoError(t, m.Destroy(sess.ID))
}

func TestPurgeExpiredCountsDeletedRows(t *testing.T) {
	repo := newMemoryRepo()
	m := NewManager(repo, time.Hour)

	_, live, err := m.Issue("live@casa.test", signedToken(t, time.Now().Add(2*time.Hour)))
	require.NoError(t, err)
	_, dead, err := m.Issue("dead@casa.test", signedToken(t, time.Now().Add(2*time.Hour)))
	require.NoError(t, err)
	repo.sessions[dead.ID].ExpiresAt = time.Now().Add(-time.Minute)

	purged, err := m.PurgeExpired()
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)
	assert.Contains(t, repo.sessions, live.ID)
}
