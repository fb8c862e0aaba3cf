package database

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	t.Setenv("BUTLER_ENCRYPTION_KEY", "test-encryption-key")

	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestGoogleTokenRoundTrip(t *testing.T) {
	db := newTestDB(t)

	token := &oauth2.Token{
		AccessToken:  "access-123",
		RefreshToken: "refresh-456",
		TokenType:    "Bearer",
		Expiry:       time.Now().Add(time.Hour).Round(time.Second),
	}
	require.NoError(t, db.SaveGoogleToken(token))

	got, err := db.GetGoogleToken()
	require.NoError(t, err)
	assert.Equal(t, token.AccessToken, got.AccessToken)
	assert.Equal(t, token.RefreshToken, got.RefreshToken)
	assert.True(t, token.Expiry.Equal(got.Expiry))
}

func TestGoogleTokenStoredEncrypted(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.SaveGoogleToken(&oauth2.Token{AccessToken: "secret-access-token"}))

	var raw []byte
	require.NoError(t, db.QueryRow(`SELECT token_data FROM google_tokens WHERE id = 1`).Scan(&raw))
	assert.NotContains(t, string(raw), "secret-access-token")
}

func TestGoogleTokenUpsert(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.SaveGoogleToken(&oauth2.Token{AccessToken: "first"}))
	require.NoError(t, db.SaveGoogleToken(&oauth2.Token{AccessToken: "second"}))

	got, err := db.GetGoogleToken()
	require.NoError(t, err)
	assert.Equal(t, "second", got.AccessToken)

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM google_tokens`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestGetGoogleToken_NoneStored(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetGoogleToken()
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestDeleteGoogleToken(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.SaveGoogleToken(&oauth2.Token{AccessToken: "gone"}))
	require.NoError(t, db.DeleteGoogleToken())

	_, err := db.GetGoogleToken()
	assert.ErrorIs(t, err, ErrNoToken)

	// Deleting again is a no-op.
	assert.NoError(t, db.DeleteGoogleToken())
}

func TestSaveGoogleToken_NilToken(t *testing.T) {
	db := newTestDB(t)

	assert.Error(t, db.SaveGoogleToken(nil))
}
