package session

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginLogoutPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")

	s, err := Open(path)
	require.NoError(t, err)
	assert.False(t, s.Active())

	_, err = s.Credentials()
	assert.ErrorIs(t, err, ErrNoSession)

	require.NoError(t, s.Login(Credentials{APIKey: "secret", ClubID: 12}))

	reopened, err := Open(path)
	require.NoError(t, err)
	creds, err := reopened.Credentials()
	require.NoError(t, err)
	assert.Equal(t, Credentials{APIKey: "secret", ClubID: 12}, creds)

	require.NoError(t, reopened.Logout())
	_, err = reopened.Credentials()
	assert.ErrorIs(t, err, ErrNoSession)

	again, err := Open(path)
	require.NoError(t, err)
	assert.False(t, again.Active())
}

func TestLoginRequiresKey(t *testing.T) {
	s := New(Credentials{})
	assert.Error(t, s.Login(Credentials{ClubID: 1}))
}

func TestOverride(t *testing.T) {
	s := New(Credentials{APIKey: "stored", ClubID: 1})
	s.Override("", 5)

	creds, err := s.Credentials()
	require.NoError(t, err)
	assert.Equal(t, "stored", creds.APIKey)
	assert.Equal(t, int64(5), creds.ClubID)

	empty := New(Credentials{})
	empty.Override("", 3)
	assert.False(t, empty.Active())

	empty.Override("env-key", 0)
	assert.True(t, empty.Active())
}
