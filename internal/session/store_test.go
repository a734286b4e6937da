package session

import (
	"encoding/base64"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minjipark/encore/internal/logging"
	"github.com/minjipark/encore/pkg/domain"
)

func testPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "session.json")
}

// unsignedToken builds a syntactically valid JWT with the given claims and
// an empty signature.
func unsignedToken(t *testing.T, claims map[string]any) string {
	t.Helper()
	header, err := json.Marshal(map[string]string{"alg": "none", "typ": "JWT"})
	require.NoError(t, err)
	payload, err := json.Marshal(claims)
	require.NoError(t, err)
	enc := base64.RawURLEncoding
	return enc.EncodeToString(header) + "." + enc.EncodeToString(payload) + "."
}

func TestOpenMissingFileIsAnonymous(t *testing.T) {
	s, err := Open(testPath(t), logging.Discard())
	require.NoError(t, err)
	assert.False(t, s.Has())
	assert.Empty(t, s.Token())
}

func TestSetPersistsAndReloads(t *testing.T) {
	path := testPath(t)
	s, err := Open(path, logging.Discard())
	require.NoError(t, err)

	creds := domain.Credentials{AccessToken: "abc", RefreshToken: "def", MemberEmail: "fan@encore.fan"}
	require.NoError(t, s.Set(creds))
	assert.True(t, s.Has())
	assert.Equal(t, "abc", s.Token())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	reopened, err := Open(path, logging.Discard())
	require.NoError(t, err)
	assert.Equal(t, creds, reopened.Current())
}

func TestSetDerivesEmailFromToken(t *testing.T) {
	s, err := Open(testPath(t), logging.Discard())
	require.NoError(t, err)

	token := unsignedToken(t, map[string]any{"email": "minji@encore.fan"})
	require.NoError(t, s.Set(domain.Credentials{AccessToken: token}))
	assert.Equal(t, "minji@encore.fan", s.Current().MemberEmail)
}

func TestSetFallsBackToSubClaim(t *testing.T) {
	s, err := Open(testPath(t), logging.Discard())
	require.NoError(t, err)

	token := unsignedToken(t, map[string]any{"sub": "minji@encore.fan"})
	require.NoError(t, s.Set(domain.Credentials{AccessToken: token}))
	assert.Equal(t, "minji@encore.fan", s.Current().MemberEmail)
}

func TestSetToleratesOpaqueToken(t *testing.T) {
	s, err := Open(testPath(t), logging.Discard())
	require.NoError(t, err)

	require.NoError(t, s.Set(domain.Credentials{AccessToken: "not-a-jwt"}))
	assert.True(t, s.Has())
	assert.Empty(t, s.Current().MemberEmail)
}

func TestClearRemovesFileAndState(t *testing.T) {
	path := testPath(t)
	s, err := Open(path, logging.Discard())
	require.NoError(t, err)
	require.NoError(t, s.Set(domain.Credentials{AccessToken: "abc"}))

	require.NoError(t, s.Clear())
	assert.False(t, s.Has())
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))

	// Clearing an already-clean store is fine.
	require.NoError(t, s.Clear())
}

func TestSubscribeReceivesEveryMutation(t *testing.T) {
	s, err := Open(testPath(t), logging.Discard())
	require.NoError(t, err)

	ch1 := s.Subscribe()
	ch2 := s.Subscribe()

	require.NoError(t, s.Set(domain.Credentials{AccessToken: "abc"}))
	assert.Len(t, ch1, 1)
	assert.Len(t, ch2, 1)
	<-ch1
	<-ch2

	require.NoError(t, s.Clear())
	assert.Len(t, ch1, 1)
	assert.Len(t, ch2, 1)
}

func TestSubscribeSlowReaderCoalesces(t *testing.T) {
	s, err := Open(testPath(t), logging.Discard())
	require.NoError(t, err)

	ch := s.Subscribe()
	// Two mutations without a read must not block the writer.
	require.NoError(t, s.Set(domain.Credentials{AccessToken: "a"}))
	require.NoError(t, s.Set(domain.Credentials{AccessToken: "b"}))
	assert.Len(t, ch, 1)
	assert.Equal(t, "b", s.Token())
}
