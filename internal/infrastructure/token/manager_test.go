package token

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrolink/pkg/errors"
)

func TestManager_IssueAndVerify(t *testing.T) {
	m := NewManager("test-secret", time.Hour, NewMemoryRevocationStore())

	signed, err := m.Issue(42)
	require.NoError(t, err)

	userID, err := m.Verify(context.Background(), signed)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestManager_RejectsForeignSignature(t *testing.T) {
	issuer := NewManager("one-secret", time.Hour, NewMemoryRevocationStore())
	verifier := NewManager("other-secret", time.Hour, NewMemoryRevocationStore())

	signed, err := issuer.Issue(1)
	require.NoError(t, err)

	_, err = verifier.Verify(context.Background(), signed)
	assert.True(t, errors.Is(err, errors.CodeUnauthorized))
}

func TestManager_RejectsExpiredToken(t *testing.T) {
	m := NewManager("test-secret", time.Minute, NewMemoryRevocationStore())
	m.now = func() time.Time { return time.Now().Add(-2 * time.Minute) }

	signed, err := m.Issue(1)
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.Verify(context.Background(), signed)
	assert.True(t, errors.Is(err, errors.CodeUnauthorized))
}

func TestManager_RevokedTokenIsRejected(t *testing.T) {
	m := NewManager("test-secret", time.Hour, NewMemoryRevocationStore())
	ctx := context.Background()

	signed, err := m.Issue(7)
	require.NoError(t, err)
	other, err := m.Issue(7)
	require.NoError(t, err)

	require.NoError(t, m.Revoke(ctx, signed))

	_, err = m.Verify(ctx, signed)
	assert.True(t, errors.Is(err, errors.CodeUnauthorized))

	userID, err := m.Verify(ctx, other)
	require.NoError(t, err)
	assert.Equal(t, int64(7), userID)
}

func TestManager_RejectsGarbage(t *testing.T) {
	m := NewManager("test-secret", time.Hour, NewMemoryRevocationStore())

	_, err := m.Verify(context.Background(), "not-a-token")
	assert.True(t, errors.Is(err, errors.CodeUnauthorized))
}

func TestMemoryRevocationStore_ForgetsExpiredEntries(t *testing.T) {
	s := NewMemoryRevocationStore()
	ctx := context.Background()
	base := time.Now()
	s.now = func() time.Time { return base }

	require.NoError(t, s.Revoke(ctx, "a", base.Add(time.Minute)))

	revoked, err := s.IsRevoked(ctx, "a")
	require.NoError(t, err)
	assert.True(t, revoked)

	s.now = func() time.Time { return base.Add(2 * time.Minute) }
	revoked, err = s.IsRevoked(ctx, "a")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRedisRevocationStore(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	ctx := context.Background()
	s, err := NewRedisRevocationStore(ctx, addr, os.Getenv("REDIS_PASSWORD"), 0)
	require.NoError(t, err)
	defer s.Close()

	jti := "test-" + time.Now().Format(time.RFC3339Nano)
	require.NoError(t, s.Revoke(ctx, jti, time.Now().Add(time.Minute)))

	revoked, err := s.IsRevoked(ctx, jti)
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = s.IsRevoked(ctx, jti+"-other")
	require.NoError(t, err)
	assert.False(t, revoked)
}
