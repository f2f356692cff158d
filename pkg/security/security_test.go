package security

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "a***@example.com", MaskEmail("ana@example.com"))
	assert.Equal(t, "***@example.com", MaskEmail("a@example.com"))
	assert.Equal(t, "***", MaskEmail("ab"))
	assert.Equal(t, "***", MaskEmail("no-at-sign"))
}

func TestHashValue(t *testing.T) {
	h := HashValue("user-123")
	assert.Len(t, h, 16)
	assert.Equal(t, h, HashValue("user-123"))
	assert.NotEqual(t, h, HashValue("user-124"))
}

func TestSecurityLogger_AccessDenied(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	sl := NewSecurityLogger(zap.New(core), "svc", "test")

	sl.LogAccessDenied(context.Background(), EventForbiddenAccess, "user-1", "10.0.0.1", "req-1", "/v1/admin/stats", "not admin")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.ErrorLevel, entry.Level)
	assert.Equal(t, string(EventForbiddenAccess), entry.Message)

	fields := entry.ContextMap()
	assert.Equal(t, "user_id", fields["subject_type"])
	assert.Equal(t, HashValue("user-1"), fields["subject_value"])
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Contains(t, fields["details"], "not admin")
}

func TestSecurityLogger_RateLimit(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	sl := NewSecurityLogger(zap.New(core), "svc", "test")

	sl.LogRateLimitTriggered(context.Background(), "10.0.0.2", "curl", "", "/v1/ratings/:movieId")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, zapcore.WarnLevel, logs.All()[0].Level)
	assert.Equal(t, "10.0.0.2", logs.All()[0].ContextMap()["ip"])
}

func TestValidateImage(t *testing.T) {
	png := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0x0D, 'I', 'H', 'D', 'R'}
	jpg := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0, 0x10, 'J', 'F', 'I', 'F', 0}

	mime, msg := ValidateImage("poster.PNG", png)
	assert.Empty(t, msg)
	assert.Equal(t, "image/png", mime)

	mime, msg = ValidateImage("poster.jpeg", jpg)
	assert.Empty(t, msg)
	assert.Equal(t, "image/jpeg", mime)

	_, msg = ValidateImage("poster.png", jpg)
	assert.NotEmpty(t, msg)

	_, msg = ValidateImage("poster.gif", []byte("GIF89a"))
	assert.NotEmpty(t, msg)

	_, msg = ValidateImage("poster.jpg", []byte("%PDF-1.7 fake"))
	assert.NotEmpty(t, msg)
}

func TestUploadQuota_DisabledOrWithoutRedis(t *testing.T) {
	assert.Nil(t, NewUploadQuota(0, time.Hour))

	var none *UploadQuota
	allowed, _, err := none.Allow(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, allowed)

	// No shared Redis client in unit tests
	q := NewUploadQuota(1, time.Hour)
	for i := 0; i < 3; i++ {
		allowed, _, err = q.Allow(context.Background(), "u1")
		require.NoError(t, err)
		assert.True(t, allowed)
	}
}
