package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPasswordConfig_CostParsing(t *testing.T) {
	tests := []struct {
		name     string
		cost     string
		wantCost int
		wantErr  bool
	}{
		{name: "unset uses default", cost: "", wantCost: 12},
		{name: "minimum cost", cost: "10", wantCost: 10},
		{name: "mid-range cost", cost: "12", wantCost: 12},
		{name: "maximum cost", cost: "14", wantCost: 14},
		{name: "below minimum", cost: "9", wantErr: true},
		{name: "above maximum", cost: "15", wantErr: true},
		{name: "negative", cost: "-5", wantErr: true},
		{name: "zero", cost: "0", wantErr: true},
		{name: "non-numeric", cost: "invalid", wantErr: true},
		{name: "float", cost: "12.5", wantErr: true},
		// strconv.Atoi does not trim whitespace.
		{name: "whitespace", cost: "  12  ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("BCRYPT_COST", tt.cost)
			t.Setenv("PASSWORD_PEPPER", "")

			config, err := NewPasswordConfig()
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, config)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCost, config.BcryptCost)
			assert.Empty(t, config.Pepper)
		})
	}
}

func TestNewPasswordConfig_ReadsPepper(t *testing.T) {
	t.Setenv("BCRYPT_COST", "10")
	t.Setenv("PASSWORD_PEPPER", "compliance-agent-pepper")

	config, err := NewPasswordConfig()
	require.NoError(t, err)
	assert.Equal(t, "compliance-agent-pepper", config.Pepper)
}

func testPasswordConfig(t *testing.T, pepper string) *PasswordConfig {
	t.Helper()
	// Minimum cost keeps bcrypt-heavy tests fast.
	return &PasswordConfig{BcryptCost: 10, Pepper: pepper}
}

func TestPasswordConfig_HashAndVerify(t *testing.T) {
	config := testPasswordConfig(t, "")

	hash, err := config.HashPassword("registrar-portal-pass1")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.True(t, config.VerifyPassword("registrar-portal-pass1", hash))
	assert.False(t, config.VerifyPassword("wrong-password", hash))
}

func TestPasswordConfig_SaltMakesHashesUnique(t *testing.T) {
	config := testPasswordConfig(t, "")

	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		hash, err := config.HashPassword("same-password-123")
		require.NoError(t, err)
		assert.False(t, seen[hash], "bcrypt salt should make every hash distinct")
		seen[hash] = true
		assert.True(t, config.VerifyPassword("same-password-123", hash))
	}
}

func TestPasswordConfig_EmptyPassword(t *testing.T) {
	config := testPasswordConfig(t, "")

	hash, err := config.HashPassword("")
	require.NoError(t, err)
	assert.True(t, config.VerifyPassword("", hash))
	assert.False(t, config.VerifyPassword("not-empty", hash))
}

func TestPasswordConfig_BcryptInputLimit(t *testing.T) {
	config := testPasswordConfig(t, "")

	// 72 bytes is bcrypt's hard limit on input length.
	atLimit := strings.Repeat("a", 72)
	hash, err := config.HashPassword(atLimit)
	require.NoError(t, err)
	assert.True(t, config.VerifyPassword(atLimit, hash))

	overLimit := strings.Repeat("a", 73)
	hash, err = config.HashPassword(overLimit)
	require.Error(t, err)
	assert.Empty(t, hash)
}

func TestPasswordConfig_PepperCountsTowardLimit(t *testing.T) {
	// 63-byte pepper + 9-byte password lands exactly on 72 bytes.
	config := testPasswordConfig(t, strings.Repeat("p", 63))
	hash, err := config.HashPassword("test12345")
	require.NoError(t, err)
	assert.True(t, config.VerifyPassword("test12345", hash))

	// One more byte of pepper pushes the input over the limit.
	config = testPasswordConfig(t, strings.Repeat("p", 64))
	_, err = config.HashPassword("test12345")
	require.Error(t, err)
}

func TestPasswordConfig_PepperBindsHashes(t *testing.T) {
	withPepper := testPasswordConfig(t, "pepper-one")
	otherPepper := testPasswordConfig(t, "pepper-two")
	noPepper := testPasswordConfig(t, "")

	hash, err := withPepper.HashPassword("director-pass-123")
	require.NoError(t, err)

	assert.True(t, withPepper.VerifyPassword("director-pass-123", hash))
	assert.False(t, otherPepper.VerifyPassword("director-pass-123", hash),
		"a rotated pepper must invalidate old hashes")
	assert.False(t, noPepper.VerifyPassword("director-pass-123", hash),
		"dropping the pepper must invalidate old hashes")
}

func TestPasswordConfig_RejectsMalformedHashes(t *testing.T) {
	config := testPasswordConfig(t, "")

	malformed := []string{
		"",
		"not-a-hash",
		"$2a$12$invalid",
		"$2a$12$tooshort",
		"invalid$format",
	}
	for _, hash := range malformed {
		assert.False(t, config.VerifyPassword("anything", hash), "hash %q", hash)
	}
}

func TestPasswordConfig_ConcurrentHashing(t *testing.T) {
	config := testPasswordConfig(t, "")

	done := make(chan error, 8)
	for i := 0; i < 8; i++ {
		go func() {
			hash, err := config.HashPassword("concurrent-pass")
			if err == nil && !config.VerifyPassword("concurrent-pass", hash) {
				err = assert.AnError
			}
			done <- err
		}()
	}
	for i := 0; i < 8; i++ {
		assert.NoError(t, <-done)
	}
}

func BenchmarkHashPassword(b *testing.B) {
	config := &PasswordConfig{BcryptCost: 10}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = config.HashPassword("benchmark-password-123")
	}
}

func BenchmarkVerifyPassword(b *testing.B) {
	config := &PasswordConfig{BcryptCost: 10}
	hash, _ := config.HashPassword("benchmark-password-123")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = config.VerifyPassword("benchmark-password-123", hash)
	}
}
