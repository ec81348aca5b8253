package config

import (
	"fmt"
	"os"
	"strconv"

	"golang.org/x/crypto/bcrypt"
)

// PasswordConfig controls bcrypt hashing for account passwords. Pepper,
// when set, is appended to every password before hashing so a stolen
// database alone cannot be cracked offline.
type PasswordConfig struct {
	BcryptCost int
	Pepper     string
}

// NewPasswordConfig reads BCRYPT_COST (default 12) and PASSWORD_PEPPER
// from the environment.
func NewPasswordConfig() (*PasswordConfig, error) {
	cost := 12
	if raw := os.Getenv("BCRYPT_COST"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid BCRYPT_COST: %v", err)
		}
		cost = parsed
	}

	config := &PasswordConfig{
		BcryptCost: cost,
		Pepper:     os.Getenv("PASSWORD_PEPPER"),
	}
	if err := config.normalize(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *PasswordConfig) normalize() error {
	// Below 10 is too cheap to brute-force-resist, above 14 makes
	// login noticeably slow.
	if c.BcryptCost < 10 || c.BcryptCost > 14 {
		return fmt.Errorf("bcrypt cost out of range: %d (must be 10-14)", c.BcryptCost)
	}
	return nil
}

// peppered returns the password with the pepper appended, if configured.
func (c *PasswordConfig) peppered(pw string) string {
	if c.Pepper == "" {
		return pw
	}
	return pw + c.Pepper
}

// HashPassword hashes a password with bcrypt at the configured cost.
func (c *PasswordConfig) HashPassword(pw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(c.peppered(pw)), c.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether pw matches the stored bcrypt hash.
func (c *PasswordConfig) VerifyPassword(pw, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(c.peppered(pw))) == nil
}
