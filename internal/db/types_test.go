package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFetchStatusFromHTTP(t *testing.T) {
	assert.Equal(t, FetchStatusSuccess, FetchStatusFromHTTP(200))
	assert.Equal(t, FetchStatusSuccess, FetchStatusFromHTTP(204))
	assert.Equal(t, FetchStatusNotFound, FetchStatusFromHTTP(404))
	assert.Equal(t, FetchStatusNotFound, FetchStatusFromHTTP(410))
	assert.Equal(t, FetchStatusBlocked, FetchStatusFromHTTP(403))
	assert.Equal(t, FetchStatusBlocked, FetchStatusFromHTTP(429))
	assert.Equal(t, FetchStatusError, FetchStatusFromHTTP(500))
	assert.Equal(t, FetchStatusError, FetchStatusFromHTTP(0))
}

func TestIsPermanentHTTPStatus(t *testing.T) {
	assert.True(t, IsPermanentHTTPStatus(404))
	assert.True(t, IsPermanentHTTPStatus(410))
	assert.True(t, IsPermanentHTTPStatus(451))
	assert.False(t, IsPermanentHTTPStatus(500))
	assert.False(t, IsPermanentHTTPStatus(429))
}

func TestHashContent(t *testing.T) {
	first := HashContent("regulation text")
	second := HashContent("regulation text")
	assert.Equal(t, first, second)
	assert.Len(t, first, 64)
	assert.NotEqual(t, first, HashContent("different text"))
}

func TestSourcePage_IsExpired(t *testing.T) {
	page := &SourcePage{}
	assert.False(t, page.IsExpired(), "no expiry set means never expires")

	past := time.Now().Add(-time.Hour)
	page.ExpiresAt = &past
	assert.True(t, page.IsExpired())

	future := time.Now().Add(time.Hour)
	page.ExpiresAt = &future
	assert.False(t, page.IsExpired())
}

func TestSourcePage_IsFresh(t *testing.T) {
	page := &SourcePage{FetchedAt: time.Now().Add(-2 * time.Hour)}
	assert.True(t, page.IsFresh(3*time.Hour))
	assert.False(t, page.IsFresh(time.Hour))
}
