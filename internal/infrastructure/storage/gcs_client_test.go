package storage

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestImageExtension(t *testing.T) {
	ext, ok := ImageExtension("image/PNG")
	assert.True(t, ok)
	assert.Equal(t, ".png", ext)

	_, ok = ImageExtension("application/pdf")
	assert.False(t, ok)
}

func TestObjectName(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	name := ObjectName("public/vendor/uid-1", "image/webp", at)

	assert.True(t, strings.HasPrefix(name, "public/vendor/uid-1/"))
	assert.True(t, strings.HasSuffix(name, "-20260301120000.webp"))
}

func TestPublicURL(t *testing.T) {
	assert.Equal(t, "https://storage.googleapis.com/bkt/public/a.png", PublicURL("bkt", "public/a.png"))
}

func TestObjectFromURL(t *testing.T) {
	object, ok := ObjectFromURL("bkt", PublicURL("bkt", "public/vendor/u/a.png"))
	assert.True(t, ok)
	assert.Equal(t, "public/vendor/u/a.png", object)

	for _, url := range []string{
		"https://storage.googleapis.com/other/public/a.png",
		"https://storage.googleapis.com/bkt/",
		"https://example.com/bkt/a.png",
		"",
	} {
		_, ok := ObjectFromURL("bkt", url)
		assert.False(t, ok, url)
	}
}
