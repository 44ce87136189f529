package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetFullPath(t *testing.T) {
	assert.Equal(t, "media/a.png", getFullPath("", "media/a.png"))
	assert.Equal(t, "pp/media/a.png", getFullPath("pp", "media/a.png"))
	assert.Equal(t, "pp/media/a.png", getFullPath("pp/", "/media/a.png"))
}

func TestStorageValidate(t *testing.T) {
	s := &Storage{}
	s.SetDefaults()
	assert.Equal(t, TypeMinio, s.Type)
	assert.Error(t, s.Validate())

	s.Bucket = "pulseplan"
	assert.NoError(t, s.Validate())

	s.Type = "ftp"
	assert.Error(t, s.Validate())
}
