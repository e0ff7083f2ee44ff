package main

import (
	"context"
	"log/slog"
	"testing"

	"restaurant-api/config"
	"restaurant-api/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptyDriverIsLocalStorage(t *testing.T) {
	assert.True(t, isLocalStorage(config.StorageConfig{}))
	assert.True(t, isLocalStorage(config.StorageConfig{Driver: "local"}))
	assert.False(t, isLocalStorage(config.StorageConfig{Driver: "s3"}))

	dir := t.TempDir()
	store, err := openImageStore(context.Background(), config.StorageConfig{UploadDir: dir, PublicURL: "/uploads/"})
	require.NoError(t, err)
	local, ok := store.(*storage.LocalStore)
	require.True(t, ok)
	assert.Equal(t, dir, local.Dir)
	assert.Equal(t, "/uploads", local.PublicURL)

	_, err = openImageStore(context.Background(), config.StorageConfig{Driver: "ftp"})
	assert.ErrorContains(t, err, "ftp")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warn"))
	assert.Equal(t, slog.LevelInfo, parseLevel(""))
}
