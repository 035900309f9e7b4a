package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *LocalStorage {
	t.Helper()
	s, err := NewLocalStorage(Config{BasePath: t.TempDir(), BaseURL: "/api/v1/files"})
	require.NoError(t, err)
	return s
}

func TestLocalStorage_RoundTrip(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	path := "user-1/avatar.png"
	require.NoError(t, s.Save(ctx, path, strings.NewReader("png-bytes"), "image/png"))

	exists, err := s.Exists(ctx, path)
	require.NoError(t, err)
	assert.True(t, exists)

	size, err := s.GetSize(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, int64(len("png-bytes")), size)

	rc, err := s.Get(ctx, path)
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "png-bytes", string(data))

	require.NoError(t, s.Delete(ctx, path))
	exists, err = s.Exists(ctx, path)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLocalStorage_DeleteMissingIsNoop(t *testing.T) {
	s := newTestStorage(t)
	assert.NoError(t, s.Delete(context.Background(), "user-1/gone.png"))
}

func TestLocalStorage_RejectsTraversal(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	// ".." не должен выводить за пределы basePath
	err := s.Save(ctx, "../outside.txt", strings.NewReader("x"), "text/plain")
	assert.Error(t, err)

	_, err = s.Get(ctx, "../../etc/passwd")
	assert.Error(t, err)

	_, err = s.Exists(ctx, "")
	assert.Error(t, err)
}

func TestLocalStorage_GetURL(t *testing.T) {
	s := newTestStorage(t)

	url, err := s.GetURL(context.Background(), "user-1/pic.jpg")
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/files/user-1/pic.jpg", url)
}
