package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLocalStorage_Upload(t *testing.T) {
	root := t.TempDir()
	s := NewLocal(root, zap.NewNop())

	url, err := s.Upload(context.Background(), strings.NewReader("png-bytes"), "PNG", "company")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "/uploads/company/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	data, err := os.ReadFile(filepath.Join(root, "company", filepath.Base(url)))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
}

func TestLocalStorage_UploadRejectsTraversal(t *testing.T) {
	s := NewLocal(t.TempDir(), zap.NewNop())

	_, err := s.Upload(context.Background(), strings.NewReader("x"), ".png", "../etc")
	assert.ErrorIs(t, err, ErrInvalidBucket)
}

func TestLocalStorage_Update(t *testing.T) {
	root := t.TempDir()
	s := NewLocal(root, zap.NewNop())
	ctx := context.Background()

	oldURL, err := s.Upload(ctx, strings.NewReader("old"), ".jpg", "employee")
	require.NoError(t, err)

	newURL, err := s.Update(ctx, oldURL, strings.NewReader("new"), ".jpg", "employee")
	require.NoError(t, err)
	assert.NotEqual(t, oldURL, newURL)

	_, err = os.Stat(filepath.Join(root, "employee", filepath.Base(oldURL)))
	assert.True(t, os.IsNotExist(err))

	t.Run("foreign old file is left alone", func(t *testing.T) {
		_, err := s.Update(ctx, "https://cdn.example.com/a.jpg", strings.NewReader("x"), ".jpg", "employee")
		assert.NoError(t, err)
	})
}
