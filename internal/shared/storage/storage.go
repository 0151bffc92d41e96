package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const PublicPrefix = "/uploads"

var ErrInvalidBucket = errors.New("invalid storage bucket")

// Storage stores opaque files and returns their public URL.
type Storage interface {
	Upload(ctx context.Context, r io.Reader, ext, bucket string) (string, error)
	Update(ctx context.Context, oldFile string, r io.Reader, ext, bucket string) (string, error)
}

type localStorage struct {
	root   string
	logger *zap.Logger
}

// NewLocal stores files under root/<bucket>/ and serves them as
// /uploads/<bucket>/<name>.
func NewLocal(root string, logger ...*zap.Logger) Storage {
	l := zap.L().Named("storage.local")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &localStorage{root: root, logger: l}
}

func (s *localStorage) Upload(ctx context.Context, r io.Reader, ext, bucket string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if bucket == "" || strings.ContainsAny(bucket, `/\.`) {
		return "", ErrInvalidBucket
	}

	dir := filepath.Join(s.root, bucket)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	name := uuid.NewString() + normalizeExt(ext)
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}

	url := path.Join(PublicPrefix, bucket, name)
	s.logger.Debug("file stored", zap.String("url", url))
	return url, nil
}

// Update stores the new file first and only then removes oldFile, so a
// failed upload keeps the previous one.
func (s *localStorage) Update(ctx context.Context, oldFile string, r io.Reader, ext, bucket string) (string, error) {
	url, err := s.Upload(ctx, r, ext, bucket)
	if err != nil {
		return "", err
	}

	if old := s.localPath(oldFile); old != "" {
		if err := os.Remove(old); err != nil && !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("remove previous file failed", zap.String("file", oldFile), zap.Error(err))
		}
	}
	return url, nil
}

// localPath maps a public URL back to a path under root. URLs that do not
// belong to this storage yield "".
func (s *localStorage) localPath(url string) string {
	rel, ok := strings.CutPrefix(url, PublicPrefix+"/")
	if !ok || rel == "" {
		return ""
	}
	clean := filepath.Clean(filepath.FromSlash(rel))
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return ""
	}
	return filepath.Join(s.root, clean)
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
