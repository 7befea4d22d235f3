package baselines

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"pagewatch/lib/models"
)

// FileStore keeps one UTF-8 text file per tracked URL under a fixed
// directory. The filename is the first 12 hex chars of the URL's md5; the
// file content is the baseline text, no envelope.
type FileStore struct {
	log *zap.Logger
	dir string
}

func (s *FileStore) path(item *models.TrackedItem) string {
	return filepath.Join(s.dir, models.URLKey(item.URL)+".txt")
}

func (s *FileStore) Read(item *models.TrackedItem) (string, bool, error) {
	raw, err := os.ReadFile(s.path(item))
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return string(raw), true, nil
}

func (s *FileStore) Write(ctx context.Context, item *models.TrackedItem, content string, changed bool) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}

	// Write-then-rename so a partial write never clobbers the previous
	// baseline.
	path := s.path(item)
	tmp := fmt.Sprintf("%s.tmp", path)
	if err := os.WriteFile(tmp, []byte(content), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func (s *FileStore) Touch(ctx context.Context, item *models.TrackedItem) error {
	return nil
}
