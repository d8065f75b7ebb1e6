package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// FileStore keeps each collection in <dir>/<name>.json.
type FileStore struct {
	dir    string
	logger *logrus.Logger
}

// NewFileStore creates dir if needed and returns a store rooted there.
func NewFileStore(dir string, logger *logrus.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileStore{dir: dir, logger: logger}, nil
}

// Path returns the document path of a collection.
func (s *FileStore) Path(c Collection) string {
	return filepath.Join(s.dir, c.Name+".json")
}

func (s *FileStore) Load(ctx context.Context, c Collection, dst any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := os.ReadFile(s.Path(c))
	if errors.Is(err, fs.ErrNotExist) {
		if err := s.write(c, emptyDocument); err != nil {
			return err
		}
		return reset(dst)
	}
	if err != nil {
		s.entry(c).WithError(err).Error("failed to read collection")
		return fmt.Errorf("read %s: %w", c.Name, err)
	}

	if err := decode(c, data, dst); err != nil {
		s.entry(c).WithError(err).Warn("collection document is unreadable, resetting to empty")
		if err := s.write(c, emptyDocument); err != nil {
			return err
		}
		return reset(dst)
	}
	return nil
}

func (s *FileStore) Save(ctx context.Context, c Collection, records any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := encode(records)
	if err != nil {
		s.entry(c).WithError(err).Error("failed to encode collection")
		return fmt.Errorf("encode %s: %w", c.Name, err)
	}
	return s.write(c, data)
}

// write replaces the document through a temp file so readers never see a
// partially written collection.
func (s *FileStore) write(c Collection, data []byte) error {
	tmp, err := os.CreateTemp(s.dir, c.Name+"-*.json.tmp")
	if err != nil {
		s.entry(c).WithError(err).Error("failed to write collection")
		return fmt.Errorf("write %s: %w", c.Name, err)
	}
	tmpName := tmp.Name()

	err = tmp.Chmod(0o644)
	if err == nil {
		_, err = tmp.Write(data)
	}
	if err == nil {
		_, err = tmp.Write([]byte("\n"))
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Rename(tmpName, s.Path(c))
	}
	if err != nil {
		os.Remove(tmpName)
		s.entry(c).WithError(err).Error("failed to write collection")
		return fmt.Errorf("write %s: %w", c.Name, err)
	}
	return nil
}

func (s *FileStore) entry(c Collection) *logrus.Entry {
	return s.logger.WithFields(logrus.Fields{
		"component":  "storage",
		"backend":    "file",
		"collection": c.Name,
	})
}
