package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"hackathon-radar/pkg/domain"
)

// FileStore keeps the dataset as a pretty-printed JSON array. This file is
// what the display layer reads.
type FileStore struct {
	path string
	now  func() time.Time
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path, now: time.Now}
}

func (s *FileStore) Name() string { return "file" }

// Path returns the dataset file location.
func (s *FileStore) Path() string { return s.path }

// Load reads the dataset. A missing or empty file is an empty dataset. A file
// that does not parse is renamed to <path>.corrupt-<unix> and reported as a
// *CorruptionError.
func (s *FileStore) Load(ctx context.Context) (domain.Dataset, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.Dataset{}, nil
	}
	if err != nil {
		return nil, persistErr(s.Name(), "read", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return domain.Dataset{}, nil
	}

	var dataset domain.Dataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		moved := fmt.Sprintf("%s.corrupt-%d", s.path, s.now().Unix())
		if renameErr := os.Rename(s.path, moved); renameErr != nil {
			moved = ""
		}
		return domain.Dataset{}, &CorruptionError{Backend: s.Name(), MovedTo: moved, Err: err}
	}
	if dataset == nil {
		dataset = domain.Dataset{}
	}
	return dataset, nil
}

// Save writes the dataset to a temp file in the same directory and renames
// it over the old file, so readers see either the old or the new dataset.
func (s *FileStore) Save(ctx context.Context, dataset domain.Dataset) error {
	if err := ctx.Err(); err != nil {
		return persistErr(s.Name(), "write", err)
	}
	data, err := EncodeJSON(dataset)
	if err != nil {
		return persistErr(s.Name(), "encode", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return persistErr(s.Name(), "mkdir", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return persistErr(s.Name(), "create temp", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return persistErr(s.Name(), "write", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return persistErr(s.Name(), "sync", err)
	}
	if err := tmp.Close(); err != nil {
		return persistErr(s.Name(), "close", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return persistErr(s.Name(), "chmod", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return persistErr(s.Name(), "rename", err)
	}
	return nil
}

// EncodeJSON renders a dataset the way the file backend stores it: an
// indented JSON array, never null, ending in a newline.
func EncodeJSON(dataset domain.Dataset) ([]byte, error) {
	if dataset == nil {
		dataset = domain.Dataset{}
	}
	data, err := json.MarshalIndent(dataset, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
