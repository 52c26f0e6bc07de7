// Package jsonfile persists metadata as flat JSON files, one file per
// collection, under a single data directory. Writes go through a temp
// file + rename + fsync so a crash never leaves a half-written file.
package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sync"
)

type blobFile struct {
	mu   sync.Mutex
	path string
}

func newBlobFile(dir, name string) (*blobFile, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &blobFile{path: filepath.Join(dir, name)}, nil
}

// load reads the blob into v. A missing file leaves v untouched (empty
// collection). A corrupt file is reported so callers can decide whether
// to degrade; the next successful write self-heals it.
func (f *blobFile) load(v any) error {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("corrupt store file %s: %w", f.path, err)
	}
	return nil
}

// loadLenient is load with the corrupt-file case degraded to an empty
// collection, for read paths that must keep working without metadata.
// Genuine I/O errors still propagate.
func (f *blobFile) loadLenient(v any) error {
	err := f.load(v)
	if err == nil {
		return nil
	}
	var serr *json.SyntaxError
	var terr *json.UnmarshalTypeError
	if errors.As(err, &serr) || errors.As(err, &terr) {
		log.Printf("jsonfile: %v (treating as empty)", err)
		return nil
	}
	return err
}

// store writes v durably: temp file in the same directory, fsync, rename.
func (f *blobFile) store(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), filepath.Base(f.path)+".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), f.path)
}
