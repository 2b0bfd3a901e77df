// Copyright 2025 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package storage provides random access reads to archive files.
//
// Archive files are read-only after being opened. Each read is an
// independent ranged request so a single File may be shared by
// concurrent queries without locking.
package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrNotFound indicates that a file does not exist. It is
// distinguishable from other I/O failures with [errors.Is].
var ErrNotFound = fs.ErrNotExist

// ErrOutOfRange indicates a ranged read outside the file bounds.
var ErrOutOfRange = errors.New("read out of range")

// File is a read-only archive file.
type File interface {
	io.ReaderAt
	io.Closer

	// Name returns the file's base name within the archive.
	Name() string

	// Size returns the file size in bytes.
	Size() int64
}

// Provider resolves archive file names to open files.
type Provider interface {
	// Get opens the named file. It returns an error satisfying
	// errors.Is(err, ErrNotFound) when the file does not exist.
	Get(name string) (File, error)
}

// Dir returns a Provider serving files from a local directory.
func Dir(path string) Provider {
	return &dirProvider{path: path}
}

type dirProvider struct {
	path string
}

func (p *dirProvider) Get(name string) (File, error) {
	f, err := os.Open(filepath.Join(p.path, name))
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", name, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat %q: %w", name, err)
	}
	return &file{
		f:    f,
		name: name,
		size: info.Size(),
	}, nil
}

type file struct {
	f    *os.File
	name string
	size int64
}

func (f *file) ReadAt(p []byte, off int64) (int, error) {
	//nolint:wrapcheck // ReaderAt contract; callers wrap.
	return f.f.ReadAt(p, off)
}

func (f *file) Close() error {
	if err := f.f.Close(); err != nil {
		return fmt.Errorf("closing %q: %w", f.name, err)
	}
	return nil
}

func (f *file) Name() string {
	return f.name
}

func (f *file) Size() int64 {
	return f.size
}

// ReadRange reads exactly length bytes at off from f. Reads beyond the
// end of the file return ErrOutOfRange.
func ReadRange(f File, off int64, length int) ([]byte, error) {
	if off < 0 || length < 0 || off+int64(length) > f.Size() {
		return nil, fmt.Errorf("%w: %q [%d,%d)", ErrOutOfRange, f.Name(), off, off+int64(length))
	}
	b := make([]byte, length)
	if _, err := f.ReadAt(b, off); err != nil {
		return nil, fmt.Errorf("reading %q at %d: %w", f.Name(), off, err)
	}
	return b, nil
}
