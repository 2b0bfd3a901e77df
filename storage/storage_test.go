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

package storage_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ianlewis/go-evopedia/storage"
)

func TestDir_Get(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "metadata.txt"), []byte("language = en\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	p := storage.Dir(dir)

	f, err := p.Get("metadata.txt")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	defer f.Close()

	if got, want := f.Name(), "metadata.txt"; got != want {
		t.Errorf("Name: got %q, want %q", got, want)
	}
	if got, want := f.Size(), int64(len("language = en\n")); got != want {
		t.Errorf("Size: got %d, want %d", got, want)
	}

	b, err := storage.ReadRange(f, 0, int(f.Size()))
	if err != nil {
		t.Fatalf("ReadRange: %v", err)
	}
	if diff := cmp.Diff("language = en\n", string(b)); diff != "" {
		t.Errorf("ReadRange (-want, +got):\n%s", diff)
	}
}

func TestDir_Get_notFound(t *testing.T) {
	t.Parallel()

	p := storage.Dir(t.TempDir())

	_, err := p.Get("titles.idx")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Get: got %v, want %v", err, storage.ErrNotFound)
	}
}

func TestReadRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		data   []byte
		off    int64
		length int

		expected []byte
		err      error
	}{
		{
			name:     "full read",
			data:     []byte("evopedia"),
			off:      0,
			length:   8,
			expected: []byte("evopedia"),
		},
		{
			name:     "interior read",
			data:     []byte("evopedia"),
			off:      3,
			length:   4,
			expected: []byte("pedi"),
		},
		{
			name:     "empty read",
			data:     []byte("evopedia"),
			off:      0,
			length:   0,
			expected: []byte{},
		},
		{
			name:   "past end",
			data:   []byte("evopedia"),
			off:    4,
			length: 8,
			err:    storage.ErrOutOfRange,
		},
		{
			name:   "negative offset",
			data:   []byte("evopedia"),
			off:    -1,
			length: 2,
			err:    storage.ErrOutOfRange,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			f := storage.Bytes("wikipedia_00.dat", test.data)

			b, err := storage.ReadRange(f, test.off, test.length)
			if !errors.Is(err, test.err) {
				t.Fatalf("ReadRange: got %v, want %v", err, test.err)
			}
			if test.err != nil {
				return
			}
			if diff := cmp.Diff(test.expected, b); diff != "" {
				t.Errorf("ReadRange (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestMem_Get(t *testing.T) {
	t.Parallel()

	p := storage.Mem(map[string][]byte{
		"math.dat": []byte("HELLOBYE"),
	})

	f, err := p.Get("math.dat")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	b, err := storage.ReadRange(f, 5, 3)
	if err != nil {
		t.Fatalf("ReadRange: %v", err)
	}
	if diff := cmp.Diff([]byte("BYE"), b); diff != "" {
		t.Errorf("ReadRange (-want, +got):\n%s", diff)
	}

	if _, err := p.Get("math.idx"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Get: got %v, want %v", err, storage.ErrNotFound)
	}
}
