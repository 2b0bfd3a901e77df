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

package storage

import (
	"bytes"
	"fmt"
)

// Bytes returns a File backed by an in-memory byte slice.
func Bytes(name string, b []byte) File {
	return &bytesFile{
		r:    bytes.NewReader(b),
		name: name,
		size: int64(len(b)),
	}
}

// Mem returns a Provider serving the given named byte slices.
func Mem(files map[string][]byte) Provider {
	return memProvider(files)
}

type memProvider map[string][]byte

func (p memProvider) Get(name string) (File, error) {
	b, ok := p[name]
	if !ok {
		return nil, fmt.Errorf("opening %q: %w", name, ErrNotFound)
	}
	return Bytes(name, b), nil
}

type bytesFile struct {
	r    *bytes.Reader
	name string
	size int64
}

func (f *bytesFile) ReadAt(p []byte, off int64) (int, error) {
	//nolint:wrapcheck // ReaderAt contract; callers wrap.
	return f.r.ReadAt(p, off)
}

func (f *bytesFile) Close() error {
	return nil
}

func (f *bytesFile) Name() string {
	return f.name
}

func (f *bytesFile) Size() int64 {
	return f.size
}
