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

package titles

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/ianlewis/go-evopedia/storage"
)

// Options are options for a title File.
type Options struct {
	// Fold normalizes a title for comparison. Both queries and on-disk
	// names are folded before comparing.
	Fold func(string) string
}

// DefaultOptions is the default options for a File. Titles are
// compared without folding.
var DefaultOptions = &Options{
	Fold: func(s string) string { return s },
}

// File provides lookups over a sorted title index file.
type File struct {
	f    storage.File
	fold func(string) string
}

// New returns a new File reading the given title index.
func New(f storage.File, options *Options) *File {
	if options == nil {
		options = DefaultOptions
	}
	fold := options.Fold
	if fold == nil {
		fold = DefaultOptions.Fold
	}
	return &File{
		f:    f,
		fold: fold,
	}
}

// Fold normalizes a title for comparison.
func (f *File) Fold(s string) string {
	return f.fold(s)
}

// Size returns the index size in bytes.
func (f *File) Size() int64 {
	return f.f.Size()
}

// TitleAt decodes the record at the given offset. The offset must be
// a record boundary. It returns ErrEndOfIndex at the end of the file.
func (f *File) TitleAt(offset int64) (*Title, error) {
	s := NewScanner(f.f, offset)
	if !s.Scan() {
		if err := s.Err(); err != nil {
			return nil, fmt.Errorf("scanning title index: %w", err)
		}
		return nil, ErrEndOfIndex
	}
	return s.Title()
}

// TitlesAt decodes up to count sequential records starting at the
// given record boundary.
func (f *File) TitlesAt(offset int64, count int) ([]*Title, error) {
	var titles []*Title
	s := NewScanner(f.f, offset)
	for len(titles) < count && s.Scan() {
		t, err := s.Title()
		if err != nil {
			return nil, err
		}
		titles = append(titles, t)
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("scanning title index: %w", err)
	}
	return titles, nil
}

// FindPrefixOffset returns the offset of the first record whose
// folded name is >= the folded prefix. It returns the file size when
// every record compares less than the prefix.
func (f *File) FindPrefixOffset(prefix string) (int64, error) {
	folded := f.fold(prefix)

	// Probe byte positions, snapping each probe forward to the next
	// record boundary. The invariant is that the first record after lo
	// compares less than the prefix (or lo is zero).
	lo, hi := int64(0), f.f.Size()
	for hi-lo > 1 {
		mid := lo + (hi-lo)/2
		t, err := f.titleAfter(mid)
		if errors.Is(err, ErrEndOfIndex) {
			hi = mid
			continue
		}
		if err != nil {
			return 0, err
		}
		if f.fold(t.Name) < folded {
			lo = mid
		} else {
			hi = mid
		}
	}

	start := int64(0)
	if lo > 0 {
		var err error
		start, err = f.boundaryAfter(lo)
		if errors.Is(err, ErrEndOfIndex) {
			return f.f.Size(), nil
		}
		if err != nil {
			return 0, err
		}
	}

	// The binary probe is byte-granular so the final position is found
	// with a short forward scan.
	s := NewScanner(f.f, start)
	for s.Scan() {
		t, err := s.Title()
		if err != nil {
			return 0, err
		}
		if f.fold(t.Name) >= folded {
			return t.Offset, nil
		}
	}
	if err := s.Err(); err != nil {
		return 0, fmt.Errorf("scanning title index: %w", err)
	}
	return f.f.Size(), nil
}

// TitleByName returns the title whose name is exactly name, matching
// under folding first. It returns nil when no such title exists.
func (f *File) TitleByName(name string) (*Title, error) {
	folded := f.fold(name)

	offset, err := f.FindPrefixOffset(name)
	if err != nil {
		return nil, err
	}

	s := NewScanner(f.f, offset)
	for s.Scan() {
		t, err := s.Title()
		if err != nil {
			return nil, err
		}
		if f.fold(t.Name) != folded {
			break
		}
		if t.Name == name {
			return t, nil
		}
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("scanning title index: %w", err)
	}
	return nil, nil
}

// TitlesWithPrefix returns titles whose folded names start with the
// folded prefix, in on-disk order, up to max titles. A negative max
// returns all matches.
func (f *File) TitlesWithPrefix(prefix string, max int) ([]*Title, error) {
	folded := f.fold(prefix)

	offset, err := f.FindPrefixOffset(prefix)
	if err != nil {
		return nil, err
	}

	var titles []*Title
	s := NewScanner(f.f, offset)
	for s.Scan() {
		if max >= 0 && len(titles) >= max {
			break
		}
		t, err := s.Title()
		if err != nil {
			return nil, err
		}
		if !strings.HasPrefix(f.fold(t.Name), folded) {
			break
		}
		titles = append(titles, t)
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("scanning title index: %w", err)
	}
	return titles, nil
}

// RandomTitle returns a title picked from a uniform byte position in
// the index.
func (f *File) RandomTitle() (*Title, error) {
	size := f.f.Size()
	if size == 0 {
		return nil, ErrEndOfIndex
	}

	pos, err := f.boundaryAfter(rand.Int64N(size))
	if errors.Is(err, ErrEndOfIndex) {
		// The position landed inside the final record; wrap around.
		pos = 0
	} else if err != nil {
		return nil, err
	}
	return f.TitleAt(pos)
}

// ResolveRedirect rewrites a redirect title's pointer fields with
// those of its target record and returns the same title. Non-redirect
// titles are returned unchanged.
func (f *File) ResolveRedirect(t *Title) (*Title, error) {
	if !t.IsRedirect() {
		return t, nil
	}

	b, err := storage.ReadRange(f.f, t.BlockStart, 16)
	if err != nil {
		return nil, fmt.Errorf("reading redirect target: %w", err)
	}

	t.FileNr = b[2]
	t.BlockStart = int64(binary.LittleEndian.Uint32(b[3:7]))
	t.BlockOffset = binary.LittleEndian.Uint32(b[7:11])
	t.ArticleLength = binary.LittleEndian.Uint32(b[11:15])
	return t, nil
}

// boundaryAfter returns the first record boundary at or after pos.
func (f *File) boundaryAfter(pos int64) (int64, error) {
	if pos <= 0 {
		return 0, nil
	}

	size := f.f.Size()
	// Start one byte back so a terminator ending exactly at pos is
	// seen.
	scan := pos - 1
	for scan < size {
		length := int64(MaxTitleLen)
		if scan+length > size {
			length = size - scan
		}
		b, err := storage.ReadRange(f.f, scan, int(length))
		if err != nil {
			return 0, err
		}
		if i := bytes.IndexByte(b, '\n'); i >= 0 {
			boundary := scan + int64(i) + 1
			if boundary >= size {
				return 0, ErrEndOfIndex
			}
			return boundary, nil
		}
		scan += length
	}
	return 0, ErrEndOfIndex
}

// titleAfter decodes the first record starting at or after pos.
func (f *File) titleAfter(pos int64) (*Title, error) {
	boundary, err := f.boundaryAfter(pos)
	if err != nil {
		return nil, err
	}
	return f.TitleAt(boundary)
}
