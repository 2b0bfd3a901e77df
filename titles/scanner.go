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
	"bufio"
	"bytes"
	"io"

	"github.com/ianlewis/go-evopedia/storage"
)

// Scanner scans title index records sequentially from a record
// boundary. The starting offset must be the beginning of a record;
// scanning from the middle of a record is undefined.
type Scanner struct {
	s *bufio.Scanner

	// pos is the offset of the next unconsumed byte.
	pos int64

	// cur is the offset of the current record.
	cur int64
}

// NewScanner returns a Scanner reading records from offset.
func NewScanner(f storage.File, offset int64) *Scanner {
	size := f.Size() - offset
	if size < 0 {
		size = 0
	}
	s := &Scanner{
		s:   bufio.NewScanner(io.NewSectionReader(f, offset, size)),
		pos: offset,
	}
	s.s.Buffer(make([]byte, 0, 4*1024), MaxTitleLen)
	s.s.Split(s.splitRecord)
	return s
}

// Scan advances to the next record. It returns false if the scan
// stops either by reaching the end of the index or an error.
func (s *Scanner) Scan() bool {
	return s.s.Scan()
}

// Err returns the first error encountered.
func (s *Scanner) Err() error {
	//nolint:wrapcheck // error should not be wrapped
	return s.s.Err()
}

// Title decodes the current record.
func (s *Scanner) Title() (*Title, error) {
	return parseRecord(s.s.Bytes(), s.cur)
}

// splitRecord splits the index at record terminators.
func (s *Scanner) splitRecord(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	// The fixed header is binary and may hold line feed bytes; the
	// terminator is the first line feed after it.
	if len(data) > headerLen {
		if i := bytes.IndexByte(data[headerLen:], '\n'); i >= 0 {
			i += headerLen
			s.cur = s.pos
			s.pos += int64(i + 1)
			return i + 1, data[:i], nil
		}
	}
	if atEOF {
		// The final record may be missing its terminator.
		s.cur = s.pos
		s.pos += int64(len(data))
		return len(data), data, nil
	}

	// Request more data.
	return 0, nil, nil
}
