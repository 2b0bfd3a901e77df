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

package evopedia

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Metadata is the parsed content of an archive's metadata.txt file.
type Metadata struct {
	language         string
	date             string
	normalizedTitles bool
}

// ParseMetadata parses a metadata.txt file. The file contains
// line-oriented "key = value" pairs; lines that do not match are
// ignored. The language and date keys are required.
func ParseMetadata(r io.Reader) (*Metadata, error) {
	m := &Metadata{
		// Titles are normalized unless the archive says otherwise.
		normalizedTitles: true,
	}

	s := bufio.NewScanner(r)
	for s.Scan() {
		key, value, found := strings.Cut(s.Text(), "=")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		switch key {
		case "language":
			m.language = value
		case "date":
			m.date = value
		case "normalized_titles":
			m.normalizedTitles = value != "0"
		}
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("reading metadata: %w", err)
	}

	if m.language == "" {
		return nil, fmt.Errorf("%w: metadata missing language", ErrInvalidArchive)
	}
	if m.date == "" {
		return nil, fmt.Errorf("%w: metadata missing date", ErrInvalidArchive)
	}

	return m, nil
}

// Language returns the archive's content language.
func (m *Metadata) Language() string {
	return m.language
}

// Date returns the archive's snapshot date.
func (m *Metadata) Date() string {
	return m.date
}

// NormalizedTitles reports whether the title index is sorted by
// normalized names.
func (m *Metadata) NormalizedTitles() bool {
	return m.normalizedTitles
}
