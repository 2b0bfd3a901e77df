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
	"fmt"
	"strings"

	"github.com/ianlewis/go-evopedia/internal/index"
)

type foldedTitle struct {
	folded string
	title  *Title
}

func (t *foldedTitle) String() string {
	return t.folded
}

// Index is an in-memory title index. It reads the whole title file up
// front and serves exact and prefix lookups without further disk
// probes. The on-disk binary search in File covers the same queries
// with constant memory.
type Index struct {
	index *index.Index[*foldedTitle]

	fold func(string) string
}

// NewIndex reads the whole title file into an in-memory index.
func NewIndex(f *File) (*Index, error) {
	var words []*foldedTitle
	s := NewScanner(f.f, 0)
	for s.Scan() {
		t, err := s.Title()
		if err != nil {
			return nil, err
		}
		words = append(words, &foldedTitle{
			folded: f.fold(t.Name),
			title:  t,
		})
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("scanning title index: %w", err)
	}

	return &Index{
		index: index.NewIndex(words, strings.Compare),
		fold:  f.fold,
	}, nil
}

// Len returns the number of indexed titles.
func (idx *Index) Len() int {
	return idx.index.Len()
}

// Search returns the titles whose folded name matches the folded
// query.
func (idx *Index) Search(query string) []*Title {
	var titles []*Title
	for _, w := range idx.index.Search(idx.fold(query)) {
		titles = append(titles, w.title)
	}
	return titles
}

// SearchPrefix returns up to max titles whose folded names start with
// the folded prefix. A negative max returns all matches.
func (idx *Index) SearchPrefix(prefix string, max int) []*Title {
	folded := idx.fold(prefix)

	var titles []*Title
	idx.index.Visit(folded, func(w *foldedTitle) bool {
		if !strings.HasPrefix(w.folded, folded) {
			return false
		}
		titles = append(titles, w.title)
		return max < 0 || len(titles) < max
	})
	return titles
}
