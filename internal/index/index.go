// Copyright 2025 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package index implements a generic sorted array index.
package index

import (
	"fmt"
	"slices"
	"sort"
)

// Index is a generic sorted array index keyed by each value's String
// form.
type Index[V fmt.Stringer] struct {
	index []V

	cmp func(string, string) int
}

// NewIndex creates an index from the given slice and comparison
// function. cmp(a, b) should return a negative number when a < b, a
// positive number when a > b and zero when a == b or a and b are
// incomparable in the sense of a strict weak ordering.
func NewIndex[V fmt.Stringer](index []V, cmp func(string, string) int) *Index[V] {
	sorted := make([]V, len(index))
	copy(sorted, index)
	slices.SortFunc(sorted, func(a, b V) int {
		return cmp(a.String(), b.String())
	})

	return &Index[V]{
		index: sorted,
		cmp:   cmp,
	}
}

// Len returns the number of indexed values.
func (idx *Index[V]) Len() int {
	return len(idx.index)
}

// Search performs a binary search over the index and returns matching
// values.
func (idx *Index[V]) Search(query string) []V {
	i, found := sort.Find(len(idx.index), func(i int) int {
		return idx.cmp(query, idx.index[i].String())
	})

	if !found {
		return nil
	}

	j := i
	//nolint:revive // This block increments j.
	for ; j < len(idx.index) && idx.cmp(query, idx.index[j].String()) == 0; j++ {
	}
	return idx.index[i:j]
}

// Visit calls fn for each value whose key is >= from, in index order,
// until fn returns false or the index is exhausted.
func (idx *Index[V]) Visit(from string, fn func(V) bool) {
	i := sort.Search(len(idx.index), func(i int) bool {
		return idx.cmp(idx.index[i].String(), from) >= 0
	})
	for ; i < len(idx.index); i++ {
		if !fn(idx.index[i]) {
			return
		}
	}
}
