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

package quad_test

import (
	"context"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ianlewis/go-evopedia/geo"
	"github.com/ianlewis/go-evopedia/internal/testutil"
	"github.com/ianlewis/go-evopedia/quad"
	"github.com/ianlewis/go-evopedia/storage"
)

func TestSearch_leaf(t *testing.T) {
	t.Parallel()

	// Paris and New York.
	leaf := testutil.MakeQuadLeaf([]testutil.QuadEntry{
		{Lon: 2.3, Lat: 48.8, TitleOffset: 100},
		{Lon: -74.0, Lat: 40.7, TitleOffset: 200},
	})
	f := storage.Bytes("coordinates_01.idx", leaf)

	got, err := quad.Search(context.Background(), []storage.File{f}, geo.NewRect(0, 45, 10, 10), -1)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	expected := []quad.Entry{
		{TitleOffset: 100, Location: geo.Point{
			Lon: float64(float32(2.3)),
			Lat: float64(float32(48.8)),
		}},
	}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("Search (-want, +got):\n%s", diff)
	}
}

func TestSearch_innerNode(t *testing.T) {
	t.Parallel()

	// A root node split at (0, 0) with one city in each hemisphere
	// quadrant.
	sw := testutil.MakeQuadLeaf([]testutil.QuadEntry{
		{Lon: -58.4, Lat: -34.6, TitleOffset: 1}, // Buenos Aires
	})
	se := testutil.MakeQuadLeaf([]testutil.QuadEntry{
		{Lon: 151.2, Lat: -33.9, TitleOffset: 2}, // Sydney
	})
	nw := testutil.MakeQuadLeaf([]testutil.QuadEntry{
		{Lon: -74.0, Lat: 40.7, TitleOffset: 3}, // New York
	})
	ne := testutil.MakeQuadLeaf([]testutil.QuadEntry{
		{Lon: 2.3, Lat: 48.8, TitleOffset: 4},   // Paris
		{Lon: 139.7, Lat: 35.7, TitleOffset: 5}, // Tokyo
	})
	root := testutil.MakeQuadInner(0, 0, sw, se, nw, ne)
	f := storage.Bytes("coordinates_01.idx", root)

	tests := []struct {
		name string
		rect geo.Rect
		max  int

		expected []uint32
	}{
		{
			name:     "single quadrant",
			rect:     geo.NewRect(0, 40, 20, 20),
			max:      -1,
			expected: []uint32{4},
		},
		{
			name:     "western hemisphere",
			rect:     geo.NewRect(-180, -90, 180, 180),
			max:      -1,
			expected: []uint32{1, 3},
		},
		{
			name:     "whole globe",
			rect:     geo.GlobalRect,
			max:      -1,
			expected: []uint32{1, 2, 3, 4, 5},
		},
		{
			name:     "bounded",
			rect:     geo.GlobalRect,
			max:      2,
			expected: nil, // any two entries
		},
		{
			name:     "empty region",
			rect:     geo.NewRect(10, -20, 5, 5),
			max:      -1,
			expected: nil,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got, err := quad.Search(context.Background(), []storage.File{f}, test.rect, test.max)
			if err != nil {
				t.Fatalf("Search: %v", err)
			}

			if test.max >= 0 {
				if len(got) != test.max {
					t.Errorf("Search: got %d entries, want %d", len(got), test.max)
				}
				return
			}

			var offsets []uint32
			for _, e := range got {
				offsets = append(offsets, e.TitleOffset)
			}
			sort.Slice(offsets, func(i, j int) bool { return offsets[i] < offsets[j] })
			if diff := cmp.Diff(test.expected, offsets); diff != "" {
				t.Errorf("Search (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestSearch_multipleShards(t *testing.T) {
	t.Parallel()

	a := storage.Bytes("coordinates_01.idx", testutil.MakeQuadLeaf([]testutil.QuadEntry{
		{Lon: 2.3, Lat: 48.8, TitleOffset: 10},
	}))
	b := storage.Bytes("coordinates_02.idx", testutil.MakeQuadLeaf([]testutil.QuadEntry{
		{Lon: 2.5, Lat: 48.9, TitleOffset: 20},
	}))

	got, err := quad.Search(context.Background(), []storage.File{a, b}, geo.NewRect(0, 45, 10, 10), -1)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	var offsets []uint32
	for _, e := range got {
		offsets = append(offsets, e.TitleOffset)
	}
	sort.Slice(offsets, func(i, j int) bool { return offsets[i] < offsets[j] })
	if diff := cmp.Diff([]uint32{10, 20}, offsets); diff != "" {
		t.Errorf("Search (-want, +got):\n%s", diff)
	}
}
