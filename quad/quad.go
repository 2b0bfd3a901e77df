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

// Package quad implements searching coordinate shard quadtrees.
//
// Each coordinate shard holds a quadtree over the globe with its root
// node at byte 0. A node starts with a 16-bit little-endian selector.
// The selector value 0xffff marks an inner node: an 8 byte center
// point (two 32-bit floats, latitude first) and the serialized byte
// lengths of the SW, SE and NW subtrees follow, then the four
// subtrees in SW, SE, NW, NE order. Any other selector value marks a
// leaf with that many 12 byte entries: a center-style coordinate pair
// followed by a 32-bit title file offset.
package quad

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ianlewis/go-evopedia/geo"
	"github.com/ianlewis/go-evopedia/storage"
)

const (
	// innerSelector marks an inner node.
	innerSelector = 0xffff

	// innerLen is the byte length of an inner node's fixed part.
	innerLen = 22

	// entryLen is the byte length of a single leaf entry.
	entryLen = 12
)

// Entry is a leaf entry matched by a search.
type Entry struct {
	// TitleOffset is the matching record's offset in the title file.
	TitleOffset uint32

	// Location is the entry's location.
	Location geo.Point
}

// Search descends the quadtree of every given coordinate shard and
// collects entries whose location lies within rect. At most max
// entries are collected; a negative max collects every match. Shards
// are searched in parallel and the result order is unspecified.
func Search(ctx context.Context, files []storage.File, rect geo.Rect, max int) ([]Entry, error) {
	rect = rect.Normalized()
	c := &collector{max: max}

	g, ctx := errgroup.WithContext(ctx)
	for _, f := range files {
		g.Go(func() error {
			return descend(ctx, f, 0, geo.GlobalRect, rect, c)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return c.entries, nil
}

// collector accumulates matches across shard descents.
type collector struct {
	mu      sync.Mutex
	entries []Entry
	max     int
}

// add records an entry. It reports whether the collector can accept
// more entries.
func (c *collector) add(e Entry) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.max >= 0 && len(c.entries) >= c.max {
		return false
	}
	c.entries = append(c.entries, e)
	return c.max < 0 || len(c.entries) < c.max
}

// full reports whether the entry limit has been reached.
func (c *collector) full() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.max >= 0 && len(c.entries) >= c.max
}

// descend searches the subtree rooted at pos. nodeRect is the region
// covered by the subtree.
func descend(ctx context.Context, f storage.File, pos int64, nodeRect, query geo.Rect, c *collector) error {
	if err := ctx.Err(); err != nil {
		//nolint:wrapcheck // context cancellation passes through.
		return err
	}
	if c.full() {
		return nil
	}

	b, err := storage.ReadRange(f, pos, 2)
	if err != nil {
		return fmt.Errorf("reading node at %d: %w", pos, err)
	}
	selector := binary.LittleEndian.Uint16(b)

	if selector != innerSelector {
		return scanLeaf(f, pos, int(selector), query, c)
	}

	b, err = storage.ReadRange(f, pos+2, innerLen-2)
	if err != nil {
		return fmt.Errorf("reading node at %d: %w", pos, err)
	}
	// Coordinates are stored latitude first.
	center := geo.Point{
		Lon: float64(math.Float32frombits(binary.LittleEndian.Uint32(b[4:8]))),
		Lat: float64(math.Float32frombits(binary.LittleEndian.Uint32(b[0:4]))),
	}
	lensw := binary.LittleEndian.Uint32(b[8:12])
	lense := binary.LittleEndian.Uint32(b[12:16])
	lennw := binary.LittleEndian.Uint32(b[16:20])

	children := []struct {
		pos  int64
		rect geo.Rect
	}{
		{pos + innerLen, childRect(nodeRect, center, false, false)},
		{pos + innerLen + int64(lensw), childRect(nodeRect, center, true, false)},
		{pos + innerLen + int64(lensw) + int64(lense), childRect(nodeRect, center, false, true)},
		{pos + innerLen + int64(lensw) + int64(lense) + int64(lennw), childRect(nodeRect, center, true, true)},
	}
	for _, child := range children {
		if !child.rect.Intersects(query) {
			continue
		}
		if err := descend(ctx, f, child.pos, child.rect, query, c); err != nil {
			return err
		}
	}
	return nil
}

// scanLeaf collects matching entries of the leaf at pos.
func scanLeaf(f storage.File, pos int64, count int, query geo.Rect, c *collector) error {
	if count == 0 {
		return nil
	}
	b, err := storage.ReadRange(f, pos+2, count*entryLen)
	if err != nil {
		return fmt.Errorf("reading leaf at %d: %w", pos, err)
	}
	for i := range count {
		e := b[i*entryLen : (i+1)*entryLen]
		p := geo.Point{
			Lon: float64(math.Float32frombits(binary.LittleEndian.Uint32(e[4:8]))),
			Lat: float64(math.Float32frombits(binary.LittleEndian.Uint32(e[0:4]))),
		}
		if !query.ContainsPoint(p) {
			continue
		}
		if !c.add(Entry{
			TitleOffset: binary.LittleEndian.Uint32(e[8:12]),
			Location:    p,
		}) {
			return nil
		}
	}
	return nil
}

// childRect returns the quadrant of nodeRect split at center. east
// and north select the quadrant.
func childRect(nodeRect geo.Rect, center geo.Point, east, north bool) geo.Rect {
	n := nodeRect.Normalized()
	r := geo.Rect{
		Origin: n.Origin,
		Width:  center.Lon - n.Origin.Lon,
		Height: center.Lat - n.Origin.Lat,
	}
	if east {
		r.Origin.Lon = center.Lon
		r.Width = n.Origin.Lon + n.Width - center.Lon
	}
	if north {
		r.Origin.Lat = center.Lat
		r.Height = n.Origin.Lat + n.Height - center.Lat
	}
	return r
}
