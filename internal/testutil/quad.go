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

package testutil

import (
	"encoding/binary"
	"math"
)

// QuadEntry is a single leaf entry of a coordinate shard.
type QuadEntry struct {
	Lon         float32
	Lat         float32
	TitleOffset uint32
}

// MakeQuadLeaf builds a leaf quadtree node. Coordinates are written
// latitude first.
func MakeQuadLeaf(entries []QuadEntry) []byte {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, uint16(len(entries)))
	for _, e := range entries {
		coords := make([]byte, 12)
		binary.LittleEndian.PutUint32(coords[0:4], math.Float32bits(e.Lat))
		binary.LittleEndian.PutUint32(coords[4:8], math.Float32bits(e.Lon))
		binary.LittleEndian.PutUint32(coords[8:12], e.TitleOffset)
		b = append(b, coords...)
	}
	return b
}

// MakeQuadInner builds an inner quadtree node with the given center
// and four serialized children in SW, SE, NW, NE order.
func MakeQuadInner(centerLon, centerLat float32, sw, se, nw, ne []byte) []byte {
	b := make([]byte, 22)
	binary.LittleEndian.PutUint16(b[0:2], 0xffff)
	binary.LittleEndian.PutUint32(b[2:6], math.Float32bits(centerLat))
	binary.LittleEndian.PutUint32(b[6:10], math.Float32bits(centerLon))
	binary.LittleEndian.PutUint32(b[10:14], uint32(len(sw)))
	binary.LittleEndian.PutUint32(b[14:18], uint32(len(se)))
	binary.LittleEndian.PutUint32(b[18:22], uint32(len(nw)))
	b = append(b, sw...)
	b = append(b, se...)
	b = append(b, nw...)
	b = append(b, ne...)
	return b
}
