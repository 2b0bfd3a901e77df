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

// Package mathidx implements looking up rendered math images by
// content hash.
//
// The math.idx file is a sequence of 24 byte records sorted by hash:
// a 16 byte content hash followed by the image's 32-bit little-endian
// offset and length in the math.dat file.
package mathidx

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/ianlewis/go-evopedia/storage"
)

// recordLen is the length of a math.idx record.
const recordLen = 24

// ErrNotFound indicates that no image with the given hash exists.
var ErrNotFound = errors.New("math image not found")

// ErrInvalidHash indicates a malformed content hash.
var ErrInvalidHash = errors.New("invalid math image hash")

// Index looks up math images by content hash.
type Index struct {
	idx storage.File
	dat storage.File
}

// New returns an Index over the given math.idx and math.dat files.
func New(idx, dat storage.File) *Index {
	return &Index{
		idx: idx,
		dat: dat,
	}
}

// Image returns the image bytes for the given hex-encoded 16 byte
// content hash.
func (m *Index) Image(hexHash string) ([]byte, error) {
	hash, err := hex.DecodeString(hexHash)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidHash, hexHash, err)
	}
	if len(hash) != 16 {
		return nil, fmt.Errorf("%w: %q: %d bytes", ErrInvalidHash, hexHash, len(hash))
	}

	lo, hi := int64(0), m.idx.Size()/recordLen
	for lo < hi {
		mid := lo + (hi-lo)/2
		rec, err := storage.ReadRange(m.idx, mid*recordLen, recordLen)
		if err != nil {
			return nil, err
		}
		switch bytes.Compare(hash, rec[:16]) {
		case 0:
			pos := binary.LittleEndian.Uint32(rec[16:20])
			length := binary.LittleEndian.Uint32(rec[20:24])
			return storage.ReadRange(m.dat, int64(pos), int(length))
		case -1:
			hi = mid
		default:
			lo = mid + 1
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrNotFound, hexHash)
}
