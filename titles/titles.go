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

// Package titles implements reading the titles.idx file.
//
// The title index is a sequence of variable-length records sorted by
// the normalized article name. Each record comes in three parts:
//  1. A 15 byte fixed header: 2 reserved bytes, the data shard number
//     (1 byte), the compressed block start (32-bit little-endian), the
//     article offset within the decompressed block (32-bit
//     little-endian), and the article length (32-bit little-endian).
//  2. The article name: a utf-8 string.
//  3. A single line feed terminator ('\n').
//
// A record whose shard number is 0xff is a redirect. Its block start
// field holds the title-file offset of the target record instead of a
// data shard position.
package titles

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/ianlewis/go-evopedia/geo"
)

const (
	// headerLen is the length of a record's fixed binary header.
	headerLen = 15

	// MaxTitleLen bounds the byte length of a single index record.
	MaxTitleLen = 512

	// redirectFileNr marks a redirect record.
	redirectFileNr = 0xff
)

// ErrEndOfIndex indicates that no record exists at or after the
// requested position.
var ErrEndOfIndex = errors.New("end of title index")

// ErrInvalidRecord indicates a malformed title index record.
var ErrInvalidRecord = errors.New("invalid title record")

// Title is a title index entry identifying one article.
type Title struct {
	// Name is the article's display name.
	Name string

	// FileNr is the data shard ordinal, or 0xff for a redirect.
	FileNr uint8

	// BlockStart is the byte offset of the compressed block within the
	// data shard. For redirects it is the title-file offset of the
	// target record.
	BlockStart int64

	// BlockOffset is the article's byte offset within the decompressed
	// block.
	BlockOffset uint32

	// ArticleLength is the article's decompressed byte length.
	ArticleLength uint32

	// Offset is the record's own byte offset in the title file. It is
	// negative when unknown.
	Offset int64

	// Location is the article's geographic location when known. It is
	// populated by coordinate searches.
	Location *geo.Point
}

// IsRedirect reports whether the title is a redirect to another
// title.
func (t *Title) IsRedirect() bool {
	return t.FileNr == redirectFileNr
}

// parseRecord decodes a single record. b holds the record bytes
// without the trailing line feed, and offset is the record's position
// in the title file.
func parseRecord(b []byte, offset int64) (*Title, error) {
	if len(b) < headerLen {
		return nil, fmt.Errorf("%w: %d byte record at offset %d", ErrInvalidRecord, len(b), offset)
	}
	return &Title{
		Name:          string(b[headerLen:]),
		FileNr:        b[2],
		BlockStart:    int64(binary.LittleEndian.Uint32(b[3:7])),
		BlockOffset:   binary.LittleEndian.Uint32(b[7:11]),
		ArticleLength: binary.LittleEndian.Uint32(b[11:15]),
		Offset:        offset,
	}, nil
}
