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

// Package dat implements reading article bodies from data shards.
//
// A data shard is a concatenation of bzip2 streams. Each stream
// decompresses to a block of concatenated article bodies. An article
// is addressed by the byte offset of its stream within the shard, its
// offset within the decompressed block, and its length.
package dat

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/dsnet/compress/bzip2"

	"github.com/ianlewis/go-evopedia/storage"
)

// ChunkSize is the compressed read granularity. The reader starts
// with one chunk and grows the read window by one chunk each time the
// decompressed output does not yet cover the requested article.
const ChunkSize = 128 * 1024

// ErrTruncated indicates that an article address points past the end
// of its data shard.
var ErrTruncated = errors.New("article data truncated")

// ErrCorruptBlock indicates that a block does not start with the
// bzip2 stream magic.
var ErrCorruptBlock = errors.New("bzip2 magic number missing")

// ErrDecompression indicates that a block failed to decompress.
var ErrDecompression = errors.New("decompression failed")

// blockMagic is the bzip2 stream magic.
var blockMagic = []byte("BZh")

// Reader reads article bodies from a single data shard.
type Reader struct {
	f storage.File
}

// NewReader returns a Reader for the given data shard.
func NewReader(f storage.File) *Reader {
	return &Reader{f: f}
}

// Name returns the shard file name.
func (r *Reader) Name() string {
	return r.f.Name()
}

// Article reads the article at (blockStart, blockOffset, length). It
// reads progressively larger compressed windows until the
// decompressed output covers the requested slice.
func (r *Reader) Article(blockStart int64, blockOffset, length uint32) ([]byte, error) {
	size := r.f.Size()
	if blockStart < 0 || blockStart >= size {
		return nil, fmt.Errorf("%w: block start %d beyond shard %q (%d bytes)", ErrTruncated, blockStart, r.f.Name(), size)
	}

	need := int64(blockOffset) + int64(length)
	readLength := int64(ChunkSize)
	for {
		end := blockStart + readLength
		last := end >= size
		if last {
			end = size
		}

		b, err := storage.ReadRange(r.f, blockStart, int(end-blockStart))
		if err != nil {
			return nil, err
		}
		if !bytes.HasPrefix(b, blockMagic) {
			return nil, fmt.Errorf("%w: shard %q offset %d", ErrCorruptBlock, r.f.Name(), blockStart)
		}

		out, derr := decompressUpTo(b, need)
		if int64(len(out)) >= need {
			return out[blockOffset:need], nil
		}
		if !last {
			// The compressed window was too small to produce the
			// article; read another chunk.
			readLength += ChunkSize
			continue
		}
		if derr != nil && !errors.Is(derr, io.EOF) && !errors.Is(derr, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: shard %q offset %d: %v", ErrDecompression, r.f.Name(), blockStart, derr)
		}
		return nil, fmt.Errorf("%w: shard %q offset %d", ErrTruncated, r.f.Name(), blockStart)
	}
}

// decompressUpTo decompresses at most need bytes from the compressed
// input. A short result is returned along with the error that ended
// decompression.
func decompressUpTo(b []byte, need int64) ([]byte, error) {
	zr, err := bzip2.NewReader(bytes.NewReader(b), nil)
	if err != nil {
		return nil, fmt.Errorf("creating bzip2 reader: %w", err)
	}
	defer zr.Close()

	out := make([]byte, need)
	n, err := io.ReadFull(zr, out)
	return out[:n], err
}
