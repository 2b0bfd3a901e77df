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

package dat_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ianlewis/go-evopedia/dat"
	"github.com/ianlewis/go-evopedia/internal/testutil"
	"github.com/ianlewis/go-evopedia/storage"
)

func TestReader_Article(t *testing.T) {
	t.Parallel()

	articles := [][]byte{
		[]byte("<html><body>apple</body></html>"),
		[]byte("<html><body>banana</body></html>"),
		[]byte("<html><body>chérry</body></html>"),
	}
	shard, offsets := testutil.MakeDataShard(t, articles)
	r := dat.NewReader(storage.Bytes("wikipedia_00.dat", shard))

	for i, want := range articles {
		got, err := r.Article(0, offsets[i], uint32(len(want)))
		if err != nil {
			t.Fatalf("Article %d: %v", i, err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Article %d (-want, +got):\n%s", i, diff)
		}
	}
}

func TestReader_Article_secondBlock(t *testing.T) {
	t.Parallel()

	first, _ := testutil.MakeDataShard(t, [][]byte{[]byte("first block")})
	second, offsets := testutil.MakeDataShard(t, [][]byte{
		[]byte("unused"),
		[]byte("target article"),
	})

	shard := append(append([]byte{}, first...), second...)
	r := dat.NewReader(storage.Bytes("wikipedia_00.dat", shard))

	got, err := r.Article(int64(len(first)), offsets[1], uint32(len("target article")))
	if err != nil {
		t.Fatalf("Article: %v", err)
	}
	if diff := cmp.Diff([]byte("target article"), got); diff != "" {
		t.Errorf("Article (-want, +got):\n%s", diff)
	}
}

func TestReader_Article_growingWindow(t *testing.T) {
	t.Parallel()

	// An incompressible block larger than one read chunk forces the
	// reader to grow its compressed window at least once.
	var big bytes.Buffer
	seed := uint32(1)
	for big.Len() < 3*dat.ChunkSize {
		seed = seed*1664525 + 1013904223
		big.WriteByte(byte(seed >> 16))
	}
	tail := []byte("tail article at end of block")
	block := append(big.Bytes(), tail...)

	shard := testutil.CompressBlock(t, block)
	r := dat.NewReader(storage.Bytes("wikipedia_00.dat", shard))

	got, err := r.Article(0, uint32(big.Len()), uint32(len(tail)))
	if err != nil {
		t.Fatalf("Article: %v", err)
	}
	if diff := cmp.Diff(tail, got); diff != "" {
		t.Errorf("Article (-want, +got):\n%s", diff)
	}
}

func TestReader_Article_errors(t *testing.T) {
	t.Parallel()

	shard, offsets := testutil.MakeDataShard(t, [][]byte{[]byte("only article")})

	tests := []struct {
		name        string
		data        []byte
		blockStart  int64
		blockOffset uint32
		length      uint32

		err error
	}{
		{
			name:       "block start past shard",
			data:       shard,
			blockStart: int64(len(shard)) + 10,
			length:     1,
			err:        dat.ErrTruncated,
		},
		{
			name:        "bad magic",
			data:        append([]byte("XXX"), shard...),
			blockStart:  0,
			blockOffset: offsets[0],
			length:      1,
			err:         dat.ErrCorruptBlock,
		},
		{
			name:        "article length past block",
			data:        shard,
			blockStart:  0,
			blockOffset: offsets[0],
			length:      1 << 20,
			err:         dat.ErrTruncated,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			r := dat.NewReader(storage.Bytes("wikipedia_00.dat", test.data))

			_, err := r.Article(test.blockStart, test.blockOffset, test.length)
			if !errors.Is(err, test.err) {
				t.Errorf("Article: got %v, want %v", err, test.err)
			}
		})
	}
}

func TestReader_Article_truncatedStream(t *testing.T) {
	t.Parallel()

	shard, offsets := testutil.MakeDataShard(t, [][]byte{[]byte("only article")})

	// Cut the stream in half; decompression cannot complete.
	r := dat.NewReader(storage.Bytes("wikipedia_00.dat", shard[:len(shard)/2]))

	_, err := r.Article(0, offsets[0], uint32(len("only article")))
	if err == nil {
		t.Fatal("Article: got nil error")
	}
	if !errors.Is(err, dat.ErrTruncated) && !errors.Is(err, dat.ErrDecompression) {
		t.Errorf("Article: got %v", err)
	}
}
