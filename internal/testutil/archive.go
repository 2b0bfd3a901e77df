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

// Package testutil builds archive files for tests.
package testutil

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/dsnet/compress/bzip2"
)

// TitleRecord describes a single titles.idx record. Records must be
// given pre-sorted by their folded name.
type TitleRecord struct {
	Name          string
	FileNr        uint8
	BlockStart    uint32
	BlockOffset   uint32
	ArticleLength uint32
}

// MakeTitleIndex builds a titles.idx file from the given records.
func MakeTitleIndex(records []TitleRecord) []byte {
	b := []byte{}
	for _, r := range records {
		header := make([]byte, 15)
		header[2] = r.FileNr
		binary.LittleEndian.PutUint32(header[3:7], r.BlockStart)
		binary.LittleEndian.PutUint32(header[7:11], r.BlockOffset)
		binary.LittleEndian.PutUint32(header[11:15], r.ArticleLength)
		b = append(b, header...)
		b = append(b, []byte(r.Name)...)
		b = append(b, '\n')
	}
	return b
}

// TitleOffsets returns the byte offset of each record that
// MakeTitleIndex produces for the given records.
func TitleOffsets(records []TitleRecord) []uint32 {
	var offsets []uint32
	var off uint32
	for _, r := range records {
		offsets = append(offsets, off)
		off += uint32(15 + len(r.Name) + 1)
	}
	return offsets
}

// CompressBlock compresses data as a single bzip2 block stream.
func CompressBlock(t *testing.T, data []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	w, err := bzip2.NewWriter(&buf, &bzip2.WriterConfig{Level: bzip2.BestCompression})
	if err != nil {
		t.Fatalf("bzip2.NewWriter: %v", err)
	}
	if _, err := w.Write(data); err != nil {
		t.Fatalf("writing bzip2 block: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("closing bzip2 block: %v", err)
	}
	return buf.Bytes()
}

// MakeDataShard builds a data shard of one compressed block holding
// the concatenated articles. It returns the shard bytes and the
// offset of each article within the decompressed block.
func MakeDataShard(t *testing.T, articles [][]byte) ([]byte, []uint32) {
	t.Helper()

	var block []byte
	var offsets []uint32
	for _, a := range articles {
		offsets = append(offsets, uint32(len(block)))
		block = append(block, a...)
	}
	return CompressBlock(t, block), offsets
}
