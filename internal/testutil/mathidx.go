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
)

// MathRecord is a single math.idx record. Records must be given
// pre-sorted by hash.
type MathRecord struct {
	Hash [16]byte
	Pos  uint32
	Len  uint32
}

// MakeMathIndex builds a math.idx file from the given records.
func MakeMathIndex(records []MathRecord) []byte {
	b := []byte{}
	for _, r := range records {
		rec := make([]byte, 24)
		copy(rec[0:16], r.Hash[:])
		binary.LittleEndian.PutUint32(rec[16:20], r.Pos)
		binary.LittleEndian.PutUint32(rec[20:24], r.Len)
		b = append(b, rec...)
	}
	return b
}
