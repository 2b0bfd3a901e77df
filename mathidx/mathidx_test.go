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

package mathidx_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ianlewis/go-evopedia/internal/testutil"
	"github.com/ianlewis/go-evopedia/mathidx"
	"github.com/ianlewis/go-evopedia/storage"
)

func hash(last byte) [16]byte {
	var h [16]byte
	h[15] = last
	return h
}

func TestIndex_Image(t *testing.T) {
	t.Parallel()

	idx := testutil.MakeMathIndex([]testutil.MathRecord{
		{Hash: hash(0x01), Pos: 0, Len: 5},
		{Hash: hash(0x02), Pos: 5, Len: 3},
	})
	m := mathidx.New(
		storage.Bytes("math.idx", idx),
		storage.Bytes("math.dat", []byte("HELLOBYE")),
	)

	tests := []struct {
		name    string
		hexHash string

		expected []byte
		err      error
	}{
		{
			name:     "first record",
			hexHash:  "00000000000000000000000000000001",
			expected: []byte("HELLO"),
		},
		{
			name:     "second record",
			hexHash:  "00000000000000000000000000000002",
			expected: []byte("BYE"),
		},
		{
			name:    "absent hash",
			hexHash: "00000000000000000000000000000003",
			err:     mathidx.ErrNotFound,
		},
		{
			name:    "not hex",
			hexHash: "zz000000000000000000000000000001",
			err:     mathidx.ErrInvalidHash,
		},
		{
			name:    "short hash",
			hexHash: "0001",
			err:     mathidx.ErrInvalidHash,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got, err := m.Image(test.hexHash)
			if !errors.Is(err, test.err) {
				t.Fatalf("Image: got %v, want %v", err, test.err)
			}
			if test.err != nil {
				return
			}
			if diff := cmp.Diff(test.expected, got); diff != "" {
				t.Errorf("Image (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestIndex_Image_emptyIndex(t *testing.T) {
	t.Parallel()

	m := mathidx.New(
		storage.Bytes("math.idx", nil),
		storage.Bytes("math.dat", nil),
	)

	_, err := m.Image("00000000000000000000000000000001")
	if !errors.Is(err, mathidx.ErrNotFound) {
		t.Errorf("Image: got %v, want %v", err, mathidx.ErrNotFound)
	}
}
