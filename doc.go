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

// Package evopedia implements a library for reading offline Evopedia
// encyclopedia archives in pure Go.
//
// An Evopedia archive is a directory containing several files:
//  1. A metadata.txt file with key/value metadata about the archive.
//  2. A titles.idx file holding the sorted article title index. Each
//     record points into a data shard, or marks a redirect to another
//     title.
//  3. Numbered data shards (wikipedia_00.dat, wikipedia_01.dat, ...)
//     holding bzip2-compressed blocks of article bodies.
//  4. Optional numbered coordinate shards (coordinates_01.idx, ...)
//     holding quadtrees mapping geographic locations to titles.
//  5. An optional titles_search.idx prefix-search accelerator.
//  6. Optional math.idx and math.dat files mapping content hashes of
//     rendered math formulas to image bytes.
//
// Archives are opened with [Open], [OpenAll] or [New] and queried for
// titles by name, prefix, position or geographic rectangle, and for
// article bodies and math images.
package evopedia
