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

package evopedia

import "errors"

// ErrInvalidArchive indicates that a required archive file is absent
// or that the archive metadata could not be parsed.
var ErrInvalidArchive = errors.New("invalid archive")

// ErrMissingShard indicates that a title references a data shard that
// is not present in the archive.
var ErrMissingShard = errors.New("data shard missing")

// ErrSearchInProgress indicates that a coordinate search was started
// while another one was still running on the same archive.
var ErrSearchInProgress = errors.New("coordinate search already in progress")
