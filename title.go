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

import (
	"github.com/ianlewis/go-evopedia/geo"
	"github.com/ianlewis/go-evopedia/titles"
)

// Title is a title index entry identifying one article.
type Title = titles.Title

// Point is a location on the globe.
type Point = geo.Point

// Rect is an axis-aligned rectangle on the globe.
type Rect = geo.Rect
