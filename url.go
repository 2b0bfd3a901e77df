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
	"net/url"
	"strings"
)

// StripQueryFragment removes the query and fragment parts of a URL
// string.
func StripQueryFragment(s string) string {
	if i := strings.IndexAny(s, "?#"); i >= 0 {
		return s[:i]
	}
	return s
}

// TitleNameFromURL extracts an article name from a wiki article URL
// path such as "/wiki/Jimi_Hendrix?printable=yes". Percent escapes
// are decoded and underscores become spaces.
func TitleNameFromURL(s string) string {
	name := StripQueryFragment(s)
	if i := strings.LastIndex(name, "/wiki/"); i >= 0 {
		name = name[i+len("/wiki/"):]
	} else {
		name = strings.TrimPrefix(name, "/")
	}
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}
	return strings.ReplaceAll(name, "_", " ")
}
