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

// Package folding implements text folding used to normalize article
// titles for comparison.
package folding

import (
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NewTitleFolder returns a transformer that folds a title into its
// normalized comparison form: decomposed, diacritic marks removed,
// lower cased, and whitespace folded. The transform is idempotent.
func NewTitleFolder() transform.Transformer {
	return transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		runes.Map(unicode.ToLower),
		&WhitespaceFolder{},
	)
}

// String folds s with the given transformer. Folding errors leave the
// input unchanged; the fold transformers used here are total on valid
// UTF-8.
func String(t transform.Transformer, s string) string {
	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return folded
}
