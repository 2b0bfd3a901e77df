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

package titles_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ianlewis/go-evopedia/internal/testutil"
	"github.com/ianlewis/go-evopedia/titles"
)

func TestIndex_Search(t *testing.T) {
	t.Parallel()

	records := []testutil.TitleRecord{
		{Name: "Apple", BlockStart: 1},
		{Name: "banana", BlockStart: 2},
		{Name: "Cherry", BlockStart: 3},
	}
	f := titleFile(records, foldOptions)

	idx, err := titles.NewIndex(f)
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}

	if got, want := idx.Len(), 3; got != want {
		t.Errorf("Len: got %d, want %d", got, want)
	}

	got := idx.Search("apple")
	if len(got) != 1 || got[0].Name != "Apple" {
		t.Errorf("Search: got %+v", got)
	}

	if got := idx.Search("blueberry"); got != nil {
		t.Errorf("Search: got %+v, want nil", got)
	}
}

func TestIndex_SearchPrefix(t *testing.T) {
	t.Parallel()

	records := []testutil.TitleRecord{
		{Name: "car"},
		{Name: "Card"},
		{Name: "cardigan"},
		{Name: "cat"},
		{Name: "dog"},
	}
	f := titleFile(records, foldOptions)

	idx, err := titles.NewIndex(f)
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}

	var names []string
	for _, title := range idx.SearchPrefix("CAR", 10) {
		names = append(names, title.Name)
	}
	if diff := cmp.Diff([]string{"car", "Card", "cardigan"}, names); diff != "" {
		t.Errorf("SearchPrefix (-want, +got):\n%s", diff)
	}

	if got := idx.SearchPrefix("car", 1); len(got) != 1 {
		t.Errorf("SearchPrefix: got %d titles, want 1", len(got))
	}
}
