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
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"sort"
	"sync"

	"golang.org/x/text/transform"

	"github.com/ianlewis/go-evopedia/dat"
	"github.com/ianlewis/go-evopedia/geo"
	"github.com/ianlewis/go-evopedia/internal/folding"
	"github.com/ianlewis/go-evopedia/mathidx"
	"github.com/ianlewis/go-evopedia/quad"
	"github.com/ianlewis/go-evopedia/storage"
	"github.com/ianlewis/go-evopedia/titles"
)

// Archive file names.
const (
	metadataName    = "metadata.txt"
	titlesName      = "titles.idx"
	titleSearchName = "titles_search.idx"
	mathIndexName   = "math.idx"
	mathDataName    = "math.dat"
)

var (
	// dataShardRegexp matches data shard file names. The captured
	// number is the shard's slot; the first shard is wikipedia_00.dat.
	dataShardRegexp = regexp.MustCompile(`^wikipedia_(\d\d)\.dat$`)

	// coordShardRegexp matches coordinate shard file names. Shards
	// are numbered from one so the captured number is the slot plus
	// one.
	coordShardRegexp = regexp.MustCompile(`^coordinates_(\d\d)\.idx$`)
)

// Archive is a single Evopedia encyclopedia archive. Its files are
// read-only once opened so an Archive may be shared by concurrent
// queries.
type Archive struct {
	path string

	titleFile   storage.File
	searchFile  storage.File
	dataFiles   []storage.File
	coordFiles  []storage.File
	mathIdxFile storage.File
	mathDatFile storage.File

	metadata *Metadata
	titles   *titles.File
	readers  []*dat.Reader
	math     *mathidx.Index
	fold     func(string) string

	warnings []error

	// index is the lazily built in-memory title index.
	index     *titles.Index
	indexOnce sync.Once
	indexErr  error

	// searchMu serializes coordinate searches. Only one search may be
	// in flight per archive.
	searchMu sync.Mutex
}

// Open opens the archive in the given directory. The directory is
// probed for the title index, metadata, and numbered shard files;
// shard probing stops at the first missing file. Optional files that
// fail for reasons other than absence are recorded as warnings.
func Open(path string) (*Archive, error) {
	a, err := New(storage.Dir(path))
	if err != nil {
		return nil, err
	}
	a.path = path
	return a, nil
}

// OpenAll opens all archives under a directory tree. Directories are
// recognized as archives by the presence of a title index. All
// successfully opened archives are returned along with any errors
// that occurred.
func OpenAll(root string) ([]*Archive, []error) {
	var archives []*Archive
	var errs []error
	if err := filepath.WalkDir(root, func(path string, info fs.DirEntry, err error) error {
		// Walking the file path will ignore errors.
		if err != nil {
			errs = append(errs, err)
			return nil
		}
		if !info.IsDir() && info.Name() == titlesName {
			a, err := Open(filepath.Dir(path))
			if err != nil {
				errs = append(errs, err)
				return nil
			}
			archives = append(archives, a)
		}
		return nil
	}); err != nil {
		errs = append(errs, err)
		return nil, errs
	}
	return archives, errs
}

// New opens an archive by enumerating files from the given provider.
func New(p storage.Provider) (*Archive, error) {
	a := &Archive{}

	var err error
	a.titleFile, err = p.Get(titlesName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArchive, err)
	}

	// The prefix-search accelerator is optional; other failures on
	// optional files are surfaced as warnings.
	a.searchFile = a.optional(p, titleSearchName)
	a.mathIdxFile = a.optional(p, mathIndexName)
	a.mathDatFile = a.optional(p, mathDataName)

	for i := 0; ; i++ {
		f, err := p.Get(fmt.Sprintf("wikipedia_%02d.dat", i))
		if errors.Is(err, storage.ErrNotFound) {
			break
		}
		if err != nil {
			a.warnings = append(a.warnings, err)
			break
		}
		a.dataFiles = append(a.dataFiles, f)
	}
	for i := 1; ; i++ {
		f, err := p.Get(fmt.Sprintf("coordinates_%02d.idx", i))
		if errors.Is(err, storage.ErrNotFound) {
			break
		}
		if err != nil {
			a.warnings = append(a.warnings, err)
			break
		}
		a.coordFiles = append(a.coordFiles, f)
	}

	if err := a.finish(p); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

// NewFromFiles opens an archive from a flat list of file names,
// classifying each by name. Unrecognized names are ignored.
func NewFromFiles(p storage.Provider, names []string) (*Archive, error) {
	a := &Archive{}

	for _, name := range names {
		var err error
		switch {
		case name == titlesName:
			a.titleFile, err = p.Get(name)
		case name == titleSearchName:
			a.searchFile, err = p.Get(name)
		case name == mathIndexName:
			a.mathIdxFile, err = p.Get(name)
		case name == mathDataName:
			a.mathDatFile, err = p.Get(name)
		case name == metadataName:
			// Opened by finish.
		default:
			if m := dataShardRegexp.FindStringSubmatch(name); m != nil {
				err = a.setShard(p, name, &a.dataFiles, shardSlot(m[1]))
				break
			}
			if m := coordShardRegexp.FindStringSubmatch(name); m != nil {
				err = a.setShard(p, name, &a.coordFiles, shardSlot(m[1])-1)
			}
		}
		if err != nil {
			a.Close()
			return nil, err
		}
	}

	if a.titleFile == nil {
		a.Close()
		return nil, fmt.Errorf("%w: %s missing", ErrInvalidArchive, titlesName)
	}

	if err := a.finish(p); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

// optional opens an optional archive file. Absence is not an error;
// other failures are recorded as warnings.
func (a *Archive) optional(p storage.Provider, name string) storage.File {
	f, err := p.Get(name)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			a.warnings = append(a.warnings, err)
		}
		return nil
	}
	return f
}

// setShard opens a shard file into the given slot, growing the slice
// as needed.
func (a *Archive) setShard(p storage.Provider, name string, files *[]storage.File, slot int) error {
	if slot < 0 {
		return fmt.Errorf("%w: bad shard name %q", ErrInvalidArchive, name)
	}
	f, err := p.Get(name)
	if err != nil {
		return err
	}
	for len(*files) <= slot {
		*files = append(*files, nil)
	}
	(*files)[slot] = f
	return nil
}

// shardSlot parses a two-digit shard number. The name regexps
// guarantee the digits.
func shardSlot(s string) int {
	return int(s[0]-'0')*10 + int(s[1]-'0')
}

// finish parses the archive metadata and builds the title, data and
// math readers.
func (a *Archive) finish(p storage.Provider) error {
	mf, err := p.Get(metadataName)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArchive, err)
	}
	defer mf.Close()

	b, err := storage.ReadRange(mf, 0, int(mf.Size()))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArchive, err)
	}
	a.metadata, err = ParseMetadata(bytes.NewReader(b))
	if err != nil {
		return err
	}

	a.fold = func(s string) string { return s }
	if a.metadata.NormalizedTitles() {
		a.fold = func(s string) string {
			return folding.String(folding.NewTitleFolder(), s)
		}
	}

	a.titles = titles.New(a.titleFile, &titles.Options{Fold: a.fold})

	a.readers = make([]*dat.Reader, len(a.dataFiles))
	for i, f := range a.dataFiles {
		if f != nil {
			a.readers[i] = dat.NewReader(f)
		}
	}

	if a.mathIdxFile != nil && a.mathDatFile != nil {
		a.math = mathidx.New(a.mathIdxFile, a.mathDatFile)
	}
	return nil
}

// Close closes all archive files.
func (a *Archive) Close() error {
	files := []storage.File{
		a.titleFile,
		a.searchFile,
		a.mathIdxFile,
		a.mathDatFile,
	}
	files = append(files, a.dataFiles...)
	files = append(files, a.coordFiles...)

	var errs []error
	for _, f := range files {
		if f != nil {
			errs = append(errs, f.Close())
		}
	}
	//nolint:wrapcheck // joined close errors are already wrapped.
	return errors.Join(errs...)
}

// IsReady reports whether the archive can serve article queries: the
// title index is present and at least one data shard exists.
func (a *Archive) IsReady() bool {
	if a.titleFile == nil {
		return false
	}
	for _, f := range a.dataFiles {
		if f != nil {
			return true
		}
	}
	return false
}

// Path returns the archive's directory. It is empty for archives not
// opened from a directory.
func (a *Archive) Path() string {
	return a.path
}

// Language returns the archive's content language.
func (a *Archive) Language() string {
	return a.metadata.Language()
}

// Date returns the archive's snapshot date.
func (a *Archive) Date() string {
	return a.metadata.Date()
}

// NormalizedTitles reports whether the title index is sorted by
// normalized names.
func (a *Archive) NormalizedTitles() bool {
	return a.metadata.NormalizedTitles()
}

// DataShardCount returns the number of data shards.
func (a *Archive) DataShardCount() int {
	return len(a.dataFiles)
}

// HasSearchIndex reports whether the archive carries the optional
// titles_search.idx prefix-search accelerator. Its format is opaque;
// prefix lookups always use the title index binary search.
func (a *Archive) HasSearchIndex() bool {
	return a.searchFile != nil
}

// CoordShardCount returns the number of coordinate shards.
func (a *Archive) CoordShardCount() int {
	return len(a.coordFiles)
}

// Warnings returns non-fatal errors encountered while opening the
// archive.
func (a *Archive) Warnings() []error {
	return a.warnings
}

// Normalize folds a title into the archive's comparison form. It is
// the identity function when the archive's titles are not normalized.
func (a *Archive) Normalize(s string) string {
	return a.fold(s)
}

// NormalizeTransformer returns a transformer producing the archive's
// title comparison form.
func (a *Archive) NormalizeTransformer() transform.Transformer {
	if !a.metadata.NormalizedTitles() {
		return transform.Nop
	}
	return folding.NewTitleFolder()
}

// TitleByName returns the title whose name is exactly name. It
// returns nil when no such title exists.
func (a *Archive) TitleByName(name string) (*titles.Title, error) {
	//nolint:wrapcheck // titles errors are part of the API.
	return a.titles.TitleByName(name)
}

// TitleByURL returns the title for a wiki article URL path. It
// returns nil when no such title exists.
func (a *Archive) TitleByURL(url string) (*titles.Title, error) {
	return a.TitleByName(TitleNameFromURL(url))
}

// TitlesWithPrefix returns titles whose normalized names start with
// the normalized prefix, in index order, up to max titles. A negative
// max returns all matches.
func (a *Archive) TitlesWithPrefix(prefix string, max int) ([]*titles.Title, error) {
	//nolint:wrapcheck // titles errors are part of the API.
	return a.titles.TitlesWithPrefix(prefix, max)
}

// TitlesAt returns up to count sequential titles starting at the
// given title index offset. The offset must be a record boundary.
func (a *Archive) TitlesAt(offset int64, count int) ([]*titles.Title, error) {
	//nolint:wrapcheck // titles errors are part of the API.
	return a.titles.TitlesAt(offset, count)
}

// RandomTitle returns a title picked from a uniform position in the
// title index.
func (a *Archive) RandomTitle() (*titles.Title, error) {
	//nolint:wrapcheck // titles errors are part of the API.
	return a.titles.RandomTitle()
}

// ResolveRedirect resolves a redirect title to its target,
// rewriting the title's pointer fields. Non-redirect titles are
// returned unchanged.
func (a *Archive) ResolveRedirect(t *titles.Title) (*titles.Title, error) {
	//nolint:wrapcheck // titles errors are part of the API.
	return a.titles.ResolveRedirect(t)
}

// Index returns the in-memory title index, building it on first use.
func (a *Archive) Index() (*titles.Index, error) {
	a.indexOnce.Do(func() {
		a.index, a.indexErr = titles.NewIndex(a.titles)
	})
	return a.index, a.indexErr
}

// Article reads a title's article body. Redirects are resolved
// first. The result is the article's UTF-8 text, typically HTML.
func (a *Archive) Article(t *titles.Title) (string, error) {
	t, err := a.ResolveRedirect(t)
	if err != nil {
		return "", err
	}

	nr := int(t.FileNr)
	if nr >= len(a.readers) || a.readers[nr] == nil {
		return "", fmt.Errorf("%w: wikipedia_%02d.dat for article %q", ErrMissingShard, nr, t.Name)
	}

	b, err := a.readers[nr].Article(t.BlockStart, t.BlockOffset, t.ArticleLength)
	if err != nil {
		return "", fmt.Errorf("reading article %q: %w", t.Name, err)
	}
	return string(b), nil
}

// TitlesInRect returns titles whose coordinates lie within rect,
// sorted ascending by distance to the rectangle's center. At most max
// titles are returned; a negative max returns every match. Only one
// coordinate search may be in flight per archive; concurrent calls
// fail with ErrSearchInProgress.
func (a *Archive) TitlesInRect(ctx context.Context, rect geo.Rect, max int) ([]*titles.Title, error) {
	if !a.searchMu.TryLock() {
		return nil, ErrSearchInProgress
	}
	defer a.searchMu.Unlock()

	entries, err := quad.Search(ctx, a.coordFiles, rect, max)
	if err != nil {
		//nolint:wrapcheck // quad errors are part of the API.
		return nil, err
	}

	center := rect.Center()
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Location.Distance(center) < entries[j].Location.Distance(center)
	})

	result := make([]*titles.Title, 0, len(entries))
	for _, e := range entries {
		t, err := a.titles.TitleAt(int64(e.TitleOffset))
		if err != nil {
			return nil, fmt.Errorf("resolving title at offset %d: %w", e.TitleOffset, err)
		}
		loc := e.Location
		t.Location = &loc
		result = append(result, t)
	}
	return result, nil
}

// MathImage returns the rendered math image with the given
// hex-encoded content hash.
func (a *Archive) MathImage(hexHash string) ([]byte, error) {
	if a.math == nil {
		return nil, fmt.Errorf("%w: archive has no math index", mathidx.ErrNotFound)
	}
	//nolint:wrapcheck // mathidx errors are part of the API.
	return a.math.Image(hexHash)
}
