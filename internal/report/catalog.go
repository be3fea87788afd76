package report

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrMissingParagraphColumn is returned when a CSV file has no paragraph column.
var ErrMissingParagraphColumn = errors.New("csv file is missing required column: paragraph")

// ErrUnknownSource is returned when a source name is not in the catalog.
var ErrUnknownSource = errors.New("unknown source")

// ErrNoDatasets is returned by LoadAll when no file could be loaded.
var ErrNoDatasets = errors.New("no datasets could be loaded")

// Catalog maps organization names to their CSV files.
type Catalog struct {
	files map[string]string
}

// LoadResult carries the loaded paragraphs plus non-fatal per-row or
// per-file errors accumulated along the way.
type LoadResult struct {
	Paragraphs []Paragraph
	Errors     []error
}

// DiscoverCatalog lists *.csv files in dir. The organization name is the
// file basename without extension. An empty directory yields an empty
// catalog, not an error.
func DiscoverCatalog(dir string) (*Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read data dir %s: %w", dir, err)
	}
	files := make(map[string]string)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.EqualFold(filepath.Ext(name), ".csv") {
			continue
		}
		org := strings.TrimSuffix(name, filepath.Ext(name))
		files[org] = filepath.Join(dir, name)
	}
	return &Catalog{files: files}, nil
}

// Organizations returns catalog organization names, sorted.
func (c *Catalog) Organizations() []string {
	orgs := make([]string, 0, len(c.files))
	for org := range c.files {
		orgs = append(orgs, org)
	}
	sort.Strings(orgs)
	return orgs
}

// Sources returns the selectable source names: "All" followed by the
// sorted organization names.
func (c *Catalog) Sources() []string {
	return append([]string{SourceAll}, c.Organizations()...)
}

// Has reports whether source is selectable ("All" or a known organization).
func (c *Catalog) Has(source string) bool {
	if source == SourceAll {
		return true
	}
	_, ok := c.files[source]
	return ok
}

// Load parses one organization's CSV file. The header row is required and
// must contain a paragraph column (case-insensitive). Malformed rows are
// collected into LoadResult.Errors rather than aborting the load.
func (c *Catalog) Load(org string) (LoadResult, error) {
	path, ok := c.files[org]
	if !ok {
		return LoadResult{}, fmt.Errorf("%w: %s", ErrUnknownSource, org)
	}
	f, err := os.Open(path)
	if err != nil {
		return LoadResult{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return parseCSV(f, org, filepath.Base(path))
}

// LoadAll unions every organization dataset in sorted order. Per-file
// failures are collected; the load fails only when nothing could be read.
func (c *Catalog) LoadAll() (LoadResult, error) {
	res := LoadResult{}
	loaded := 0
	for _, org := range c.Organizations() {
		fileRes, err := c.Load(org)
		if err != nil {
			res.Errors = append(res.Errors, err)
			continue
		}
		loaded++
		res.Paragraphs = append(res.Paragraphs, fileRes.Paragraphs...)
		res.Errors = append(res.Errors, fileRes.Errors...)
	}
	if loaded == 0 {
		return res, ErrNoDatasets
	}
	return res, nil
}

func parseCSV(r io.Reader, org, sourceFile string) (LoadResult, error) {
	res := LoadResult{}
	csvr := csv.NewReader(bufio.NewReader(r))
	csvr.TrimLeadingSpace = true
	csvr.FieldsPerRecord = -1

	header, err := csvr.Read()
	if err == io.EOF {
		return LoadResult{}, fmt.Errorf("%s: %w", sourceFile, ErrMissingParagraphColumn)
	}
	if err != nil {
		return LoadResult{}, fmt.Errorf("%s header: %w", sourceFile, err)
	}

	idx := headerIndex(header)
	paraCol, ok := idx["paragraph"]
	if !ok {
		return LoadResult{}, fmt.Errorf("%s: %w", sourceFile, ErrMissingParagraphColumn)
	}
	countryCol, hasCountry := idx["country"]
	yearCol, hasYear := idx["year"]

	line := 1
	for {
		line++
		rec, err := csvr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("%s line %d: %w", sourceFile, line, err))
			continue
		}
		if paraCol >= len(rec) {
			res.Errors = append(res.Errors, fmt.Errorf("%s line %d: missing paragraph field", sourceFile, line))
			continue
		}
		p := Paragraph{
			// The file's organization always wins over any organization column.
			Organization: org,
			Text:         strings.TrimSpace(rec[paraCol]),
			SourceFile:   sourceFile,
		}
		if hasCountry && countryCol < len(rec) {
			p.Country = strings.TrimSpace(rec[countryCol])
		}
		if hasYear && yearCol < len(rec) {
			p.Year = strings.TrimSpace(rec[yearCol])
		}
		res.Paragraphs = append(res.Paragraphs, p)
	}
	return res, nil
}

// headerIndex maps lowercased, trimmed header names to column positions.
// A UTF-8 BOM on the first header cell is tolerated.
func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimPrefix(h, "\uFEFF")
		h = strings.ToLower(strings.TrimSpace(h))
		if h == "" {
			continue
		}
		if _, exists := idx[h]; !exists {
			idx[h] = i
		}
	}
	return idx
}
