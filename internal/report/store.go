package report

import "sync"

// Store memoizes dataset loads for the process lifetime, keyed by source
// name. Failed loads are not cached so a fixed file is picked up on the
// next request. There is no invalidation; the source CSVs are treated as
// immutable while the process runs.
type Store struct {
	catalog *Catalog

	mu     sync.Mutex
	loaded map[string]LoadResult
}

// NewStore wraps a catalog with load memoization.
func NewStore(catalog *Catalog) *Store {
	return &Store{
		catalog: catalog,
		loaded:  make(map[string]LoadResult),
	}
}

// Catalog exposes the underlying catalog.
func (s *Store) Catalog() *Catalog { return s.catalog }

// Sources returns the selectable source names, "All" first.
func (s *Store) Sources() []string { return s.catalog.Sources() }

// Load returns the dataset for source ("All" unions every file), loading
// it on first use and serving the memoized copy afterwards.
func (s *Store) Load(source string) (LoadResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if res, ok := s.loaded[source]; ok {
		return res, nil
	}

	var res LoadResult
	var err error
	if source == SourceAll {
		res, err = s.catalog.LoadAll()
	} else {
		res, err = s.catalog.Load(source)
	}
	if err != nil {
		return res, err
	}
	s.loaded[source] = res
	return res, nil
}
