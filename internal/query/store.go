package query

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hearthview/hearth/internal/config"
	"github.com/hearthview/hearth/internal/errors"
	"github.com/hearthview/hearth/internal/util"
)

// QueriesFileName is the store's file name under the global config dir.
const QueriesFileName = "queries.json"

// Store persists saved queries as a JSON array on disk. Writes go through
// a temp file and rename so a crash never leaves a half-written store.
type Store struct {
	path string
}

// NewStore opens the default store under ~/.config/hearth/.
func NewStore() (*Store, error) {
	path, err := config.GlobalConfigPath(QueriesFileName)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrQuery,
			"Cannot locate the saved queries file", "")
	}
	return &Store{path: path}, nil
}

// NewStoreAt opens a store at an explicit path.
func NewStoreAt(path string) *Store {
	return &Store{path: path}
}

// Path returns the store's file location.
func (s *Store) Path() string {
	return s.path
}

// List returns all saved queries in saved order. A missing file is just an
// empty store.
func (s *Store) List() ([]SavedQuery, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrQuery,
			"Cannot read saved queries from "+s.path, "")
	}
	return decodeQueries(data, s.path)
}

// Get returns the named query, suggesting close names when it is missing.
func (s *Store) Get(name string) (*SavedQuery, error) {
	queries, err := s.List()
	if err != nil {
		return nil, err
	}

	for i := range queries {
		if queries[i].Name == name {
			return &queries[i], nil
		}
	}

	names := make([]string, len(queries))
	for i, q := range queries {
		names[i] = q.Name
	}

	suggestion := "Run 'hearth queries' to see what you have"
	if similar := util.SuggestSimilar(name, names, 3); len(similar) > 0 {
		suggestion = "Did you mean '" + strings.Join(similar, "', '") + "'?"
	}
	return nil, errors.New(errors.ErrQuery,
		fmt.Sprintf("No saved query named '%s'", name), suggestion)
}

// Save stores the query, replacing an existing one with the same name.
func (s *Store) Save(q SavedQuery) error {
	if err := q.Validate(); err != nil {
		return err
	}
	if q.CreatedAt.IsZero() {
		q.CreatedAt = time.Now()
	}

	queries, err := s.List()
	if err != nil {
		return err
	}

	replaced := false
	for i := range queries {
		if queries[i].Name == q.Name {
			queries[i] = q
			replaced = true
			break
		}
	}
	if !replaced {
		queries = append(queries, q)
	}
	return s.write(queries)
}

// Remove deletes the named query.
func (s *Store) Remove(name string) error {
	queries, err := s.List()
	if err != nil {
		return err
	}

	out := queries[:0]
	found := false
	for _, q := range queries {
		if q.Name == name {
			found = true
			continue
		}
		out = append(out, q)
	}

	if !found {
		names := make([]string, len(queries))
		for i, q := range queries {
			names[i] = q.Name
		}
		suggestion := "Run 'hearth queries' to see what you have"
		if similar := util.SuggestSimilar(name, names, 3); len(similar) > 0 {
			suggestion = "Did you mean '" + strings.Join(similar, "', '") + "'?"
		}
		return errors.New(errors.ErrQuery,
			fmt.Sprintf("No saved query named '%s'", name), suggestion)
	}
	return s.write(out)
}

// Export writes the store as a portable JSON array, the same shape the file
// itself uses.
func (s *Store) Export(w io.Writer) error {
	queries, err := s.List()
	if err != nil {
		return err
	}
	if queries == nil {
		queries = []SavedQuery{}
	}

	data, err := json.MarshalIndent(queries, "", "  ")
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrQuery, "Cannot encode saved queries", "")
	}
	data = append(data, '\n')

	if _, err := w.Write(data); err != nil {
		return errors.WrapWithCode(err, errors.ErrQuery, "Cannot write query export", "")
	}
	return nil
}

// Import merges queries read from r into the store and returns how many
// arrived. With replace set, the store's current content is dropped first.
// Malformed input leaves the store untouched.
func (s *Store) Import(r io.Reader, replace bool) (int, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrQuery, "Cannot read query import", "")
	}

	var incoming []SavedQuery
	if err := json.Unmarshal(data, &incoming); err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrQuery,
			"That file is not a saved-queries export",
			"Expected a JSON array, the shape 'hearth queries export' produces")
	}
	for _, q := range incoming {
		if err := q.Validate(); err != nil {
			return 0, err
		}
	}

	var current []SavedQuery
	if !replace {
		if current, err = s.List(); err != nil {
			return 0, err
		}
	}

	// Imported queries win name collisions.
	merged := make([]SavedQuery, 0, len(current)+len(incoming))
	for _, q := range current {
		if !containsName(incoming, q.Name) {
			merged = append(merged, q)
		}
	}
	merged = append(merged, incoming...)

	if err := s.write(merged); err != nil {
		return 0, err
	}
	return len(incoming), nil
}

func containsName(queries []SavedQuery, name string) bool {
	for _, q := range queries {
		if q.Name == name {
			return true
		}
	}
	return false
}

func decodeQueries(data []byte, path string) ([]SavedQuery, error) {
	var queries []SavedQuery
	if err := json.Unmarshal(data, &queries); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrQuery,
			"Saved queries file is corrupted: "+path,
			"Fix the JSON by hand, or delete the file to start over")
	}
	return queries, nil
}

func (s *Store) write(queries []SavedQuery) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return errors.WrapWithCode(err, errors.ErrQuery,
			"Cannot create "+filepath.Dir(s.path), "")
	}

	data, err := json.MarshalIndent(queries, "", "  ")
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrQuery, "Cannot encode saved queries", "")
	}
	data = append(data, '\n')

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return errors.WrapWithCode(err, errors.ErrQuery, "Cannot write "+tmp, "")
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return errors.WrapWithCode(err, errors.ErrQuery, "Cannot replace "+s.path, "")
	}
	return nil
}
