// Package history stores generated prompts as JSON records in a directory,
// one file per record, alongside a HISTORY.md log of saves.
package history

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/roberthamel/optiprompt/internal/prompt"
)

// ErrNotFound is returned when no record has the requested id.
var ErrNotFound = errors.New("record not found")

// Record is one saved generation.
type Record struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Form        prompt.FormData  `json:"form"`
	Generated   string           `json:"generated"`
	TemplateID  string           `json:"templateId"`
	Category    prompt.Category  `json:"category,omitempty"`
	Technique   prompt.Technique `json:"technique"`
	Options     prompt.Options   `json:"options"`
	Quality     int              `json:"quality"`
	Level       prompt.Level     `json:"level"`
	Tags        []string         `json:"tags,omitempty"`
	IsFavorite  bool             `json:"isFavorite"`
	Fingerprint string           `json:"fingerprint"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// Store is a directory of records.
type Store struct {
	dir string
	now func() time.Time
	mu  sync.Mutex
}

// New returns a store rooted at dir. The directory is created on first save.
func New(dir string) *Store {
	return &Store{dir: dir, now: time.Now}
}

// DefaultDir returns ~/.local/share/op/history.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", "op", "history"), nil
}

// Dir returns the store's directory.
func (s *Store) Dir() string { return s.dir }

// Fingerprint hashes the inputs that determine a generation: slot values
// (item ids excluded), template id and options.
func Fingerprint(fd *prompt.FormData, templateID string, opts prompt.Options) string {
	slots := make(map[prompt.SlotName][]string, len(prompt.SlotNames))
	for _, name := range prompt.SlotNames {
		items := fd.Slot(name)
		values := make([]string, len(items))
		for i, it := range items {
			values[i] = it.Value
		}
		slots[name] = values
	}
	canonical := struct {
		Slots      map[prompt.SlotName][]string `json:"slots"`
		TemplateID string                       `json:"templateId"`
		Options    prompt.Options               `json:"options"`
	}{slots, templateID, opts}

	// Marshal sorts map keys, so the encoding is stable.
	data, _ := json.Marshal(canonical)
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

func validID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("invalid record id %q", id)
	}
	return nil
}

func (s *Store) path(id string) string {
	return filepath.Join(s.dir, id+".json")
}

// Save stores rec. A record without an id whose fingerprint matches an
// existing record updates that record instead of creating a new one; the
// returned bool reports whether a new record was created.
func (s *Store) Save(rec Record) (*Record, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.Fingerprint == "" {
		rec.Fingerprint = Fingerprint(&rec.Form, rec.TemplateID, rec.Options)
	}
	now := s.now().UTC()

	var existing *Record
	switch {
	case rec.ID != "":
		if err := validID(rec.ID); err != nil {
			return nil, false, err
		}
		prev, err := s.load(rec.ID)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return nil, false, err
		}
		existing = prev
	default:
		all, err := s.list()
		if err != nil {
			return nil, false, err
		}
		for i := range all {
			if all[i].Fingerprint == rec.Fingerprint {
				existing = &all[i]
				break
			}
		}
	}

	created := existing == nil
	if created {
		if rec.ID == "" {
			rec.ID = uuid.NewString()
		}
		rec.CreatedAt = now
	} else {
		rec.ID = existing.ID
		rec.CreatedAt = existing.CreatedAt
		rec.IsFavorite = rec.IsFavorite || existing.IsFavorite
	}
	rec.UpdatedAt = now

	if err := s.write(&rec); err != nil {
		return nil, false, err
	}
	if err := s.appendLog(&rec, created); err != nil {
		return nil, false, err
	}
	return &rec, created, nil
}

func (s *Store) write(rec *Record) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating history directory: %w", err)
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling record: %w", err)
	}
	if err := os.WriteFile(s.path(rec.ID), data, 0o644); err != nil {
		return fmt.Errorf("writing record: %w", err)
	}
	return nil
}

// Load reads the record with the given id.
func (s *Store) Load(id string) (*Record, error) {
	if err := validID(id); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(id)
}

func (s *Store) load(id string) (*Record, error) {
	data, err := os.ReadFile(s.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("reading record: %w", err)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parsing record %s: %w", id, err)
	}
	return &rec, nil
}

// Delete removes the record with the given id.
func (s *Store) Delete(id string) error {
	if err := validID(id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path(id)); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return fmt.Errorf("removing record: %w", err)
	}
	return nil
}

// SetFavorite marks or unmarks a record as a favorite.
func (s *Store) SetFavorite(id string, favorite bool) (*Record, error) {
	if err := validID(id); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, err := s.load(id)
	if err != nil {
		return nil, err
	}
	rec.IsFavorite = favorite
	rec.UpdatedAt = s.now().UTC()
	if err := s.write(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Filter narrows List results. Zero fields match everything.
type Filter struct {
	Query        string
	Category     prompt.Category
	Level        prompt.Level
	Tags         []string
	FavoriteOnly bool
	Since        time.Time
	Until        time.Time
}

// Match reports whether rec satisfies every set field of f. Query matches
// the title or generated text case-insensitively; every tag must be present.
func (f Filter) Match(rec *Record) bool {
	if q := strings.ToLower(f.Query); q != "" &&
		!strings.Contains(strings.ToLower(rec.Title), q) &&
		!strings.Contains(strings.ToLower(rec.Generated), q) {
		return false
	}
	if f.Category != "" && rec.Category != f.Category {
		return false
	}
	if f.Level != "" && rec.Level != f.Level {
		return false
	}
	if f.FavoriteOnly && !rec.IsFavorite {
		return false
	}
	if !f.Since.IsZero() && rec.CreatedAt.Before(f.Since) {
		return false
	}
	if !f.Until.IsZero() && rec.CreatedAt.After(f.Until) {
		return false
	}
	for _, tag := range f.Tags {
		found := false
		for _, have := range rec.Tags {
			if strings.EqualFold(have, tag) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// List returns the records matching f, newest first.
func (s *Store) List(f Filter) ([]Record, error) {
	s.mu.Lock()
	all, err := s.list()
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	out := make([]Record, 0, len(all))
	for i := range all {
		if f.Match(&all[i]) {
			out = append(out, all[i])
		}
	}
	return out, nil
}

func (s *Store) list() ([]Record, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading history directory: %w", err)
	}
	var records []Record
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || filepath.Ext(name) != ".json" {
			continue
		}
		id := strings.TrimSuffix(name, ".json")
		if validID(id) != nil {
			continue
		}
		rec, err := s.load(id)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	return records, nil
}
