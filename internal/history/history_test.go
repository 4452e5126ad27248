package history

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/roberthamel/optiprompt/internal/prompt"
)

// newTestStore returns a store whose clock advances one minute per call.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := New(filepath.Join(t.TempDir(), "history"))
	clock := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	return s
}

func sampleRecord(what string) Record {
	return Record{
		Title:      "Plan " + what,
		Form:       prompt.FormData{What: []prompt.DynamicItem{{ID: uuid.NewString(), Value: what}}},
		Generated:  "<role>...</role> " + what,
		TemplateID: "general-basic",
		Category:   prompt.CategoryGeneral,
		Technique:  prompt.ChainOfThought,
		Options:    prompt.Options{Technique: prompt.ChainOfThought},
		Quality:    72,
		Level:      prompt.LevelHigh,
	}
}

func TestFingerprint(t *testing.T) {
	a := prompt.FormData{What: []prompt.DynamicItem{{ID: "1", Value: "x"}}}
	b := prompt.FormData{What: []prompt.DynamicItem{{ID: "2", Value: "x"}}}
	opts := prompt.Options{Technique: prompt.RAG}

	if Fingerprint(&a, "t", opts) != Fingerprint(&b, "t", opts) {
		t.Error("item ids should not affect the fingerprint")
	}
	if Fingerprint(&a, "t", opts) == Fingerprint(&a, "u", opts) {
		t.Error("template id should affect the fingerprint")
	}
	if Fingerprint(&a, "t", opts) == Fingerprint(&a, "t", prompt.Options{Technique: prompt.ReAct}) {
		t.Error("options should affect the fingerprint")
	}
	moved := prompt.FormData{Why: a.What}
	if Fingerprint(&a, "t", opts) == Fingerprint(&moved, "t", opts) {
		t.Error("slot placement should affect the fingerprint")
	}
}

func TestSaveAndLoad(t *testing.T) {
	s := newTestStore(t)

	saved, created, err := s.Save(sampleRecord("migration"))
	if err != nil {
		t.Fatalf("save error: %v", err)
	}
	if !created {
		t.Error("first save should create a record")
	}
	if _, err := uuid.Parse(saved.ID); err != nil {
		t.Errorf("id %q is not a uuid", saved.ID)
	}
	if saved.Fingerprint == "" || saved.CreatedAt.IsZero() || !saved.CreatedAt.Equal(saved.UpdatedAt) {
		t.Errorf("saved = %+v", saved)
	}

	loaded, err := s.Load(saved.ID)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if loaded.Title != saved.Title || loaded.Form.Text(prompt.SlotWhat) != "migration" || !loaded.CreatedAt.Equal(saved.CreatedAt) {
		t.Errorf("loaded = %+v, want %+v", loaded, saved)
	}
}

func TestSave_DedupesByFingerprint(t *testing.T) {
	s := newTestStore(t)

	first, _, err := s.Save(sampleRecord("migration"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.SetFavorite(first.ID, true); err != nil {
		t.Fatal(err)
	}

	again := sampleRecord("migration")
	again.Quality = 80
	second, created, err := s.Save(again)
	if err != nil {
		t.Fatal(err)
	}
	if created {
		t.Error("same inputs should update the existing record")
	}
	if second.ID != first.ID || !second.CreatedAt.Equal(first.CreatedAt) {
		t.Errorf("got id %s created %v, want %s %v", second.ID, second.CreatedAt, first.ID, first.CreatedAt)
	}
	if !second.UpdatedAt.After(first.UpdatedAt) || second.Quality != 80 || !second.IsFavorite {
		t.Errorf("update not applied: %+v", second)
	}

	all, err := s.List(Filter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 {
		t.Errorf("got %d records, want 1", len(all))
	}
}

func TestSave_InvalidID(t *testing.T) {
	s := newTestStore(t)
	rec := sampleRecord("x")
	rec.ID = "../../etc/passwd"
	if _, _, err := s.Save(rec); err == nil || !strings.Contains(err.Error(), "invalid record id") {
		t.Errorf("got %v, want invalid id error", err)
	}
}

func TestLoad_Errors(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Load("not-a-uuid"); err == nil || !strings.Contains(err.Error(), "invalid record id") {
		t.Errorf("got %v", err)
	}
	if _, err := s.Load(uuid.NewString()); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)
	saved, _, err := s.Save(sampleRecord("x"))
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(saved.ID); err != nil {
		t.Fatalf("delete error: %v", err)
	}
	if _, err := s.Load(saved.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound after delete", err)
	}
	if err := s.Delete(saved.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete: got %v, want ErrNotFound", err)
	}
}

func TestList_Filters(t *testing.T) {
	s := newTestStore(t)

	a := sampleRecord("onboarding checklist")
	a.Tags = []string{"hr", "Docs"}
	b := sampleRecord("pricing strategy")
	b.Category = prompt.CategoryBusiness
	b.Level = prompt.LevelExcellent
	c := sampleRecord("retro agenda")
	for _, r := range []Record{a, b, c} {
		if _, _, err := s.Save(r); err != nil {
			t.Fatal(err)
		}
	}
	recs, _ := s.List(Filter{Query: "RETRO"})
	if _, err := s.SetFavorite(recs[0].ID, true); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"all newest first", Filter{}, []string{"Plan retro agenda", "Plan pricing strategy", "Plan onboarding checklist"}},
		{"query on generated", Filter{Query: "pricing"}, []string{"Plan pricing strategy"}},
		{"category", Filter{Category: prompt.CategoryBusiness}, []string{"Plan pricing strategy"}},
		{"level", Filter{Level: prompt.LevelHigh}, []string{"Plan retro agenda", "Plan onboarding checklist"}},
		{"favorite", Filter{FavoriteOnly: true}, []string{"Plan retro agenda"}},
		{"tags", Filter{Tags: []string{"docs", "HR"}}, []string{"Plan onboarding checklist"}},
		{"missing tag", Filter{Tags: []string{"docs", "legal"}}, nil},
		{"since", Filter{Since: time.Date(2026, 3, 1, 9, 2, 0, 0, time.UTC)}, []string{"Plan retro agenda", "Plan pricing strategy"}},
		{"until", Filter{Until: time.Date(2026, 3, 1, 9, 1, 0, 0, time.UTC)}, []string{"Plan onboarding checklist"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.List(tt.filter)
			if err != nil {
				t.Fatal(err)
			}
			titles := make([]string, len(got))
			for i, r := range got {
				titles[i] = r.Title
			}
			if strings.Join(titles, "|") != strings.Join(tt.want, "|") {
				t.Errorf("got %q, want %q", titles, tt.want)
			}
		})
	}
}

func TestList_EmptyDir(t *testing.T) {
	s := newTestStore(t)
	got, err := s.List(Filter{})
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d records", len(got))
	}
}

func TestList_SkipsForeignFiles(t *testing.T) {
	s := newTestStore(t)
	if _, _, err := s.Save(sampleRecord("x")); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(s.Dir(), "notes.json"), []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := s.List(Filter{})
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("got %d records, want 1", len(got))
	}
}

func TestSave_WritesLog(t *testing.T) {
	s := newTestStore(t)
	rec := sampleRecord("x")
	rec.Tags = []string{"ops"}
	if _, _, err := s.Save(rec); err != nil {
		t.Fatal(err)
	}
	if _, _, err := s.Save(rec); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(s.Dir(), LogFile))
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	log := string(data)
	if !strings.HasPrefix(log, "# HISTORY\n\n## 2026-03-01\n\nUpdated **Plan x**") {
		t.Errorf("log should start with the latest entry, got:\n%s", log)
	}
	if strings.Count(log, "## 2026-03-01") != 2 || !strings.Contains(log, "Saved **Plan x**") {
		t.Errorf("log should keep both entries, got:\n%s", log)
	}
	if !strings.Contains(log, "- Quality: 72 (high)\n- Tags: ops\n") {
		t.Errorf("log entry missing details, got:\n%s", log)
	}
}
