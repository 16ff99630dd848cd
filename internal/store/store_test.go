package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/verte-zerg/readaloud/internal/level"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "bank.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestImportAndLoadTable(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	n, err := st.ImportSentences(ctx, "Grade 1", []string{"The sun is hot.", " ", "We play outside."}, false)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 sentences, got %d", n)
	}
	if _, err := st.ImportSentences(ctx, "Grade 2", []string{"Rivers carry water to the sea."}, false); err != nil {
		t.Fatalf("import: %v", err)
	}
	n, err = st.ImportSentences(ctx, "Grade 1", []string{"Birds can fly."}, false)
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 sentences after append, got %d", n)
	}

	table, err := st.LoadTable(ctx)
	if err != nil {
		t.Fatalf("load table: %v", err)
	}
	levels := table.Levels()
	if len(levels) != 2 || levels[0] != "Grade 1" || levels[1] != "Grade 2" {
		t.Fatalf("unexpected levels: %v", levels)
	}
	pool, err := table.Sentences("Grade 1")
	if err != nil {
		t.Fatalf("sentences: %v", err)
	}
	want := []string{"The sun is hot.", "We play outside.", "Birds can fly."}
	if len(pool) != len(want) {
		t.Fatalf("expected %v, got %v", want, pool)
	}
	for i := range want {
		if pool[i] != want[i] {
			t.Fatalf("sentence %d: expected %q, got %q", i, want[i], pool[i])
		}
	}
}

func TestImportReplace(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	if _, err := st.ImportSentences(ctx, "UKG", []string{"Old one.", "Old two."}, false); err != nil {
		t.Fatalf("import: %v", err)
	}
	n, err := st.ImportSentences(ctx, "UKG", []string{"New one."}, true)
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 sentence after replace, got %d", n)
	}
	infos, err := st.ListLevels(ctx)
	if err != nil {
		t.Fatalf("list levels: %v", err)
	}
	if len(infos) != 1 || infos[0].Name != "UKG" || infos[0].Sentences != 1 {
		t.Fatalf("unexpected level infos: %+v", infos)
	}
	if infos[0].ImportedAt.IsZero() {
		t.Fatalf("expected import time to be set")
	}
}

func TestImportEmptyName(t *testing.T) {
	st := openTestStore(t)
	if _, err := st.ImportSentences(context.Background(), "  ", []string{"A."}, false); err == nil {
		t.Fatalf("expected error for empty level name")
	}
}

func TestRemoveLevel(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	if _, err := st.ImportSentences(ctx, "PhD", []string{"Entropy increases."}, false); err != nil {
		t.Fatalf("import: %v", err)
	}
	removed, err := st.RemoveLevel(ctx, "PhD")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if !removed {
		t.Fatalf("expected level to be removed")
	}
	removed, err = st.RemoveLevel(ctx, "PhD")
	if err != nil {
		t.Fatalf("remove again: %v", err)
	}
	if removed {
		t.Fatalf("expected second removal to report false")
	}
	table, err := st.LoadTable(ctx)
	if err != nil {
		t.Fatalf("load table: %v", err)
	}
	if _, err := table.Sentences("PhD"); !errors.Is(err, level.ErrUnknownLevel) {
		t.Fatalf("expected removed level to be unknown, got %v", err)
	}
}
