package lexicon

import (
	"testing"

	"flourish/internal/store"
)

func testDB(t *testing.T) *store.DB {
	t.Helper()
	db, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestStoreSampleEmpty(t *testing.T) {
	lex := NewStore(testDB(t))
	if got := lex.Sample(0.3); got != "" {
		t.Errorf("Sample on empty table = %q, want empty", got)
	}
}

func TestStoreSamplePersistsUses(t *testing.T) {
	db := testDB(t)
	if err := db.AddCollocation("down the garden path"); err != nil {
		t.Fatalf("AddCollocation: %v", err)
	}

	lex := NewStore(db)
	if got := lex.Sample(0.3); got != "down the garden path" {
		t.Fatalf("Sample = %q", got)
	}

	collocs, err := db.ListCollocations()
	if err != nil {
		t.Fatalf("ListCollocations: %v", err)
	}
	if len(collocs) != 1 || collocs[0].Uses != 1 {
		t.Errorf("collocations = %+v, want one phrase with 1 use", collocs)
	}
}

func TestStoreSampleNoveltyPrefersFresh(t *testing.T) {
	db := testDB(t)
	for _, p := range []string{"well worn phrase", "brand new phrase"} {
		if err := db.AddCollocation(p); err != nil {
			t.Fatalf("AddCollocation: %v", err)
		}
	}
	for i := 0; i < 50; i++ {
		if err := db.TouchCollocation("well worn phrase"); err != nil {
			t.Fatalf("TouchCollocation: %v", err)
		}
	}

	lex := NewStore(db)
	for i := 0; i < 10; i++ {
		if got := lex.Sample(1); got != "brand new phrase" {
			t.Fatalf("Sample(1) = %q, want the fresh phrase", got)
		}
	}
}
