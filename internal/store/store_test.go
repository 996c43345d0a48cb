package store

import (
	"path/filepath"
	"testing"
)

type doc struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestMemoryRoundTrip(t *testing.T) {
	m := NewMemory()
	in := []doc{{ID: "1", Name: "one"}, {ID: "2", Name: "two"}}
	if err := m.SaveCollection(KeyQuotes, in); err != nil {
		t.Fatalf("save: %v", err)
	}
	var out []doc
	if err := m.LoadCollection(KeyQuotes, &out); err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(out) != 2 || out[1].Name != "two" {
		t.Fatalf("unexpected round trip: %+v", out)
	}
}

func TestMemoryMissingKeyLeavesOutUntouched(t *testing.T) {
	m := NewMemory()
	out := []doc{{ID: "sentinel"}}
	if err := m.LoadCollection("nothing", &out); err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(out) != 1 || out[0].ID != "sentinel" {
		t.Fatalf("missing key should be a no-op, got %+v", out)
	}
}

func TestGormStoreRoundTrip(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "test.db")
	st, err := Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := st.SaveCollection(KeyClients, []doc{{ID: "a", Name: "Acme"}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	// Second save upserts the same key.
	if err := st.SaveCollection(KeyClients, []doc{{ID: "a", Name: "Acme"}, {ID: "b", Name: "Tech"}}); err != nil {
		t.Fatalf("save again: %v", err)
	}
	var out []doc
	if err := st.LoadCollection(KeyClients, &out); err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(out) != 2 || out[1].ID != "b" {
		t.Fatalf("unexpected load: %+v", out)
	}
	if err := st.Ping(); err != nil {
		t.Fatalf("ping: %v", err)
	}
}

func TestGormStoreMissingKey(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "test.db")
	st, err := Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	var out []doc
	if err := st.LoadCollection("never_saved", &out); err != nil {
		t.Fatalf("load: %v", err)
	}
	if out != nil {
		t.Fatalf("expected nil slice, got %+v", out)
	}
}
