package jsonfile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/studiowebux/gradebook/internal/storage"
	"github.com/studiowebux/gradebook/internal/types"
)

func TestLoad_MissingFileIsEmpty(t *testing.T) {
	b := New(filepath.Join(t.TempDir(), "data.json"))

	snap, err := b.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if snap.Students.Len() != 0 || len(snap.Accounts) != 0 {
		t.Errorf("expected empty snapshot, got %d students, %d accounts", snap.Students.Len(), len(snap.Accounts))
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "data.json")
	b := New(path)

	snap := types.NewSnapshot()
	snap.Students.Set("S2", types.NewStudent("Bob", types.Scores{Chinese: 60, Math: 70, English: 80}))
	snap.Students.Set("S1", types.NewStudent("Alice", types.Scores{Chinese: 90, Math: 80, English: 70}))
	snap.Accounts["admin"] = types.Account{Password: "x", Role: types.RoleAdmin}
	snap.Accounts["S1"] = types.Account{Password: "y", Role: types.RoleStudent}

	if err := b.Save(snap); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := b.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	ids := got.Students.IDs()
	if len(ids) != 2 || ids[0] != "S2" || ids[1] != "S1" {
		t.Errorf("order = %v, want [S2 S1]", ids)
	}
	alice, _ := got.Students.Get("S1")
	if alice.Total != 240 || alice.Average != 80 {
		t.Errorf("Alice = %+v", alice)
	}
	if got.Accounts["S1"].Role != types.RoleStudent || got.Accounts["admin"].Password != "x" {
		t.Errorf("accounts = %+v", got.Accounts)
	}
}

func TestSave_WritesHistoricalKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	b := New(path)

	snap := types.NewSnapshot()
	snap.Students.Set("S1", types.NewStudent("Alice", types.Scores{Chinese: 90, Math: 80, English: 70}))
	if err := b.Save(snap); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	for _, key := range []string{`"students"`, `"accounts"`, `"chinese"`, `"total"`, `"average"`} {
		if !strings.Contains(string(data), key) {
			t.Errorf("data file missing %s:\n%s", key, data)
		}
	}
}

func TestLoad_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	snap, err := New(path).Load()
	if !errors.Is(err, storage.ErrPersistence) {
		t.Fatalf("err = %v, want ErrPersistence", err)
	}
	if snap.Students == nil || snap.Accounts == nil {
		t.Error("failed load should still return usable containers")
	}
}

func TestLoad_RecomputesDerivedFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	doc := `{"students":{"S1":{"name":"Alice","chinese":90,"math":80,"english":70,"total":1,"average":1}},"accounts":{}}`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	snap, err := New(path).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	st, _ := snap.Students.Get("S1")
	if st.Total != 240 || st.Average != 80 {
		t.Errorf("derived fields not recomputed: %+v", st)
	}
}
