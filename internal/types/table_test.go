package types

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestStudentTable_KeepsInsertionOrder(t *testing.T) {
	table := NewStudentTable()
	table.Set("S3", NewStudent("Carol", Scores{1, 2, 3}))
	table.Set("S1", NewStudent("Alice", Scores{90, 80, 70}))
	table.Set("S2", NewStudent("Bob", Scores{60, 60, 60}))

	if got, want := table.IDs(), []string{"S3", "S1", "S2"}; !reflect.DeepEqual(got, want) {
		t.Errorf("IDs() = %v, want %v", got, want)
	}

	// Replacing an existing id keeps its position
	table.Set("S1", NewStudent("Alicia", Scores{1, 1, 1}))
	if got, want := table.IDs(), []string{"S3", "S1", "S2"}; !reflect.DeepEqual(got, want) {
		t.Errorf("IDs() after replace = %v, want %v", got, want)
	}

	if !table.Delete("S1") {
		t.Fatal("Delete(S1) = false, want true")
	}
	if table.Delete("S1") {
		t.Error("second Delete(S1) = true, want false")
	}
	if got, want := table.IDs(), []string{"S3", "S2"}; !reflect.DeepEqual(got, want) {
		t.Errorf("IDs() after delete = %v, want %v", got, want)
	}
}

func TestStudentTable_JSONPreservesKeyOrder(t *testing.T) {
	data := []byte(`{"z9":{"name":"Zed","chinese":1,"math":2,"english":3,"total":6,"average":2},
		"a1":{"name":"Ann","chinese":90,"math":80,"english":70,"total":240,"average":80}}`)

	var table StudentTable
	if err := json.Unmarshal(data, &table); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got, want := table.IDs(), []string{"z9", "a1"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("IDs() = %v, want %v", got, want)
	}

	out, err := json.Marshal(&table)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var again StudentTable
	if err := json.Unmarshal(out, &again); err != nil {
		t.Fatalf("Unmarshal again: %v", err)
	}
	if !reflect.DeepEqual(again.Entries(), table.Entries()) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", again.Entries(), table.Entries())
	}
}

func TestStudentTable_UnmarshalRejectsNonObject(t *testing.T) {
	var table StudentTable
	if err := json.Unmarshal([]byte(`[1,2]`), &table); err == nil {
		t.Error("expected error for array input")
	}
}

func TestSnapshot_NormalizeRecomputesDerivedFields(t *testing.T) {
	snap := Snapshot{}
	snap.Normalize()
	if snap.Students == nil || snap.Accounts == nil {
		t.Fatal("Normalize should initialize containers")
	}

	snap.Students.Set("S1", Student{Name: "Alice", Chinese: 90, Math: 80, English: 70, Total: 1, Average: 1})
	snap.Normalize()

	st, _ := snap.Students.Get("S1")
	if st.Total != 240 {
		t.Errorf("Total = %v, want 240", st.Total)
	}
	if st.Average != 80 {
		t.Errorf("Average = %v, want 80", st.Average)
	}
}
