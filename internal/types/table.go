package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// StudentTable is a student id → record mapping that remembers insertion
// order. Its JSON form is a plain object whose key order is the insertion
// order.
type StudentTable struct {
	order   []string
	records map[string]Student
}

// NewStudentTable creates an empty table
func NewStudentTable() *StudentTable {
	return &StudentTable{records: make(map[string]Student)}
}

// Len returns the number of records
func (t *StudentTable) Len() int {
	return len(t.order)
}

// Has reports whether id is present
func (t *StudentTable) Has(id string) bool {
	_, ok := t.records[id]
	return ok
}

// Get returns a copy of the record for id
func (t *StudentTable) Get(id string) (Student, bool) {
	s, ok := t.records[id]
	return s, ok
}

// Set inserts or replaces the record for id. New ids go to the end.
func (t *StudentTable) Set(id string, s Student) {
	if _, ok := t.records[id]; !ok {
		t.order = append(t.order, id)
	}
	t.records[id] = s
}

// Delete removes id and reports whether it was present
func (t *StudentTable) Delete(id string) bool {
	if _, ok := t.records[id]; !ok {
		return false
	}
	delete(t.records, id)
	for i, v := range t.order {
		if v == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return true
}

// IDs returns the ids in insertion order
func (t *StudentTable) IDs() []string {
	ids := make([]string, len(t.order))
	copy(ids, t.order)
	return ids
}

// Entries returns all records in insertion order
func (t *StudentTable) Entries() []StudentEntry {
	entries := make([]StudentEntry, 0, len(t.order))
	for _, id := range t.order {
		entries = append(entries, StudentEntry{ID: id, Student: t.records[id]})
	}
	return entries
}

// Clone returns a deep copy
func (t *StudentTable) Clone() *StudentTable {
	c := NewStudentTable()
	for _, id := range t.order {
		c.Set(id, t.records[id])
	}
	return c
}

// MarshalJSON writes the table as an object in insertion order
func (t *StudentTable) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, id := range t.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(id)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(t.records[id])
		if err != nil {
			return nil, fmt.Errorf("failed to marshal student %s: %w", id, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object keeping the key order of the document
func (t *StudentTable) UnmarshalJSON(data []byte) error {
	t.order = nil
	t.records = make(map[string]Student)

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("students: expected object, got %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		id, ok := tok.(string)
		if !ok {
			return fmt.Errorf("students: expected string key, got %v", tok)
		}
		var s Student
		if err := dec.Decode(&s); err != nil {
			return fmt.Errorf("students: record %s: %w", id, err)
		}
		t.Set(id, s)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}
