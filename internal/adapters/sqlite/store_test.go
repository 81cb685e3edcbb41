package sqlite

import (
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "funkit.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStoreAddGet(t *testing.T) {
	s := openTestStore(t)

	id, err := s.Add("Intro", "hello [Next](doc:2)")
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}

	doc, err := s.Get(id)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if doc == nil {
		t.Fatal("expected a document")
	}
	if doc.Title != "Intro" || doc.Body != "hello [Next](doc:2)" {
		t.Errorf("got %+v", doc)
	}
	if doc.IsBinary() {
		t.Error("text document reported as binary")
	}
}

func TestStoreGetAbsent(t *testing.T) {
	s := openTestStore(t)

	doc, err := s.Get(99)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc != nil {
		t.Errorf("absent id should yield nil, got %+v", doc)
	}
}

func TestStoreBinary(t *testing.T) {
	s := openTestStore(t)

	id, err := s.AddBinary("logo", []byte{0x89, 0x50, 0x4e, 0x47})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}

	doc, err := s.Get(id)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !doc.IsBinary() {
		t.Fatal("expected binary document")
	}
	if len(doc.Blob) != 4 {
		t.Errorf("blob = %v", doc.Blob)
	}
	if doc.Body != "" {
		t.Errorf("binary document carries text body %q", doc.Body)
	}

	if err := s.Append(id, "extra"); err == nil {
		t.Error("append to binary document should fail")
	}
}

func TestStoreListAndIndex(t *testing.T) {
	s := openTestStore(t)

	first, _ := s.Add("A", "first body")
	second, _ := s.Add("B", "")
	third, _ := s.AddBinary("C", []byte{1, 2, 3})

	ids, err := s.ListAllIDs()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	want := []int64{first, second, third}
	if len(ids) != len(want) {
		t.Fatalf("ids = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ids[%d] = %d, want %d", i, ids[i], want[i])
		}
	}

	entries, err := s.Index()
	if err != nil {
		t.Fatalf("index failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Description != "first body" {
		t.Errorf("entry 0 description = %q", entries[0].Description)
	}
	if entries[2].Description != "[3 bytes]" {
		t.Errorf("binary entry description = %q", entries[2].Description)
	}
}

func TestStoreUpdateAppendDelete(t *testing.T) {
	s := openTestStore(t)
	id, _ := s.Add("notes", "line one")

	if err := s.Update(id, "replaced"); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	doc, _ := s.Get(id)
	if doc.Body != "replaced" {
		t.Errorf("body = %q", doc.Body)
	}

	if err := s.Append(id, "line two"); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	doc, _ = s.Get(id)
	if doc.Body != "replaced\nline two" {
		t.Errorf("body after append = %q", doc.Body)
	}

	if err := s.Update(99, "x"); err == nil {
		t.Error("updating an absent id should fail")
	}
	if err := s.Append(99, "x"); err == nil {
		t.Error("appending to an absent id should fail")
	}

	if err := s.Delete(id); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if doc, _ := s.Get(id); doc != nil {
		t.Error("document survived delete")
	}
	if err := s.Delete(id); err == nil {
		t.Error("deleting twice should fail")
	}
}

func TestStoreParent(t *testing.T) {
	s := openTestStore(t)
	root, _ := s.Add("root", "")
	child, _ := s.Add("child", "")

	if _, ok, err := s.Parent(child); err != nil || ok {
		t.Errorf("fresh document should have no parent (ok=%v, err=%v)", ok, err)
	}

	if err := s.SetParent(child, root); err != nil {
		t.Fatalf("set parent failed: %v", err)
	}
	parent, ok, err := s.Parent(child)
	if err != nil {
		t.Fatalf("parent lookup failed: %v", err)
	}
	if !ok || parent != root {
		t.Errorf("parent = %d ok=%v, want %d", parent, ok, root)
	}

	if err := s.SetParent(child, 0); err != nil {
		t.Fatalf("clear parent failed: %v", err)
	}
	if _, ok, _ := s.Parent(child); ok {
		t.Error("parent should be cleared")
	}

	if _, ok, err := s.Parent(404); err != nil || ok {
		t.Errorf("absent id should have no parent (ok=%v, err=%v)", ok, err)
	}
}
