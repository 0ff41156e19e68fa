package host

import (
	"errors"
	"testing"

	"github.com/dshills/genedit/internal/textdoc"
)

func TestStoreOpenAndGet(t *testing.T) {
	s := NewStore()

	if err := s.Open("file:///a.go", "go", 1, "package a\n"); err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	doc, ok := s.Get("file:///a.go")
	if !ok {
		t.Fatal("Get missed an open document")
	}
	if doc.LanguageID != "go" || doc.Version != 1 || doc.Text != "package a\n" {
		t.Errorf("doc = %+v", doc)
	}

	if err := s.Open("file:///a.go", "go", 1, ""); !errors.Is(err, ErrDocumentAlreadyOpen) {
		t.Errorf("duplicate Open = %v, want ErrDocumentAlreadyOpen", err)
	}
}

func TestStoreApply(t *testing.T) {
	s := NewStore()
	if err := s.Open("file:///a.go", "go", 1, "hello world\n"); err != nil {
		t.Fatal(err)
	}

	err := s.Apply("file:///a.go", 2, []textdoc.ContentChange{
		{
			Range: textdoc.Range{
				Start: textdoc.Position{Line: 0, Character: 6},
				End:   textdoc.Position{Line: 0, Character: 11},
			},
			Text: "there",
		},
	})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	doc, _ := s.Get("file:///a.go")
	if doc.Text != "hello there\n" {
		t.Errorf("text = %q", doc.Text)
	}
	if doc.Version != 2 {
		t.Errorf("version = %d, want 2", doc.Version)
	}
}

func TestStoreApplyBatchInOrder(t *testing.T) {
	s := NewStore()
	if err := s.Open("file:///a.go", "go", 1, "abc\n"); err != nil {
		t.Fatal(err)
	}

	// The second change is expressed against the text produced by the
	// first one.
	err := s.Apply("file:///a.go", 2, []textdoc.ContentChange{
		{
			Range: textdoc.Range{
				Start: textdoc.Position{Line: 0, Character: 0},
				End:   textdoc.Position{Line: 0, Character: 0},
			},
			Text: "x\n",
		},
		{
			Range: textdoc.Range{
				Start: textdoc.Position{Line: 1, Character: 3},
				End:   textdoc.Position{Line: 1, Character: 3},
			},
			Text: "d",
		},
	})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	doc, _ := s.Get("file:///a.go")
	if doc.Text != "x\nabcd\n" {
		t.Errorf("text = %q, want %q", doc.Text, "x\nabcd\n")
	}
}

func TestStoreApplyStaleVersion(t *testing.T) {
	s := NewStore()
	if err := s.Open("file:///a.go", "go", 5, "x\n"); err != nil {
		t.Fatal(err)
	}

	err := s.Apply("file:///a.go", 5, nil)
	if !errors.Is(err, ErrStaleVersion) {
		t.Errorf("Apply with same version = %v, want ErrStaleVersion", err)
	}
}

func TestStoreApplyUnknownDocument(t *testing.T) {
	s := NewStore()
	if err := s.Apply("file:///nope.go", 1, nil); !errors.Is(err, ErrDocumentNotOpen) {
		t.Errorf("Apply = %v, want ErrDocumentNotOpen", err)
	}
}

func TestStoreClose(t *testing.T) {
	s := NewStore()
	if err := s.Open("file:///a.go", "go", 1, ""); err != nil {
		t.Fatal(err)
	}
	if s.Len() != 1 {
		t.Fatalf("Len = %d", s.Len())
	}

	if err := s.Close("file:///a.go"); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len after close = %d", s.Len())
	}
	if _, ok := s.Get("file:///a.go"); ok {
		t.Error("closed document still visible")
	}

	if err := s.Close("file:///a.go"); !errors.Is(err, ErrDocumentNotOpen) {
		t.Errorf("double Close = %v, want ErrDocumentNotOpen", err)
	}
}

func TestStoreGetReturnsSnapshot(t *testing.T) {
	s := NewStore()
	if err := s.Open("file:///a.go", "go", 1, "one\n"); err != nil {
		t.Fatal(err)
	}

	doc, _ := s.Get("file:///a.go")
	doc.Text = "mutated"

	fresh, _ := s.Get("file:///a.go")
	if fresh.Text != "one\n" {
		t.Error("Get must return a copy, not shared state")
	}
}
