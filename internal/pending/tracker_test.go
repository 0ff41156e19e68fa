package pending

import (
	"context"
	"errors"
	"testing"

	"github.com/dshills/genedit/internal/textdoc"
)

// recordingWriter captures Replace calls for inspection.
type recordingWriter struct {
	calls []writerCall
	ok    bool
	err   error
}

type writerCall struct {
	docID textdoc.DocumentID
	rng   textdoc.Range
	text  string
}

func (w *recordingWriter) Replace(_ context.Context, docID textdoc.DocumentID, r textdoc.Range, text string) (bool, error) {
	w.calls = append(w.calls, writerCall{docID: docID, rng: r, text: text})
	return w.ok, w.err
}

func TestTrackAndRemove(t *testing.T) {
	tr := NewTracker()

	if err := tr.Track("r1", "file:///a.go", rng(1, 0, 2, 0)); err != nil {
		t.Fatalf("Track failed: %v", err)
	}
	if got := tr.ActiveCount(); got != 1 {
		t.Errorf("ActiveCount = %d, want 1", got)
	}

	tr.Remove("r1")
	if got := tr.ActiveCount(); got != 0 {
		t.Errorf("ActiveCount after Remove = %d, want 0", got)
	}

	// Removing an unknown id is a no-op.
	tr.Remove("r1")
	tr.Remove("never-tracked")
	if got := tr.ActiveCount(); got != 0 {
		t.Errorf("ActiveCount = %d, want 0", got)
	}
}

func TestTrackDuplicateID(t *testing.T) {
	tr := NewTracker()

	if err := tr.Track("r1", "file:///a.go", rng(1, 0, 2, 0)); err != nil {
		t.Fatalf("Track failed: %v", err)
	}
	err := tr.Track("r1", "file:///b.go", rng(5, 0, 6, 0))
	if !errors.Is(err, ErrDuplicateID) {
		t.Errorf("second Track error = %v, want ErrDuplicateID", err)
	}

	// The original registration is untouched.
	e, ok := tr.Get("r1")
	if !ok || e.DocID != "file:///a.go" {
		t.Errorf("Get after collision = %+v, %v", e, ok)
	}
}

func TestTrackInvalidRange(t *testing.T) {
	tr := NewTracker()
	err := tr.Track("r1", "file:///a.go", rng(5, 0, 2, 0))
	if !errors.Is(err, ErrInvalidRange) {
		t.Errorf("Track error = %v, want ErrInvalidRange", err)
	}
}

func TestOnMutationRebasesTrackedRange(t *testing.T) {
	tr := NewTracker()
	if err := tr.Track("r1", "d", rng(10, 0, 12, 5)); err != nil {
		t.Fatalf("Track failed: %v", err)
	}

	// Insert two newline-terminated lines at (2,0).
	tr.OnMutation(textdoc.MutationEvent{
		DocID: "d",
		Changes: []textdoc.ContentChange{
			{Range: rng(2, 0, 2, 0), Text: "first\nsecond\n"},
		},
	})

	e, _ := tr.Get("r1")
	want := rng(12, 0, 14, 5)
	if e.Range != want {
		t.Errorf("rebased range = %v, want %v", e.Range, want)
	}
}

func TestOnMutationOtherDocumentUntouched(t *testing.T) {
	tr := NewTracker()
	if err := tr.Track("r1", "d", rng(10, 0, 12, 5)); err != nil {
		t.Fatalf("Track failed: %v", err)
	}

	tr.OnMutation(textdoc.MutationEvent{
		DocID: "other",
		Changes: []textdoc.ContentChange{
			{Range: rng(0, 0, 0, 0), Text: "lines\nlines\n"},
		},
	})

	e, _ := tr.Get("r1")
	if e.Range != rng(10, 0, 12, 5) {
		t.Errorf("range changed by unrelated document: %v", e.Range)
	}
	if got := tr.ActiveCount(); got != 1 {
		t.Errorf("ActiveCount = %d, want 1", got)
	}
}

func TestOnMutationDisjointEdits(t *testing.T) {
	tr := NewTracker()
	if err := tr.Track("early", "d", rng(2, 0, 3, 0)); err != nil {
		t.Fatalf("Track failed: %v", err)
	}
	if err := tr.Track("late", "d", rng(20, 0, 22, 0)); err != nil {
		t.Fatalf("Track failed: %v", err)
	}

	// A change between the two shifts only the later one.
	tr.OnMutation(textdoc.MutationEvent{
		DocID: "d",
		Changes: []textdoc.ContentChange{
			{Range: rng(10, 0, 10, 0), Text: "a\nb\nc\n"},
		},
	})

	early, _ := tr.Get("early")
	if early.Range != rng(2, 0, 3, 0) {
		t.Errorf("earlier edit moved: %v", early.Range)
	}
	late, _ := tr.Get("late")
	if late.Range != rng(23, 0, 25, 0) {
		t.Errorf("later edit = %v, want shifted by 3 lines", late.Range)
	}
}

func TestOnMutationMultipleChangesCompose(t *testing.T) {
	tr := NewTracker()
	if err := tr.Track("r1", "d", rng(10, 0, 10, 8)); err != nil {
		t.Fatalf("Track failed: %v", err)
	}

	// One batched host event: each change applies against the document
	// state produced by the previous one.
	tr.OnMutation(textdoc.MutationEvent{
		DocID: "d",
		Changes: []textdoc.ContentChange{
			{Range: rng(0, 0, 0, 0), Text: "header\n"},
			{Range: rng(11, 0, 11, 0), Text: ">> "},
		},
	})

	e, _ := tr.Get("r1")
	want := rng(11, 3, 11, 11)
	if e.Range != want {
		t.Errorf("composed rebase = %v, want %v", e.Range, want)
	}
}

func TestApplyAndRemoveUsesRebasedRange(t *testing.T) {
	tr := NewTracker()
	if err := tr.Track("r1", "d", rng(5, 0, 5, 10)); err != nil {
		t.Fatalf("Track failed: %v", err)
	}

	// Five lines inserted above while the backend was thinking.
	tr.OnMutation(textdoc.MutationEvent{
		DocID: "d",
		Changes: []textdoc.ContentChange{
			{Range: rng(0, 0, 0, 0), Text: "1\n2\n3\n4\n5\n"},
		},
	})

	w := &recordingWriter{ok: true}
	applied, ok, err := tr.ApplyAndRemove(context.Background(), "r1", "generated", w)
	if err != nil || !ok {
		t.Fatalf("ApplyAndRemove = %v, %v", ok, err)
	}

	if len(w.calls) != 1 {
		t.Fatalf("writer called %d times, want 1", len(w.calls))
	}
	call := w.calls[0]
	if call.rng != rng(10, 0, 10, 10) {
		t.Errorf("write range = %v, want rebased (10,0)-(10,10)", call.rng)
	}
	// The returned range is the one handed to the writer.
	if applied != call.rng {
		t.Errorf("returned range %v differs from written range %v", applied, call.rng)
	}
	if call.text != "generated" {
		t.Errorf("write text = %q", call.text)
	}
	if got := tr.ActiveCount(); got != 0 {
		t.Errorf("ActiveCount after apply = %d, want 0", got)
	}
}

func TestApplyAndRemoveNotTracked(t *testing.T) {
	tr := NewTracker()
	w := &recordingWriter{ok: true}

	_, ok, err := tr.ApplyAndRemove(context.Background(), "ghost", "text", w)
	if ok || !errors.Is(err, ErrNotTracked) {
		t.Errorf("ApplyAndRemove = %v, %v, want false, ErrNotTracked", ok, err)
	}
	if len(w.calls) != 0 {
		t.Error("writer should not be called for unknown id")
	}
}

func TestApplyAndRemoveRemovesOnFailure(t *testing.T) {
	tr := NewTracker()
	if err := tr.Track("r1", "d", rng(1, 0, 1, 5)); err != nil {
		t.Fatalf("Track failed: %v", err)
	}

	// The document view disappeared: writer reports false.
	w := &recordingWriter{ok: false, err: errors.New("view closed")}
	_, ok, err := tr.ApplyAndRemove(context.Background(), "r1", "text", w)
	if ok {
		t.Error("expected write failure")
	}
	if err == nil {
		t.Error("expected writer error to propagate")
	}
	if got := tr.ActiveCount(); got != 0 {
		t.Errorf("entry leaked after failed apply: ActiveCount = %d", got)
	}
}

func TestCountListener(t *testing.T) {
	var counts []int
	tr := NewTracker(WithCountListener(func(n int) { counts = append(counts, n) }))

	if err := tr.Track("a", "d", rng(0, 0, 0, 1)); err != nil {
		t.Fatalf("Track failed: %v", err)
	}
	if err := tr.Track("b", "d", rng(1, 0, 1, 1)); err != nil {
		t.Fatalf("Track failed: %v", err)
	}
	tr.Remove("a")
	tr.Remove("a") // no-op must not notify
	tr.Remove("b")

	want := []int{1, 2, 1, 0}
	if len(counts) != len(want) {
		t.Fatalf("notifications = %v, want %v", counts, want)
	}
	for i := range want {
		if counts[i] != want[i] {
			t.Errorf("notification %d = %d, want %d", i, counts[i], want[i])
		}
	}
}
