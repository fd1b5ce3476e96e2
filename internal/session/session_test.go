package session

import (
	"context"
	"errors"
	"testing"

	"scorecut/internal/parts"
)

type fakeExtractor struct {
	headers []parts.PageHeader
	pages   int
	err     error
	calls   int
}

func (f *fakeExtractor) ExtractHeaders(ctx context.Context, pdfPath string) ([]parts.PageHeader, int, error) {
	f.calls++
	if f.err != nil {
		return nil, 0, f.err
	}
	return f.headers, f.pages, nil
}

// cleanHeaders is an 8-page document with two clearly labeled 4-page parts.
func cleanHeaders() []parts.PageHeader {
	h := make([]parts.PageHeader, 0, 8)
	for i := 0; i < 4; i++ {
		h = append(h, parts.PageHeader{PageIndex: i, HeaderText: "1st Flute"})
	}
	for i := 4; i < 8; i++ {
		h = append(h, parts.PageHeader{PageIndex: i, HeaderText: "Oboe"})
	}
	return h
}

func TestRunAutoCommitsCleanDocument(t *testing.T) {
	primary := &fakeExtractor{headers: cleanHeaders(), pages: 8}
	corrective := &fakeExtractor{headers: cleanHeaders(), pages: 8}
	s := New(primary, corrective, Config{})

	outcome, err := s.Run(context.Background(), "test.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if outcome.State != StateAutoCommit {
		t.Errorf("state: got %q, want %q (reasons %v)", outcome.State, StateAutoCommit, outcome.Passes[0].Gate.Reasons)
	}
	if len(outcome.Passes) != 1 {
		t.Errorf("got %d passes, want 1", len(outcome.Passes))
	}
	if corrective.calls != 0 {
		t.Errorf("corrective extractor ran %d times on a passing document", corrective.calls)
	}
	if outcome.DocumentID == "" {
		t.Error("document ID is empty")
	}
	if !outcome.Passes[0].FromTextLayer {
		t.Error("first pass must be marked as text-layer")
	}
}

func TestRunCorrectivePassRecovers(t *testing.T) {
	// The text layer yields nothing; the vision pass reads the real headers.
	primary := &fakeExtractor{pages: 8}
	corrective := &fakeExtractor{headers: cleanHeaders(), pages: 8}
	s := New(primary, corrective, Config{})

	outcome, err := s.Run(context.Background(), "test.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(outcome.Passes) != 2 {
		t.Fatalf("got %d passes, want 2", len(outcome.Passes))
	}
	if outcome.State != StateAutoCommit {
		t.Errorf("state: got %q, want %q (reasons %v)", outcome.State, StateAutoCommit, outcome.Passes[1].Gate.Reasons)
	}
	if !outcome.Passes[0].Gate.Failed {
		t.Error("first pass should have failed the gate")
	}
	if outcome.Passes[1].FromTextLayer {
		t.Error("corrective pass must not be marked as text-layer")
	}
}

func TestRunWithoutCorrectiveRoutesToReview(t *testing.T) {
	primary := &fakeExtractor{pages: 8}
	s := New(primary, nil, Config{})

	outcome, err := s.Run(context.Background(), "test.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if outcome.State != StatePendingReview {
		t.Errorf("state: got %q, want %q", outcome.State, StatePendingReview)
	}
	if len(outcome.Passes) != 1 {
		t.Errorf("got %d passes, want 1", len(outcome.Passes))
	}
}

func TestRunCorrectiveFailureKeepsFirstPass(t *testing.T) {
	primary := &fakeExtractor{pages: 8}
	corrective := &fakeExtractor{err: errors.New("render failed")}
	s := New(primary, corrective, Config{})

	outcome, err := s.Run(context.Background(), "test.pdf")
	if err != nil {
		t.Fatalf("a corrective failure must not fail the session: %v", err)
	}

	if outcome.State != StatePendingReview {
		t.Errorf("state: got %q, want %q", outcome.State, StatePendingReview)
	}
	if len(outcome.Passes) != 1 {
		t.Errorf("got %d passes, want 1", len(outcome.Passes))
	}
}

func TestRunPrimaryFailureFailsSession(t *testing.T) {
	primary := &fakeExtractor{err: errors.New("unreadable pdf")}
	s := New(primary, nil, Config{})

	if _, err := s.Run(context.Background(), "test.pdf"); err == nil {
		t.Fatal("expected error when the primary extractor fails")
	}
}
