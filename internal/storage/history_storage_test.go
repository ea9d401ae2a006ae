package storage

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"InterviewPractice_FeedbackService/internal/models"
)

func newStore(t *testing.T, limit int) *HistoryStore {
	t.Helper()
	s, err := NewHistoryStore(context.Background(), limit)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func report(question string, score int) models.FeedbackReport {
	return models.FeedbackReport{
		Question:               question,
		Transcription:          "answer to " + question,
		GrammarScore:           score,
		Strengths:              []string{"clear"},
		Weaknesses:             []string{},
		ImprovementSuggestions: []string{},
	}
}

func TestHistoryAppendAndList(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, 50)

	for i := 1; i <= 3; i++ {
		entry, err := s.Append(ctx, "session-a", report(fmt.Sprintf("q%d", i), i))
		if err != nil {
			t.Fatal(err)
		}
		if entry.ID == 0 || entry.Response != fmt.Sprintf("answer to q%d", i) {
			t.Fatalf("unexpected entry %+v", entry)
		}
	}
	if _, err := s.Append(ctx, "session-b", report("other", 9)); err != nil {
		t.Fatal(err)
	}

	entries, err := s.List(ctx, "session-a")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Question != "q3" || entries[2].Question != "q1" {
		t.Fatalf("expected newest first, got %s..%s", entries[0].Question, entries[2].Question)
	}
	if entries[0].Report.GrammarScore != 3 || entries[0].Report.Strengths[0] != "clear" || entries[0].SessionID != "session-a" {
		t.Fatalf("report not round-tripped: %+v", entries[0])
	}
	if entries[0].CreatedAt.IsZero() {
		t.Fatal("created_at should be set")
	}
}

func TestHistoryPrunesToLimit(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, 2)

	for i := 1; i <= 5; i++ {
		if _, err := s.Append(ctx, "s", report(fmt.Sprintf("q%d", i), i)); err != nil {
			t.Fatal(err)
		}
	}
	entries, err := s.List(ctx, "s")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 || entries[0].Question != "q5" || entries[1].Question != "q4" {
		t.Fatalf("unexpected entries %+v", entries)
	}
}

func TestHistoryClear(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, 10)

	s.Append(ctx, "s", report("q1", 1))
	s.Append(ctx, "s", report("q2", 2))
	s.Append(ctx, "keep", report("q3", 3))

	n, err := s.Clear(ctx, "s")
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Fatalf("expected 2 removed, got %d", n)
	}
	if entries, _ := s.List(ctx, "s"); len(entries) != 0 || entries == nil {
		t.Fatalf("expected empty non-nil list, got %#v", entries)
	}
	if entries, _ := s.List(ctx, "keep"); len(entries) != 1 {
		t.Fatal("other sessions must be untouched")
	}
}

func TestHistoryConcurrentAppends(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, 100)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Append(ctx, "busy", report(fmt.Sprintf("q%d", i), 5)); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	entries, err := s.List(ctx, "busy")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 20 {
		t.Fatalf("expected 20 entries, got %d", len(entries))
	}
}
