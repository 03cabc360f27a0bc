package models

import (
	"net/url"
	"testing"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in   string
		want TaskStatus
		ok   bool
	}{
		{"todo", StatusTodo, true},
		{"In-Progress", StatusInProgress, true},
		{" DONE ", StatusDone, true},
		{"in progress", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseStatus(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseStatus(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestDefaults(t *testing.T) {
	if got := StatusOrDefault("blocked"); got != StatusTodo {
		t.Errorf("StatusOrDefault(blocked) = %q, want todo", got)
	}
	if got := PriorityOrDefault("urgent"); got != PriorityMedium {
		t.Errorf("PriorityOrDefault(urgent) = %q, want medium", got)
	}
	if got := PriorityOrDefault("HIGH"); got != PriorityHigh {
		t.Errorf("PriorityOrDefault(HIGH) = %q, want high", got)
	}
}

func TestPriorityRank(t *testing.T) {
	if !(PriorityHigh.Rank() > PriorityMedium.Rank() && PriorityMedium.Rank() > PriorityLow.Rank()) {
		t.Fatalf("unexpected rank order: high=%d medium=%d low=%d",
			PriorityHigh.Rank(), PriorityMedium.Rank(), PriorityLow.Rank())
	}
}

func TestParseTaskQuery(t *testing.T) {
	q := ParseTaskQuery(url.Values{})
	if q.Archived != ArchivedFalse || q.Order != OrderAsc || q.OrderBy != "" {
		t.Fatalf("unexpected defaults: %+v", q)
	}
	if archived, filter := q.ArchivedFilter(); archived || !filter {
		t.Errorf("default archived filter = %v, %v; want false, true", archived, filter)
	}

	q = ParseTaskQuery(url.Values{
		"status":   {"bogus"},
		"priority": {"High"},
		"archived": {"all"},
		"search":   {"  report "},
		"orderBy":  {"priority"},
		"order":    {"DESC"},
	})
	if q.Status != "" {
		t.Errorf("invalid status should be ignored, got %q", q.Status)
	}
	if q.Priority != PriorityHigh {
		t.Errorf("Priority = %q, want high", q.Priority)
	}
	if _, filter := q.ArchivedFilter(); filter {
		t.Error("archived=all should not filter")
	}
	if q.Search != "report" || q.OrderBy != OrderByPriority || !q.Descending() {
		t.Errorf("unexpected query: %+v", q)
	}

	q = ParseTaskQuery(url.Values{"orderBy": {"dueDate"}})
	if q.OrderBy != "" {
		t.Errorf("unknown orderBy should be dropped, got %q", q.OrderBy)
	}
}

func TestTaskQueryValues(t *testing.T) {
	q := TaskQuery{Status: StatusDone, Archived: ArchivedAll, OrderBy: OrderByTitle, Order: OrderDesc}
	back := ParseTaskQuery(q.Values())
	if back.Status != StatusDone || back.Archived != ArchivedAll || back.OrderBy != OrderByTitle || !back.Descending() {
		t.Errorf("round trip mismatch: %+v", back)
	}
	if enc := (TaskQuery{Archived: ArchivedFalse}).Values().Encode(); enc != "" {
		t.Errorf("default query should encode empty, got %q", enc)
	}
}
