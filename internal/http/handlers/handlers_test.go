package handlers

import (
	"testing"

	"github.com/srrview/backend/internal/models"
)

func TestSelectionFromValues(t *testing.T) {
	if s := selectionFromValues(nil); !s.All {
		t.Fatalf("omitted parameter must select everything")
	}
	if s := selectionFromValues([]string{"All"}); !s.All {
		t.Fatalf("the All sentinel must select everything")
	}
	if s := selectionFromValues([]string{"Chat", "All", "Email"}); !s.All {
		t.Fatalf("All anywhere in a multi-select wins")
	}
	s := selectionFromValues([]string{"Chat", "", "Email"})
	if s.All || len(s.Values) != 2 {
		t.Fatalf("unexpected selection: %+v", s)
	}
}

func TestPageRecords(t *testing.T) {
	records := make([]models.CaseRecord, 5)
	for i := range records {
		records[i].CaseNumber = string(rune('a' + i))
	}

	page := pageRecords(records, 2, 0)
	if len(page) != 2 || page[0].CaseNumber != "a" {
		t.Fatalf("unexpected first page: %+v", page)
	}
	page = pageRecords(records, 2, 4)
	if len(page) != 1 || page[0].CaseNumber != "e" {
		t.Fatalf("unexpected last page: %+v", page)
	}
	if page = pageRecords(records, 2, 10); len(page) != 0 {
		t.Fatalf("offset past the end must be empty, got %+v", page)
	}
	if page = pageRecords(records, 0, 0); len(page) != 5 {
		t.Fatalf("non-positive limit falls back to the default, got %d", len(page))
	}
}

func TestDeltaModeValidation(t *testing.T) {
	if _, err := deltaMode(""); err != nil {
		t.Fatalf("empty delta mode is allowed: %v", err)
	}
	if m, err := deltaMode("previous_week"); err != nil || string(m) != "previous_week" {
		t.Fatalf("previous_week should parse, got %v %v", m, err)
	}
	if _, err := deltaMode("yesterday"); err == nil {
		t.Fatalf("unknown delta mode must be rejected")
	}
}
