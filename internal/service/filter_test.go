package service

import (
	"testing"

	"github.com/srrview/backend/internal/models"
)

func sampleRecords() []models.CaseRecord {
	return []models.CaseRecord{
		{Service: "Chat", Month: "January", Weekend: "No", WorkingHours: "Yes", SME: "alice", Requestor: "X"},
		{Service: "Chat", Month: "February", Weekend: "Yes", WorkingHours: "No", SME: "bob", Requestor: "Y"},
		{Service: "Email", Month: "January", Weekend: "No", WorkingHours: "Yes", SME: "alice", Requestor: "X"},
		{Service: "Voice", Month: "March", Weekend: "No", WorkingHours: "No", SME: "carol", Requestor: "Z"},
	}
}

func TestApplyFiltersAllSentinelEverywhere(t *testing.T) {
	records := sampleRecords()
	res := ApplyFilters(records, models.DefaultFilterState())
	if len(res.Records) != len(records) {
		t.Fatalf("All on every column must return the full set, got %d of %d", len(res.Records), len(records))
	}
	if len(res.Fallbacks) != 0 {
		t.Fatalf("All selections are not fallbacks, got %v", res.Fallbacks)
	}
}

func TestApplyFiltersEmptyMultiSelectFallsBack(t *testing.T) {
	state := models.DefaultFilterState()
	state.Service = models.SelectValues() // user cleared the multi-select
	res := ApplyFilters(sampleRecords(), state)
	if len(res.Records) != 4 {
		t.Fatalf("empty multi-select must behave like All, got %d records", len(res.Records))
	}
	if len(res.Fallbacks) != 1 || res.Fallbacks[0] != FilterService {
		t.Fatalf("expected Service fallback to be reported, got %v", res.Fallbacks)
	}
}

func TestApplyFiltersChainAND(t *testing.T) {
	state := models.DefaultFilterState()
	state.Service = models.SelectValues("Chat", "Email")
	state.Month = models.SelectValues("January")
	state.SME = models.SelectValues("alice")
	res := ApplyFilters(sampleRecords(), state)
	if len(res.Records) != 2 {
		t.Fatalf("expected 2 records after AND chain, got %d", len(res.Records))
	}
	for _, r := range res.Records {
		if r.Month != "January" || r.SME != "alice" {
			t.Fatalf("record escaped the chain: %+v", r)
		}
	}
}

func TestApplyFiltersProgressiveOptions(t *testing.T) {
	state := models.DefaultFilterState()
	state.Service = models.SelectValues("Chat")
	res := ApplyFilters(sampleRecords(), state)

	// Service options come from the unfiltered set.
	if len(res.Options.Services) != 3 {
		t.Fatalf("expected 3 service options, got %v", res.Options.Services)
	}
	// Month options reflect the service filter already applied.
	if len(res.Options.Months) != 2 {
		t.Fatalf("expected narrowed month options, got %v", res.Options.Months)
	}
	for _, m := range res.Options.Months {
		if m != "January" && m != "February" {
			t.Fatalf("month option %q should not survive the Chat filter", m)
		}
	}
	// SME options reflect everything upstream.
	if len(res.Options.SMEs) != 2 {
		t.Fatalf("expected narrowed SME options, got %v", res.Options.SMEs)
	}
}

func TestApplyFiltersEmptyResultIsNotAnError(t *testing.T) {
	state := models.DefaultFilterState()
	state.Service = models.SelectValues("Chat")
	state.Weekend = models.SelectValues("Yes")
	state.WorkingHours = models.SelectValues("Yes")
	res := ApplyFilters(sampleRecords(), state)
	if len(res.Records) != 0 {
		t.Fatalf("expected empty result, got %d", len(res.Records))
	}

	s := Summarize(res.Records)
	if s.Interactions != 0 || s.AvgOnItDefined {
		t.Fatalf("zero-row summary should be empty with undefined means: %+v", s)
	}
}

func TestSelectionAllIsDistinctFromLiteralAllValue(t *testing.T) {
	records := []models.CaseRecord{
		{Service: "All", Month: "January"},
		{Service: "Chat", Month: "January"},
	}
	state := models.DefaultFilterState()
	state.Service = models.SelectValues("All")
	res := ApplyFilters(records, state)
	if len(res.Records) != 1 || res.Records[0].Service != "All" {
		t.Fatalf("a category literally named All must be filterable, got %+v", res.Records)
	}
}
