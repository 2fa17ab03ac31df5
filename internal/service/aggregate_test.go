package service

import (
	"testing"
	"time"

	"github.com/srrview/backend/internal/models"
)

func TestSummarizeMeanIncludesMissingDurationsAsZero(t *testing.T) {
	records := []models.CaseRecord{
		{Service: "Chat", TimeToOnItSec: ParseHMS("0:05:00")},
		{Service: "Chat", TimeToOnItSec: ParseHMS("0:10:00")},
		{Service: "Chat", TimeToOnItSec: ParseHMS("")},
	}
	s := Summarize(records)
	if s.Interactions != 3 {
		t.Fatalf("expected 3 interactions, got %d", s.Interactions)
	}
	if !s.AvgOnItDefined || s.AvgOnItSec != 300 {
		t.Fatalf("expected mean 300s, got %v (defined=%v)", s.AvgOnItSec, s.AvgOnItDefined)
	}
	if got := FormatHMS(s.AvgOnItSec); got != "00:05:00" {
		t.Fatalf("expected formatted 00:05:00, got %q", got)
	}
}

func TestSummarizeEmptySetHasUndefinedMeans(t *testing.T) {
	s := Summarize(nil)
	if s.AvgOnItDefined || s.AvgAttendedDefined {
		t.Fatalf("means over zero rows must be undefined")
	}
	if got := FormatHMS(s.AvgOnItSec); got != "00:00:00" {
		t.Fatalf("undefined mean must render as zero duration, got %q", got)
	}
}

func TestSummarizeSurvey(t *testing.T) {
	four, five := 4.0, 5.0
	records := []models.CaseRecord{
		{Service: "Chat", Survey: &four},
		{Service: "Chat", Survey: &five},
		{Service: "Chat"},
	}
	s := Summarize(records)
	if s.SurveyCount != 2 {
		t.Fatalf("expected 2 answered surveys, got %d", s.SurveyCount)
	}
	if !s.SurveyAvgDefined || s.SurveyAvg != 4.5 {
		t.Fatalf("expected survey avg 4.5, got %v", s.SurveyAvg)
	}
}

func TestGroupByFirstAppearanceOrder(t *testing.T) {
	records := []models.CaseRecord{
		{Service: "Email", TimeToOnItSec: 100},
		{Service: "Chat", TimeToOnItSec: 200},
		{Service: "Email", TimeToOnItSec: 300},
	}
	rows := GroupByService(records)
	if len(rows) != 2 || rows[0].Key != "Email" || rows[1].Key != "Chat" {
		t.Fatalf("unexpected group order: %+v", rows)
	}
	if rows[0].AvgOnItSec != 200 || rows[0].Count != 2 {
		t.Fatalf("unexpected Email rollup: %+v", rows[0])
	}
}

func TestGroupBySMERankingTieBrokenByCount(t *testing.T) {
	mk := func(sme string, onIt int, n int) []models.CaseRecord {
		var out []models.CaseRecord
		for i := 0; i < n; i++ {
			out = append(out, models.CaseRecord{Service: "Chat", SME: sme, TimeToOnItSec: onIt})
		}
		return out
	}
	// A and B both average 100s combined; B is busier and must rank first.
	records := append(mk("A", 100, 5), mk("B", 100, 9)...)
	records = append(records, mk("C", 50, 1)...)

	rows := GroupBySME(records)
	if rows[0].Key != "C" {
		t.Fatalf("fastest combined response must rank first, got %q", rows[0].Key)
	}
	if rows[1].Key != "B" || rows[2].Key != "A" {
		t.Fatalf("tie on speed must be broken by higher count: %+v", rows)
	}
}

func TestComputeDeltaPreviousWeekWindow(t *testing.T) {
	loc := time.UTC
	// Wednesday 2024-03-20; window is [Mar 1, Sun Mar 17 23:59:59].
	now := time.Date(2024, time.March, 20, 12, 0, 0, 0, loc)

	records := []models.CaseRecord{
		{Service: "Chat", TimeToOnItSec: 100, DateCreated: time.Date(2024, time.March, 10, 9, 0, 0, 0, loc)},
		{Service: "Chat", TimeToOnItSec: 300, DateCreated: time.Date(2024, time.March, 17, 23, 0, 0, 0, loc)},
		// Outside the window: current week and previous month.
		{Service: "Chat", TimeToOnItSec: 900, DateCreated: time.Date(2024, time.March, 19, 9, 0, 0, 0, loc)},
		{Service: "Chat", TimeToOnItSec: 900, DateCreated: time.Date(2024, time.February, 28, 9, 0, 0, 0, loc)},
	}
	current := Summarize(records)

	d := ComputeDelta(records, current, now, DeltaPreviousWeek, BaselineZero)
	if !d.BaselineOnItDefined || d.BaselineOnItSec != 200 {
		t.Fatalf("expected baseline mean 200s, got %v (defined=%v)", d.BaselineOnItSec, d.BaselineOnItDefined)
	}
	want := current.AvgOnItSec - 200
	if !d.OnItDeltaDefined || d.OnItDeltaSec != want {
		t.Fatalf("expected delta %v, got %v", want, d.OnItDeltaSec)
	}
}

func TestComputeDeltaPreviousMonthUsesMonthName(t *testing.T) {
	now := time.Date(2024, time.March, 5, 12, 0, 0, 0, time.UTC)
	records := []models.CaseRecord{
		{Service: "Chat", TimeToOnItSec: 120, Month: "February"},
		{Service: "Chat", TimeToOnItSec: 240, Month: "February"},
		{Service: "Chat", TimeToOnItSec: 600, Month: "March"},
	}
	current := Summarize(records)

	d := ComputeDelta(records, current, now, DeltaPreviousMonth, BaselineZero)
	if !d.BaselineOnItDefined || d.BaselineOnItSec != 180 {
		t.Fatalf("expected February baseline 180s, got %v", d.BaselineOnItSec)
	}
}

func TestComputeDeltaMissingBaselinePolicies(t *testing.T) {
	now := time.Date(2024, time.March, 5, 12, 0, 0, 0, time.UTC)
	records := []models.CaseRecord{
		{Service: "Chat", TimeToOnItSec: 600, Month: "March"},
	}
	current := Summarize(records)

	zero := ComputeDelta(records, current, now, DeltaPreviousMonth, BaselineZero)
	if !zero.OnItDeltaDefined || zero.OnItDeltaSec != 0 {
		t.Fatalf("zero policy must report a zero delta, got %+v", zero)
	}
	if zero.BaselineOnItDefined {
		t.Fatalf("baseline must still be marked undefined")
	}

	omit := ComputeDelta(records, current, now, DeltaPreviousMonth, BaselineOmit)
	if omit.OnItDeltaDefined {
		t.Fatalf("omit policy must leave the delta undefined, got %+v", omit)
	}
}

func TestPivotZeroFillAndColumnOrder(t *testing.T) {
	records := []models.CaseRecord{
		{Requestor: "X", Service: "Chat"},
		{Requestor: "X", Service: "Chat"},
		{Requestor: "Y", Service: "Email"},
	}
	table := Pivot(records)
	if len(table.Columns) != 2 || table.Columns[0] != "Chat" || table.Columns[1] != "Email" {
		t.Fatalf("columns must keep first appearance order, got %v", table.Columns)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("expected 2 requestor rows, got %d", len(table.Rows))
	}
	x, y := table.Rows[0], table.Rows[1]
	if x.Requestor != "X" || x.Counts[0] != 2 || x.Counts[1] != 0 {
		t.Fatalf("unexpected X row: %+v", x)
	}
	if y.Requestor != "Y" || y.Counts[0] != 0 || y.Counts[1] != 1 {
		t.Fatalf("unexpected Y row: %+v", y)
	}
}

func TestCaseReasonDistributionAscending(t *testing.T) {
	records := []models.CaseRecord{
		{Service: "Chat", CaseReason: "Billing"},
		{Service: "Chat", CaseReason: "Billing"},
		{Service: "Chat", CaseReason: "Outage"},
	}
	dist := CaseReasonDistribution(records)
	if len(dist) != 2 || dist[0].Reason != "Outage" || dist[1].Count != 2 {
		t.Fatalf("expected smallest share first, got %+v", dist)
	}
}

func TestStatusSubset(t *testing.T) {
	records := []models.CaseRecord{
		{Service: "Chat", Status: models.StatusInQueue},
		{Service: "Chat", Status: models.StatusClosed},
		{Service: "Chat", Status: models.StatusInProgress},
	}
	if got := StatusSubset(records, models.StatusInQueue); len(got) != 1 {
		t.Fatalf("expected 1 queued case, got %d", len(got))
	}
	if got := StatusSubset(nil, models.StatusInQueue); len(got) != 0 {
		t.Fatalf("zero-row input must produce empty output")
	}
}
