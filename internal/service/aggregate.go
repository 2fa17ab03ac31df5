package service

import (
	"sort"
	"time"

	"github.com/srrview/backend/internal/models"
)

// Summary holds the overall scalar metrics for a filtered record set. A mean
// over zero rows is undefined, not zero; the Defined flags carry that
// distinction to the formatter.
type Summary struct {
	Interactions       int
	AvgOnItSec         float64
	AvgOnItDefined     bool
	AvgAttendedSec     float64
	AvgAttendedDefined bool
	SurveyAvg          float64
	SurveyAvgDefined   bool
	SurveyCount        int
}

func Summarize(records []models.CaseRecord) Summary {
	s := Summary{}
	var onItTotal, attendedTotal, surveyTotal float64
	for _, r := range records {
		if r.Service != "" {
			s.Interactions++
		}
		onItTotal += float64(r.TimeToOnItSec)
		attendedTotal += float64(r.TimeToAttendedSec)
		if r.Survey != nil {
			surveyTotal += *r.Survey
			s.SurveyCount++
		}
	}
	if len(records) > 0 {
		s.AvgOnItSec = onItTotal / float64(len(records))
		s.AvgOnItDefined = true
		s.AvgAttendedSec = attendedTotal / float64(len(records))
		s.AvgAttendedDefined = true
	}
	if s.SurveyCount > 0 {
		s.SurveyAvg = surveyTotal / float64(s.SurveyCount)
		s.SurveyAvgDefined = true
	}
	return s
}

// GroupBy rolls records up by an arbitrary categorical key. Group order is
// first appearance; callers impose their own display order.
func GroupBy(records []models.CaseRecord, key func(models.CaseRecord) string) []models.AggregateRow {
	type bucket struct {
		onItTotal     float64
		attendedTotal float64
		count         int
		surveyTotal   float64
		surveyCount   int
	}
	buckets := map[string]*bucket{}
	var order []string

	for _, r := range records {
		k := key(r)
		b, ok := buckets[k]
		if !ok {
			b = &bucket{}
			buckets[k] = b
			order = append(order, k)
		}
		b.onItTotal += float64(r.TimeToOnItSec)
		b.attendedTotal += float64(r.TimeToAttendedSec)
		b.count++
		if r.Survey != nil {
			b.surveyTotal += *r.Survey
			b.surveyCount++
		}
	}

	rows := make([]models.AggregateRow, 0, len(order))
	for _, k := range order {
		b := buckets[k]
		row := models.AggregateRow{Key: k, Count: b.count}
		if b.count > 0 {
			row.AvgOnItSec = b.onItTotal / float64(b.count)
			row.AvgAttendedSec = b.attendedTotal / float64(b.count)
			row.TotalAvgSec = row.AvgOnItSec + row.AvgAttendedSec
			row.MeanDefined = true
		}
		if b.surveyCount > 0 {
			avg := b.surveyTotal / float64(b.surveyCount)
			row.AvgSurvey = &avg
		}
		rows = append(rows, row)
	}
	return rows
}

func GroupByMonth(records []models.CaseRecord) []models.AggregateRow {
	return GroupBy(records, func(r models.CaseRecord) string { return r.Month })
}

func GroupByService(records []models.CaseRecord) []models.AggregateRow {
	return GroupBy(records, func(r models.CaseRecord) string { return r.Service })
}

// GroupBySME ranks assignees fastest combined response first: composite key
// (mean on-it + mean attended) ascending, ties broken by interaction count
// descending, then survey average descending.
func GroupBySME(records []models.CaseRecord) []models.AggregateRow {
	rows := GroupBy(records, func(r models.CaseRecord) string { return r.SME })
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].TotalAvgSec != rows[j].TotalAvgSec {
			return rows[i].TotalAvgSec < rows[j].TotalAvgSec
		}
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return surveyOrZero(rows[i]) > surveyOrZero(rows[j])
	})
	return rows
}

func surveyOrZero(r models.AggregateRow) float64 {
	if r.AvgSurvey == nil {
		return 0
	}
	return *r.AvgSurvey
}

type DeltaMode string

const (
	DeltaPreviousWeek  DeltaMode = "previous_week"
	DeltaPreviousMonth DeltaMode = "previous_month"
)

// MissingBaselinePolicy decides how a delta is reported when the comparison
// window has no rows. "zero" mirrors the historical behavior of reporting no
// change; "omit" marks the delta undefined instead.
type MissingBaselinePolicy string

const (
	BaselineZero MissingBaselinePolicy = "zero"
	BaselineOmit MissingBaselinePolicy = "omit"
)

type Delta struct {
	Mode                    DeltaMode
	BaselineOnItSec         float64
	BaselineOnItDefined     bool
	BaselineAttendedSec     float64
	BaselineAttendedDefined bool
	OnItDeltaSec            float64
	OnItDeltaDefined        bool
	AttendedDeltaSec        float64
	AttendedDeltaDefined    bool
}

// ComputeDelta compares the current summary against a prior window of the
// same filtered set. previous_week covers the start of the current calendar
// month through the end of the previous calendar week; previous_month covers
// rows whose Month is the previous month's name.
func ComputeDelta(records []models.CaseRecord, current Summary, now time.Time, mode DeltaMode, policy MissingBaselinePolicy) Delta {
	baseline := Summarize(baselineRecords(records, now, mode))

	d := Delta{
		Mode:                    mode,
		BaselineOnItSec:         baseline.AvgOnItSec,
		BaselineOnItDefined:     baseline.AvgOnItDefined,
		BaselineAttendedSec:     baseline.AvgAttendedSec,
		BaselineAttendedDefined: baseline.AvgAttendedDefined,
	}

	d.OnItDeltaSec, d.OnItDeltaDefined = deltaValue(current.AvgOnItSec, baseline.AvgOnItSec, baseline.AvgOnItDefined, policy)
	d.AttendedDeltaSec, d.AttendedDeltaDefined = deltaValue(current.AvgAttendedSec, baseline.AvgAttendedSec, baseline.AvgAttendedDefined, policy)
	return d
}

func deltaValue(current, baseline float64, baselineDefined bool, policy MissingBaselinePolicy) (float64, bool) {
	if baselineDefined {
		return current - baseline, true
	}
	if policy == BaselineOmit {
		return 0, false
	}
	return 0, true
}

func baselineRecords(records []models.CaseRecord, now time.Time, mode DeltaMode) []models.CaseRecord {
	switch mode {
	case DeltaPreviousMonth:
		prev := previousMonthName(now)
		var out []models.CaseRecord
		for _, r := range records {
			if r.Month == prev {
				out = append(out, r)
			}
		}
		return out
	default:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		end := endOfPreviousWeek(now)
		var out []models.CaseRecord
		for _, r := range records {
			if r.DateCreated.IsZero() {
				continue
			}
			if !r.DateCreated.Before(start) && !r.DateCreated.After(end) {
				out = append(out, r)
			}
		}
		return out
	}
}

func previousMonthName(now time.Time) string {
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return firstOfMonth.AddDate(0, 0, -1).Month().String()
}

// endOfPreviousWeek is 23:59:59 on the most recent Sunday strictly before
// today (a week ago when today is Sunday).
func endOfPreviousWeek(now time.Time) time.Time {
	daysBack := int(now.Weekday())
	if daysBack == 0 {
		daysBack = 7
	}
	sunday := now.AddDate(0, 0, -daysBack)
	return time.Date(sunday.Year(), sunday.Month(), sunday.Day(), 23, 59, 59, 0, now.Location())
}

// PivotTable is the requestor × service cross-tab. Columns keep first
// appearance order; absent combinations are zero-filled.
type PivotTable struct {
	Columns []string   `json:"columns"`
	Rows    []PivotRow `json:"rows"`
}

type PivotRow struct {
	Requestor string `json:"requestor"`
	Counts    []int  `json:"counts"`
	Total     int    `json:"total"`
}

func Pivot(records []models.CaseRecord) PivotTable {
	var columns []string
	colIndex := map[string]int{}
	counts := map[string]map[string]int{}

	for _, r := range records {
		if _, ok := colIndex[r.Service]; !ok {
			colIndex[r.Service] = len(columns)
			columns = append(columns, r.Service)
		}
		if counts[r.Requestor] == nil {
			counts[r.Requestor] = map[string]int{}
		}
		counts[r.Requestor][r.Service]++
	}

	requestors := make([]string, 0, len(counts))
	for req := range counts {
		requestors = append(requestors, req)
	}
	sort.Strings(requestors)

	table := PivotTable{Columns: columns}
	for _, req := range requestors {
		row := PivotRow{Requestor: req, Counts: make([]int, len(columns))}
		for svc, n := range counts[req] {
			row.Counts[colIndex[svc]] = n
			row.Total += n
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}

// ReasonCount is one slice of the case-reason distribution.
type ReasonCount struct {
	Reason string `json:"reason"`
	Count  int    `json:"count"`
}

// CaseReasonDistribution counts interactions per case reason, smallest share
// first, matching the source ordering of the distribution chart.
func CaseReasonDistribution(records []models.CaseRecord) []ReasonCount {
	counts := map[string]int{}
	var order []string
	for _, r := range records {
		if r.CaseReason == "" {
			continue
		}
		if _, ok := counts[r.CaseReason]; !ok {
			order = append(order, r.CaseReason)
		}
		counts[r.CaseReason]++
	}
	out := make([]ReasonCount, 0, len(order))
	for _, reason := range order {
		out = append(out, ReasonCount{Reason: reason, Count: counts[reason]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count < out[j].Count })
	return out
}

// StatusSubset returns the records in a given lifecycle status, preserving
// source order.
func StatusSubset(records []models.CaseRecord, status string) []models.CaseRecord {
	var out []models.CaseRecord
	for _, r := range records {
		if r.Status == status {
			out = append(out, r)
		}
	}
	return out
}
