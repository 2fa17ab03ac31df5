package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/srrview/backend/internal/models"
)

// SnapshotProvider hands out the current cached record set. The call may
// block on network I/O when the cache is cold.
type SnapshotProvider interface {
	Snapshot(ctx context.Context) (models.Snapshot, error)
}

// DashboardService runs one full render pass: snapshot, filter, aggregate,
// format. It holds no state between passes.
type DashboardService struct {
	Snapshots       SnapshotProvider
	Logger          zerolog.Logger
	Now             func() time.Time
	MissingBaseline MissingBaselinePolicy
}

type SummaryView struct {
	Interactions int      `json:"interactions"`
	AvgOnIt      string   `json:"avg_on_it"`
	AvgAttended  string   `json:"avg_attended"`
	SurveyAvg    *float64 `json:"survey_avg,omitempty"`
	SurveyCount  int      `json:"survey_count"`
}

type DeltaView struct {
	Mode             string `json:"mode"`
	OnIt             string `json:"on_it"`
	Attended         string `json:"attended"`
	BaselineOnIt     string `json:"baseline_on_it"`
	BaselineAttended string `json:"baseline_attended"`
	BaselineMissing  bool   `json:"baseline_missing"`
}

type Dashboard struct {
	Summary     SummaryView   `json:"summary"`
	Delta       *DeltaView    `json:"delta,omitempty"`
	InQueue     []QueueRow    `json:"in_queue"`
	InProgress  []ProgressRow `json:"in_progress"`
	Months      []MonthRow    `json:"months"`
	Services    []ServiceRow  `json:"services"`
	SMEs        []SMERow      `json:"smes"`
	Pivot       PivotTable    `json:"pivot"`
	CaseReasons []ReasonCount `json:"case_reasons"`
	Options     FilterOptions `json:"options"`
	Fallbacks   []string      `json:"fallbacks,omitempty"`
	FetchedAt   time.Time     `json:"fetched_at"`
}

// Render computes a dashboard for one filter state. Every stage produces a
// new view of the snapshot; nothing mutates the cached records.
func (s *DashboardService) Render(ctx context.Context, state models.FilterState, mode DeltaMode) (Dashboard, error) {
	snap, err := s.Snapshots.Snapshot(ctx)
	if err != nil {
		return Dashboard{}, err
	}

	filtered := ApplyFilters(snap.Records, state)
	summary := Summarize(filtered.Records)

	d := Dashboard{
		Summary:     summaryView(summary),
		InQueue:     QueueTable(filtered.Records),
		InProgress:  ProgressTable(filtered.Records),
		Months:      MonthTable(GroupByMonth(filtered.Records)),
		Services:    ServiceTable(GroupByService(filtered.Records)),
		SMEs:        SMETable(GroupBySME(filtered.Records)),
		Pivot:       Pivot(filtered.Records),
		CaseReasons: CaseReasonDistribution(filtered.Records),
		Options:     filtered.Options,
		Fallbacks:   filtered.Fallbacks,
		FetchedAt:   snap.FetchedAt,
	}

	if mode == DeltaPreviousWeek || mode == DeltaPreviousMonth {
		delta := ComputeDelta(filtered.Records, summary, s.now(), mode, s.MissingBaseline)
		d.Delta = &DeltaView{
			Mode:             string(mode),
			OnIt:             FormatSignedDelta(delta.OnItDeltaSec, delta.OnItDeltaDefined),
			Attended:         FormatSignedDelta(delta.AttendedDeltaSec, delta.AttendedDeltaDefined),
			BaselineOnIt:     formatMean(delta.BaselineOnItSec, delta.BaselineOnItDefined),
			BaselineAttended: formatMean(delta.BaselineAttendedSec, delta.BaselineAttendedDefined),
			BaselineMissing:  !delta.BaselineOnItDefined,
		}
	}

	s.Logger.Debug().
		Int("records", len(filtered.Records)).
		Int("in_queue", len(d.InQueue)).
		Int("in_progress", len(d.InProgress)).
		Msg("render pass")

	return d, nil
}

func (s *DashboardService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func summaryView(s Summary) SummaryView {
	v := SummaryView{
		Interactions: s.Interactions,
		AvgOnIt:      formatMean(s.AvgOnItSec, s.AvgOnItDefined),
		AvgAttended:  formatMean(s.AvgAttendedSec, s.AvgAttendedDefined),
		SurveyCount:  s.SurveyCount,
	}
	if s.SurveyAvgDefined {
		avg := s.SurveyAvg
		v.SurveyAvg = &avg
	}
	return v
}
