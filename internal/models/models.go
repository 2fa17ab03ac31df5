package models

import "time"

// Case statuses as they appear in the source sheet.
const (
	StatusInQueue    = "In Queue"
	StatusInProgress = "In Progress"
	StatusClosed     = "Closed"
)

// CaseRecord is one normalized service interaction row. Duration fields are
// kept both as seconds and in their raw textual form so the original sheet
// values stay available for export.
type CaseRecord struct {
	CaseNumber        string    `json:"case_number"`
	Requestor         string    `json:"requestor"`
	Service           string    `json:"service"`
	Inquiry           string    `json:"inquiry"`
	Status            string    `json:"status"`
	CreationTimestamp string    `json:"creation_timestamp"`
	DateCreated       time.Time `json:"date_created"`
	SME               string    `json:"sme"`
	OnItTime          string    `json:"on_it_time"`
	Attendee          string    `json:"attendee"`
	AttendedTimestamp string    `json:"attended_timestamp"`
	TimeToOnItRaw     string    `json:"time_to_on_it_raw"`
	TimeToAttendedRaw string    `json:"time_to_attended_raw"`
	TimeToOnItSec     int       `json:"time_to_on_it_sec"`
	TimeToAttendedSec int       `json:"time_to_attended_sec"`
	Month             string    `json:"month"`
	Day               string    `json:"day"`
	Weekend           string    `json:"weekend"`
	WorkingHours      string    `json:"working_hours"`
	HourCreated       int       `json:"hour_created"`
	CaseReason        string    `json:"case_reason"`
	AFI               string    `json:"afi"`
	AFIComment        string    `json:"afi_comment"`
	ArticleNumber     string    `json:"article_number"`
	MessageLinks      []string  `json:"message_links"`
	Survey            *float64  `json:"survey,omitempty"`
}

// Selection is one sidebar choice: either "no restriction" or an explicit
// value set. The HTTP layer maps the UI's "All" sentinel onto the tag so a
// real category literally named "All" cannot collide with it.
type Selection struct {
	All    bool     `json:"all"`
	Values []string `json:"values,omitempty"`
}

func SelectAll() Selection {
	return Selection{All: true}
}

func SelectValues(values ...string) Selection {
	return Selection{Values: values}
}

// Empty reports whether a non-All selection carries no values, which the
// filter engine treats the same as All.
func (s Selection) Empty() bool {
	return !s.All && len(s.Values) == 0
}

func (s Selection) Contains(value string) bool {
	if s.All {
		return true
	}
	for _, v := range s.Values {
		if v == value {
			return true
		}
	}
	return false
}

// FilterState is the resolved sidebar selection for one render pass.
type FilterState struct {
	Service      Selection `json:"service"`
	Month        Selection `json:"month"`
	Weekend      Selection `json:"weekend"`
	WorkingHours Selection `json:"working_hours"`
	SME          Selection `json:"sme"`
}

func DefaultFilterState() FilterState {
	return FilterState{
		Service:      SelectAll(),
		Month:        SelectAll(),
		Weekend:      SelectAll(),
		WorkingHours: SelectAll(),
		SME:          SelectAll(),
	}
}

// AggregateRow is one group rollup. Means are undefined for empty groups;
// MeanDefined distinguishes that from a true zero average.
type AggregateRow struct {
	Key            string   `json:"key"`
	AvgOnItSec     float64  `json:"avg_on_it_sec"`
	AvgAttendedSec float64  `json:"avg_attended_sec"`
	MeanDefined    bool     `json:"mean_defined"`
	Count          int      `json:"count"`
	TotalAvgSec    float64  `json:"total_avg_sec"`
	AvgSurvey      *float64 `json:"avg_survey,omitempty"`
}

// Snapshot is one cached read of the sheet after normalization. All viewers
// within a TTL window observe the same snapshot.
type Snapshot struct {
	Records   []CaseRecord `json:"records"`
	FetchedAt time.Time    `json:"fetched_at"`
}
