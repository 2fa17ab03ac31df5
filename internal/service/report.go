package service

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/srrview/backend/internal/models"
)

// monthOrder is the one fixed, non-alphabetical display order in the system.
var monthOrder = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// MonthRow is the display form of one month rollup. Minutes columns feed the
// response-time charts.
type MonthRow struct {
	Month           string  `json:"month"`
	AvgOnIt         string  `json:"avg_on_it"`
	AvgAttended     string  `json:"avg_attended"`
	OnItMinutes     float64 `json:"on_it_minutes"`
	AttendedMinutes float64 `json:"attended_minutes"`
	Count           int     `json:"count"`
}

type ServiceRow struct {
	Service         string  `json:"service"`
	AvgOnIt         string  `json:"avg_on_it"`
	AvgAttended     string  `json:"avg_attended"`
	OnItMinutes     float64 `json:"on_it_minutes"`
	AttendedMinutes float64 `json:"attended_minutes"`
	Count           int     `json:"count"`
}

type SMERow struct {
	SME          string   `json:"sme"`
	AvgOnIt      string   `json:"avg_on_it"`
	AvgAttended  string   `json:"avg_attended"`
	Interactions int      `json:"interactions"`
	AvgSurvey    *float64 `json:"avg_survey,omitempty"`
}

// QueueRow is the column subset shown for cases still waiting for a claim.
type QueueRow struct {
	CaseNumber        string `json:"case_number"`
	Requestor         string `json:"requestor"`
	Service           string `json:"service"`
	CreationTimestamp string `json:"creation_timestamp"`
	MessageLink       string `json:"message_link"`
}

// ProgressRow adds the claiming SME and the time it took to claim.
type ProgressRow struct {
	CaseNumber        string `json:"case_number"`
	Requestor         string `json:"requestor"`
	Service           string `json:"service"`
	CreationTimestamp string `json:"creation_timestamp"`
	SME               string `json:"sme"`
	TimeToOnIt        string `json:"time_to_on_it"`
	MessageLink       string `json:"message_link"`
}

// MonthTable orders the month rollup January through December. Undefined
// means render as the zero duration; there is no N/A affordance downstream.
func MonthTable(rows []models.AggregateRow) []MonthRow {
	byMonth := map[string]models.AggregateRow{}
	for _, row := range rows {
		byMonth[row.Key] = row
	}
	var out []MonthRow
	for _, m := range monthOrder {
		row, ok := byMonth[m]
		if !ok {
			continue
		}
		out = append(out, MonthRow{
			Month:           m,
			AvgOnIt:         formatMean(row.AvgOnItSec, row.MeanDefined),
			AvgAttended:     formatMean(row.AvgAttendedSec, row.MeanDefined),
			OnItMinutes:     row.AvgOnItSec / 60,
			AttendedMinutes: row.AvgAttendedSec / 60,
			Count:           row.Count,
		})
	}
	return out
}

func ServiceTable(rows []models.AggregateRow) []ServiceRow {
	out := make([]ServiceRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, ServiceRow{
			Service:         row.Key,
			AvgOnIt:         formatMean(row.AvgOnItSec, row.MeanDefined),
			AvgAttended:     formatMean(row.AvgAttendedSec, row.MeanDefined),
			OnItMinutes:     row.AvgOnItSec / 60,
			AttendedMinutes: row.AvgAttendedSec / 60,
			Count:           row.Count,
		})
	}
	return out
}

// SMETable expects rows already ranked by GroupBySME.
func SMETable(rows []models.AggregateRow) []SMERow {
	out := make([]SMERow, 0, len(rows))
	for _, row := range rows {
		out = append(out, SMERow{
			SME:          row.Key,
			AvgOnIt:      formatMean(row.AvgOnItSec, row.MeanDefined),
			AvgAttended:  formatMean(row.AvgAttendedSec, row.MeanDefined),
			Interactions: row.Count,
			AvgSurvey:    row.AvgSurvey,
		})
	}
	return out
}

func QueueTable(records []models.CaseRecord) []QueueRow {
	subset := StatusSubset(records, models.StatusInQueue)
	out := make([]QueueRow, 0, len(subset))
	for _, r := range subset {
		out = append(out, QueueRow{
			CaseNumber:        r.CaseNumber,
			Requestor:         r.Requestor,
			Service:           r.Service,
			CreationTimestamp: r.CreationTimestamp,
			MessageLink:       firstLink(r.MessageLinks),
		})
	}
	return out
}

func ProgressTable(records []models.CaseRecord) []ProgressRow {
	subset := StatusSubset(records, models.StatusInProgress)
	out := make([]ProgressRow, 0, len(subset))
	for _, r := range subset {
		out = append(out, ProgressRow{
			CaseNumber:        r.CaseNumber,
			Requestor:         r.Requestor,
			Service:           r.Service,
			CreationTimestamp: r.CreationTimestamp,
			SME:               r.SME,
			TimeToOnIt:        r.TimeToOnItRaw,
			MessageLink:       firstLink(r.MessageLinks),
		})
	}
	return out
}

func formatMean(seconds float64, defined bool) string {
	if !defined {
		return "00:00:00"
	}
	return FormatHMS(seconds)
}

func firstLink(links []string) string {
	if len(links) == 0 {
		return ""
	}
	return links[0]
}

// FormatSignedDelta renders a delta duration; an undefined delta renders
// empty so the display layer can drop the indicator entirely.
func FormatSignedDelta(seconds float64, defined bool) string {
	if !defined {
		return ""
	}
	return FormatHMS(seconds)
}

// CSV export: header plus rows in the same column order shown on screen.

func WriteMonthsCSV(w io.Writer, rows []MonthRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Month", "Avg TimeTo: On It", "Avg TimeTo: Attended", "Interactions"}); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write([]string{r.Month, r.AvgOnIt, r.AvgAttended, strconv.Itoa(r.Count)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func WriteServicesCSV(w io.Writer, rows []ServiceRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Service", "Avg TimeTo: On It", "Avg TimeTo: Attended", "Interactions"}); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write([]string{r.Service, r.AvgOnIt, r.AvgAttended, strconv.Itoa(r.Count)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func WriteSMEsCSV(w io.Writer, rows []SMERow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"SME", "Avg_On_It", "Avg_Attended", "Number_of_Interactions", "Avg_Survey"}); err != nil {
		return err
	}
	for _, r := range rows {
		survey := ""
		if r.AvgSurvey != nil {
			survey = strconv.FormatFloat(*r.AvgSurvey, 'f', 2, 64)
		}
		if err := cw.Write([]string{r.SME, r.AvgOnIt, r.AvgAttended, strconv.Itoa(r.Interactions), survey}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func WritePivotCSV(w io.Writer, table PivotTable) error {
	cw := csv.NewWriter(w)
	header := append([]string{"Requestor"}, table.Columns...)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, row := range table.Rows {
		rec := make([]string, 0, len(row.Counts)+1)
		rec = append(rec, row.Requestor)
		for _, n := range row.Counts {
			rec = append(rec, strconv.Itoa(n))
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func WriteReasonsCSV(w io.Writer, rows []ReasonCount) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Case Reason", "Interactions"}); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write([]string{r.Reason, strconv.Itoa(r.Count)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
