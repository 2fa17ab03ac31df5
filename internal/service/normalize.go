package service

import (
	"strconv"
	"strings"
	"time"

	"github.com/srrview/backend/internal/models"
	"github.com/srrview/backend/internal/sheet"
)

var dateLayouts = []string{
	"1/2/2006 15:04:05",
	"2006-01-02 15:04:05",
	"1/2/2006 15:04",
	time.RFC3339,
	"1/2/2006",
	"2006-01-02",
}

// Normalizer turns a raw sheet table into clean case records. Timestamps are
// localized to the business time zone so hour/day/weekend derivations do not
// depend on the ambient zone of the source.
type Normalizer struct {
	Location         *time.Location
	WorkdayStartHour int // inclusive
	WorkdayEndHour   int // exclusive
}

func NewNormalizer(loc *time.Location, workdayStart, workdayEnd int) *Normalizer {
	if loc == nil {
		loc = time.UTC
	}
	if workdayEnd <= workdayStart {
		workdayStart, workdayEnd = 9, 17
	}
	return &Normalizer{Location: loc, WorkdayStartHour: workdayStart, WorkdayEndHour: workdayEnd}
}

// Normalize maps sheet rows to case records. Rows with an empty Service are
// dropped; every other malformed field resolves to a zero value.
func (n *Normalizer) Normalize(t sheet.Table) []models.CaseRecord {
	index := headerIndex(t.Header)
	out := make([]models.CaseRecord, 0, len(t.Rows))

	for _, rec := range t.Rows {
		service := getField(rec, index, "service")
		if service == "" {
			continue
		}

		onItRaw := getFieldAny(rec, index, "timeto: on it", "time to: on it")
		attendedRaw := getFieldAny(rec, index, "timeto: attended", "time to: attended")

		r := models.CaseRecord{
			CaseNumber:        strings.ReplaceAll(getFieldAny(rec, index, "case #", "case#", "case number"), ",", ""),
			Requestor:         getField(rec, index, "requestor"),
			Service:           service,
			Inquiry:           getField(rec, index, "inquiry"),
			Status:            getField(rec, index, "status"),
			CreationTimestamp: getFieldAny(rec, index, "creation timestamp", "created timestamp"),
			SME:               getFieldAny(rec, index, "sme (on it)", "in process (on it sme)", "sme"),
			OnItTime:          getField(rec, index, "on it time"),
			Attendee:          getField(rec, index, "attendee"),
			AttendedTimestamp: getField(rec, index, "attended timestamp"),
			TimeToOnItRaw:     onItRaw,
			TimeToAttendedRaw: attendedRaw,
			TimeToOnItSec:     ParseHMS(onItRaw),
			TimeToAttendedSec: ParseHMS(attendedRaw),
			Month:             getField(rec, index, "month"),
			Day:               getField(rec, index, "day"),
			Weekend:           getField(rec, index, "weekend?"),
			WorkingHours:      getFieldAny(rec, index, "working hours?", "working hours"),
			CaseReason:        getField(rec, index, "case reason"),
			AFI:               getField(rec, index, "afi"),
			AFIComment:        getField(rec, index, "afi comment"),
			ArticleNumber:     getFieldAny(rec, index, "article#", "article #", "article number"),
			MessageLinks:      collectMessageLinks(rec, index),
			Survey:            parseSurvey(getField(rec, index, "survey")),
		}

		r.DateCreated = n.parseTimestamp(getFieldAny(rec, index, "date created", "created at"))
		if hour := getFieldAny(rec, index, "hour_created", "hour created"); hour != "" {
			r.HourCreated, _ = strconv.Atoi(hour)
		}
		n.deriveCalendarFields(&r)

		out = append(out, r)
	}
	return out
}

func (n *Normalizer) parseTimestamp(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if ts, err := time.ParseInLocation(layout, value, n.Location); err == nil {
			return ts.In(n.Location)
		}
	}
	return time.Time{}
}

// deriveCalendarFields fills calendar columns the sheet left blank from the
// localized creation timestamp. Pre-supplied values win over derivation.
func (n *Normalizer) deriveCalendarFields(r *models.CaseRecord) {
	if r.DateCreated.IsZero() {
		return
	}
	if r.Month == "" {
		r.Month = r.DateCreated.Month().String()
	}
	if r.Day == "" {
		r.Day = r.DateCreated.Weekday().String()
	}
	if r.Weekend == "" {
		r.Weekend = yesNo(isWeekend(r.DateCreated.Weekday()))
	}
	if r.HourCreated == 0 {
		r.HourCreated = r.DateCreated.Hour()
	}
	if r.WorkingHours == "" {
		hour := r.DateCreated.Hour()
		working := hour >= n.WorkdayStartHour && hour < n.WorkdayEndHour && !isWeekend(r.DateCreated.Weekday())
		r.WorkingHours = yesNo(working)
	}
}

func isWeekend(d time.Weekday) bool {
	return d == time.Saturday || d == time.Sunday
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

func parseSurvey(value string) *float64 {
	if value == "" {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}
	return &f
}

func collectMessageLinks(rec []string, idx map[string]int) []string {
	var links []string
	for _, name := range []string{"message link", "message link 0", "message link 1", "message link 2"} {
		if v := getField(rec, idx, name); v != "" {
			links = append(links, v)
		}
	}
	return links
}

func headerIndex(headers []string) map[string]int {
	idx := map[string]int{}
	for i, h := range headers {
		idx[normalizeHeader(h)] = i
	}
	return idx
}

func getField(rec []string, idx map[string]int, name string) string {
	pos, ok := idx[normalizeHeader(name)]
	if !ok || pos >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[pos])
}

func getFieldAny(rec []string, idx map[string]int, names ...string) string {
	for _, name := range names {
		if v := getField(rec, idx, name); v != "" {
			return v
		}
	}
	return ""
}

func normalizeHeader(h string) string {
	h = strings.ReplaceAll(h, "\uFEFF", "")
	return strings.ToLower(strings.TrimSpace(h))
}
