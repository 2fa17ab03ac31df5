package service

import "github.com/srrview/backend/internal/models"

// Filter display names, used when reporting that an empty multi-select fell
// back to showing everything.
const (
	FilterService      = "Service"
	FilterMonth        = "Month"
	FilterWeekend      = "Weekend?"
	FilterWorkingHours = "Working Hours?"
	FilterSME          = "SME (On It)"
)

// FilterOptions are the choices available for each filter at its position in
// the chain. Each list reflects upstream filtering, so downstream dropdowns
// narrow as earlier filters are applied. That narrowing is intentional.
type FilterOptions struct {
	Services     []string `json:"services"`
	Months       []string `json:"months"`
	Weekend      []string `json:"weekend"`
	WorkingHours []string `json:"working_hours"`
	SMEs         []string `json:"smes"`
}

type FilterResult struct {
	Records []models.CaseRecord `json:"records"`
	Options FilterOptions       `json:"options"`
	// Fallbacks names the filters whose empty multi-select was treated as
	// "all records"; the UI surfaces these.
	Fallbacks []string `json:"fallbacks,omitempty"`
}

// ApplyFilters runs the predicate chain in fixed order: Service, Month,
// Weekend?, Working Hours?, SME. Predicates AND together; an All selection or
// an empty value set passes every row.
func ApplyFilters(records []models.CaseRecord, state models.FilterState) FilterResult {
	res := FilterResult{}

	res.Options.Services = uniqueValues(records, func(r models.CaseRecord) string { return r.Service })
	records, fell := applyOne(records, state.Service, func(r models.CaseRecord) string { return r.Service })
	if fell {
		res.Fallbacks = append(res.Fallbacks, FilterService)
	}

	res.Options.Months = uniqueValues(records, func(r models.CaseRecord) string { return r.Month })
	records, fell = applyOne(records, state.Month, func(r models.CaseRecord) string { return r.Month })
	if fell {
		res.Fallbacks = append(res.Fallbacks, FilterMonth)
	}

	res.Options.Weekend = uniqueValues(records, func(r models.CaseRecord) string { return r.Weekend })
	records, fell = applyOne(records, state.Weekend, func(r models.CaseRecord) string { return r.Weekend })
	if fell {
		res.Fallbacks = append(res.Fallbacks, FilterWeekend)
	}

	res.Options.WorkingHours = uniqueValues(records, func(r models.CaseRecord) string { return r.WorkingHours })
	records, fell = applyOne(records, state.WorkingHours, func(r models.CaseRecord) string { return r.WorkingHours })
	if fell {
		res.Fallbacks = append(res.Fallbacks, FilterWorkingHours)
	}

	res.Options.SMEs = uniqueValues(records, func(r models.CaseRecord) string { return r.SME })
	records, fell = applyOne(records, state.SME, func(r models.CaseRecord) string { return r.SME })
	if fell {
		res.Fallbacks = append(res.Fallbacks, FilterSME)
	}

	res.Records = records
	return res
}

func applyOne(records []models.CaseRecord, sel models.Selection, key func(models.CaseRecord) string) ([]models.CaseRecord, bool) {
	if sel.All {
		return records, false
	}
	if sel.Empty() {
		return records, true
	}
	out := make([]models.CaseRecord, 0, len(records))
	for _, r := range records {
		if sel.Contains(key(r)) {
			out = append(out, r)
		}
	}
	return out, false
}

// uniqueValues keeps first-appearance order and skips blanks, matching how
// the sidebar builds its dropdown lists.
func uniqueValues(records []models.CaseRecord, key func(models.CaseRecord) string) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, r := range records {
		v := key(r)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
