package catalog

import (
	"strings"
	"time"
)

// MatchInsurer checks whether the clinic works with the named coverage.
// Matching is case-insensitive and bidirectional on substrings: a caller
// saying "osde" matches the entry "OSDE", and "Swiss Medical Internacional"
// matches the entry "Swiss Medical". Obras sociales are checked before
// prepagas, in catalog order.
func (c *Catalog) MatchInsurer(name string) (Insurer, bool) {
	needle := strings.ToUpper(strings.TrimSpace(name))
	if needle == "" {
		return Insurer{}, false
	}
	for _, os := range c.ObrasSociales {
		entry := strings.ToUpper(os)
		if strings.Contains(needle, entry) || strings.Contains(entry, needle) {
			return Insurer{Name: os, Kind: KindObraSocial}, true
		}
	}
	for _, pp := range c.Prepagas {
		entry := strings.ToUpper(pp)
		if strings.Contains(needle, entry) || strings.Contains(entry, needle) {
			return Insurer{Name: pp, Kind: KindPrepaga}, true
		}
	}
	return Insurer{}, false
}

// Day selects one of the three days the mock agenda covers.
type Day string

const (
	DayToday    Day = "hoy"
	DayTomorrow Day = "manana"
	DayAfter    Day = "pasado_manana"
)

// Slots is the mock availability for a single day.
type Slots struct {
	Date  string
	Times []string
}

// SlotsFor returns the demonstration agenda relative to now: today is always
// fully booked, tomorrow and the day after carry a fixed list of times. A
// real implementation would query the scheduling backend.
func (c *Catalog) SlotsFor(day Day, now time.Time) (Slots, bool) {
	switch day {
	case DayToday:
		return Slots{Date: formatDate(now)}, true
	case DayTomorrow:
		return Slots{
			Date:  formatDate(now.AddDate(0, 0, 1)),
			Times: []string{"10:00", "14:30", "16:00", "17:30"},
		}, true
	case DayAfter:
		return Slots{
			Date:  formatDate(now.AddDate(0, 0, 2)),
			Times: []string{"09:00", "11:30", "15:00", "17:30", "18:30"},
		}, true
	}
	return Slots{}, false
}

// MatchFAQ returns the first FAQ whose keyword set intersects the query.
// The scan is a flat linear pass in catalog order; there is no ranking, so
// a query matching two entries gets the earlier one.
func (c *Catalog) MatchFAQ(query string) (FAQ, bool) {
	q := strings.ToLower(query)
	for _, faq := range c.FAQs {
		for _, kw := range faq.Keywords {
			if strings.Contains(q, kw) {
				return faq, true
			}
		}
	}
	return FAQ{}, false
}
