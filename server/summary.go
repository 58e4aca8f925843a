package server

import (
	"time"

	goerrors "github.com/goliatone/go-errors"
)

// Summary period identifiers, matching the wire values the client
// sends.
const (
	PeriodDay   = "dia"
	PeriodWeek  = "semana"
	PeriodMonth = "mes"
)

const dateLayout = "2006-01-02"

// Summary aggregates a user's clock records over a date range.
// Records is the count of entries considered, not the entries
// themselves.
type Summary struct {
	Period     string  `json:"period"`
	StartDate  string  `json:"startDate"`
	EndDate    string  `json:"endDate"`
	TotalHours float64 `json:"totalHours"`
	Records    int     `json:"records"`
}

// PeriodRange resolves a period identifier into a [start, end] date
// pair anchored at the reference day. Explicit dates win over the
// period.
func PeriodRange(period, startDate, endDate string, now time.Time) (string, string, error) {
	if startDate != "" && endDate != "" {
		return startDate, endDate, nil
	}

	day := now.Truncate(24 * time.Hour)

	switch period {
	case PeriodDay, "":
		return day.Format(dateLayout), day.Format(dateLayout), nil
	case PeriodWeek:
		// week starts Monday
		offset := (int(day.Weekday()) + 6) % 7
		start := day.AddDate(0, 0, -offset)
		return start.Format(dateLayout), start.AddDate(0, 0, 6).Format(dateLayout), nil
	case PeriodMonth:
		start := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
		return start.Format(dateLayout), start.AddDate(0, 1, -1).Format(dateLayout), nil
	}

	return "", "", goerrors.New("unknown summary period", goerrors.CategoryBadInput).
		WithCode(goerrors.CodeBadRequest)
}

// Summarize pairs clock-ins with the following clock-out on the same
// day and accumulates the elapsed hours. Unpaired entries contribute
// nothing. Records are expected in date/time order, which is how the
// repository returns them.
func Summarize(period, startDate, endDate string, records []*ClockRecord) *Summary {
	total := 0.0

	var openIn *ClockRecord
	for _, rec := range records {
		switch rec.Type {
		case EntryClockIn:
			openIn = rec
		case EntryClockOut:
			if openIn == nil || openIn.Date != rec.Date {
				openIn = nil
				continue
			}
			in, errIn := parseClock(openIn.Time)
			out, errOut := parseClock(rec.Time)
			if errIn == nil && errOut == nil && out.After(in) {
				total += out.Sub(in).Hours()
			}
			openIn = nil
		}
	}

	return &Summary{
		Period:     period,
		StartDate:  startDate,
		EndDate:    endDate,
		TotalHours: total,
		Records:    len(records),
	}
}

func parseClock(value string) (time.Time, error) {
	t, err := time.Parse("15:04", value)
	if err != nil {
		t, err = time.Parse("15:04:05", value)
	}
	return t, err
}
