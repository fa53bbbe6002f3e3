package deck

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Date errors.
var (
	ErrInvalidMonth    = errors.New("invalid month name")
	ErrInvalidDate     = errors.New("invalid date record")
	ErrTstepBeforeDate = errors.New("TSTEP appeared before any START or DATES")
)

// Month names as used in DATES and START records. JLY is the
// simulator's alternative spelling for July.
var monthNumbers = map[string]time.Month{
	"JAN": time.January, "FEB": time.February, "MAR": time.March,
	"APR": time.April, "MAY": time.May, "JUN": time.June,
	"JUL": time.July, "JLY": time.July, "AUG": time.August,
	"SEP": time.September, "OCT": time.October, "NOV": time.November,
	"DEC": time.December,
}

// MonthName returns the deck spelling for a month.
func MonthName(m time.Month) string {
	return strings.ToUpper(m.String()[:3])
}

// ParseDateRecord converts a DATES or START record into a date.
func ParseDateRecord(keyword string, rec Record) (time.Time, error) {
	values, err := RecordMap(keyword, rec)
	if err != nil {
		return time.Time{}, err
	}

	day, dayOK := values["DAY"].(int)
	year, yearOK := values["YEAR"].(int)
	monthStr, monthOK := values["MONTH"].(string)

	if !dayOK || !yearOK || !monthOK {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidDate, values)
	}

	month, ok := monthNumbers[strings.ToUpper(monthStr)]
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %s", ErrInvalidMonth, monthStr)
	}

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), nil
}

// TstepDays returns the timestep lengths of a TSTEP record in days.
func TstepDays(rec Record) ([]float64, error) {
	return rec.Floats()
}

// AdvanceDate moves a date forward by a number of days, keeping
// fractional days as hours.
func AdvanceDate(date time.Time, days float64) time.Time {
	return date.Add(time.Duration(days * 24 * float64(time.Hour)))
}

// ScheduleStep groups schedule keywords under the date at which they
// apply. A nil Date covers keywords before any START or DATES.
type ScheduleStep struct {
	Date     *time.Time
	Keywords []Keyword
}

// Schedule walks the deck and groups non-date keywords by the
// simulation date in effect, advancing on START, DATES and TSTEP.
// Keyword order within a step is deck order.
func Schedule(d *Deck) ([]ScheduleStep, error) {
	var (
		steps   []ScheduleStep
		current *ScheduleStep
		date    *time.Time
	)

	for _, kw := range d.Keywords {
		switch kw.Name {
		case "START", "DATES":
			for _, rec := range kw.Records {
				parsed, err := ParseDateRecord(kw.Name, rec)
				if err != nil {
					return nil, err
				}

				date = &parsed
			}

			current = nil
		case "TSTEP":
			if date == nil {
				return nil, ErrTstepBeforeDate
			}

			for _, rec := range kw.Records {
				days, err := TstepDays(rec)
				if err != nil {
					return nil, err
				}

				next := *date
				for _, step := range days {
					next = AdvanceDate(next, step)
				}

				date = &next
			}

			current = nil
		default:
			if current == nil {
				steps = append(steps, ScheduleStep{Date: date})
				current = &steps[len(steps)-1]
			}

			current.Keywords = append(current.Keywords, kw)
		}
	}

	return steps, nil
}
