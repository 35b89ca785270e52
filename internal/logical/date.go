package logical

import (
	"fmt"
	"time"
)

// Date is a calendar day with no time of day and no location. It is the
// native form of both date logical types, so a date never accepts an
// instant and silently drops its clock.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// EpochDate is 1970-01-01, the redaction value for date fields.
var EpochDate = Date{Year: 1970, Month: time.January, Day: 1}

// DateOf returns the calendar day of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// DateFromDays returns the date n days after 1970-01-01.
func DateFromDays(n int64) Date {
	return DateOf(time.Unix(n*secondsADay, 0).UTC())
}

// ParseDate parses a "2006-01-02" date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return DateOf(t), nil
}

// Days returns the number of days since 1970-01-01, negative before it.
func (d Date) Days() int64 {
	return d.Time().Unix() / secondsADay
}

// Time returns midnight UTC at the start of d.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}
