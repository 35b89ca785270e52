package logical

import (
	"math"
	"time"

	"github.com/primait/avrogen/internal/schema"
)

const (
	dateLayout  = "2006-01-02"
	secondsADay = 24 * 60 * 60
)

// Epoch is the redaction value for datetime and timestamp fields.
var Epoch = time.Unix(0, 0).UTC()

type unit time.Duration

const (
	millis = unit(time.Millisecond)
	micros = unit(time.Microsecond)
)

// dateDays carries a calendar date as days since 1970-01-01. Days outside
// the int range are rejected on both sides.
type dateDays struct{}

func (dateDays) Encode(native any) (any, error) {
	d, ok := native.(Date)
	if !ok {
		return nil, errorf(schema.Date, "expected logical.Date, got %T", native)
	}
	days := d.Days()
	if days < math.MinInt32 || days > math.MaxInt32 {
		return nil, errorf(schema.Date, "%s is out of range", d)
	}
	return int(days), nil
}

func (dateDays) Decode(intermediate any) (any, error) {
	days, ok := integer(intermediate)
	if !ok {
		return nil, errorf(schema.Date, "expected int, got %T", intermediate)
	}
	if days < math.MinInt32 || days > math.MaxInt32 {
		return nil, errorf(schema.Date, "%d days overflows int", days)
	}
	return DateFromDays(days), nil
}

func (dateDays) Zero() any { return EpochDate }

type dateString struct{}

func (dateString) Encode(native any) (any, error) {
	d, ok := native.(Date)
	if !ok {
		return nil, errorf(schema.DateString, "expected logical.Date, got %T", native)
	}
	return d.String(), nil
}

func (dateString) Decode(intermediate any) (any, error) {
	s, ok := intermediate.(string)
	if !ok {
		return nil, errorf(schema.DateString, "expected string, got %T", intermediate)
	}
	d, err := ParseDate(s)
	if err != nil {
		return nil, errorf(schema.DateString, "invalid date %q", s)
	}
	return d, nil
}

func (dateString) Zero() any { return EpochDate }

// datetimeString carries an RFC 3339 timestamp. The offset survives the
// round trip; the instant is what compares equal.
type datetimeString struct{}

func (datetimeString) Encode(native any) (any, error) {
	t, ok := native.(time.Time)
	if !ok {
		return nil, errorf(schema.DatetimeString, "expected time.Time, got %T", native)
	}
	return t.Format(time.RFC3339Nano), nil
}

func (datetimeString) Decode(intermediate any) (any, error) {
	s, ok := intermediate.(string)
	if !ok {
		return nil, errorf(schema.DatetimeString, "expected string, got %T", intermediate)
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return nil, errorf(schema.DatetimeString, "invalid datetime %q", s)
	}
	return t, nil
}

func (datetimeString) Zero() any { return Epoch }

// timeOfDay carries a signed offset from midnight. Sub-unit precision is
// truncated on encode.
type timeOfDay struct {
	kind schema.LogicalKind
	unit unit
}

func (c timeOfDay) Encode(native any) (any, error) {
	d, ok := native.(time.Duration)
	if !ok {
		return nil, errorf(c.kind, "expected time.Duration, got %T", native)
	}
	n := int64(d / time.Duration(c.unit))
	if c.unit == millis {
		return int(n), nil
	}
	return n, nil
}

func (c timeOfDay) Decode(intermediate any) (any, error) {
	n, ok := integer(intermediate)
	if !ok {
		return nil, errorf(c.kind, "expected integer, got %T", intermediate)
	}
	return time.Duration(n) * time.Duration(c.unit), nil
}

func (timeOfDay) Zero() any { return time.Duration(0) }

// timestamp carries an instant as units since the epoch. Local timestamps
// encode the wall clock as if it were UTC and decode into UTC.
type timestamp struct {
	kind  schema.LogicalKind
	unit  unit
	local bool
}

func (c timestamp) Encode(native any) (any, error) {
	t, ok := native.(time.Time)
	if !ok {
		return nil, errorf(c.kind, "expected time.Time, got %T", native)
	}
	if c.local {
		t = time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
	}
	if c.unit == millis {
		return t.UnixMilli(), nil
	}
	return t.UnixMicro(), nil
}

func (c timestamp) Decode(intermediate any) (any, error) {
	n, ok := integer(intermediate)
	if !ok {
		return nil, errorf(c.kind, "expected long, got %T", intermediate)
	}
	if c.unit == millis {
		return time.UnixMilli(n).UTC(), nil
	}
	return time.UnixMicro(n).UTC(), nil
}

func (timestamp) Zero() any { return Epoch }
