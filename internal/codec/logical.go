package codec

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/primait/avrogen/internal/logical"
	"github.com/primait/avrogen/internal/random"
	"github.com/primait/avrogen/internal/schema"
)

// Default generation windows for logical types.
var (
	defaultTimeMin = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)
	defaultTimeMax = time.Date(2100, time.January, 1, 0, 0, 0, 0, time.UTC)

	defaultDecimalStringBound = decimal.RequireFromString("999999.99")
)

const decimalStringScale = 2

func logicalNode(l schema.Logical) (*node, error) {
	c, err := logical.For(l)
	if err != nil {
		return nil, err
	}
	return &node{
		encode: func(v any) (any, error) {
			out, err := c.Encode(v)
			if err != nil {
				return nil, asEncode(err)
			}
			return out, nil
		},
		decode: func(v any) (any, error) {
			out, err := c.Decode(v)
			if err != nil {
				return nil, asDecode(err)
			}
			return out, nil
		},
		dropPII: identity,
		random: func(hint *schema.RangeHint, _ int) random.Generator[any] {
			return logicalRandom(l, hint)
		},
	}, nil
}

// logicalRandom yields native values that survive an encode/decode round
// trip unchanged.
func logicalRandom(l schema.Logical, hint *schema.RangeHint) random.Generator[any] {
	switch l.Kind {
	case schema.Decimal:
		bound := decimal.NewFromBigInt(logical.MaxUnscaled(l.Precision), -int32(l.Scale))
		lo, hi := decimalBounds(hint, bound.Neg(), bound)
		return random.Any(random.Decimal(lo, hi, int32(l.Scale)))

	case schema.DecimalString:
		lo, hi := decimalBounds(hint, defaultDecimalStringBound.Neg(), defaultDecimalStringBound)
		return random.Any(random.Decimal(lo, hi, decimalStringScale))

	case schema.UUID:
		return random.Any(random.UUID())

	case schema.Date, schema.DateString:
		lo, hi := timeBounds(hint, func(h *schema.RangeHint) *schema.TimeRange { return h.Date })
		days := random.Int(lo.Unix()/secondsADay, hi.Unix()/secondsADay)
		return random.Map(days, func(d int64) any { return logical.DateFromDays(d) })

	case schema.DatetimeString:
		lo, hi := timeBounds(hint, func(h *schema.RangeHint) *schema.TimeRange { return h.Timestamp })
		micros := random.Int(lo.UnixMicro(), hi.UnixMicro())
		return random.Map(micros, func(n int64) any { return time.UnixMicro(n).UTC() })

	case schema.TimeMillis:
		ms := random.Int(0, int64(24*time.Hour/time.Millisecond)-1)
		return random.Map(ms, func(n int64) any { return time.Duration(n) * time.Millisecond })

	case schema.TimeMicros:
		us := random.Int(0, int64(24*time.Hour/time.Microsecond)-1)
		return random.Map(us, func(n int64) any { return time.Duration(n) * time.Microsecond })

	case schema.TimestampMillis, schema.LocalTimestampMillis:
		lo, hi := timeBounds(hint, func(h *schema.RangeHint) *schema.TimeRange { return h.Timestamp })
		ms := random.Int(lo.UnixMilli(), hi.UnixMilli())
		return random.Map(ms, func(n int64) any { return time.UnixMilli(n).UTC() })

	default: // microsecond timestamps
		lo, hi := timeBounds(hint, func(h *schema.RangeHint) *schema.TimeRange { return h.Timestamp })
		us := random.Int(lo.UnixMicro(), hi.UnixMicro())
		return random.Map(us, func(n int64) any { return time.UnixMicro(n).UTC() })
	}
}

const secondsADay = 24 * 60 * 60

// decimalBounds narrows [lo, hi] by the decimal section of hint. Unparsable
// bounds are ignored.
func decimalBounds(hint *schema.RangeHint, lo, hi decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	if hint == nil || hint.Decimal == nil {
		return lo, hi
	}
	if d, err := decimal.NewFromString(hint.Decimal.Min); err == nil && d.GreaterThan(lo) {
		lo = d
	}
	if d, err := decimal.NewFromString(hint.Decimal.Max); err == nil && d.LessThan(hi) {
		hi = d
	}
	return lo, hi
}

// timeBounds returns the generation window for a time-like type. Bounds
// accept a date or an RFC 3339 timestamp.
func timeBounds(hint *schema.RangeHint, pick func(*schema.RangeHint) *schema.TimeRange) (time.Time, time.Time) {
	lo, hi := defaultTimeMin, defaultTimeMax
	if hint == nil {
		return lo, hi
	}
	r := pick(hint)
	if r == nil {
		return lo, hi
	}
	if t, ok := parseInstant(r.Min); ok {
		lo = t
	}
	if t, ok := parseInstant(r.Max); ok {
		hi = t
	}
	return lo, hi
}

func parseInstant(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
