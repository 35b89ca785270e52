package logical

import (
	"errors"
	"fmt"

	"github.com/primait/avrogen/internal/schema"
)

// Codec converts one logical type between its native and intermediate forms.
type Codec interface {
	// Encode converts a native value. A value of the wrong Go type or one
	// that violates the type's contract (an invalid UUID, a decimal that
	// does not fit its precision) is an error.
	Encode(native any) (any, error)

	// Decode converts an intermediate value back to its native form.
	Decode(intermediate any) (any, error)

	// Zero is the redaction value for the type.
	Zero() any
}

// Error reports a failed logical conversion.
type Error struct {
	Kind    schema.LogicalKind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// IsError returns true if err is (or wraps) a logical conversion error.
func IsError(err error) bool {
	var le *Error
	return errors.As(err, &le)
}

func errorf(kind schema.LogicalKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// For returns the codec for a logical schema.
func For(l schema.Logical) (Codec, error) {
	switch l.Kind {
	case schema.Decimal:
		return decimalBytes{precision: l.Precision, scale: l.Scale}, nil
	case schema.DecimalString:
		return decimalString{}, nil
	case schema.UUID:
		return uuidString{}, nil
	case schema.Date:
		return dateDays{}, nil
	case schema.DateString:
		return dateString{}, nil
	case schema.DatetimeString:
		return datetimeString{}, nil
	case schema.TimeMillis:
		return timeOfDay{kind: l.Kind, unit: millis}, nil
	case schema.TimeMicros:
		return timeOfDay{kind: l.Kind, unit: micros}, nil
	case schema.TimestampMillis:
		return timestamp{kind: l.Kind, unit: millis}, nil
	case schema.TimestampMicros:
		return timestamp{kind: l.Kind, unit: micros}, nil
	case schema.LocalTimestampMillis:
		return timestamp{kind: l.Kind, unit: millis, local: true}, nil
	case schema.LocalTimestampMicros:
		return timestamp{kind: l.Kind, unit: micros, local: true}, nil
	default:
		return nil, fmt.Errorf("logical: no codec for %q", l.Kind)
	}
}

// integer accepts the Go integer kinds an intermediate map may carry.
// Floats are rejected even when integral: the wire codec never produces
// them for int or long.
func integer(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	default:
		return 0, false
	}
}
