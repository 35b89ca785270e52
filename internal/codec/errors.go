package codec

import (
	"errors"
	"fmt"
	"strings"
)

// Generation error codes.
const (
	CodeUnresolved       = "UNRESOLVED_REFERENCE"
	CodePIIEnumNoDefault = "PII_ENUM_NO_DEFAULT"
	CodeInlineDefinition = "INLINE_DEFINITION"
	CodeUnredactable     = "UNREDACTABLE_FIELD"
	CodeInvalidDefault   = "INVALID_DEFAULT"
)

// GenerationError reports a schema for which no codec can be built.
type GenerationError struct {
	Code    string
	Name    string // FQN of the definition being built
	Field   string // offending field, if any
	Message string
}

func (e *GenerationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("[%s] %s.%s: %s", e.Code, e.Name, e.Field, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Name, e.Message)
}

// IsGenerationError returns true if err is (or wraps) a GenerationError.
func IsGenerationError(err error) bool {
	var ge *GenerationError
	return errors.As(err, &ge)
}

// DecodeError reports an intermediate value that does not match its schema.
// Path locates the value inside the decoded document.
type DecodeError struct {
	Path   string
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Path == "" {
		return "decode: " + e.Reason
	}
	return fmt.Sprintf("decode %s: %s", e.Path, e.Reason)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// IsDecodeError returns true if err is (or wraps) a DecodeError.
func IsDecodeError(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}

// EncodeError reports a native value that does not match its schema.
type EncodeError struct {
	Path   string
	Reason string
	Err    error
}

func (e *EncodeError) Error() string {
	if e.Path == "" {
		return "encode: " + e.Reason
	}
	return fmt.Sprintf("encode %s: %s", e.Path, e.Reason)
}

func (e *EncodeError) Unwrap() error { return e.Err }

// IsEncodeError returns true if err is (or wraps) an EncodeError.
func IsEncodeError(err error) bool {
	var ee *EncodeError
	return errors.As(err, &ee)
}

func decodeErrorf(format string, args ...any) *DecodeError {
	return &DecodeError{Reason: fmt.Sprintf(format, args...)}
}

func encodeErrorf(format string, args ...any) *EncodeError {
	return &EncodeError{Reason: fmt.Sprintf(format, args...)}
}

// joinPath prefixes a path segment; index segments attach without a dot.
func joinPath(segment, path string) string {
	switch {
	case path == "":
		return segment
	case strings.HasPrefix(path, "["):
		return segment + path
	default:
		return segment + "." + path
	}
}

// atDecode places err under segment, converting foreign errors.
func atDecode(segment string, err error) error {
	var de *DecodeError
	if errors.As(err, &de) {
		return &DecodeError{Path: joinPath(segment, de.Path), Reason: de.Reason, Err: de.Err}
	}
	return &DecodeError{Path: segment, Reason: err.Error(), Err: err}
}

// atEncode places err under segment, converting foreign errors.
func atEncode(segment string, err error) error {
	var ee *EncodeError
	if errors.As(err, &ee) {
		return &EncodeError{Path: joinPath(segment, ee.Path), Reason: ee.Reason, Err: ee.Err}
	}
	return &EncodeError{Path: segment, Reason: err.Error(), Err: err}
}

// asDecode converts a foreign error into a DecodeError.
func asDecode(err error) error {
	if IsDecodeError(err) {
		return err
	}
	return &DecodeError{Reason: err.Error(), Err: err}
}

// asEncode converts a foreign error into an EncodeError.
func asEncode(err error) error {
	if IsEncodeError(err) {
		return err
	}
	return &EncodeError{Reason: err.Error(), Err: err}
}
