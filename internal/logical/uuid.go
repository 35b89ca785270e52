package logical

import (
	"github.com/google/uuid"

	"github.com/primait/avrogen/internal/schema"
)

// NilUUID is the redaction value for uuid fields.
const NilUUID = "00000000-0000-0000-0000-000000000000"

type uuidString struct{}

func (uuidString) Encode(native any) (any, error) {
	s, ok := native.(string)
	if !ok {
		return nil, errorf(schema.UUID, "expected string, got %T", native)
	}
	if _, err := uuid.Parse(s); err != nil {
		return nil, errorf(schema.UUID, "invalid uuid %q", s)
	}
	return s, nil
}

func (uuidString) Decode(intermediate any) (any, error) {
	s, ok := intermediate.(string)
	if !ok {
		return nil, errorf(schema.UUID, "expected string, got %T", intermediate)
	}
	if _, err := uuid.Parse(s); err != nil {
		return nil, errorf(schema.UUID, "invalid uuid %q", s)
	}
	return s, nil
}

func (uuidString) Zero() any { return NilUUID }
