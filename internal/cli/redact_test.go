package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedactFromStdin(t *testing.T) {
	path := writeSchema(t, t.TempDir(), "person.avsc", personSchema)

	out, err := execute(t, NewRedactCommand(&RootOptions{Format: "text"}), `{"name": "Ada", "age": 36, "status": "INACTIVE"}`, path)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, map[string]any{"name": "", "age": float64(36), "status": "INACTIVE"}, got)
}

func TestRedactNestedFromFile(t *testing.T) {
	dir := t.TempDir()
	address := writeSchema(t, dir, "address.avsc", addressSchema)
	customer := writeSchema(t, dir, "customer.avsc", customerSchema)
	input := writeSchema(t, dir, "value.json", `{
		"email": "ada@example.com",
		"home": {"street": "12 Analytical Row", "postcode": "EC1"}
	}`)

	out, err := execute(t, NewRedactCommand(&RootOptions{Format: "json"}), "",
		customer, "--deps", address, "--input", input)
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, map[string]any{
		"email": "",
		"home":  map[string]any{"street": "", "postcode": "EC1"},
	}, resp.Data)
}

func TestRedactSelectsType(t *testing.T) {
	dir := t.TempDir()
	address := writeSchema(t, dir, "address.avsc", addressSchema)
	customer := writeSchema(t, dir, "customer.avsc", customerSchema)

	out, err := execute(t, NewRedactCommand(&RootOptions{Format: "text"}), `{"street": "Main St", "postcode": "N1"}`,
		customer, "--deps", address, "--type", "com.example.geo.Address")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, map[string]any{"street": "", "postcode": "N1"}, got)
}

func TestRedactInvalidValue(t *testing.T) {
	path := writeSchema(t, t.TempDir(), "person.avsc", personSchema)

	tests := []struct {
		name  string
		input string
		code  string
	}{
		{"missing required field", `{"name": "Ada", "age": 36}`, ErrCodeInvalidData},
		{"wrong kind", `{"name": "Ada", "age": "old", "status": "ACTIVE"}`, ErrCodeInvalidData},
		{"not json", `{"name": `, ErrCodeLoadFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, NewRedactCommand(&RootOptions{Format: "text"}), tt.input, path)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			assert.Contains(t, err.Error(), tt.code)
		})
	}
}

func TestRedactMissingInputFile(t *testing.T) {
	path := writeSchema(t, t.TempDir(), "person.avsc", personSchema)

	_, err := execute(t, NewRedactCommand(&RootOptions{Format: "text"}), "",
		path, "--input", filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrCodeNotFound)
}
