package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

const personSchema = `{
	"type": "record",
	"name": "Person",
	"namespace": "com.example",
	"fields": [
		{"name": "name", "type": "string", "pii": true},
		{"name": "age", "type": "int"},
		{"name": "status", "type": {
			"type": "enum",
			"name": "Status",
			"symbols": ["ACTIVE", "INACTIVE"],
			"default": "ACTIVE"
		}}
	]
}`

const addressSchema = `{
	"type": "record",
	"name": "Address",
	"namespace": "com.example.geo",
	"fields": [
		{"name": "street", "type": "string", "pii": true},
		{"name": "postcode", "type": "string", "range": {"string": {"format": "postal_code"}}}
	]
}`

const customerSchema = `{
	"type": "record",
	"name": "Customer",
	"namespace": "com.example",
	"fields": [
		{"name": "email", "type": "string", "pii": true},
		{"name": "home", "type": "com.example.geo.Address"}
	]
}`

// writeSchema writes content to dir/name and returns the path.
func writeSchema(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// execute runs cmd with args and returns what it wrote to stdout.
func execute(t *testing.T, cmd *cobra.Command, stdin string, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(io.Discard)
	cmd.SetIn(bytes.NewBufferString(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}
