package testutil

import (
	"bytes"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// AssertGoldenJSON compares data against testdata/golden/<name>.golden in
// the calling package. Regenerate with:
//
//	go test ./... -update
func AssertGoldenJSON(t *testing.T, name string, data []byte) {
	t.Helper()
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, append(bytes.TrimRight(data, "\n"), '\n'))
}
