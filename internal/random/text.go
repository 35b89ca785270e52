package random

import (
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"
)

// String yields a string of between minLen and maxLen code points drawn
// uniformly from [minCp, maxCp].
func String(minLen, maxLen int, minCp, maxCp rune) Generator[string] {
	length := Int(int64(minLen), int64(maxLen))
	cp := Int(int64(minCp), int64(maxCp))
	return func(s State) (State, string) {
		s, n := length(s)
		var b strings.Builder
		for range n {
			var c int64
			s, c = cp(s)
			b.WriteRune(rune(c))
		}
		return s, b.String()
	}
}

// PostalCode yields a five digit postal code.
func PostalCode() Generator[string] {
	return String(5, 5, '0', '9')
}

// UUID yields a random (version 4) UUID string.
func UUID() Generator[string] {
	return func(s State) (State, string) {
		return draw(s, func(r *rand.Rand) string {
			id, err := uuid.NewRandomFromReader(reader{r})
			if err != nil {
				// reader never fails
				panic(err)
			}
			return id.String()
		})
	}
}

// Email yields an address in the example.com domain.
func Email() Generator[string] {
	local := String(3, 12, 'a', 'z')
	return Map(local, func(l string) string { return l + "@example.com" })
}

// Bytes yields between minLen and maxLen random bytes.
func Bytes(minLen, maxLen int) Generator[[]byte] {
	return Map(List(minLen, maxLen, Int(0, 255)), func(vs []int64) []byte {
		out := make([]byte, len(vs))
		for i, v := range vs {
			out[i] = byte(v)
		}
		return out
	})
}

// reader adapts a *rand.Rand to io.Reader.
type reader struct {
	r *rand.Rand
}

func (rd reader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(rd.r.Uint64())
	}
	return len(p), nil
}
