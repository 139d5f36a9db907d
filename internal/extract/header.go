package extract

import "strings"

// FilterHeader removes cells whose text equals any of the given header
// strings. Tables with multi-row headers repeat the header text in the
// first data row once spans are expanded, so this runs before extraction.
// Comparison ignores whitespace differences.
func FilterHeader(cells []string, headers ...string) ([]string, int) {
	skip := make(map[string]bool, len(headers))
	for _, h := range headers {
		if key := squash(h); key != "" {
			skip[key] = true
		}
	}

	kept := make([]string, 0, len(cells))
	dropped := 0
	for _, cell := range cells {
		if skip[squash(cell)] {
			dropped++
			continue
		}
		kept = append(kept, cell)
	}
	return kept, dropped
}

func squash(s string) string {
	return strings.Join(strings.Fields(s), "")
}
