// Package identifier extracts archival reference codes from slide filenames.
package identifier

import (
	"regexp"
	"strings"
)

// msPattern matches a leading manuscript collection code, e.g. "ms39080" in
// "ms39080-51-5-1-1.jpeg". The code must start the filename and runs up to
// the first non-alphanumeric separator.
var msPattern = regexp.MustCompile(`(?i)^(ms\d+)`)

// Extract returns the MS number prefix of filename, lowercased, or the empty
// string when the filename carries no recognizable identifier. It never
// fails; a missing identifier is a valid outcome.
func Extract(filename string) string {
	m := msPattern.FindStringSubmatch(filename)
	if m == nil {
		return ""
	}
	return strings.ToLower(m[1])
}
