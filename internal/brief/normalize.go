package brief

import (
	"regexp"
	"strings"
)

var (
	reHorizontalSpace = regexp.MustCompile(`[\t\f\v \x{00A0}]+`)
	reLinePadding     = regexp.MustCompile(` ?\n ?`)
	reBlankRun        = regexp.MustCompile(`\n{3,}`)
)

// Normalize produces the canonical text every matcher runs against.
// It is total and idempotent.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}
	s := strings.ReplaceAll(raw, "\r", "")
	s = reHorizontalSpace.ReplaceAllString(s, " ")
	s = reLinePadding.ReplaceAllString(s, "\n")
	s = reBlankRun.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
