// internal/service/analyzer/repair.go

package analyzer

import (
	"fmt"
	"regexp"
	"strings"
)

// trailingCommaRegex matches a comma immediately preceding a closing
// bracket or brace, a common model mistake.
var trailingCommaRegex = regexp.MustCompile(`,(\s*[\]}])`)

// RepairJSON coerces free-form model output into a parseable JSON candidate.
// The steps run in a fixed order: trim, de-fence, extract the outermost
// object, strip raw control characters, then drop trailing commas. Later
// steps assume the earlier ones already ran. Valid JSON passes through
// byte-identical.
func RepairJSON(raw string) (string, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.ReplaceAll(cleaned, "`json", "")
	cleaned = strings.ReplaceAll(cleaned, "`", "")

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end <= start {
		return "", fmt.Errorf("no JSON found in response")
	}
	candidate := cleaned[start : end+1]

	candidate = stripControlChars(candidate)
	candidate = trailingCommaRegex.ReplaceAllString(candidate, "$1")

	return candidate, nil
}

// stripControlChars deletes the C0 control characters that break strict
// JSON parsers: code points 0-8, 11, 12 and 14-31. Tab, newline and
// carriage return are kept.
func stripControlChars(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x20 && r != '\t' && r != '\n' && r != '\r' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
