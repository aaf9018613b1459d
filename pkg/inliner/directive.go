package inliner

import (
	"regexp"
	"strings"
)

// includeDirective matches a quoted include. Whatever follows the closing quote is ignored.
var includeDirective = regexp.MustCompile(`^\s*#include\s*"([^"]+)"`)

// parseDirective returns the quoted file name if line is a quoted include directive.
func parseDirective(line string) (string, bool) {
	m := includeDirective.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// splitLines splits text on \n, \r\n and \r. A trailing terminator does not
// produce an empty last line, and empty text has no lines.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	var lines []string
	for len(text) > 0 {
		i := strings.IndexAny(text, "\r\n")
		if i < 0 {
			lines = append(lines, text)
			break
		}
		lines = append(lines, text[:i])
		if text[i] == '\r' && i+1 < len(text) && text[i+1] == '\n' {
			i++
		}
		text = text[i+1:]
	}
	return lines
}
