package views

import "strings"

// SplitPaths splits a line of file paths on whitespace. Single or double
// quotes group a path with spaces, and a backslash escapes the next rune,
// which covers what terminals paste on drag and drop.
func SplitPaths(line string) []string {
	var (
		out   []string
		cur   strings.Builder
		quote rune
		esc   bool
		seen  bool
	)
	flush := func() {
		if seen {
			out = append(out, cur.String())
		}
		cur.Reset()
		seen = false
	}

	for _, r := range line {
		switch {
		case esc:
			cur.WriteRune(r)
			esc = false
			seen = true
		case r == '\\' && quote != '\'':
			esc = true
		case quote != 0:
			if r == quote {
				quote = 0
				continue
			}
			cur.WriteRune(r)
		case r == '"' || r == '\'':
			quote = r
			seen = true
		case r == ' ' || r == '\t':
			flush()
		default:
			cur.WriteRune(r)
			seen = true
		}
	}
	flush()
	return out
}
