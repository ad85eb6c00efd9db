package command

import "strings"

// Split breaks raw into individual commands. The separator is an ampersand
// preceded by whitespace; "\&" is a literal ampersand. Leading whitespace is
// trimmed from every piece and empty pieces are dropped.
func Split(raw string) []string {
	var (
		out []string
		cur strings.Builder
	)
	flush := func() {
		piece := strings.TrimLeft(cur.String(), " \t")
		piece = strings.TrimRight(piece, " \t")
		if piece != "" {
			out = append(out, piece)
		}
		cur.Reset()
	}

	runes := []rune(raw)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '\\' && i+1 < len(runes) && runes[i+1] == '&':
			cur.WriteRune('&')
			i++
		case r == '&' && i > 0 && isSpace(runes[i-1]):
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return out
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t'
}
