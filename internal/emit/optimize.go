package emit

import (
	"regexp"
	"strconv"
	"strings"
)

var whitespaceRun = regexp.MustCompile(`[ \t]+`)
var dAttr = regexp.MustCompile(`d="([^"]*)"`)

// optimize collapses runs of whitespace around path commands and rewrites
// any "L" segment whose x or y matches the previous point within 0.1 into
// the horizontal/vertical shorthand form.
func optimize(doc string) string {
	doc = dAttr.ReplaceAllStringFunc(doc, func(m string) string {
		inner := m[3 : len(m)-1]
		return `d="` + optimizePathData(inner) + `"`
	})
	lines := strings.Split(doc, "\n")
	for i, line := range lines {
		trimmed := whitespaceRun.ReplaceAllString(strings.TrimRight(line, " \t"), " ")
		lines[i] = trimmed
	}
	return strings.Join(lines, "\n")
}

func optimizePathData(d string) string {
	tokens := strings.Fields(d)
	var out []string
	var prevX, prevY float64
	havePrev := false

	for _, tok := range tokens {
		if tok == "Z" {
			out = append(out, tok)
			continue
		}
		cmd := tok[0]
		coords := strings.SplitN(tok[1:], ",", 2)
		if len(coords) != 2 {
			out = append(out, tok)
			continue
		}
		x, errX := strconv.ParseFloat(coords[0], 64)
		y, errY := strconv.ParseFloat(coords[1], 64)
		if errX != nil || errY != nil {
			out = append(out, tok)
			continue
		}

		if cmd == 'L' && havePrev {
			switch {
			case abs64(x-prevX) <= 0.1:
				out = append(out, "V"+coords[1])
			case abs64(y-prevY) <= 0.1:
				out = append(out, "H"+coords[0])
			default:
				out = append(out, tok)
			}
		} else {
			out = append(out, tok)
		}

		prevX, prevY = x, y
		havePrev = true
	}

	return strings.Join(out, " ")
}

func abs64(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
