package trigger

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
)

const patternChars = "*?[]{}"

var patternCache sync.Map // map[string]*regexp.Regexp

// MatchAddress reports whether an OSC address matches pattern. A pattern without wildcard characters must equal
// the address exactly; otherwise OSC 1.0 rules apply over the whole address: '*' and '?' never cross a '/',
// [abc], [a-z] and [!abc] match one character and {foo,bar} matches one of the listed strings.
func MatchAddress(pattern, address string) bool {
	if !strings.ContainsAny(pattern, patternChars) {
		return pattern == address
	}
	re, err := compilePattern(pattern)
	if err != nil {
		return false
	}
	return re.MatchString(address)
}

func compilePattern(pattern string) (*regexp.Regexp, error) {
	if cached, ok := patternCache.Load(pattern); ok {
		return cached.(*regexp.Regexp), nil
	}

	var b strings.Builder
	b.WriteString("^")
	runes := []rune(pattern)
	for i := 0; i < len(runes); i++ {
		switch r := runes[i]; r {
		case '*':
			b.WriteString("[^/]*")
		case '?':
			b.WriteString("[^/]")
		case '[':
			end := indexRune(runes, i+1, ']')
			if end < 0 {
				return nil, fmt.Errorf("osc pattern %q: unterminated '['", pattern)
			}
			b.WriteString(charClass(runes[i+1 : end]))
			i = end
		case '{':
			end := indexRune(runes, i+1, '}')
			if end < 0 {
				return nil, fmt.Errorf("osc pattern %q: unterminated '{'", pattern)
			}
			alts := strings.Split(string(runes[i+1:end]), ",")
			for j := range alts {
				alts[j] = regexp.QuoteMeta(alts[j])
			}
			b.WriteString("(?:" + strings.Join(alts, "|") + ")")
			i = end
		case ']', '}':
			return nil, fmt.Errorf("osc pattern %q: unexpected %q", pattern, r)
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString("$")

	re, err := regexp.Compile(b.String())
	if err != nil {
		return nil, fmt.Errorf("osc pattern %q: %w", pattern, err)
	}
	patternCache.Store(pattern, re)
	return re, nil
}

func charClass(body []rune) string {
	var b strings.Builder
	b.WriteString("[")
	if len(body) > 0 && body[0] == '!' {
		b.WriteString("^")
		body = body[1:]
	}
	for _, r := range body {
		switch r {
		case '\\', '^', '[', ']':
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	b.WriteString("]")
	return b.String()
}

func indexRune(runes []rune, from int, target rune) int {
	for i := from; i < len(runes); i++ {
		if runes[i] == target {
			return i
		}
	}
	return -1
}
