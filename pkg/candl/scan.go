package candl

import "strings"

// lineScanner is a cursor over a single line of candl output. The
// dependence grammar is small enough that explicit field extraction is
// both faster and easier to test than embedded pattern strings.
type lineScanner struct {
	s   string
	pos int
}

func newLineScanner(s string) *lineScanner {
	return &lineScanner{s: s}
}

func (sc *lineScanner) eof() bool {
	return sc.pos >= len(sc.s)
}

// skipSpaces advances past spaces and tabs.
func (sc *lineScanner) skipSpaces() {
	for !sc.eof() && (sc.s[sc.pos] == ' ' || sc.s[sc.pos] == '\t') {
		sc.pos++
	}
}

// literal consumes the exact string lit at the cursor.
func (sc *lineScanner) literal(lit string) bool {
	if strings.HasPrefix(sc.s[sc.pos:], lit) {
		sc.pos += len(lit)
		return true
	}
	return false
}

// stmtID consumes a statement identifier: "S" followed by digits.
func (sc *lineScanner) stmtID() (string, bool) {
	start := sc.pos
	if sc.eof() || sc.s[sc.pos] != 'S' {
		return "", false
	}
	sc.pos++
	if _, ok := sc.digits(); !ok {
		sc.pos = start
		return "", false
	}
	return sc.s[start:sc.pos], true
}

// digits consumes a non-negative decimal integer.
func (sc *lineScanner) digits() (int, bool) {
	start := sc.pos
	n := 0
	for !sc.eof() && sc.s[sc.pos] >= '0' && sc.s[sc.pos] <= '9' {
		n = n*10 + int(sc.s[sc.pos]-'0')
		sc.pos++
	}
	if sc.pos == start {
		return 0, false
	}
	return n, true
}

// ident consumes an identifier: letters, digits and underscores.
func (sc *lineScanner) ident() (string, bool) {
	start := sc.pos
	for !sc.eof() && isIdentChar(sc.s[sc.pos]) {
		sc.pos++
	}
	if sc.pos == start {
		return "", false
	}
	return sc.s[start:sc.pos], true
}

// seekWord advances the cursor to just past the next occurrence of word
// that is not part of a larger identifier.
func (sc *lineScanner) seekWord(word string) bool {
	for from := sc.pos; from < len(sc.s); {
		idx := strings.Index(sc.s[from:], word)
		if idx < 0 {
			return false
		}
		abs := from + idx
		end := abs + len(word)
		leftOK := abs == 0 || !isIdentChar(sc.s[abs-1])
		rightOK := end >= len(sc.s) || !isIdentChar(sc.s[end])
		if leftOK && rightOK {
			sc.pos = end
			return true
		}
		from = abs + 1
	}
	return false
}

// until consumes up to and including the next occurrence of delim and
// returns the text before it.
func (sc *lineScanner) until(delim byte) (string, bool) {
	idx := strings.IndexByte(sc.s[sc.pos:], delim)
	if idx < 0 {
		return "", false
	}
	out := sc.s[sc.pos : sc.pos+idx]
	sc.pos += idx + 1
	return out, true
}

func isIdentChar(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}
