package ingest

import "strings"

// delimiterSniffLines bounds how many lines delimiter detection samples,
// per spec §4.6 step 3.
const delimiterSniffLines = 100

// candidateDelimiters are tried in spec order; ties are broken in this
// order, so pipe wins over comma on an equally-stable count.
var candidateDelimiters = []rune{'|', ',', '\t', ';'}

// sniffDelimiter picks the delimiter that produces the most stable
// (most frequent, non-zero) column count across the first
// delimiterSniffLines non-blank lines of text.
func sniffDelimiter(text string) (rune, error) {
	lines := sampleLines(text, delimiterSniffLines)
	if len(lines) == 0 {
		return 0, &DelimiterError{Attempted: delimiterNames()}
	}

	bestDelim := rune(0)
	bestScore := -1
	bestColumns := 0

	for _, d := range candidateDelimiters {
		counts := make(map[int]int)
		for _, line := range lines {
			n := countOutsideQuotes(line, d) + 1
			counts[n]++
		}
		modeColumns, modeFreq := 0, 0
		for cols, freq := range counts {
			if cols <= 1 {
				continue // a delimiter that never appears isn't a real candidate
			}
			if freq > modeFreq {
				modeColumns, modeFreq = cols, freq
			}
		}
		if modeFreq > bestScore {
			bestScore, bestDelim, bestColumns = modeFreq, d, modeColumns
		}
	}

	if bestScore <= 0 || bestColumns < 2 {
		return 0, &DelimiterError{Attempted: delimiterNames()}
	}
	return bestDelim, nil
}

// countOutsideQuotes counts occurrences of d in line, skipping spans
// inside balanced double quotes, per spec §4.6 step 3 — a quoted field
// like "Doe, John" must not count its embedded comma as a separator.
func countOutsideQuotes(line string, d rune) int {
	n := 0
	inQuotes := false
	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == d && !inQuotes:
			n++
		}
	}
	return n
}

func sampleLines(text string, max int) []string {
	var out []string
	start := 0
	for i := 0; i < len(text) && len(out) < max; i++ {
		if text[i] == '\n' {
			line := strings.TrimRight(text[start:i], "\r")
			if strings.TrimSpace(line) != "" {
				out = append(out, line)
			}
			start = i + 1
		}
	}
	if start < len(text) && len(out) < max {
		line := strings.TrimRight(text[start:], "\r")
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}

func delimiterNames() []string {
	names := make([]string, len(candidateDelimiters))
	for i, d := range candidateDelimiters {
		switch d {
		case ',':
			names[i] = "comma"
		case '|':
			names[i] = "pipe"
		case '\t':
			names[i] = "tab"
		case ';':
			names[i] = "semicolon"
		}
	}
	return names
}
