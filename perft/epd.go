package perft

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/qbbchego/quadchego"
)

// Assertion is one ";Dk v" clause of an EPD perft-suite line: perft(k, FEN)
// is asserted to equal v.
type Assertion struct {
	Depth int
	Nodes int64
}

// Case is a single EPD line: the starting position plus every depth
// assertion made about it.
type Case struct {
	FEN        string
	Position   quadchego.Position
	Assertions []Assertion
}

// ParseEPD reads EPD perft-suite lines from r: `<FEN> ;Dn1 v1 ;Dn2 v2 …`.
// Blank lines and lines starting with '#' are skipped. A malformed line
// aborts parsing with ErrMalformedEPD.
func ParseEPD(r io.Reader) ([]Case, error) {
	var cases []Case

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		c, err := parseEPDLine(line)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", quadchego.ErrMalformedEPD, lineNo, err)
		}
		cases = append(cases, c)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", quadchego.ErrMalformedEPD, err)
	}

	return cases, nil
}

func parseEPDLine(line string) (Case, error) {
	segments := strings.Split(line, ";")
	if len(segments) < 2 {
		return Case{}, fmt.Errorf("no ;Dk assertions in %q", line)
	}

	fen := strings.TrimSpace(segments[0])
	pos, err := quadchego.ParseFEN(fen)
	if err != nil {
		return Case{}, fmt.Errorf("bad FEN prefix: %w", err)
	}

	assertions := make([]Assertion, 0, len(segments)-1)
	for _, seg := range segments[1:] {
		fields := strings.Fields(seg)
		if len(fields) != 2 || len(fields[0]) < 2 || fields[0][0] != 'D' {
			return Case{}, fmt.Errorf("bad assertion clause %q", seg)
		}
		depth, err := strconv.Atoi(fields[0][1:])
		if err != nil {
			return Case{}, fmt.Errorf("bad depth in clause %q: %w", seg, err)
		}
		nodes, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return Case{}, fmt.Errorf("bad node count in clause %q: %w", seg, err)
		}
		assertions = append(assertions, Assertion{Depth: depth, Nodes: nodes})
	}

	return Case{FEN: fen, Position: pos, Assertions: assertions}, nil
}

// CaseResult reports the outcome of checking one Assertion of one Case.
type CaseResult struct {
	Case      Case
	Assertion Assertion
	Actual    int64
	Pass      bool
}

// RunSuite runs every assertion of every case in order, short-circuiting at
// the first failure: the remaining assertions are skipped and ok is false.
// Results accumulated before the failure (all passing) are still returned.
func RunSuite(cases []Case) (results []CaseResult, ok bool) {
	ok = true
	for _, c := range cases {
		for _, a := range c.Assertions {
			actual := Nodes(c.Position, a.Depth)
			pass := actual == a.Nodes
			results = append(results, CaseResult{Case: c, Assertion: a, Actual: actual, Pass: pass})
			if !pass {
				return results, false
			}
		}
	}
	return results, ok
}
