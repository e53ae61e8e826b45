// Package script implements the simulator's external collaborators: the
// line-oriented script grammar's parser/validator, and the plain-text
// trace writer. Both are mechanical surface concerns — the protocol core
// lives in pkg/bss/core — but a runnable simulator needs them wired in.
package script

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/bsscast/bsssim/pkg/bss/types"
)

// ValidationError reports a script that failed the grammar's syntactic
// well-formedness checks: malformed send/recv_B, unmatched begin/end, or
// an unrecognized instruction. Validation is all-or-nothing and happens
// before any process is spawned.
type ValidationError struct {
	Line int
	Text string
	Msg  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Msg, e.Text)
}

var payloadPattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
var processLabelPattern = regexp.MustCompile(`^p([0-9]+)$`)

type rawLine struct {
	num  int
	text string
}

// Parse reads the script grammar from r, validates it, and returns one
// operation list per process (indexed 0..N-1, N determined by the number
// of "begin process" lines). Returns a *ValidationError on any syntactic
// problem.
func Parse(r io.Reader) ([][]types.Operation, error) {
	lines, err := readNonBlankLines(r)
	if err != nil {
		return nil, err
	}

	n := countProcesses(lines)
	scripts := make([][]types.Operation, n)

	var openID = -1 // 0-indexed id of the currently open process block, -1 if none
	seen := make([]bool, n)

	for _, ln := range lines {
		switch {
		case openID == -1:
			id, err := beginProcessID(ln, n)
			switch {
			case err != nil:
				return nil, err
			case id >= 0:
				if seen[id] {
					return nil, &ValidationError{ln.num, ln.text, "process declared more than once"}
				}
				seen[id] = true
				openID = id
			case strings.HasPrefix(ln.text, "end process"):
				return nil, &ValidationError{ln.num, ln.text, "'end process' without matching 'begin process'"}
			default:
				return nil, &ValidationError{ln.num, ln.text, "unrecognized instruction"}
			}

		case isEndProcess(ln.text):
			id, ok := endProcessID(ln.text)
			if !ok {
				return nil, &ValidationError{ln.num, ln.text, "malformed 'end process' instruction"}
			}
			if id != openID {
				return nil, &ValidationError{ln.num, ln.text, "'end process' does not match the open 'begin process'"}
			}
			openID = -1

		case strings.HasPrefix(ln.text, "send"):
			op, err := parseSend(ln)
			if err != nil {
				return nil, err
			}
			scripts[openID] = append(scripts[openID], op)

		case strings.HasPrefix(ln.text, "recv_B"):
			op, err := parseRecvB(ln, n)
			if err != nil {
				return nil, err
			}
			scripts[openID] = append(scripts[openID], op)

		default:
			return nil, &ValidationError{ln.num, ln.text, "unrecognized instruction"}
		}
	}

	if openID != -1 {
		return nil, &ValidationError{0, fmt.Sprintf("p%d", openID+1), "unmatched 'begin process'"}
	}

	return scripts, nil
}

func readNonBlankLines(r io.Reader) ([]rawLine, error) {
	var out []rawLine
	scanner := bufio.NewScanner(r)
	num := 0
	for scanner.Scan() {
		num++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		out = append(out, rawLine{num: num, text: text})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func countProcesses(lines []rawLine) int {
	n := 0
	for _, ln := range lines {
		if strings.HasPrefix(ln.text, "begin process") {
			n++
		}
	}
	return n
}

// beginProcessID returns (id, nil) if ln is a well-formed "begin process
// pK" line (0-indexed id), (-1, nil) if ln is not a begin-process line at
// all, or (-1, err) if it looks like one but is malformed.
func beginProcessID(ln rawLine, n int) (int, error) {
	if !strings.HasPrefix(ln.text, "begin process") {
		return -1, nil
	}
	label := strings.TrimSpace(strings.TrimPrefix(ln.text, "begin process"))
	id, ok := parseProcessLabel(label, n)
	if !ok {
		return -1, &ValidationError{ln.num, ln.text, "malformed 'begin process' instruction"}
	}
	return id, nil
}

func isEndProcess(text string) bool {
	return strings.HasPrefix(text, "end process")
}

func endProcessID(text string) (int, bool) {
	label := strings.TrimSpace(strings.TrimPrefix(text, "end process"))
	return parseProcessLabel(label, 0)
}

// parseProcessLabel parses "pK" into its 0-indexed id. If n > 0 the id is
// additionally required to be within range 1..n.
func parseProcessLabel(label string, n int) (int, bool) {
	m := processLabelPattern.FindStringSubmatch(label)
	if m == nil {
		return -1, false
	}
	k, err := strconv.Atoi(m[1])
	if err != nil || k < 1 {
		return -1, false
	}
	if n > 0 && k > n {
		return -1, false
	}
	return k - 1, true
}

func parseSend(ln rawLine) (types.Operation, error) {
	payload := strings.TrimSpace(strings.TrimPrefix(ln.text, "send"))
	if !payloadPattern.MatchString(payload) {
		return types.Operation{}, &ValidationError{ln.num, ln.text, "malformed 'send' instruction: message must be alphanumeric"}
	}
	return types.Send(payload), nil
}

func parseRecvB(ln rawLine, n int) (types.Operation, error) {
	rest := strings.TrimSpace(strings.TrimPrefix(ln.text, "recv_B"))
	fields := strings.Fields(rest)
	if len(fields) != 2 {
		return types.Operation{}, &ValidationError{ln.num, ln.text, "malformed 'recv_B' instruction: must have exactly two arguments"}
	}
	from, ok := parseProcessLabel(fields[0], n)
	if !ok {
		return types.Operation{}, &ValidationError{ln.num, ln.text, "malformed 'recv_B' instruction: unrecognized source process"}
	}
	payload := fields[1]
	if !payloadPattern.MatchString(payload) {
		return types.Operation{}, &ValidationError{ln.num, ln.text, "malformed 'recv_B' instruction: message must be alphanumeric"}
	}
	return types.RecvB(from, payload), nil
}
