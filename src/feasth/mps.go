package feasth

import (
	"iter"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

const (
	ColumnsMarker = "COLUMNS"
	MarkerTag     = "'MARKER'"

	minColumnLine = 22
	nameStart     = 4
	nameEnd       = 12
	tagStart      = 14
	tagEnd        = 22
)

var sectionTerminators = mapset.NewSet("NAME", "ROWS", "RHS", "BOUNDS", "RANGES", "ENDATA")

type sectionState int

const (
	sectionBefore sectionState = iota
	sectionArmed
	sectionOpen
	sectionClosed
)

// next returns the state after reading line. The marker line itself is
// never part of the section: it arms the gate and the following line
// opens it.
func (s sectionState) next(line string) sectionState {
	switch s {
	case sectionOpen:
		if sectionTerminators.Contains(line) {
			return sectionClosed
		}
		return sectionOpen
	case sectionArmed:
		return sectionOpen
	default:
		if line == ColumnsMarker {
			return sectionArmed
		}
		return s
	}
}

func (s sectionState) String() string {
	switch s {
	case sectionBefore:
		return "before"
	case sectionArmed:
		return "armed"
	case sectionOpen:
		return "open"
	default:
		return "closed"
	}
}

// lines yields the lines of content without their terminators.
func lines(content string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for line := range strings.Lines(content) {
			line = strings.TrimSuffix(line, "\n")
			line = strings.TrimSuffix(line, "\r")
			if !yield(line) {
				return
			}
		}
	}
}

// columnName extracts the variable name of a COLUMNS data line, if any.
func columnName(line string) (string, bool) {
	if len(line) < minColumnLine {
		return "", false
	}
	if line[tagStart:tagEnd] == MarkerTag {
		return "", false
	}
	return line[nameStart:nameEnd], true
}

type columnScan struct {
	state sectionState
	prev  string
	seen  bool
	names []string
}

func (acc columnScan) step(line string) columnScan {
	acc.state = acc.state.next(line)
	if acc.state != sectionOpen {
		return acc
	}
	name, ok := columnName(line)
	if !ok {
		return acc
	}
	if acc.seen && acc.prev == name {
		return acc
	}
	acc.prev, acc.seen = name, true
	acc.names = append(acc.names, name)
	return acc
}

// ColumnNames lists the variables declared in the COLUMNS section, in
// order. A variable repeated on consecutive lines is listed once; the
// same name separated by another variable is listed again.
func ColumnNames(content string) []string {
	acc := columnScan{state: sectionBefore}
	for line := range lines(content) {
		acc = acc.step(line)
	}
	return acc.names
}

func VariableCount(content string) int {
	return len(ColumnNames(content))
}

// GetVariableCount loads an MPS file and counts its variables.
func GetVariableCount(mpsFile string) (int, error) {
	data, err := LoadFile(mpsFile)
	if err != nil {
		return 0, err
	}
	return VariableCount(data), nil
}
