package feasth

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// colLine lays out a COLUMNS entry with the fixed MPS field positions.
func colLine(name, row string, value float64) string {
	return fmt.Sprintf("    %-8s  %-8s  %12g", name, row, value)
}

func markerLine(name, kind string) string {
	return fmt.Sprintf("    %-8s  %-8s  %s", name, MarkerTag, kind)
}

func mps(body ...string) string {
	head := []string{
		"NAME          TESTMPS",
		"ROWS",
		" N  COST",
		" L  LIM1",
		" G  LIM2",
		"COLUMNS",
	}
	tail := []string{
		"RHS",
		"    RHS       LIM1      4",
		"BOUNDS",
		" UP BND       X1        4",
		"ENDATA",
	}
	all := append(append(head, body...), tail...)
	return strings.Join(all, "\n") + "\n"
}

func TestVariableCount(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{
			name:    "adjacent repeats collapse",
			content: mps(colLine("X1", "COST", 1), colLine("X1", "LIM1", 1)),
			want:    1,
		},
		{
			name: "separated repeats count again",
			content: mps(
				colLine("X1", "COST", 1),
				colLine("X2", "COST", 2),
				colLine("X1", "LIM1", 1),
			),
			want: 3,
		},
		{
			name: "marker lines are skipped",
			content: mps(
				markerLine("MARKER", "'INTORG'"),
				colLine("X1", "COST", 1),
				colLine("X2", "LIM2", 1),
				markerLine("MARKER", "'INTEND'"),
				colLine("X3", "COST", 3),
			),
			want: 3,
		},
		{
			name:    "short lines are skipped",
			content: mps("    X1", colLine("X1", "COST", 1), "", "  X9  C"),
			want:    1,
		},
		{
			name:    "no columns section",
			content: "NAME          EMPTY\nROWS\n N  COST\nRHS\nENDATA\n",
			want:    0,
		},
		{
			name:    "empty content",
			content: "",
			want:    0,
		},
		{
			name:    "crlf line endings",
			content: strings.ReplaceAll(mps(colLine("X1", "COST", 1), colLine("X2", "COST", 1)), "\n", "\r\n"),
			want:    2,
		},
		{
			name:    "section without terminator runs to the end",
			content: "COLUMNS\n" + colLine("X1", "COST", 1) + "\n" + colLine("X2", "COST", 1),
			want:    2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VariableCount(tt.content))
		})
	}
}

func TestVariableCountIgnoresLinesOutsideSection(t *testing.T) {
	content := strings.Join([]string{
		colLine("Y1", "COST", 1),
		"COLUMNS",
		colLine("X1", "COST", 1),
		"RHS",
		colLine("Y2", "COST", 1),
		"ENDATA",
	}, "\n")

	assert.Equal(t, []string{"X1      "}, ColumnNames(content))
}

func TestColumnsMarkerReopensSection(t *testing.T) {
	content := strings.Join([]string{
		"COLUMNS",
		colLine("X1", "COST", 1),
		"RANGES",
		colLine("Y1", "COST", 1),
		"COLUMNS",
		colLine("X2", "COST", 1),
		"ENDATA",
	}, "\n")

	assert.Equal(t, 2, VariableCount(content))
}

func TestColumnNamesUsesFixedFields(t *testing.T) {
	content := mps(
		colLine("LONGNAME", "COST", 1),
		colLine("A B", "LIM1", 1),
	)

	assert.Equal(t, []string{"LONGNAME", "A B     "}, ColumnNames(content))
}

func TestSectionStateTransitions(t *testing.T) {
	tests := []struct {
		from sectionState
		line string
		want sectionState
	}{
		{sectionBefore, "ROWS", sectionBefore},
		{sectionBefore, ColumnsMarker, sectionArmed},
		{sectionArmed, "RHS", sectionOpen},
		{sectionArmed, colLine("X1", "COST", 1), sectionOpen},
		{sectionOpen, colLine("X1", "COST", 1), sectionOpen},
		{sectionOpen, " RHS", sectionOpen},
		{sectionOpen, "BOUNDS", sectionClosed},
		{sectionOpen, "ENDATA", sectionClosed},
		{sectionClosed, colLine("X1", "COST", 1), sectionClosed},
		{sectionClosed, ColumnsMarker, sectionArmed},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%v %q", tt.from, tt.line), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.next(tt.line))
		})
	}
}

func TestGetVariableCount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.mps")
	content := mps(colLine("X1", "COST", 1), colLine("X2", "COST", 1))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	count, err := GetVariableCount(path)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestGetVariableCountMissingFile(t *testing.T) {
	_, err := GetVariableCount(filepath.Join(t.TempDir(), "missing.mps"))
	require.Error(t, err)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, IOError, perr.Kind)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.True(t, strings.HasPrefix(err.Error(), "IO Error: "))
}
