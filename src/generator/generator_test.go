package main

import (
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"feasth/src/feasth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateMPSVariableCount(t *testing.T) {
	tests := []modelParams{
		{NumVars: 1, NumRows: 3, IntegerShare: 1, MeanDensity: 0.5},
		{NumVars: 25, NumRows: 10, IntegerShare: 0.4, MeanDensity: 0.3},
		{NumVars: 40, NumRows: 0, IntegerShare: 0},
	}

	for _, p := range tests {
		t.Run(strconv.Itoa(p.NumVars), func(t *testing.T) {
			content := GenerateMPS(rand.New(rand.NewSource(1)), p)

			names := feasth.ColumnNames(content)
			require.Len(t, names, p.NumVars)
			for j, name := range names {
				assert.Equal(t, varName(j), name)
			}
		})
	}
}

func TestGenerateMPSMarkers(t *testing.T) {
	content := GenerateMPS(rand.New(rand.NewSource(7)), modelParams{NumVars: 10, NumRows: 4, IntegerShare: 0.3, MeanDensity: 0.5})

	assert.Equal(t, 1, strings.Count(content, "'INTORG'"))
	assert.Equal(t, 1, strings.Count(content, "'INTEND'"))
	assert.Equal(t, 10, feasth.VariableCount(content))
}

func TestGenerateLog(t *testing.T) {
	content := GenerateLog(rand.New(rand.NewSource(3)), 200, logParams{NumRecords: 300, MeanShare: 0.3, MissRate: 0.2})

	var want feasth.SizeStatistics
	n := 0
	for rec, err := range feasth.Records(content) {
		require.NoError(t, err)
		assert.LessOrEqual(t, rec.Size, uint64(200))
		if rec.HasStatus {
			switch rec.Status {
			case 1:
				want.Continuous.Add(rec.Size)
			case 0:
				want.Integer.Add(rec.Size)
			}
		}
		n++
	}
	assert.Equal(t, 300, n)

	got, err := feasth.ParseStatusData(content)
	require.NoError(t, err)
	assert.Equal(t, want, *got)
}

func TestGeneratorCommand(t *testing.T) {
	dir := t.TempDir()
	mpsPath := filepath.Join(dir, "gen.mps")
	logPath := filepath.Join(dir, "gen.csv")

	cmd := newGeneratorCmd()
	cmd.SetArgs([]string{"--vars", "12", "--records", "20", "--seed", "5", "--mps", mpsPath, "--log", logPath})
	require.NoError(t, cmd.Execute())

	count, err := feasth.GetVariableCount(mpsPath)
	require.NoError(t, err)
	assert.Equal(t, 12, count)

	records, err := feasth.GetModelSizes(logPath)
	require.NoError(t, err)
	assert.Len(t, records, 20)
}

func TestGeneratorCommandRequiresVars(t *testing.T) {
	mpsPath := filepath.Join(t.TempDir(), "x.mps")
	cmd := newGeneratorCmd()
	cmd.SetArgs([]string{"--mps", mpsPath})
	cmd.SetErr(new(strings.Builder))
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "number of variables")

	_, statErr := os.Stat(mpsPath)
	assert.True(t, os.IsNotExist(statErr))
}
