package feasth

import (
	"golang.org/x/exp/constraints"
)

type RunningTotal struct {
	Total uint64
	Count uint64
}

// Add accumulates amt. Zero amounts are ignored since they would skew
// the average.
func (t *RunningTotal) Add(amt uint64) {
	if amt == 0 {
		return
	}
	t.Total += amt
	t.Count++
}

// Average is undefined for an empty total.
func (t RunningTotal) Average() (float64, bool) {
	return average(t.Total, t.Count)
}

// Threshold is the average sub-model size relative to the model size.
func (t RunningTotal) Threshold(modelSize uint64) (float64, bool) {
	avg, ok := t.Average()
	if !ok {
		return 0, false
	}
	return avg / float64(modelSize), true
}

type SizeStatistics struct {
	Continuous RunningTotal
	Integer    RunningTotal
}

// add routes a record to its bucket: status 1 counts as continuous,
// status 0 as integer, anything else is dropped.
func (s SizeStatistics) add(rec Record) SizeStatistics {
	if !rec.HasStatus {
		return s
	}
	switch rec.Status {
	case 1:
		s.Continuous.Add(rec.Size)
	case 0:
		s.Integer.Add(rec.Size)
	}
	return s
}

// MeanSize is the average sub-model size over all records, whatever
// their status.
func MeanSize(records []Record) (float64, bool) {
	var total uint64
	for _, rec := range records {
		total += rec.Size
	}
	return average(total, len(records))
}

func average[T, C constraints.Integer](total T, count C) (float64, bool) {
	if count <= 0 {
		return 0, false
	}
	return float64(total) / float64(count), true
}
