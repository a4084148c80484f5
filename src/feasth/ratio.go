package feasth

import (
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gopkg.in/dnaeon/go-priorityqueue.v1"
)

// Thresholds holds the continuous (CFT) and integer (IFT) feasibility
// thresholds. A nil threshold is undefined.
type Thresholds struct {
	ModelSize  uint64
	Continuous *float64
	Integer    *float64
}

func ComputeThresholds(modelSize uint64, stats *SizeStatistics) *Thresholds {
	th := &Thresholds{ModelSize: modelSize}
	if v, ok := stats.Continuous.Threshold(modelSize); ok {
		th.Continuous = &v
	}
	if v, ok := stats.Integer.Threshold(modelSize); ok {
		th.Integer = &v
	}
	return th
}

// Largest returns the largest defined threshold.
func (th *Thresholds) Largest() (float64, bool) {
	defined := make([]float64, 0, 2)
	for _, v := range []*float64{th.Continuous, th.Integer} {
		if v != nil {
			defined = append(defined, *v)
		}
	}
	if len(defined) == 0 {
		return 0, false
	}
	return floats.Max(defined), true
}

// Oversized reports whether the average sub-model is larger than limit
// times the model, which hints at a log and model that do not match.
func (th *Thresholds) Oversized(limit float64) bool {
	largest, ok := th.Largest()
	return ok && largest > limit
}

type UsageRatio struct {
	Ratio     float64
	Status    uint64
	HasStatus bool
}

func UsageRatios(modelSize uint64, records []Record) []UsageRatio {
	ratios := make([]UsageRatio, len(records))
	for i, rec := range records {
		ratios[i] = UsageRatio{
			Ratio:     float64(rec.Size) / float64(modelSize),
			Status:    rec.Status,
			HasStatus: rec.HasStatus,
		}
	}
	return ratios
}

type RatioSummary struct {
	Status    uint64
	HasStatus bool
	Count     int
	Mean      float64
	StdDev    float64
}

// SummarizeRatios groups ratios by status. Groups are ordered by status
// with the records missing one last.
func SummarizeRatios(ratios []UsageRatio) []RatioSummary {
	type key struct {
		status    uint64
		hasStatus bool
	}
	groups := make(map[key][]float64)
	for _, r := range ratios {
		k := key{r.Status, r.HasStatus}
		groups[k] = append(groups[k], r.Ratio)
	}

	summaries := make([]RatioSummary, 0, len(groups))
	for k, values := range groups {
		mean, std := stat.MeanStdDev(values, nil)
		if len(values) < 2 {
			std = 0
		}
		summaries = append(summaries, RatioSummary{
			Status:    k.status,
			HasStatus: k.hasStatus,
			Count:     len(values),
			Mean:      mean,
			StdDev:    std,
		})
	}
	slices.SortFunc(summaries, func(a, b RatioSummary) int {
		if a.HasStatus != b.HasStatus {
			if a.HasStatus {
				return -1
			}
			return 1
		}
		switch {
		case a.Status < b.Status:
			return -1
		case a.Status > b.Status:
			return 1
		}
		return 0
	})
	return summaries
}

// TopRatios returns the indices of the n largest ratios, largest first.
// Equal ratios among the selected keep file order.
func TopRatios(ratios []UsageRatio, n int) []int {
	pq := priorityqueue.New[int, float64](priorityqueue.MaxHeap)
	for i, r := range ratios {
		pq.Put(i, r.Ratio)
	}

	top := make([]int, 0, min(n, len(ratios)))
	for len(top) < n && pq.Len() > 0 {
		top = append(top, pq.Get().Value)
	}
	slices.SortStableFunc(top, func(a, b int) int {
		switch {
		case ratios[a].Ratio > ratios[b].Ratio:
			return -1
		case ratios[a].Ratio < ratios[b].Ratio:
			return 1
		}
		return a - b
	})
	return top
}
