package feasth

import (
	"iter"
	"strconv"
	"strings"
)

const csvFields = 3

// Record is one line of the kernel search log: the sub-model size and,
// when the solver reported one, its status.
type Record struct {
	Size      uint64
	Status    uint64
	HasStatus bool
}

// parseUnsigned accepts an optional leading '+'.
func parseUnsigned(s string) (uint64, error) {
	v, err := strconv.ParseUint(strings.TrimPrefix(s, "+"), 10, 64)
	if ne, ok := err.(*strconv.NumError); ok {
		ne.Num = s
	}
	return v, err
}

// parseCSVLine reports ok == false for lines that are not records.
func parseCSVLine(line string) (rec Record, ok bool, err error) {
	tokens := strings.Split(line, ",")
	if len(tokens) != csvFields {
		return Record{}, false, nil
	}

	size, err := parseUnsigned(tokens[1])
	if err != nil {
		return Record{}, true, intParseError(err)
	}
	rec.Size = size

	if tokens[2] != "" {
		status, err := parseUnsigned(tokens[2])
		if err != nil {
			return Record{}, true, intParseError(err)
		}
		rec.Status, rec.HasStatus = status, true
	}
	return rec, true, nil
}

// Records yields the records of a log in file order. The sequence ends
// after the first malformed record, which is yielded with its error.
func Records(content string) iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		for line := range lines(content) {
			rec, ok, err := parseCSVLine(line)
			if !ok {
				continue
			}
			if err != nil {
				yield(Record{}, err)
				return
			}
			if !yield(rec, nil) {
				return
			}
		}
	}
}

// ParseStatusData folds a log into per-status size totals.
func ParseStatusData(content string) (*SizeStatistics, error) {
	var stats SizeStatistics
	for rec, err := range Records(content) {
		if err != nil {
			return nil, err
		}
		stats = stats.add(rec)
	}
	return &stats, nil
}

func GetAverageSizes(logFile string) (*SizeStatistics, error) {
	data, err := LoadFile(logFile)
	if err != nil {
		return nil, err
	}
	return ParseStatusData(data)
}

// GetModelSizes loads every record of a log.
func GetModelSizes(logFile string) ([]Record, error) {
	data, err := LoadFile(logFile)
	if err != nil {
		return nil, err
	}
	records := make([]Record, 0)
	for rec, err := range Records(data) {
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}
