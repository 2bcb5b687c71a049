package pipeline

import "escala/internal"

// MergeManual folds manual entries into a copy of a parse result. The stored
// extraction result is never touched, which keeps "remove a manual entry"
// and "remove an extracted shift" independent of each other. Manual entries
// are never deduplicated against anything.
func MergeManual(result *internal.ProcessResult, manual []internal.Shift) *internal.ProcessResult {
	out := internal.NewProcessResult(result.TargetSearch)
	out.DetectedName = result.DetectedName

	for key, month := range result.Months {
		out.Months[key] = &internal.MonthData{
			MonthYear:  month.MonthYear,
			TotalHours: month.TotalHours,
			Shifts:     append([]internal.Shift(nil), month.Shifts...),
		}
	}

	for _, entry := range manual {
		key := monthKey(entry.Date)
		bucket := out.Months[key]
		if bucket == nil {
			bucket = &internal.MonthData{MonthYear: key}
			out.Months[key] = bucket
		}
		bucket.Shifts = append(bucket.Shifts, entry)
		bucket.TotalHours = sumHours(bucket.Shifts)
	}

	return out
}

// RemoveShift drops the shift with the given id and recomputes its bucket
// total. Emptied buckets disappear. Reports whether anything was removed.
func RemoveShift(result *internal.ProcessResult, id string) bool {
	for key, month := range result.Months {
		for i, s := range month.Shifts {
			if s.ID != id {
				continue
			}
			month.Shifts = append(month.Shifts[:i], month.Shifts[i+1:]...)
			if len(month.Shifts) == 0 {
				delete(result.Months, key)
			} else {
				month.TotalHours = sumHours(month.Shifts)
			}
			return true
		}
	}
	return false
}
