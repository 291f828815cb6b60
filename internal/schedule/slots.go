package schedule

// DefaultGranularityMin is the slot grid step. It is deliberately
// independent of service duration: generating on a fine grid and
// filtering by duration afterwards is what lets a 45-minute service
// start right after another appointment ends on a 15-minute boundary.
const DefaultGranularityMin = 15

// GenerateSlots produces every candidate start time
// interval.Start + k*granularity with start < interval.End,
// in ascending order. Pure function of its inputs.
func GenerateSlots(interval Interval, granularityMin int) []int {
	if !interval.Valid() || granularityMin <= 0 {
		return nil
	}

	var slots []int
	for cur := interval.Start; cur < interval.End; cur += granularityMin {
		slots = append(slots, cur)
	}
	return slots
}

// FilterSlots keeps the candidates a service of durationMin can occupy:
// the slot must not overlap any busy interval and the slot plus its
// trailing buffer must fit entirely within the working interval.
// Candidate order is preserved.
func FilterSlots(candidates []int, durationMin, bufferMin int, working Interval, busy []Interval) []int {
	available := make([]int, 0, len(candidates))

	for _, start := range candidates {
		slot := Interval{Start: start, End: start + durationMin}

		if slot.End+bufferMin > working.End {
			continue
		}

		conflict := false
		for _, b := range busy {
			if slot.Overlaps(b) {
				conflict = true
				break
			}
		}

		if !conflict {
			available = append(available, start)
		}
	}

	return available
}
