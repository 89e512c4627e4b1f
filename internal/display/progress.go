package display

import "stagetimer-cli/internal/model"

// ChainBounds returns the [first, last] preset indexes of the chain
// containing active: the maximal contiguous run connected by
// LinkedToNext. A preset with no links is a chain of one.
func ChainBounds(presets []model.Preset, active int) (first, last int) {
	if active < 0 || active >= len(presets) {
		return 0, -1
	}
	first = active
	for first > 0 && presets[first-1].LinkedToNext {
		first--
	}
	last = active
	for last < len(presets)-1 && presets[last].LinkedToNext {
		last++
	}
	return first, last
}

// ChainProgress aggregates progress across the chain containing the
// active preset: completed predecessors count their full duration, the
// active timer contributes its elapsed time (clamped to its duration),
// divided by the chain's total duration. Returns 0..1; a chain with zero
// total duration reports 0.
func ChainProgress(presets []model.Preset, active int, s model.TimerState, nowMs int64) float64 {
	first, last := ChainBounds(presets, active)
	if last < first {
		return 0
	}

	var total, done int64
	for i := first; i <= last; i++ {
		total += presets[i].Config.DurationMs
	}
	if total <= 0 {
		return 0
	}
	for i := first; i < active; i++ {
		done += presets[i].Config.DurationMs
	}

	elapsed, _ := Elapsed(s, nowMs)
	if d := presets[active].Config.DurationMs; elapsed > d {
		elapsed = d
	}
	done += elapsed

	p := float64(done) / float64(total)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
