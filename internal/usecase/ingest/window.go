package ingest

import "time"

// importWindow is the inclusive [start, end] bound applied to one run.
type importWindow struct {
	start time.Time
	end   time.Time
}

// contains reports whether ts falls inside the window, boundaries
// included.
func (w importWindow) contains(ts time.Time) bool {
	return !ts.Before(w.start) && !ts.After(w.end)
}

// resolveWindow applies the script's default look-back when the caller
// supplied no explicit bound.
func resolveWindow(start, end *time.Time, windowDays int, now time.Time) importWindow {
	w := importWindow{end: now.UTC()}
	if end != nil {
		w.end = end.UTC()
	}
	if start != nil {
		w.start = start.UTC()
	} else {
		w.start = w.end.AddDate(0, 0, -windowDays)
	}
	return w
}
