package buckets

// PickerStats counts picker transitions since creation or the last
// ResetStats.
type PickerStats struct {
	Opens            int
	Commits          int
	Cancels          int
	TasksGone        int
	Suppressed       int
	HighlightChanges int
	AssignErrors     int
}

// Stats returns the transition counters.
func (p *Picker) Stats() PickerStats {
	return p.stats
}

// ResetStats zeroes the transition counters.
func (p *Picker) ResetStats() {
	p.stats = PickerStats{}
}

// debugLogStats logs the counters when a session ends. Only in debug mode.
func (p *Picker) debugLogStats() {
	if !p.debug {
		return
	}
	s := p.stats
	p.logger.Debug("picker stats",
		"opens", s.Opens,
		"commits", s.Commits,
		"cancels", s.Cancels,
		"tasks_gone", s.TasksGone,
		"suppressed", s.Suppressed,
		"highlight_changes", s.HighlightChanges,
		"assign_errors", s.AssignErrors,
	)
}
