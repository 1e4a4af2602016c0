package viewstate

import "time"

// DebounceWindow is how long search input must be idle before it commits.
const DebounceWindow = 300 * time.Millisecond

// Debouncer coalesces search keystrokes with a cancel-and-reschedule rule,
// expressed as a sequence counter so it stays a pure state machine: the
// caller arms a timer per keystroke and reports fires back with the
// sequence it was armed with. A fire whose sequence has since been
// superseded is ignored, which is the "cancel" half of the rule.
type Debouncer struct {
	window time.Duration
	seq    int
	buffer string
	armed  bool
}

// NewDebouncer builds a Debouncer. A non-positive window uses
// DebounceWindow.
func NewDebouncer(window time.Duration) *Debouncer {
	if window <= 0 {
		window = DebounceWindow
	}
	return &Debouncer{window: window}
}

// Window returns the idle duration a timer should wait before firing.
func (d *Debouncer) Window() time.Duration {
	return d.window
}

// Type buffers a keystroke's resulting text and returns the sequence the
// caller must arm its timer with. Each call supersedes all earlier
// sequences.
func (d *Debouncer) Type(text string) int {
	d.seq++
	d.buffer = text
	d.armed = true
	return d.seq
}

// Fire reports a timer expiry for seq. It returns the buffered text and
// true when the fire is current and the text is a net change from
// committed; otherwise the fire is a no-op. A successful fire disarms the
// debouncer until the next keystroke.
func (d *Debouncer) Fire(seq int, committed string) (string, bool) {
	if !d.armed || seq != d.seq {
		return "", false
	}
	d.armed = false
	if d.buffer == committed {
		return "", false
	}
	return d.buffer, true
}
