package viewstate

import (
	"testing"
	"time"
)

func TestDebouncer_CommitsOnlyTheLatestSequence(t *testing.T) {
	t.Parallel()

	d := NewDebouncer(300 * time.Millisecond)

	s1 := d.Type("r")
	s2 := d.Type("ri")
	s3 := d.Type("rick")

	if _, ok := d.Fire(s1, ""); ok {
		t.Fatalf("stale fire %d committed", s1)
	}
	if _, ok := d.Fire(s2, ""); ok {
		t.Fatalf("stale fire %d committed", s2)
	}
	text, ok := d.Fire(s3, "")
	if !ok || text != "rick" {
		t.Fatalf("fire = (%q, %v), want (\"rick\", true)", text, ok)
	}

	// Disarmed after a successful fire.
	if _, ok := d.Fire(s3, ""); ok {
		t.Fatalf("disarmed fire committed")
	}
}

func TestDebouncer_NoopWhenTextUnchanged(t *testing.T) {
	t.Parallel()

	d := NewDebouncer(0)
	if d.Window() != DebounceWindow {
		t.Fatalf("window = %v, want default %v", d.Window(), DebounceWindow)
	}

	seq := d.Type("rick")
	if _, ok := d.Fire(seq, "rick"); ok {
		t.Fatalf("re-typing the committed value committed again")
	}

	// A later net change still commits.
	seq = d.Type("rick s")
	text, ok := d.Fire(seq, "rick")
	if !ok || text != "rick s" {
		t.Fatalf("fire = (%q, %v), want (\"rick s\", true)", text, ok)
	}
}
