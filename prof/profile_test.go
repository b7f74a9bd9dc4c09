package prof

import (
	"testing"
	"time"
)

func TestTrackIsOffByDefault(t *testing.T) {
	for i := 0; i < 3; i++ {
		Track(time.Now(), "idle")
	}
	if got := SnapshotAndReset(); len(got) != 0 {
		t.Fatalf("recorded %d entries without Enable", len(got))
	}
}

func TestSummarizeGroupsByLabel(t *testing.T) {
	entries := []Entry{
		{Label: "nf", Dur: 2 * time.Millisecond},
		{Label: "linalg", Dur: 5 * time.Millisecond},
		{Label: "nf", Dur: 4 * time.Millisecond},
	}
	got := Summarize(entries)
	if len(got) != 2 {
		t.Fatalf("expected 2 phases, got %d", len(got))
	}
	if got[0].Label != "nf" || got[0].Calls != 2 || got[0].Total != 6*time.Millisecond || got[0].Max != 4*time.Millisecond {
		t.Fatalf("unexpected nf phase: %+v", got[0])
	}
	if got[1].Label != "linalg" || got[1].Calls != 1 {
		t.Fatalf("unexpected linalg phase: %+v", got[1])
	}
}

func TestTrackRespectsEnable(t *testing.T) {
	t.Cleanup(func() { Enable(false) })
	SnapshotAndReset()
	Enable(false)
	Track(time.Now(), "off")
	Enable(true)
	Track(time.Now(), "on")
	got := SnapshotAndReset()
	if len(got) != 1 || got[0].Label != "on" {
		t.Fatalf("unexpected entries: %+v", got)
	}
	if rest := SnapshotAndReset(); len(rest) != 0 {
		t.Fatalf("snapshot did not reset: %+v", rest)
	}
}
