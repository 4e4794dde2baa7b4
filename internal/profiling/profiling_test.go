package profiling

import (
	"testing"
	"time"
)

// fakeClock advances by step on every read.
type fakeClock struct {
	t    time.Time
	step time.Duration
}

func (c *fakeClock) now() time.Time {
	c.t = c.t.Add(c.step)
	return c.t
}

func TestFrameTrackAndTopN(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0), step: time.Millisecond}
	f := NewFrame()
	f.now = clock.now
	f.Reset()

	f.Track("ui.Render")()

	clock.step = 3 * time.Millisecond
	f.Track("gfx.Frame")()

	clock.step = 500 * time.Microsecond
	f.Track("gfx.Submit")()

	if got, want := f.TopN(2), "gfx.Frame:3ms, ui.Render:1ms"; got != want {
		t.Errorf("TopN(2) = %q, want %q", got, want)
	}
	if got, want := f.TopN(10), "gfx.Frame:3ms, ui.Render:1ms, gfx.Submit:0.5ms"; got != want {
		t.Errorf("TopN(10) = %q, want %q", got, want)
	}
	if got := f.Sum("gfx."); got != 3500*time.Microsecond {
		t.Errorf("Sum(gfx.) = %v, want 3.5ms", got)
	}
}

func TestFrameReset(t *testing.T) {
	f := NewFrame()
	f.Reset()
	f.Track("a")()
	f.Reset()
	if got := f.TopN(5); got != "" {
		t.Errorf("TopN after Reset = %q, want empty", got)
	}
}

func TestFormatMs(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0ms"},
		{2 * time.Millisecond, "2ms"},
		{1240 * time.Microsecond, "1.2ms"},
		{16700 * time.Microsecond, "16.7ms"},
	}
	for _, tt := range tests {
		if got := formatMs(tt.d); got != tt.want {
			t.Errorf("formatMs(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
