package mathx

import "testing"

func TestClamp(t *testing.T) {
	if got := Clamp(5, 0, 10); got != 5 {
		t.Fatalf("in-range: %d", got)
	}
	if got := Clamp(-3, 0, 10); got != 0 {
		t.Fatalf("below: %d", got)
	}
	if got := Clamp(42, 0, 10); got != 10 {
		t.Fatalf("above: %d", got)
	}
	// Swapped bounds are tolerated.
	if got := Clamp(42, 10, 0); got != 10 {
		t.Fatalf("swapped bounds: %d", got)
	}
}

func TestMin(t *testing.T) {
	if got := Min(256, 512); got != 256 {
		t.Fatalf("Min(256, 512) = %d", got)
	}
	if got := Min(512, 512); got != 512 {
		t.Fatalf("Min(512, 512) = %d", got)
	}
}

func TestPercent(t *testing.T) {
	if got := Percent(256, 512); got != 50 {
		t.Fatalf("half: %d", got)
	}
	if got := Percent(0, 512); got != 0 {
		t.Fatalf("empty: %d", got)
	}
	if got := Percent(512, 512); got != 100 {
		t.Fatalf("full: %d", got)
	}
	if got := Percent(7, 0); got != 0 {
		t.Fatalf("zero whole: %d", got)
	}
	// Never escapes [0,100] even with odd inputs.
	if got := Percent(600, 512); got != 100 {
		t.Fatalf("over-full: %d", got)
	}
}
