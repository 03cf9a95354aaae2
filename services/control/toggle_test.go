package control

import "testing"

type fakeClock struct{ t uint32 }

func (c *fakeClock) Ticks() uint32 { return c.t }

func TestEdgesInsideWindowAreIgnored(t *testing.T) {
	clk := &fakeClock{t: 1000}
	tg := New(clk, 250)

	tg.OnEdge()
	if !tg.Enabled() {
		t.Fatal("first edge after the boot window should toggle on")
	}

	// 100 ticks later: inside the window, no toggle.
	clk.t = 1100
	tg.OnEdge()
	if !tg.Enabled() {
		t.Fatal("edge 100 ticks after an accepted edge must be ignored")
	}

	// 249 ticks after the accepted edge: still ignored.
	clk.t = 1249
	tg.OnEdge()
	if !tg.Enabled() {
		t.Fatal("edge at 249 ticks must be ignored")
	}

	// Exactly the window: accepted, toggles off.
	clk.t = 1250
	tg.OnEdge()
	if tg.Enabled() {
		t.Fatal("edge at 250 ticks must be accepted")
	}
}

func TestSpacedEdgesEachToggle(t *testing.T) {
	clk := &fakeClock{t: 500}
	tg := New(clk, 250)

	want := false
	for i := 0; i < 6; i++ {
		tg.OnEdge()
		want = !want
		if tg.Enabled() != want {
			t.Fatalf("toggle %d: enabled=%t want=%t", i, tg.Enabled(), want)
		}
		clk.t += 300
	}
}

func TestBootWindowEdgeIgnored(t *testing.T) {
	// lastEdge starts at 0: a press at tick 100 is inside the first window.
	clk := &fakeClock{t: 100}
	tg := New(clk, 250)
	tg.OnEdge()
	if tg.Enabled() {
		t.Fatal("edge inside the boot window should be ignored")
	}
}

func TestDebounceAcrossTickWrap(t *testing.T) {
	clk := &fakeClock{t: ^uint32(0) - 10} // 10 ticks before wrap
	tg := New(clk, 250)
	tg.OnEdge() // accepted (huge delta from 0 baseline)
	if !tg.Enabled() {
		t.Fatal("pre-wrap edge not accepted")
	}

	// 11 ticks later the counter has wrapped to 0; delta is 11, ignored.
	clk.t = 0
	tg.OnEdge()
	if !tg.Enabled() {
		t.Fatal("wrapped delta of 11 ticks must be ignored")
	}

	clk.t = 240 // delta 251 across the wrap
	tg.OnEdge()
	if tg.Enabled() {
		t.Fatal("wrapped delta of 251 ticks must be accepted")
	}
}

func TestEventNotificationCoalesces(t *testing.T) {
	clk := &fakeClock{t: 500}
	tg := New(clk, 250)

	tg.OnEdge()
	clk.t += 300
	tg.OnEdge() // second token dropped, channel capacity 1

	select {
	case <-tg.Events():
	default:
		t.Fatal("expected a pending event notification")
	}
	select {
	case <-tg.Events():
		t.Fatal("notifications should coalesce")
	default:
	}
	// Coalesced or not, the flag carries the truth.
	if tg.Enabled() {
		t.Fatal("two accepted edges should land back on off")
	}
}
