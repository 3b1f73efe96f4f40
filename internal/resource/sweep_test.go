package resource

import "testing"

func TestUnrealizeUnusedScenario(t *testing.T) {
	c, d := newTestContext("c")
	a := &handle{kind: KindTexture, id: 10}
	b := &handle{kind: KindBuffer, id: 20}
	dd := &handle{kind: KindRenderbuffer, id: 30}
	RealizeFor(a, c)
	RealizeFor(b, c)
	RealizeFor(dd, c)
	if c.Registry().Len() != 3 {
		t.Fatalf("Expected registry size 3, got %d", c.Registry().Len())
	}

	c.SetAllUnused()
	b.SetUsed(true)
	n := c.UnrealizeUnused()

	if n != 2 {
		t.Errorf("Expected 2 unrealized, got %d", n)
	}
	got := c.Registry().Resources()
	if len(got) != 1 || got[0] != Resource(b) {
		t.Errorf("Expected only b left, got %v", got)
	}
	want := []deleteCall{{KindTexture, 10}, {KindRenderbuffer, 30}}
	if len(d.calls) != len(want) {
		t.Fatalf("Expected %d deletes, got %v", len(want), d.calls)
	}
	for i := range want {
		if d.calls[i] != want[i] {
			t.Errorf("Delete %d: expected %v, got %v", i, want[i], d.calls[i])
		}
	}
	if c.Pending() != 0 {
		t.Errorf("Expected empty queue after sweep, got %d", c.Pending())
	}
	if c.Stack().Depth() != 0 {
		t.Errorf("Expected sweep to pop its context, depth %d", c.Stack().Depth())
	}
}

func TestSetAllUnusedClearsEveryFlag(t *testing.T) {
	c, _ := newTestContext("c")
	hs := []*handle{{}, {}, {}}
	for _, h := range hs {
		RealizeFor(h, c)
		h.SetUsed(true)
	}
	c.SetAllUnused()
	for i, h := range hs {
		if h.Used() {
			t.Errorf("Expected handle %d unused", i)
		}
	}
}

func TestUnrealizeUnusedFlushesEarlierDeferred(t *testing.T) {
	c, d := newTestContext("c")
	c.RequestDelete(KindTexture, 99) // queued: c not current

	h := &handle{kind: KindBuffer, id: 1}
	RealizeFor(h, c)
	h.SetUsed(true)

	if n := c.UnrealizeUnused(); n != 0 {
		t.Errorf("Expected nothing unrealized, got %d", n)
	}
	if len(d.calls) != 1 || d.calls[0] != (deleteCall{KindTexture, 99}) {
		t.Errorf("Expected the queued delete flushed, got %v", d.calls)
	}
	if !h.IsRealized() {
		t.Errorf("Expected used handle to stay realized")
	}
}

func TestUnrealizeAllVisitsEachOnce(t *testing.T) {
	c, d := newTestContext("c")
	hs := make([]*handle, 6)
	for i := range hs {
		hs[i] = &handle{kind: Kind(i % 4), id: uint32(100 + i)}
		RealizeFor(hs[i], c)
		hs[i].SetUsed(true)
	}

	if n := c.UnrealizeAll(); n != len(hs) {
		t.Errorf("Expected %d unrealized, got %d", len(hs), n)
	}
	if c.Registry().Len() != 0 {
		t.Errorf("Expected empty registry, got %d", c.Registry().Len())
	}
	if len(d.calls) != len(hs) {
		t.Fatalf("Expected %d deletes, got %d", len(hs), len(d.calls))
	}
	for i, h := range hs {
		if h.IsRealized() {
			t.Errorf("Expected handle %d unrealized", i)
		}
		if d.calls[i] != (deleteCall{h.kind, h.id}) {
			t.Errorf("Delete %d: expected %v, got %v", i, deleteCall{h.kind, h.id}, d.calls[i])
		}
	}
}

func TestSweepEmptyRegistry(t *testing.T) {
	c, d := newTestContext("c")
	if c.UnrealizeUnused() != 0 || c.UnrealizeAll() != 0 {
		t.Errorf("Expected empty sweeps to unrealize nothing")
	}
	if len(d.calls) != 0 {
		t.Errorf("Expected no deletes, got %v", d.calls)
	}
	if s := c.Stats(); s.Sweeps != 2 {
		t.Errorf("Expected 2 sweeps counted, got %d", s.Sweeps)
	}
}

func TestSweepRestoresOuterContext(t *testing.T) {
	s := NewStack()
	d := &fakeDeleter{}
	outer := NewContext("outer", s, d)
	c := NewContext("c", s, d)
	h := &handle{kind: KindBuffer, id: 3}
	RealizeFor(h, c)

	outer.Do(func() {
		c.UnrealizeAll()
		if !outer.IsCurrent() {
			t.Errorf("Expected outer restored after nested sweep")
		}
	})
	if len(d.calls) != 1 {
		t.Errorf("Expected delete issued while c was current, got %v", d.calls)
	}
}

func TestCompositeSweep(t *testing.T) {
	c, d := newTestContext("c")
	m1 := &handle{kind: KindBuffer, id: 1}
	m2 := &handle{kind: KindBuffer, id: 2}
	g := &group{members: []*handle{m1, m2}}
	stray := &handle{kind: KindTexture, id: 3}
	RealizeFor(m1, c)
	RealizeFor(m2, c)
	RealizeFor(g, c)
	RealizeFor(stray, c)

	c.SetAllUnused()
	g.SetUsed(true)
	c.UnrealizeUnused()

	if !m1.IsRealized() || !m2.IsRealized() || !g.IsRealized() {
		t.Errorf("Expected group and members kept")
	}
	if stray.IsRealized() {
		t.Errorf("Expected stray unrealized")
	}
	if len(d.calls) != 1 || d.calls[0] != (deleteCall{KindTexture, 3}) {
		t.Errorf("Expected only the stray texture deleted, got %v", d.calls)
	}
}

func TestCloseUnrealizesEverything(t *testing.T) {
	c, d := newTestContext("c")
	for i := 0; i < 5; i++ {
		RealizeFor(&handle{kind: KindFramebuffer, id: uint32(i)}, c)
	}
	c.Close()
	c.Close()
	if c.Registry().Len() != 0 || len(d.calls) != 5 {
		t.Errorf("Expected 5 deletes and empty registry, got %d / %d", len(d.calls), c.Registry().Len())
	}
}

func BenchmarkFrameSweep(b *testing.B) {
	c, _ := newTestContext("bench")
	hs := make([]*handle, 512)
	for i := range hs {
		hs[i] = &handle{kind: KindBuffer, id: uint32(i + 1)}
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.SetAllUnused()
		for j, h := range hs {
			if !h.IsRealized() {
				RealizeFor(h, c)
			}
			if (i+j)%2 == 0 {
				h.SetUsed(true)
			}
		}
		c.UnrealizeUnused()
	}
}
