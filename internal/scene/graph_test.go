package scene

import (
	"math"
	"testing"
	"time"

	"github.com/san-kum/starfall/internal/dynamo"
)

type marker struct{ kind Kind }

func (m *marker) Kind() Kind { return m.kind }

func TestGraphAddRemove(t *testing.T) {
	g := NewGraph(&Recorder{})
	a := &marker{KindStar}
	b := &marker{KindFragment}

	g.Add(a)
	g.Add(b)
	g.Add(a)

	if g.Len() != 2 {
		t.Fatalf("expected 2 objects, got %d", g.Len())
	}
	if g.Count(KindFragment) != 1 {
		t.Errorf("expected 1 fragment, got %d", g.Count(KindFragment))
	}

	g.Remove(a)
	if g.Contains(a) {
		t.Error("removed object still present")
	}
	if g.Objects()[0] != b {
		t.Error("remove did not preserve order")
	}

	g.Remove(a)
	if g.Len() != 1 {
		t.Errorf("removing a missing object changed the graph: %d", g.Len())
	}
}

func TestGraphRender(t *testing.T) {
	rec := &Recorder{}
	g := NewGraph(rec)
	g.Add(&marker{KindStar})
	g.Render()
	g.Render()

	if rec.Draws != 2 || g.Frames() != 2 {
		t.Errorf("expected 2 draws, got %d (frames %d)", rec.Draws, g.Frames())
	}
	if rec.LastObjects != 1 {
		t.Errorf("expected 1 object drawn, got %d", rec.LastObjects)
	}
}

func TestGraphReady(t *testing.T) {
	if NewGraph(nil).Ready() {
		t.Error("graph without surface should not be ready")
	}
	var g *Graph
	if g.Ready() {
		t.Error("nil graph should not be ready")
	}
	if !NewGraph(&Recorder{}).Ready() {
		t.Error("graph with surface should be ready")
	}
}

func TestGraphResize(t *testing.T) {
	rec := &Recorder{}
	g := NewGraph(rec)
	g.Resize(1600, 900)

	if rec.Width != 1600 || rec.Height != 900 {
		t.Errorf("surface not resized: %dx%d", rec.Width, rec.Height)
	}
	if math.Abs(g.Camera().Aspect-16.0/9.0) > 1e-12 {
		t.Errorf("camera aspect not updated: %v", g.Camera().Aspect)
	}

	g.Resize(0, 10)
	if rec.Width != 1600 {
		t.Error("degenerate resize should be ignored")
	}
}

func TestCameraProject(t *testing.T) {
	cam := NewCamera()

	x, y, depth, ok := cam.Project(dynamo.Vec3{}, 200, 100)
	if !ok || x != 100 || y != 50 {
		t.Errorf("origin should land at center, got (%d,%d) ok=%v", x, y, ok)
	}
	if depth != DefaultZ {
		t.Errorf("expected depth %v, got %v", DefaultZ, depth)
	}

	if _, _, _, ok := cam.Project(dynamo.Vec3{Z: 40}, 200, 100); ok {
		t.Error("point behind the camera should not be visible")
	}

	lx, _, _, _ := cam.Project(dynamo.Vec3{X: -5}, 200, 100)
	rx, _, _, _ := cam.Project(dynamo.Vec3{X: 5}, 200, 100)
	if lx >= 100 || rx <= 100 {
		t.Errorf("x axis flipped: left=%d right=%d", lx, rx)
	}

	_, uy, _, _ := cam.Project(dynamo.Vec3{Y: 5}, 200, 100)
	if uy >= 50 {
		t.Errorf("positive y should be above center, got %d", uy)
	}
}

func TestCameraProjectRadius(t *testing.T) {
	cam := NewCamera()
	near := cam.ProjectRadius(1, 10, 100)
	far := cam.ProjectRadius(1, 20, 100)
	if near <= far {
		t.Errorf("nearer sphere should look bigger: %v <= %v", near, far)
	}
	if cam.ProjectRadius(1, 0, 100) != 0 {
		t.Error("zero depth should give zero radius")
	}
}

func TestTimers(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	timers := NewTimers(clock)

	var order []string
	timers.After(2*time.Second, func() { order = append(order, "late") })
	timers.After(time.Second, func() { order = append(order, "early") })

	if n := timers.RunDue(); n != 0 {
		t.Fatalf("nothing should be due yet, ran %d", n)
	}

	clock.Advance(time.Second)
	if n := timers.RunDue(); n != 1 {
		t.Fatalf("expected 1 due task, ran %d", n)
	}

	clock.Advance(5 * time.Second)
	timers.RunDue()
	if len(order) != 2 || order[0] != "early" || order[1] != "late" {
		t.Errorf("unexpected order %v", order)
	}
	if timers.Pending() != 0 {
		t.Errorf("expected no pending tasks, got %d", timers.Pending())
	}
}

func TestTimersKeepDelayAcrossClocks(t *testing.T) {
	timers := NewTimers(NewManualClock(time.Unix(0, 0)))
	ran := false
	timers.After(time.Second, func() { ran = true })

	next := NewManualClock(time.Unix(500, 0))
	timers.SetClock(next)
	if timers.Clock() != next {
		t.Fatal("clock not replaced")
	}

	next.Advance(999 * time.Millisecond)
	if timers.RunDue(); ran {
		t.Fatal("task ran early on the new clock")
	}
	next.Advance(time.Millisecond)
	if timers.RunDue(); !ran {
		t.Error("task did not run after its delay on the new clock")
	}
}

func TestBackdrop(t *testing.T) {
	cfg := DefaultBackdropConfig()
	b := NewBackdrop(cfg, dynamo.NewRand(7))

	if len(b.Stars) != cfg.Stars {
		t.Fatalf("expected %d stars, got %d", cfg.Stars, len(b.Stars))
	}
	half := cfg.Spread / 2
	for _, s := range b.Stars {
		if math.Abs(s.X) > half || math.Abs(s.Y) > half || math.Abs(s.Z) > half {
			t.Fatalf("star outside spread: %v", s)
		}
	}

	rings := b.Rings()
	if len(rings) != cfg.Tubular+1 || len(rings[0]) != cfg.Radial {
		t.Errorf("unexpected knot mesh %dx%d", len(rings), len(rings[0]))
	}
	if len(b.Spine()) != cfg.Tubular+1 {
		t.Errorf("unexpected spine length %d", len(b.Spine()))
	}
}

func TestBackdropFollowsPointer(t *testing.T) {
	b := NewBackdrop(DefaultBackdropConfig(), dynamo.NewRand(1))
	b.Point(500, -300)

	for i := 0; i < 400; i++ {
		b.Step()
	}

	if math.Abs(b.Offset.X-5) > 1e-3 || math.Abs(b.Offset.Y-3) > 1e-3 {
		t.Errorf("expected offset near (5,3), got %v", b.Offset)
	}
	if math.Abs(b.Rotation.X-0.8) > 1e-9 {
		t.Errorf("expected rotation 0.8 after 400 steps, got %v", b.Rotation.X)
	}
}
