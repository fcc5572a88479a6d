package sim_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/starfall/internal/dynamo"
	"github.com/san-kum/starfall/internal/scene"
	"github.com/san-kum/starfall/internal/sim"
)

var _ = Describe("Loop", func() {
	var (
		graph *scene.Graph
		clock *scene.ManualClock
		loop  *sim.Loop
		cfg   sim.Config
	)

	tick := func() sim.Frame {
		clock.Advance(time.Second / 60)
		return loop.Tick()
	}

	BeforeEach(func() {
		cfg = sim.DefaultConfig()
		graph = scene.NewGraph(&scene.Recorder{})
		clock = scene.NewManualClock(time.Unix(0, 0))

		var err error
		loop, err = sim.New(cfg, graph, dynamo.NewRand(42))
		Expect(err).NotTo(HaveOccurred())
		loop.SetClock(clock)
	})

	Context("before contact", func() {
		It("starts approaching with both stars visible", func() {
			Expect(loop.Phase()).To(Equal(sim.Approaching))
			Expect(loop.Clock().Collided()).To(BeFalse())
			Expect(graph.Count(scene.KindStar)).To(Equal(2))
			Expect(loop.Pair().A.Visible).To(BeTrue())
		})

		It("pulls the stars together", func() {
			f := tick()
			Expect(f.ForceA.X).To(BeNumerically(">", 0))
			Expect(f.ForceB).To(Equal(f.ForceA.Neg()))
			Expect(f.Separation).To(BeNumerically("<", 36))
		})
	})

	Context("at contact", func() {
		var hit sim.Frame

		BeforeEach(func() {
			for i := 0; i < 200; i++ {
				if hit = tick(); hit.Phase == sim.Exploding {
					break
				}
			}
		})

		It("bursts exactly once", func() {
			Expect(hit.Phase).To(Equal(sim.Exploding))
			Expect(hit.Particles).To(Equal(cfg.Burst.Count))
			Expect(hit.Separation).To(BeNumerically("<", cfg.Threshold))

			at := loop.Clock().CollisionAt
			for i := 0; i < 100; i++ {
				Expect(tick().Phase).To(Equal(sim.Decaying))
			}
			Expect(loop.Clock().CollisionAt).To(BeIdenticalTo(at))
		})

		It("hides the stars", func() {
			Expect(loop.Pair().A.Visible).To(BeFalse())
			Expect(loop.Pair().B.Visible).To(BeFalse())
		})

		It("removes the flash after a second of wall time", func() {
			Expect(graph.Count(scene.KindFlash)).To(Equal(1))
			clock.Advance(time.Second)
			tick()
			Expect(graph.Count(scene.KindFlash)).To(BeZero())
			Expect(loop.Flash()).To(BeNil())
		})

		It("burns out within the particle lifetime", func() {
			n := 0
			for !loop.Idle() && n < 300 {
				tick()
				n++
			}
			Expect(n).To(BeNumerically("~", 240, 1))
			Expect(graph.Count(scene.KindFragment)).To(BeZero())
		})
	})

	Describe("Run", func() {
		It("collides under the cutoff", func() {
			res, err := sim.Run(context.Background(), cfg, dynamo.NewRand(1))
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Collided).To(BeTrue())
			Expect(res.CollisionAt).To(BeNumerically("<", cfg.Cutoff))
		})
	})
})
