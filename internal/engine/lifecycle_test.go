package engine_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/tenseg/internal/engine"
	"github.com/san-kum/tenseg/internal/physics"
	"github.com/san-kum/tenseg/internal/tenscript"
)

// settleWorld relaxes quickly: without gravity the only motion is
// elastic, so heavy drag drains it fast and the suite never waits on a
// slowly falling structure.
func settleWorld() physics.World {
	w := physics.DefaultWorld()
	w.Gravity = 0
	w.Drag = 0.05
	w.CalmThreshold = 1e-4
	w.IterationsPerAdvance = 100
	return w
}

var _ = Describe("Life cycle", func() {
	var eng *engine.Engine

	reach := func(target engine.Stage, limit int) {
		GinkgoHelper()
		for i := 0; i < limit; i++ {
			Expect(eng.Tick()).To(Succeed())
			if eng.Stage() == target {
				return
			}
		}
		Fail("never reached " + target.String())
	}

	BeforeEach(func() {
		eng = engine.New(physics.New(settleWorld()), settleWorld())
		tree, err := tenscript.Parse("(L, 2)")
		Expect(err).NotTo(HaveOccurred())
		Expect(eng.SubmitGrammar(tree)).To(Succeed())
	})

	It("settles each growth generation before reaching shaping", func() {
		reach(engine.Shaping, 1000)
		Expect(eng.JointCount()).To(Equal(12))
		Expect(eng.Stuck()).To(BeFalse())
	})

	It("adopts a strain-free rest state on entering slack", func() {
		reach(engine.Shaping, 1000)
		Expect(eng.RequestStage(engine.Slack)).To(Succeed())
		Expect(eng.Stage()).To(Equal(engine.Slack))
		Expect(eng.MaxStrain()).To(BeZero())
		Expect(eng.Height()).To(BeNumerically(">", 0))
	})

	It("pretenses into a strained terminal state", func() {
		reach(engine.Shaping, 1000)
		Expect(eng.RequestStage(engine.Slack)).To(Succeed())
		Expect(eng.RequestStage(engine.Pretensing)).To(Succeed())
		reach(engine.Pretenst, 1000)
		Expect(eng.MaxStrain()).To(BeNumerically(">", 1e-6))
	})

	It("returns from pretenst to slack through the stiffness pass", func() {
		reach(engine.Shaping, 1000)
		Expect(eng.RequestStage(engine.Slack)).To(Succeed())
		Expect(eng.RequestStage(engine.Pretensing)).To(Succeed())
		reach(engine.Pretenst, 1000)
		Expect(eng.RequestStage(engine.Slack)).To(Succeed())
		Expect(eng.MaxStrain()).To(BeZero())
	})

	It("rejects transitions the stage machine does not allow", func() {
		Expect(eng.RequestStage(engine.Slack)).To(MatchError(engine.ErrStage))
		reach(engine.Shaping, 1000)
		Expect(eng.RequestStage(engine.Pretenst)).To(MatchError(engine.ErrStage))
	})
})
