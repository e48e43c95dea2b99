package cell_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/okrylov/cardiosim/internal/cell"
	"github.com/okrylov/cardiosim/internal/integrators"
	"github.com/okrylov/cardiosim/internal/models"
	"github.com/okrylov/cardiosim/internal/stim"
)

// apdsAbove measures action potential durations as the time the
// membrane spends above the threshold, one entry per excursion.
func apdsAbove(traj *cell.Trajectory, threshold float64) []float64 {
	u := traj.Component(0)
	var apds []float64
	var onset float64
	above := false
	for i := 1; i < len(u); i++ {
		if !above && u[i] >= threshold && u[i-1] < threshold {
			onset = traj.Times[i]
			above = true
		} else if above && u[i] < threshold {
			apds = append(apds, traj.Times[i]-onset)
			above = false
		}
	}
	return apds
}

func maxComponent(traj *cell.Trajectory, i int) float64 {
	max := traj.States[0][i]
	for _, x := range traj.States[1:] {
		if x[i] > max {
			max = x[i]
		}
	}
	return max
}

var _ = Describe("Fenton-Karma action potentials", func() {
	var model *models.FentonKarma

	BeforeEach(func() {
		model = models.NewFentonKarma()
	})

	run := func(s cell.Stimulus, steps int) *cell.Trajectory {
		sim := cell.New(model, integrators.NewEuler(), s)
		traj, err := sim.Run(context.Background(), model.DefaultState(), cell.Config{Dt: 0.01, Steps: steps})
		Expect(err).NotTo(HaveOccurred())
		return traj
	}

	Context("without stimulation", func() {
		It("should stay at the resting point", func() {
			traj := run(stim.NewNone(), 10000)

			final := traj.Final()
			drift := cell.State{final[0], final[1] - 1, final[2] - 1}
			Expect(drift.Norm()).To(BeNumerically("<", 1e-6))
		})
	})

	Context("with a sub-threshold pulse", func() {
		It("should relax back to rest without firing", func() {
			traj := run(stim.NewPulse(0.05, 1.0, 1.0), 10000)

			Expect(maxComponent(traj, 0)).To(BeNumerically("<", model.Params().Uc))
			Expect(traj.Final()[0]).To(BeNumerically("<", 0.01))
		})
	})

	Context("with a supra-threshold pulse", func() {
		It("should fire a full action potential", func() {
			traj := run(stim.NewPulse(1.0, 0.1, 0.2), 40000)

			Expect(traj.IsFinite()).To(BeTrue())
			Expect(maxComponent(traj, 0)).To(BeNumerically(">", 0.9))
			Expect(traj.Final()[0]).To(BeNumerically("<", 0.1))

			apds := apdsAbove(traj, 0.1)
			Expect(apds).To(HaveLen(1))
			Expect(apds[0]).To(BeNumerically(">", 200))
			Expect(apds[0]).To(BeNumerically("<", 300))
		})
	})

	Context("with a premature extrastimulus", func() {
		It("should shorten the second action potential", func() {
			s1 := stim.Train{Amplitude: 1.0, Start: 0.1, Duration: 0.2, Period: 500, Count: 1}
			traj := run(stim.NewS1S2(s1, 280), 70000)

			apds := apdsAbove(traj, 0.1)
			Expect(apds).To(HaveLen(2))
			Expect(apds[1]).To(BeNumerically("<", apds[0]))
		})
	})

	Context("with different integrators", func() {
		It("should agree on the action potential peak", func() {
			pulse := stim.NewPulse(1.0, 0.1, 0.2)
			cfg := cell.Config{Dt: 0.01, Steps: 1000}

			euler, err := cell.New(model, integrators.NewEuler(), pulse).
				Run(context.Background(), model.DefaultState(), cfg)
			Expect(err).NotTo(HaveOccurred())

			rk4, err := cell.New(model, integrators.NewRK4(), pulse).
				Run(context.Background(), model.DefaultState(), cfg)
			Expect(err).NotTo(HaveOccurred())

			Expect(maxComponent(euler, 0)).To(BeNumerically("~", maxComponent(rk4, 0), 0.02))
		})
	})
})

var _ = Describe("Aliev-Panfilov action potentials", func() {
	It("should fire and recover after a strong pulse", func() {
		model := models.NewAlievPanfilov()
		sim := cell.New(model, integrators.NewEuler(), stim.NewPulse(1.0, 1.0, 1.0))

		traj, err := sim.Run(context.Background(), model.DefaultState(), cell.Config{Dt: 0.01, Steps: 10000})
		Expect(err).NotTo(HaveOccurred())

		Expect(traj.IsFinite()).To(BeTrue())
		Expect(maxComponent(traj, 0)).To(BeNumerically(">", 0.8))
		Expect(traj.Final()[0]).To(BeNumerically("<", 0.1))
	})
})
