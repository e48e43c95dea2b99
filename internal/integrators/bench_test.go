package integrators

import (
	"testing"

	"github.com/okrylov/cardiosim/internal/cell"
	"github.com/okrylov/cardiosim/internal/models"
)

func BenchmarkEuler(b *testing.B) {
	integrator := NewEuler()
	dyn := &oscillatorModel{}
	x := cell.State{1.0, 0.0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integrator.Step(dyn, x, 0, 0, 0.01)
	}
}

func BenchmarkRK4(b *testing.B) {
	integrator := NewRK4()
	dyn := &oscillatorModel{}
	x := cell.State{1.0, 0.0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integrator.Step(dyn, x, 0, 0, 0.01)
	}
}

func BenchmarkEuler_FentonKarma(b *testing.B) {
	integrator := NewEuler()
	m := models.NewFentonKarma()
	x := m.DefaultState()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integrator.Step(m, x, 0, 0, 0.01)
	}
}

func BenchmarkRK4_FentonKarma(b *testing.B) {
	integrator := NewRK4()
	m := models.NewFentonKarma()
	x := m.DefaultState()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integrator.Step(m, x, 0, 0, 0.01)
	}
}
