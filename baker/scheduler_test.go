package baker

import (
	"testing"
	"time"

	"github.com/unframework/lightbake/scene"
)

func makeTestFactor(name string) *Factor {
	return NewFactor(name, &scene.LightScene{}, 4, 4, testOptions())
}

func TestNaiveScheduler(t *testing.T) {
	type spec struct {
		factors  int
		budget   uint32
		expected []uint32
	}
	specs := []spec{
		{1, 10, []uint32{10}},
		{2, 10, []uint32{5, 5}},
		{3, 10, []uint32{4, 3, 3}},
		{2, 1, []uint32{1, 0}},
	}

	for index, s := range specs {
		factors := make([]*Factor, s.factors)
		for i := range factors {
			factors[i] = makeTestFactor("mock")
			defer factors[i].Close()
		}

		sch := NaiveScheduler()
		assignment := sch.Schedule(factors, s.budget)

		for i, expected := range s.expected {
			if assignment[i] != expected {
				t.Fatalf("[spec %d] expected factor %d to be assigned %d ticks; got %d", index, i, expected, assignment[i])
			}
		}
	}
}

func TestFeedbackScheduler(t *testing.T) {
	f1 := makeTestFactor("mock-1")
	f2 := makeTestFactor("mock-2")
	defer f1.Close()
	defer f2.Close()
	factors := []*Factor{f1, f2}

	sch := FeedbackScheduler()

	// First call behaves like the naive scheduler: no timing data yet
	assignment := sch.Schedule(factors, 10)
	if assignment[0] != 5 || assignment[1] != 5 {
		t.Fatalf("expected even first split; got %v", assignment)
	}

	// Factor 2 ticks five times slower; it should get fewer ticks
	f1.stats.LastTickTime = time.Millisecond
	f2.stats.LastTickTime = 5 * time.Millisecond

	assignment = sch.Schedule(factors, 12)
	if assignment[0] <= assignment[1] {
		t.Fatalf("expected the faster factor to be assigned more ticks; got %v", assignment)
	}
	if assignment[0]+assignment[1] < 12 {
		t.Fatalf("expected the full budget to be scheduled; got %v", assignment)
	}

	// Flipping the timings flips the assignment
	f1.stats.LastTickTime = 5 * time.Millisecond
	f2.stats.LastTickTime = time.Millisecond

	assignment = sch.Schedule(factors, 12)
	if assignment[1] <= assignment[0] {
		t.Fatalf("expected flipped assignment after flipped timings; got %v", assignment)
	}
}
