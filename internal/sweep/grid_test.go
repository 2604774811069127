package sweep

import (
	"reflect"
	"testing"

	"musweep/internal/pass"
	"musweep/internal/spec"
)

func gridConfig() spec.SweepConfig {
	return spec.SweepConfig{
		Axes: spec.AxesConfig{
			Beta:  []float64{0.3, 0.6},
			K:     []float64{3.0},
			Tau:   []float64{0.4, 0.5},
			Alpha: []float64{0.4, 0.8, 1.2},
		},
		Seeds:       []int{1, 2},
		Adversarial: []bool{false, true},
	}
}

// TestBuildTasksCartesianProduct verifies the grid size and membership.
func TestBuildTasksCartesianProduct(t *testing.T) {
	tasks := BuildTasks(gridConfig())
	want := 2 * 1 * 2 * 3 * 2 * 2
	if len(tasks) != want {
		t.Fatalf("expected %d tasks, got %d", want, len(tasks))
	}
	seen := make(map[pass.Params]struct{}, len(tasks))
	for _, task := range tasks {
		seen[task] = struct{}{}
	}
	if len(seen) != want {
		t.Fatalf("expected %d distinct tuples, got %d", want, len(seen))
	}
	probe := pass.Params{Beta: 0.6, K: 3.0, Tau: 0.5, Alpha: 1.2, Seed: 2, Adversarial: true}
	if _, ok := seen[probe]; !ok {
		t.Fatalf("expected tuple %+v in grid", probe)
	}
}

// TestBuildTasksShuffleDeterministic verifies seeded shuffles are stable.
func TestBuildTasksShuffleDeterministic(t *testing.T) {
	cfg := gridConfig()
	cfg.Shuffle = true
	cfg.ShuffleSeed = 1234

	first := BuildTasks(cfg)
	second := BuildTasks(cfg)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical order for identical shuffle seed")
	}

	cfg.Shuffle = false
	ordered := BuildTasks(cfg)
	if reflect.DeepEqual(first, ordered) {
		t.Fatalf("expected shuffled order to differ from axis order")
	}
	if len(first) != len(ordered) {
		t.Fatalf("shuffle changed task count: %d vs %d", len(first), len(ordered))
	}
}

// TestFilterDone verifies exact-tuple resume filtering.
func TestFilterDone(t *testing.T) {
	tasks := BuildTasks(gridConfig())
	done := map[pass.Params]struct{}{
		tasks[0]: {},
		tasks[5]: {},
	}
	todo := FilterDone(tasks, done)
	if len(todo) != len(tasks)-2 {
		t.Fatalf("expected %d remaining, got %d", len(tasks)-2, len(todo))
	}
	for _, task := range todo {
		if _, ok := done[task]; ok {
			t.Fatalf("done tuple %+v not filtered", task)
		}
	}
}
