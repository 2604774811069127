// Package sweep enumerates the experiment grid and executes passes under
// bounded concurrency with durable, resumable results.
package sweep

import (
	"math/rand"

	"musweep/internal/pass"
	"musweep/internal/spec"
)

// BuildTasks expands the configured axes into the full Cartesian product of
// parameter tuples. With Shuffle set, order is randomized from ShuffleSeed so
// an early budget stop still samples the whole space.
func BuildTasks(cfg spec.SweepConfig) []pass.Params {
	tasks := make([]pass.Params, 0,
		len(cfg.Axes.Beta)*len(cfg.Axes.K)*len(cfg.Axes.Tau)*len(cfg.Axes.Alpha)*len(cfg.Seeds)*len(cfg.Adversarial))
	for _, beta := range cfg.Axes.Beta {
		for _, k := range cfg.Axes.K {
			for _, tau := range cfg.Axes.Tau {
				for _, alpha := range cfg.Axes.Alpha {
					for _, seed := range cfg.Seeds {
						for _, adversarial := range cfg.Adversarial {
							tasks = append(tasks, pass.Params{
								Beta:        beta,
								K:           k,
								Tau:         tau,
								Alpha:       alpha,
								Seed:        seed,
								Adversarial: adversarial,
							})
						}
					}
				}
			}
		}
	}
	if cfg.Shuffle {
		rng := rand.New(rand.NewSource(cfg.ShuffleSeed))
		rng.Shuffle(len(tasks), func(i, j int) {
			tasks[i], tasks[j] = tasks[j], tasks[i]
		})
	}
	return tasks
}

// FilterDone removes tasks whose exact parameter tuple is already present in
// the result store.
func FilterDone(tasks []pass.Params, done map[pass.Params]struct{}) []pass.Params {
	if len(done) == 0 {
		return tasks
	}
	todo := make([]pass.Params, 0, len(tasks))
	for _, task := range tasks {
		if _, ok := done[task]; !ok {
			todo = append(todo, task)
		}
	}
	return todo
}
