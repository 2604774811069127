package config

import (
	"fmt"
	"os"
)

// DefaultConfigFileName is the config file the CLI looks for by default.
const DefaultConfigFileName = ".musweep.yml"

const defaultConfig = `version: 1

provider:
  name: openai
  model: "gpt-4o"

influence:
  t0: 0.7
  prior: 0.5
  base_temperature: 0.2
  critic_temperature: 0.2

sweep:
  axes:
    beta: [0.2, 0.4, 0.6, 0.8]
    k: [3.0, 6.0]
    tau: [0.3, 0.5, 0.7]
    alpha: [0.4, 0.8, 1.2]
  seeds: [1, 2, 3, 4, 5]
  adversarial: [false, true]
  workers: 4
  time_budget_seconds: 1200
  shuffle: true
  shuffle_seed: 1234

output:
  results_path: "results.csv"
  audit_path: "audit.jsonl"
`

// Scaffold writes a starter config file. It refuses to overwrite an existing
// file.
func Scaffold(path string) error {
	if path == "" {
		path = DefaultConfigFileName
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(defaultConfig), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
