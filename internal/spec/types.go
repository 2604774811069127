package spec

type Config struct {
	Version   int             `yaml:"version"`
	Provider  ProviderConfig  `yaml:"provider"`
	Influence InfluenceConfig `yaml:"influence"`
	Sweep     SweepConfig     `yaml:"sweep"`
	Output    OutputConfig    `yaml:"output"`
}

type ProviderConfig struct {
	Name  string `yaml:"name"`
	Model string `yaml:"model"`
}

// InfluenceConfig holds the parts of the control model that are fixed across
// the sweep; the swept parameters live on the axes.
type InfluenceConfig struct {
	T0                float64 `yaml:"t0"`
	Prior             float64 `yaml:"prior"`
	BaseTemperature   float64 `yaml:"base_temperature"`
	CriticTemperature float64 `yaml:"critic_temperature"`
}

type SweepConfig struct {
	Axes              AxesConfig `yaml:"axes"`
	Seeds             []int      `yaml:"seeds"`
	Adversarial       []bool     `yaml:"adversarial"`
	Workers           int        `yaml:"workers"`
	TimeBudgetSeconds int        `yaml:"time_budget_seconds"`
	Shuffle           bool       `yaml:"shuffle"`
	ShuffleSeed       int64      `yaml:"shuffle_seed"`
}

// AxesConfig lists the swept values per parameter. The grid is the Cartesian
// product of all four axes with seeds and the adversarial flag.
type AxesConfig struct {
	Beta  []float64 `yaml:"beta"`
	K     []float64 `yaml:"k"`
	Tau   []float64 `yaml:"tau"`
	Alpha []float64 `yaml:"alpha"`
}

type OutputConfig struct {
	ResultsPath string `yaml:"results_path"`
	AuditPath   string `yaml:"audit_path"`
}
