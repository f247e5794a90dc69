package config

import (
	"github.com/indhiran08-coder/student-performance-ai/internal/artifact"
	"github.com/indhiran08-coder/student-performance-ai/internal/dataset"
	"github.com/indhiran08-coder/student-performance-ai/internal/decision"
	"github.com/indhiran08-coder/student-performance-ai/internal/history"
)

func Default() *Config {
	return &Config{
		Data: DataConfig{
			Path:   "data/students.csv",
			Limits: dataset.DefaultLimits(),
		},
		Training: TrainingConfig{
			TestSize:      0.2,
			Seed:          42,
			Folds:         5,
			Precision:     2,
			MaxDivergence: 0.15,
			Strict:        false,
			Candidates:    []string{"linear", "random_forest", "gradient_boosting"},
			ModelParams: ModelParamsConfig{
				NEstimators:    200,
				MaxDepth:       0,
				MinSamplesLeaf: 1,
				BoostingStages: 100,
				BoostingDepth:  3,
				LearningRate:   0.1,
			},
		},
		Artifacts: ArtifactsConfig{
			Dir:        "models",
			ModelFile:  artifact.DefaultModelFile,
			ScalerFile: artifact.DefaultScalerFile,
		},
		History: HistoryConfig{
			Enabled: true,
			Path:    history.DefaultPath,
		},
		Decision: DecisionConfig{
			Dashboard: decision.Dashboard(),
			Support:   decision.Support(),
		},
		Server: ServerConfig{
			Host:               "127.0.0.1",
			Port:               8080,
			MaxBodyBytes:       1 << 20,
			ShutdownTimeoutSec: 10,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerSecond: 10,
				Burst:             20,
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
