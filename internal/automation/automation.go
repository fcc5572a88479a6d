package automation

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/starfall/internal/config"
	"github.com/san-kum/starfall/internal/dynamo"
	"github.com/san-kum/starfall/internal/metrics"
	"github.com/san-kum/starfall/internal/sim"
	"github.com/san-kum/starfall/internal/storage"
)

// Scenario is a scripted sequence of collision runs.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps"`
}

// Step is one run. Unset fields keep the preset's values.
type Step struct {
	Preset    string   `yaml:"preset"`
	Seed      *int64   `yaml:"seed"`
	Speed     *float64 `yaml:"speed"`
	Offset    *float64 `yaml:"offset"`
	Threshold *float64 `yaml:"threshold"`
	Cutoff    *float64 `yaml:"cutoff"`
	Duration  *float64 `yaml:"duration"`
	Particles *int     `yaml:"particles"`
	SaveAs    string   `yaml:"save_as"`
}

type StepResult struct {
	Step        int
	Preset      string
	RunID       string
	Collided    bool
	CollisionAt float64
	Ticks       int
	Metrics     map[string]float64
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("%w: scenario %q has no steps", dynamo.ErrInvalidConfig, scenario.Name)
	}
	return &scenario, nil
}

func (s Step) preset() string {
	if s.Preset == "" {
		return "collide"
	}
	return s.Preset
}

// Config resolves the step against its preset.
func (s Step) Config() (*config.Config, error) {
	name := s.preset()
	cfg := config.GetPreset(name)
	if cfg == nil {
		return nil, fmt.Errorf("unknown preset: %s", name)
	}

	if s.Seed != nil {
		cfg.Seed = *s.Seed
	}
	if s.Speed != nil {
		cfg.SetSpeed(*s.Speed)
	}
	if s.Offset != nil {
		cfg.BodyA.Position[1] = *s.Offset
		cfg.BodyB.Position[1] = -*s.Offset
	}
	if s.Threshold != nil {
		cfg.Threshold = *s.Threshold
	}
	if s.Cutoff != nil {
		cfg.Cutoff = *s.Cutoff
	}
	if s.Duration != nil {
		cfg.Duration = *s.Duration
	}
	if s.Particles != nil {
		cfg.Burst.Count = *s.Particles
	}
	return cfg, cfg.SimConfig().Validate()
}

// RunScenario executes the steps in order. A nil store runs without saving.
func RunScenario(ctx context.Context, scenario *Scenario, store *storage.Store, logger *log.Logger) ([]StepResult, error) {
	if logger == nil {
		logger = log.Default()
	}
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		cfg, err := step.Config()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		logger.Info("scenario step", "scenario", scenario.Name, "step", i+1, "of", len(scenario.Steps), "preset", step.preset())

		simCfg := cfg.SimConfig()
		res, err := sim.RunLogged(ctx, simCfg, dynamo.NewRand(cfg.Seed), logger, metrics.Standard()...)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		out := StepResult{
			Step:        i + 1,
			Preset:      step.preset(),
			Collided:    res.Collided,
			CollisionAt: res.CollisionAt,
			Ticks:       res.Ticks,
			Metrics:     res.Metrics,
		}
		if store != nil {
			meta := storage.NewMetadata(step.preset(), cfg.Seed, simCfg, res)
			meta.ID = step.SaveAs
			if meta.ID == "" {
				meta.ID = fmt.Sprintf("%s_%d_%d", step.preset(), time.Now().UnixMilli(), i+1)
			}
			if out.RunID, err = store.Save(meta, res); err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
		}
		results = append(results, out)
	}

	return results, nil
}
