package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/Zarux/othello/pkg/alphabeta"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	ThinkTime     Duration                `json:"think_time"`
	Workers       int                     `json:"workers"`
	EvalWorkers   int                     `json:"eval_workers"`
	DepthSchedule alphabeta.DepthSchedule `json:"depth_schedule"`

	Addr     string `json:"addr"`
	LogLevel string `json:"log_level"`
	LogFile  string `json:"log_file"`
}

func Default() Config {
	return Config{
		ThinkTime:     Duration(10 * time.Second),
		Workers:       runtime.NumCPU(),
		EvalWorkers:   runtime.NumCPU(),
		DepthSchedule: alphabeta.DefaultSchedule(),
		Addr:          "127.0.0.1:3000",
		LogLevel:      "info",
	}
}

// Load reads a JSON file on top of the defaults. An empty path returns the
// defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.ThinkTime <= 0 {
		return fmt.Errorf("%w: think_time must be positive", ErrInvalidConfig)
	}

	if c.Workers < 1 || c.EvalWorkers < 1 {
		return fmt.Errorf("%w: workers must be at least 1", ErrInvalidConfig)
	}

	for i, step := range c.DepthSchedule {
		if step.Depth < alphabeta.MinDepth {
			return fmt.Errorf("%w: depth_schedule[%d] depth %d below %d", ErrInvalidConfig, i, step.Depth, alphabeta.MinDepth)
		}
		if i > 0 && step.MaxDiscs <= c.DepthSchedule[i-1].MaxDiscs {
			return fmt.Errorf("%w: depth_schedule must have increasing max_discs", ErrInvalidConfig)
		}
	}

	return nil
}

// Duration reads "10s" style strings or plain nanoseconds from JSON.
type Duration time.Duration

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch v := v.(type) {
	case float64:
		*d = Duration(v)
	case string:
		p, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		*d = Duration(p)
	default:
		return fmt.Errorf("%w: duration must be a string or a number", ErrInvalidConfig)
	}

	return nil
}
