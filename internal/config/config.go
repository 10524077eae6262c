// Package config holds the tuning of the poll loop. The line map is fixed
// and not part of it.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/sweeney/encoder-reader/internal/logic"
)

// DefaultPoll is the interval between full samples of the inputs. It must
// be shorter than the fastest encoder detent.
const DefaultPoll = 3 * time.Millisecond

// Config is the loop tuning.
type Config struct {
	Poll         time.Duration `yaml:"poll"`
	NextDebounce time.Duration `yaml:"next_debounce"`
	Heartbeat    time.Duration `yaml:"heartbeat"` // 0 disables
}

// Default returns the built-in tuning.
func Default() Config {
	return Config{
		Poll:         DefaultPoll,
		NextDebounce: logic.DefaultNextDebounce,
	}
}

// Load reads a YAML tuning file over the defaults. Keys absent from the
// file keep their default value.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects tuning the loop cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Poll <= 0 {
		errs = append(errs, fmt.Errorf("poll must be positive, got %v", c.Poll))
	}
	if c.NextDebounce < 0 {
		errs = append(errs, fmt.Errorf("next_debounce must not be negative, got %v", c.NextDebounce))
	}
	if c.Heartbeat < 0 {
		errs = append(errs, fmt.Errorf("heartbeat must not be negative, got %v", c.Heartbeat))
	}
	return errors.Join(errs...)
}
