// Package ciconfig models the subset of the CircleCI version 2 configuration
// schema this repository's pipeline uses and validates documents against it.
package ciconfig

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Version int            `yaml:"version"`
	Jobs    map[string]Job `yaml:"jobs"`
}

type Job struct {
	WorkingDirectory string   `yaml:"working_directory,omitempty"`
	Docker           []Docker `yaml:"docker,omitempty"`
	Steps            []Step   `yaml:"steps,omitempty"`
}

type Docker struct {
	Image       string            `yaml:"image"`
	Environment map[string]string `yaml:"environment,omitempty"`
}

// Step is one entry of a job's steps list. In the schema a step is either a
// bare name ("checkout") or a single-key mapping from the step kind to its
// parameters.
type Step struct {
	Kind         string
	Run          *RunStep
	RestoreCache *RestoreCacheStep
	SaveCache    *SaveCacheStep
}

type RunStep struct {
	Name        string            `yaml:"name,omitempty"`
	Command     string            `yaml:"command"`
	Environment map[string]string `yaml:"environment,omitempty"`
}

type RestoreCacheStep struct {
	Key  string   `yaml:"key,omitempty"`
	Keys []string `yaml:"keys,omitempty"`
}

type SaveCacheStep struct {
	Key   string   `yaml:"key"`
	Paths []string `yaml:"paths"`
}

func (s *Step) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		s.Kind = node.Value
		return nil
	case yaml.MappingNode:
		if len(node.Content) != 2 {
			return fmt.Errorf("line %d: a step mapping must have exactly one key", node.Line)
		}
		key, val := node.Content[0], node.Content[1]
		s.Kind = key.Value
		switch key.Value {
		case "run":
			// run accepts either a bare command string or a mapping.
			run := &RunStep{}
			if val.Kind == yaml.ScalarNode {
				run.Command = val.Value
			} else if err := val.Decode(run); err != nil {
				return err
			}
			s.Run = run
		case "restore_cache":
			s.RestoreCache = &RestoreCacheStep{}
			return val.Decode(s.RestoreCache)
		case "save_cache":
			s.SaveCache = &SaveCacheStep{}
			return val.Decode(s.SaveCache)
		}
		return nil
	default:
		return fmt.Errorf("line %d: a step must be a string or a mapping", node.Line)
	}
}

// Load reads and parses a configuration file. Parsing alone does not imply
// validity; run Validate on the result.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &cfg, nil
}

var knownStepKinds = map[string]bool{
	"checkout":      true,
	"run":           true,
	"restore_cache": true,
	"save_cache":    true,
}

// Validate checks the document against the version 2 job/step schema and
// returns all violations found.
func Validate(cfg *Config) error {
	var errs []error
	if cfg.Version != 2 {
		errs = append(errs, fmt.Errorf("version must be 2, got %d", cfg.Version))
	}
	if len(cfg.Jobs) == 0 {
		errs = append(errs, errors.New("at least one job is required"))
	}
	for name, job := range cfg.Jobs {
		errs = append(errs, validateJob(name, job)...)
	}
	return errors.Join(errs...)
}

func validateJob(name string, job Job) []error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("job %s: "+format, append([]any{name}, args...)...))
	}

	if len(job.Docker) == 0 {
		fail("at least one docker image is required")
	}
	for i, d := range job.Docker {
		if d.Image == "" {
			fail("docker entry %d: image must not be empty", i+1)
		}
	}
	if len(job.Steps) == 0 {
		fail("at least one step is required")
	}
	for i, step := range job.Steps {
		if !knownStepKinds[step.Kind] {
			fail("step %d: unknown step kind %q", i+1, step.Kind)
			continue
		}
		switch step.Kind {
		case "run":
			if step.Run == nil || step.Run.Command == "" {
				fail("step %d: run requires a command", i+1)
			}
		case "restore_cache":
			if step.RestoreCache == nil || (step.RestoreCache.Key == "" && len(step.RestoreCache.Keys) == 0) {
				fail("step %d: restore_cache requires key or keys", i+1)
			}
		case "save_cache":
			if step.SaveCache == nil || step.SaveCache.Key == "" {
				fail("step %d: save_cache requires a key", i+1)
			}
			if step.SaveCache == nil || len(step.SaveCache.Paths) == 0 {
				fail("step %d: save_cache requires paths", i+1)
			}
		}
	}
	return errs
}
