package config

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"

	"github.com/atlasml/alignsync/internal/align"
	lconfig "github.com/atlasml/alignsync/pkg/config"
)

var (
	ErrNoAlignedMetrics = fmt.Errorf("at least one aligned metric is required")
	ErrNoTargetProject  = fmt.Errorf("a target project is required")
	ErrNoEnabledSources = fmt.Errorf("at least one enabled source is required")
)

type Config struct {
	ConfigFile string `env:"ALIGNSYNC_CONFIG_FILE" envDefault:"alignsync.yaml"`
	Daemon     bool   `env:"ALIGNSYNC_DAEMON" envDefault:"false"`
}

func NewConfigFromEnv() (*Config, error) {
	var cfg Config
	err := lconfig.Parse(&cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// GroupConfig overrides one step-prefix group of the default rule set.
type GroupConfig struct {
	Name       string   `json:"name"`
	StepColumn string   `json:"step_column"`
	Prefixes   []string `json:"prefixes"`
	Exact      []string `json:"exact"`
}

type TargetConfig struct {
	Project          string `json:"project"`
	ExperimentPrefix string `json:"experiment_prefix,omitempty"`
}

// ExperimentName prepends the configured prefix to a source's target
// experiment name.
func (t TargetConfig) ExperimentName(source *SourceConfig) string {
	return t.ExperimentPrefix + source.TargetExperiment
}

// SourceConfig describes one tracked run to align and republish.
type SourceConfig struct {
	Enabled          bool              `json:"enabled"`
	Platform         string            `json:"platform"`
	RunPath          string            `json:"run_path"`
	TargetExperiment string            `json:"target_experiment"`
	OutputFile       string            `json:"output_file"`
	Mapping          map[string]string `json:"mapping,omitempty"`
	Groups           []GroupConfig     `json:"groups,omitempty"`
}

type FileConfig struct {
	AlignedMetrics []string                 `json:"aligned_metrics"`
	Target         TargetConfig             `json:"target"`
	Sources        map[string]*SourceConfig `json:"sources"`
}

func NewFileConfig(cfg *Config, filesystem afero.Fs) (*FileConfig, error) {
	var fileConfig FileConfig
	if err := lconfig.LoadStaticYamlConfig(cfg.ConfigFile, filesystem, &fileConfig); err != nil {
		return nil, err
	}
	if err := fileConfig.Validate(); err != nil {
		return nil, err
	}
	return &fileConfig, nil
}

func (c *FileConfig) Validate() error {
	var result error
	if len(c.AlignedMetrics) == 0 {
		result = multierror.Append(result, ErrNoAlignedMetrics)
	}
	if c.Target.Project == "" {
		result = multierror.Append(result, ErrNoTargetProject)
	}
	if len(c.EnabledSources()) == 0 {
		result = multierror.Append(result, ErrNoEnabledSources)
	}
	for name, source := range c.Sources {
		if !source.Enabled {
			continue
		}
		if source.Platform == "" {
			result = multierror.Append(result, fmt.Errorf("source %s: a platform is required", name))
		}
		if source.RunPath == "" {
			result = multierror.Append(result, fmt.Errorf("source %s: a run path is required", name))
		}
		if source.TargetExperiment == "" {
			result = multierror.Append(result, fmt.Errorf("source %s: a target experiment name is required", name))
		}
		if source.OutputFile == "" {
			result = multierror.Append(result, fmt.Errorf("source %s: an output file is required", name))
		}
	}
	return result
}

// EnabledSources returns the names of the sources marked enabled.
func (c *FileConfig) EnabledSources() []string {
	names := make([]string, 0, len(c.Sources))
	for name, source := range c.Sources {
		if source.Enabled {
			names = append(names, name)
		}
	}
	return names
}

// MappingFor returns the source's explicit key mapping, or the identity
// mapping over the aligned metrics when none is configured.
func (c *FileConfig) MappingFor(source *SourceConfig) align.Mapping {
	if len(source.Mapping) > 0 {
		return align.Mapping(source.Mapping)
	}
	return align.IdentityMapping(c.AlignedMetrics)
}

// GroupsFor returns the source's group rules, falling back to the default
// train/rollout/eval rule set.
func (c *FileConfig) GroupsFor(source *SourceConfig) []align.Group {
	if len(source.Groups) == 0 {
		return align.DefaultGroups()
	}
	groups := make([]align.Group, 0, len(source.Groups))
	for _, group := range source.Groups {
		groups = append(groups, align.Group{
			Name:       group.Name,
			StepColumn: group.StepColumn,
			Prefixes:   group.Prefixes,
			Exact:      group.Exact,
		})
	}
	return groups
}
