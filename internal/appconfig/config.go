// internal/appconfig/config.go
package appconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"circanno-core/annotate"
	"circanno-core/orf"
	"circanno-core/refine"
	"circanno-core/template"
)

// Config is the YAML annotation policy: which genes may open on
// alternative start codons, which never get ORF correction, and the
// refinement tuning knobs. Omitted fields keep their defaults.
type Config struct {
	GTGStartGenes  []string `yaml:"gtg_start_genes"`
	ACGStartGenes  []string `yaml:"acg_start_genes"`
	NoORFGenes     []string `yaml:"no_orf_genes"`
	ExpandSchedule []int    `yaml:"expand_schedule"`
	WindowKeep     float64  `yaml:"window_keep"`
	MaxGap         int      `yaml:"max_gap"`
}

// Default returns the stock policy: plastid rps19 may open on GTG,
// ndhD on ACG, trans-spliced rps12 skips ORF correction.
func Default() Config {
	return Config{
		GTGStartGenes:  []string{"rps19"},
		ACGStartGenes:  []string{"ndhD"},
		NoORFGenes:     []string{"rps12"},
		ExpandSchedule: append([]int(nil), refine.DefaultSchedule...),
		WindowKeep:     0.9,
		MaxGap:         100,
	}
}

// Load reads a YAML policy file over the defaults. An empty path
// returns the defaults unchanged.
func Load(path string) (Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("%s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Validate checks the tuning knobs stay in their working ranges.
func (c Config) Validate() error {
	if c.WindowKeep <= 0 || c.WindowKeep > 1 {
		return fmt.Errorf("window_keep %g out of range (0,1]", c.WindowKeep)
	}
	if c.MaxGap < 1 {
		return fmt.Errorf("max_gap %d must be > 0", c.MaxGap)
	}
	if len(c.ExpandSchedule) == 0 {
		return fmt.Errorf("expand_schedule must name at least one chunk size")
	}
	for _, s := range c.ExpandSchedule {
		if s < 1 {
			return fmt.Errorf("expand_schedule chunk %d must be > 0", s)
		}
	}
	return nil
}

// AnnotatorConfig maps the policy onto the engine configuration.
func (c Config) AnnotatorConfig(templates template.Set, diagf func(string, ...any)) annotate.Config {
	return annotate.Config{
		Templates: templates,
		Starts: orf.StartPolicy{
			GTG: toSet(c.GTGStartGenes),
			ACG: toSet(c.ACGStartGenes),
		},
		NoORF:      toSet(c.NoORFGenes),
		Schedule:   c.ExpandSchedule,
		WindowKeep: c.WindowKeep,
		MaxGap:     c.MaxGap,
		Diagf:      diagf,
	}
}

func toSet(names []string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}
