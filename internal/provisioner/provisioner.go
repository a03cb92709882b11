// Package provisioner takes a bare host to a running, supervised bot
// service: OS packages, source clone, env file, virtual environment,
// pinned dependencies, and unit registration, in that order.
package provisioner

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"selenite.systems/groundwork/internal/plan"
)

type Provisioner struct {
	Packages PackageManager
	Source   SourceManager
	Envs     EnvManager
	Services ServiceManager
	Confirm  Confirmer

	config *Config
}

func NewProvisioner(c *Config, pm PackageManager, src SourceManager, em EnvManager, svc ServiceManager, confirm Confirmer) (*Provisioner, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if pm == nil || src == nil || em == nil || svc == nil || confirm == nil {
		return nil, fmt.Errorf("provisioner needs all five collaborators")
	}
	return &Provisioner{
		Packages: pm,
		Source:   src,
		Envs:     em,
		Services: svc,
		Confirm:  confirm,
		config:   c,
	}, nil
}

func (p *Provisioner) Config() *Config {
	return p.config
}

// SavePlan writes a human-readable record of a plan to the output
// directory.
func (p *Provisioner) SavePlan(pl *plan.Plan, outputfile string) error {
	if err := os.MkdirAll(p.config.OutputDir, 0o755); err != nil {
		return fmt.Errorf("unable to create output dir: %w", err)
	}
	path := filepath.Join(p.config.OutputDir, outputfile)
	planOutput := struct {
		Timestamp time.Time `toml:"timestamp"`
		Plan      []string  `toml:"plan"`
	}{
		Timestamp: time.Now(),
		Plan:      pl.PrettyLines(),
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	err = toml.NewEncoder(file).Encode(planOutput)
	if err != nil {
		return fmt.Errorf("failed to encode plan to TOML: %w", err)
	}
	return nil
}
