// Package apt installs OS packages through apt-get. Tool output passes
// straight through to the console so failures show the package
// manager's own error text.
package apt

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/charmbracelet/log"
)

type Apt struct{}

func NewApt() *Apt {
	return &Apt{}
}

func (a *Apt) run(ctx context.Context, args ...string) error {
	cmd := exec.CommandContext(ctx, "apt-get", args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(), "DEBIAN_FRONTEND=noninteractive")
	log.Debug("running package manager", "args", args)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("apt-get %v: %w", args[0], err)
	}
	return nil
}

func (a *Apt) Update(ctx context.Context) error {
	return a.run(ctx, "update")
}

func (a *Apt) Install(ctx context.Context, packages []string) error {
	if len(packages) == 0 {
		return nil
	}
	args := append([]string{"install", "-y"}, packages...)
	return a.run(ctx, args...)
}
