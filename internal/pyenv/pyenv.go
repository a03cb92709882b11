// Package pyenv manages the bot's isolated Python environment: venv
// creation and pinned dependency installation.
package pyenv

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/charmbracelet/log"
)

var ErrIncompatibleEnv = errors.New("existing directory is not a virtual environment")

type PyEnv struct {
	// Python is the interpreter used to create environments.
	Python string
}

func NewPyEnv(python string) *PyEnv {
	if python == "" {
		python = "python3"
	}
	return &PyEnv{Python: python}
}

// Create builds a venv at dir. An existing venv is left alone; an
// existing directory that is not a venv fails rather than being
// clobbered.
func (p *PyEnv) Create(ctx context.Context, dir string) error {
	if info, err := os.Stat(dir); err == nil {
		if !info.IsDir() {
			return fmt.Errorf("%w: %v", ErrIncompatibleEnv, dir)
		}
		if _, err := os.Stat(filepath.Join(dir, "bin", "python")); err != nil {
			return fmt.Errorf("%w: %v", ErrIncompatibleEnv, dir)
		}
		log.Debug("virtual environment already present", "dir", dir)
		return nil
	}
	cmd := exec.CommandContext(ctx, p.Python, "-m", "venv", dir)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	log.Debug("creating virtual environment", "dir", dir)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%v -m venv: %w", p.Python, err)
	}
	return nil
}

// InstallRequirements runs the venv's own pip against a requirements
// file so installs land inside the environment.
func (p *PyEnv) InstallRequirements(ctx context.Context, dir, requirements string) error {
	pip := filepath.Join(dir, "bin", "pip")
	if _, err := os.Stat(pip); err != nil {
		return fmt.Errorf("no pip in environment %v: %w", dir, err)
	}
	cmd := exec.CommandContext(ctx, pip, "install", "-r", requirements)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	log.Debug("installing requirements", "file", requirements)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("pip install: %w", err)
	}
	return nil
}
