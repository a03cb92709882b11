package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"selenite.systems/groundwork/internal/apt"
	"selenite.systems/groundwork/internal/console"
	"selenite.systems/groundwork/internal/provisioner"
	"selenite.systems/groundwork/internal/pyenv"
	"selenite.systems/groundwork/internal/services"
	gitsource "selenite.systems/groundwork/internal/source/git"
)

func setupLogger(c *provisioner.Config) {
	if c.Debug {
		log.Default().SetLevel(log.DebugLevel)
		log.Default().SetReportCaller(true)
	}
}

func setup(ctx context.Context, configFile string, cliflags map[string]any) (*provisioner.Provisioner, error) {
	k, err := LoadConfigs(ctx, configFile, cliflags)
	if err != nil {
		return nil, fmt.Errorf("error generating config blob: %w", err)
	}
	c, err := provisioner.NewConfig(k)
	if err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}
	err = c.Validate()
	if err != nil {
		return nil, fmt.Errorf("error validating config: %w", err)
	}
	setupLogger(c)

	source, err := gitsource.NewGitSource(c.InstallDir, c.RepoURL, c.GitConfig)
	if err != nil {
		return nil, fmt.Errorf("invalid git source: %w", err)
	}
	svc, err := services.NewServices(ctx, &services.ServicesConfig{
		Timeout:    c.Timeout,
		ServiceDir: c.ServiceDir,
	})
	if err != nil {
		return nil, fmt.Errorf("error connecting to service manager: %w", err)
	}
	var confirm provisioner.Confirmer
	if c.AutoConfirm {
		confirm = console.AutoResume{}
	} else {
		confirm = console.NewConsole()
	}

	p, err := provisioner.NewProvisioner(c, apt.NewApt(), source, pyenv.NewPyEnv(c.Python), svc, confirm)
	if err != nil {
		log.Fatal(err)
	}
	return p, nil
}

func LoadConfigs(_ context.Context, configFile string, cliflags map[string]any) (*koanf.Koanf, error) {
	k := koanf.New(".")
	fileConf := koanf.New(".")
	envConf := koanf.New(".")
	cliConf := koanf.New(".")
	if configFile != "" {
		err := fileConf.Load(file.Provider(configFile), toml.Parser())
		if err != nil {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}
	err := envConf.Load(env.Provider("GROUNDWORK", ".", func(s string) string {
		return strings.Replace(strings.ToLower(
			strings.TrimPrefix(s, "GROUNDWORK_")), "__", ".", 1)
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("error loading config from env: %w", err)
	}
	err = cliConf.Load(confmap.Provider(cliflags, "."), nil)
	if err != nil {
		return nil, err
	}
	err = k.Merge(fileConf)
	if err != nil {
		return nil, fmt.Errorf("error building config: %w", err)
	}
	err = k.Merge(envConf)
	if err != nil {
		return nil, fmt.Errorf("error building config: %w", err)
	}
	err = k.Merge(cliConf)
	if err != nil {
		return nil, fmt.Errorf("error building config: %w", err)
	}

	return k, err
}
