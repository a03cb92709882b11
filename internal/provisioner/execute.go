package provisioner

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"selenite.systems/groundwork/internal/envfile"
	"selenite.systems/groundwork/internal/plan"
	"selenite.systems/groundwork/internal/services"
	"selenite.systems/groundwork/internal/steps"
)

// Execute runs a plan fail-fast: the first failing step aborts the run,
// nothing after it executes, and nothing already done is rolled back.
// It returns how many steps completed. Success means every command
// exited zero; it does not verify the service is healthy (the post-run
// wait only logs).
func (p *Provisioner) Execute(ctx context.Context, pl *plan.Plan) (int, error) {
	if pl.Empty() {
		return -1, nil
	}
	completed := 0
	started := false
	for _, s := range pl.Steps() {
		if !p.config.Quiet {
			fmt.Printf("%v. %v\n", completed+1, s.Pretty())
		}
		if err := p.executeStep(ctx, s); err != nil {
			if kind := s.Todo.FailureKind(); kind != nil {
				err = fmt.Errorf("%w: %w", kind, err)
			}
			return completed, err
		}
		if s.Todo == steps.KindStartService {
			started = true
		}
		completed++
	}

	if started {
		err := p.Services.WaitUntilState(ctx, p.config.ServiceName, "active", p.config.Timeout)
		if err != nil {
			log.Warn("service did not report active after start", "service", p.config.ServiceName, "err", err)
		}
	}
	return completed, nil
}

func (p *Provisioner) executeStep(ctx context.Context, s steps.Step) error {
	c := p.config
	switch s.Todo {
	case steps.KindInstallPackages:
		if err := p.Packages.Update(ctx); err != nil {
			return err
		}
		return p.Packages.Install(ctx, c.Packages)
	case steps.KindCloneRepo:
		return p.Source.Fetch(ctx)
	case steps.KindEnterDir:
		if _, err := os.Stat(c.InstallDir); err != nil {
			return err
		}
		return os.Chdir(c.InstallDir)
	case steps.KindWriteEnv:
		return envfile.Write(c.EnvFilePath(), c.BotToken, c.DatabasePath)
	case steps.KindAwaitToken:
		return p.Confirm.AwaitResume(ctx)
	case steps.KindCreateEnv:
		return p.Envs.Create(ctx, c.VenvPath())
	case steps.KindInstallDeps:
		return p.Envs.InstallRequirements(ctx, c.VenvPath(), c.RequirementsPath())
	case steps.KindInstallUnit:
		return p.Services.InstallUnit(ctx, c.UnitPath())
	case steps.KindReloadUnits:
		return p.Services.Apply(ctx, "", services.ServiceReloadUnits, c.Timeout)
	case steps.KindEnableService:
		return p.Services.Apply(ctx, c.ServiceName, services.ServiceEnable, c.Timeout)
	case steps.KindStartService:
		return p.Services.Apply(ctx, c.ServiceName, services.ServiceStart, c.Timeout)
	default:
		panic(fmt.Sprintf("unexpected steps.Kind: %#v", s.Todo))
	}
}
