package provisioner

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"selenite.systems/groundwork/internal/envfile"
	"selenite.systems/groundwork/internal/plan"
	"selenite.systems/groundwork/internal/steps"
)

// Plan lays out the provisioning chain. The chain is fixed; planning
// exists so the operator can inspect it (and its env-file diff) before
// mutating the host.
func (p *Provisioner) Plan(ctx context.Context) (*plan.Plan, error) {
	pl := plan.NewPlan()
	c := p.config

	log.Debug("planning provisioning chain", "repo", c.RepoURL, "installdir", c.InstallDir)
	chain := []steps.Step{
		{Todo: steps.KindInstallPackages, Target: strings.Join(c.Packages, " ")},
		{Todo: steps.KindCloneRepo, Target: c.RepoURL},
		{Todo: steps.KindEnterDir, Target: c.InstallDir},
		{
			Todo:        steps.KindWriteEnv,
			Target:      c.EnvFilePath(),
			DiffContent: envfile.Diff(c.EnvFilePath(), c.BotToken, c.DatabasePath),
		},
		{Todo: steps.KindAwaitToken, Target: c.EnvFilePath()},
		{Todo: steps.KindCreateEnv, Target: c.VenvPath()},
		{Todo: steps.KindInstallDeps, Target: c.RequirementsPath()},
		{Todo: steps.KindInstallUnit, Target: c.UnitPath()},
		{Todo: steps.KindReloadUnits, Target: ""},
		{Todo: steps.KindEnableService, Target: c.ServiceName},
		{Todo: steps.KindStartService, Target: c.ServiceName},
	}
	if err := pl.Append(chain); err != nil {
		return nil, fmt.Errorf("error building plan: %w", err)
	}
	if err := pl.Validate(); err != nil {
		return nil, fmt.Errorf("generated invalid plan: %w", err)
	}
	return pl, nil
}
