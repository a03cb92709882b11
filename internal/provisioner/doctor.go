package provisioner

import (
	"context"
	"errors"
	"fmt"

	"selenite.systems/groundwork/internal/dbcheck"
	"selenite.systems/groundwork/internal/envfile"
	"selenite.systems/groundwork/internal/services"
)

// Status reports the unit's state as systemd sees it.
func (p *Provisioner) Status(ctx context.Context) (*services.Service, error) {
	return p.Services.Get(ctx, p.config.ServiceName)
}

// Doctor runs post-provision health probes and returns findings. The
// provisioning run itself never performs these checks: its success is
// exit codes only.
func (p *Provisioner) Doctor(ctx context.Context) []string {
	var findings []string
	c := p.config

	serv, err := p.Status(ctx)
	switch {
	case errors.Is(err, services.ErrServiceNotFound):
		findings = append(findings, fmt.Sprintf("service %v is not registered", c.ServiceName))
	case err != nil:
		findings = append(findings, fmt.Sprintf("cannot query service %v: %v", c.ServiceName, err))
	case !serv.Started():
		findings = append(findings, fmt.Sprintf("service %v is %v, not active", serv.Name, serv.State))
	}

	vars, err := envfile.Read(c.EnvFilePath())
	if err != nil {
		findings = append(findings, fmt.Sprintf("env file unreadable: %v", err))
	} else if vars[envfile.KeyBotToken] == envfile.PlaceholderToken {
		findings = append(findings, "bot token is still the placeholder")
	}

	if err := dbcheck.Check(ctx, c.DatabasePath); err != nil {
		if errors.Is(err, dbcheck.ErrDatabaseMissing) {
			// the bot creates its database on first run, so absence
			// right after provisioning is informational
			findings = append(findings, fmt.Sprintf("database not created yet at %v", c.DatabasePath))
		} else {
			findings = append(findings, fmt.Sprintf("database check failed: %v", err))
		}
	}

	return findings
}
