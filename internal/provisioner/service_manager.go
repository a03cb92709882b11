package provisioner

import (
	"context"

	"selenite.systems/groundwork/internal/services"
)

type ServiceManager interface {
	InstallUnit(context.Context, string) error
	Apply(context.Context, string, services.ServiceAction, int) error
	Get(context.Context, string) (*services.Service, error)
	WaitUntilState(context.Context, string, string, int) error
}
