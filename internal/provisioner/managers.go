package provisioner

import "context"

// The target machine's mutable state is reached only through these
// interfaces, so tests can substitute every collaborator.

type PackageManager interface {
	Update(context.Context) error
	Install(context.Context, []string) error
}

type SourceManager interface {
	Fetch(context.Context) error
}

type EnvManager interface {
	Create(context.Context, string) error
	InstallRequirements(context.Context, string, string) error
}

// Confirmer is the single suspension point in the workflow: AwaitResume
// blocks until the operator signals the env file has been edited.
type Confirmer interface {
	AwaitResume(context.Context) error
}
