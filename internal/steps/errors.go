package steps

import "errors"

// Failure kinds. Every step failure is fatal to the run and is wrapped
// in exactly one of these so callers can classify with errors.Is.
var (
	ErrDependencyInstall   = errors.New("dependency install failed")
	ErrSourceFetch         = errors.New("source fetch failed")
	ErrPath                = errors.New("install path missing")
	ErrEnvironmentCreation = errors.New("environment creation failed")
	ErrServiceRegistration = errors.New("service registration failed")
)

// FailureKind maps a step to the taxonomy error its failure is
// reported under. Steps with no mapped kind (the env write and the
// operator pause) surface their underlying error untagged.
func (k Kind) FailureKind() error {
	switch k {
	case KindInstallPackages, KindInstallDeps:
		return ErrDependencyInstall
	case KindCloneRepo:
		return ErrSourceFetch
	case KindEnterDir:
		return ErrPath
	case KindCreateEnv:
		return ErrEnvironmentCreation
	case KindInstallUnit, KindReloadUnits, KindEnableService, KindStartService:
		return ErrServiceRegistration
	default:
		return nil
	}
}
