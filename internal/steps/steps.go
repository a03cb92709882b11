// Package steps defines the typed provisioning steps that make up a
// plan, and the error taxonomy their failures are reported under.
package steps

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sergi/go-diff/diffmatchpatch"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindInstallPackages
	KindCloneRepo
	KindEnterDir
	KindWriteEnv
	KindAwaitToken
	KindCreateEnv
	KindInstallDeps
	KindInstallUnit
	KindReloadUnits
	KindEnableService
	KindStartService
)

func (k Kind) String() string {
	switch k {
	case KindInstallPackages:
		return "install-packages"
	case KindCloneRepo:
		return "clone-repo"
	case KindEnterDir:
		return "enter-dir"
	case KindWriteEnv:
		return "write-env"
	case KindAwaitToken:
		return "await-token"
	case KindCreateEnv:
		return "create-venv"
	case KindInstallDeps:
		return "install-deps"
	case KindInstallUnit:
		return "install-unit"
	case KindReloadUnits:
		return "reload-units"
	case KindEnableService:
		return "enable-service"
	case KindStartService:
		return "start-service"
	default:
		return "unknown"
	}
}

// Stage returns which of the eight provisioning stages a step belongs
// to. The service registration stage expands to four steps, everything
// else is one step per stage.
func (k Kind) Stage() int {
	switch k {
	case KindInstallPackages:
		return 1
	case KindCloneRepo:
		return 2
	case KindEnterDir:
		return 3
	case KindWriteEnv:
		return 4
	case KindAwaitToken:
		return 5
	case KindCreateEnv:
		return 6
	case KindInstallDeps:
		return 7
	case KindInstallUnit, KindReloadUnits, KindEnableService, KindStartService:
		return 8
	default:
		return 0
	}
}

func (k Kind) IsServiceStep() bool {
	return k == KindInstallUnit || k == KindReloadUnits || k == KindEnableService || k == KindStartService
}

type Step struct {
	Todo        Kind                  `json:"todo" toml:"todo"`
	Target      string                `json:"target" toml:"target"`
	DiffContent []diffmatchpatch.Diff `json:"-" toml:"-"`
}

func (s Step) Validate() error {
	if s.Todo == KindUnknown {
		return errors.New("unknown step")
	}
	if s.Todo.Stage() == 0 {
		return fmt.Errorf("step %v belongs to no stage", s.Todo)
	}
	return nil
}

func (s Step) String() string {
	return fmt.Sprintf("{s%v %v %v}", s.Todo.Stage(), s.Todo, s.Target)
}

func (s Step) Pretty() string {
	return fmt.Sprintf("(stage %v) %v %v", s.Todo.Stage(), s.Todo, s.Target)
}

func (s Step) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Stage  int    `json:"stage"`
		Todo   string `json:"todo"`
		Target string `json:"target"`
	}{
		Stage:  s.Todo.Stage(),
		Todo:   s.Todo.String(),
		Target: s.Target,
	})
}
