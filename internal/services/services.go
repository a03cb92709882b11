// Package services drives systemd over its dbus API and installs unit
// files into the system service directory.
package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coreos/go-systemd/v22/dbus"
	"gopkg.in/ini.v1"
)

var (
	ErrServiceNotFound = errors.New("no service found")
	ErrMalformedUnit   = errors.New("malformed unit file")
)

type ServiceManager struct {
	Conn       *dbus.Conn
	ServiceDir string
	isRoot     bool
}

type Service struct {
	Name    string
	State   string // active, reloading, inactive, failed, activating, deactivating
	Type    string
	Enabled bool
}

func (s Service) Started() bool {
	return s.State == "active"
}

func (s *Service) fillFromProperties(props map[string]interface{}) error {
	jobState := props["ActiveState"].(string)
	fileState := props["UnitFileState"].(string)
	jobType, ok := props["Type"].(string)
	if !ok {
		jobType = "non-existant"
	}
	s.State = jobState
	s.Type = jobType
	s.Enabled = (fileState == "enabled" || fileState == "static")
	return nil
}

type ServiceAction int

const (
	ServiceStart ServiceAction = iota
	ServiceStop
	ServiceRestart
	ServiceReloadUnits
	ServiceEnable
	ServiceDisable
	ServiceReloadService
)

func (a ServiceAction) String() string {
	switch a {
	case ServiceStart:
		return "Start"
	case ServiceStop:
		return "Stop"
	case ServiceRestart:
		return "Restart"
	case ServiceReloadUnits:
		return "ReloadUnits"
	case ServiceEnable:
		return "Enable"
	case ServiceDisable:
		return "Disable"
	case ServiceReloadService:
		return "ReloadService"
	default:
		return "Unknown"
	}
}

type ServicesConfig struct {
	Timeout    int
	ServiceDir string
}

func NewServices(ctx context.Context, cfg *ServicesConfig) (*ServiceManager, error) {
	var sm ServiceManager
	var err error
	currentUser, err := user.Current()
	if err != nil {
		return nil, err
	}
	sm.ServiceDir = cfg.ServiceDir

	if currentUser.Username != "root" {
		sm.Conn, err = dbus.NewUserConnectionContext(ctx)
		if err != nil {
			return nil, err
		}
	} else {
		sm.isRoot = true
		sm.Conn, err = dbus.NewSystemConnectionContext(ctx)
		if err != nil {
			return nil, err
		}
	}
	return &sm, nil
}

// ValidateUnit checks that a unit file parses as systemd ini and
// declares something runnable. Catching this before the copy keeps a
// broken unit out of the service directory.
func ValidateUnit(path string) error {
	f, err := ini.Load(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedUnit, err)
	}
	sec, err := f.GetSection("Service")
	if err != nil {
		return fmt.Errorf("%w: no Service section in %v", ErrMalformedUnit, path)
	}
	if !sec.HasKey("ExecStart") {
		return fmt.Errorf("%w: no ExecStart in %v", ErrMalformedUnit, path)
	}
	return nil
}

// InstallUnit copies a unit file verbatim into the service directory
// after validating it. The unit's format is otherwise owned by systemd.
func (s *ServiceManager) InstallUnit(ctx context.Context, src string) error {
	if err := ValidateUnit(src); err != nil {
		return err
	}
	raw, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("cannot read unit %v: %w", src, err)
	}
	dest := filepath.Join(s.ServiceDir, filepath.Base(src))
	if err := os.WriteFile(dest, raw, 0o644); err != nil {
		return fmt.Errorf("cannot install unit %v: %w", dest, err)
	}
	log.Debug("installed unit", "src", src, "dest", dest)
	return nil
}

func (s *ServiceManager) Apply(ctx context.Context, name string, action ServiceAction, timeout int) error {
	if action == ServiceReloadUnits {
		return s.Conn.ReloadContext(ctx)
	}
	callback := make(chan string)
	var err error
	switch action {
	case ServiceRestart:
		_, err = s.Conn.RestartUnitContext(ctx, name, "fail", callback)
	case ServiceEnable:
		_, _, err = s.Conn.EnableUnitFilesContext(ctx, []string{name}, false, false)
		if err != nil {
			return fmt.Errorf("cannot enable unit %v: %w", name, err)
		}
		return nil
	case ServiceDisable:
		_, err = s.Conn.DisableUnitFilesContext(ctx, []string{name}, false)
		if err != nil {
			return fmt.Errorf("cannot disable unit %v: %w", name, err)
		}
		return nil
	case ServiceReloadService:
		_, err = s.Conn.ReloadUnitContext(ctx, name, "fail", callback)
	case ServiceStart:
		_, err = s.Conn.StartUnitContext(ctx, name, "fail", callback)
	case ServiceStop:
		_, err = s.Conn.StopUnitContext(ctx, name, "fail", callback)
	default:
		panic(fmt.Sprintf("unexpected services.ServiceAction: %#v", action))
	}
	if err != nil {
		return fmt.Errorf("error applying service change: %w", err)
	}
	select {
	case <-ctx.Done():
		return errors.New("context cancelled while waiting for service")
	case <-callback:
		return nil
	case <-time.After(time.Duration(timeout) * time.Second):
		return fmt.Errorf("error applying service change for %v: %w", name, errors.New("timeout modifying unit"))
	}
}

func (s *ServiceManager) Get(ctx context.Context, name string) (*Service, error) {
	if name == "" {
		return nil, errors.New("empty service name")
	}
	us, err := s.Conn.ListUnitsByNamesContext(ctx, []string{name})
	if err != nil {
		return nil, fmt.Errorf("couldn't list units: %w", err)
	}
	if len(us) == 0 {
		return nil, ErrServiceNotFound
	}
	props, err := s.Conn.GetAllPropertiesContext(ctx, name)
	if err != nil {
		return nil, err
	}
	result := &Service{Name: name}
	err = result.fillFromProperties(props)
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (s *ServiceManager) WaitUntilState(ctx context.Context, name string, state string, timeout int) error {
	us, err := s.Conn.ListUnitsByNamesContext(ctx, []string{name})
	if err != nil {
		return err
	}
	if len(us) == 0 {
		return ErrServiceNotFound
	}
	props, err := s.Conn.GetAllPropertiesContext(ctx, name)
	if err != nil {
		return err
	}

	activeState := props["ActiveState"]
	if activeState == state {
		return nil
	}
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()
	timeoutTimer := time.NewTimer(time.Duration(timeout) * time.Second)
	defer timeoutTimer.Stop()
	log.Debug("waiting for service to update", "service", name, "state", state, "timeout", timeout)
	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("context canceled while waiting for service %v to reach state %v", name, state)
		case <-timeoutTimer.C:
			return fmt.Errorf("service %v did not reach state %v", name, state)
		case <-ticker.C:
			props, err := s.Conn.GetAllPropertiesContext(ctx, name)
			if err != nil {
				return err
			}

			activeState := props["ActiveState"]
			if activeState == state {
				return nil
			}
			if activeState == "failed" {
				return fmt.Errorf("service %v in failed state", name)
			}
		}
	}
}

func (s *ServiceManager) Close() {
	s.Conn.Close()
}
