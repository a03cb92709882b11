package provisioner

import (
	"context"
	"fmt"
	"sync"

	"selenite.systems/groundwork/internal/services"
)

// callLog records collaborator invocations in order so tests can assert
// sequencing across managers.
type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *callLog) add(call string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, call)
}

func (l *callLog) snapshot() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.calls))
	copy(out, l.calls)
	return out
}

func (l *callLog) count(call string) int {
	n := 0
	for _, c := range l.snapshot() {
		if c == call {
			n++
		}
	}
	return n
}

func (l *callLog) index(call string) int {
	for i, c := range l.snapshot() {
		if c == call {
			return i
		}
	}
	return -1
}

type mockPackages struct {
	log        *callLog
	updateErr  error
	installErr error
}

func (m *mockPackages) Update(_ context.Context) error {
	m.log.add("packages.update")
	return m.updateErr
}

func (m *mockPackages) Install(_ context.Context, pkgs []string) error {
	m.log.add("packages.install")
	return m.installErr
}

type mockSource struct {
	log *callLog
	err error
}

func (m *mockSource) Fetch(_ context.Context) error {
	m.log.add("source.fetch")
	return m.err
}

type mockEnvs struct {
	log        *callLog
	createErr  error
	installErr error
}

func (m *mockEnvs) Create(_ context.Context, dir string) error {
	m.log.add("envs.create")
	return m.createErr
}

func (m *mockEnvs) InstallRequirements(_ context.Context, dir, req string) error {
	m.log.add("envs.install")
	return m.installErr
}

type mockServices struct {
	log            *callLog
	installUnitErr error
	applyErr       error
	state          string
}

func (m *mockServices) InstallUnit(_ context.Context, src string) error {
	m.log.add("services.installunit")
	return m.installUnitErr
}

func (m *mockServices) Apply(_ context.Context, name string, action services.ServiceAction, timeout int) error {
	m.log.add(fmt.Sprintf("services.apply:%v:%v", action, name))
	return m.applyErr
}

func (m *mockServices) Get(_ context.Context, name string) (*services.Service, error) {
	m.log.add("services.get")
	if m.state == "" {
		return nil, services.ErrServiceNotFound
	}
	return &services.Service{Name: name, State: m.state, Enabled: true}, nil
}

func (m *mockServices) WaitUntilState(_ context.Context, name, state string, timeout int) error {
	m.log.add(fmt.Sprintf("services.wait:%v:%v", name, state))
	return nil
}

// mockConfirmer resumes immediately unless resume is set, in which case
// AwaitResume blocks until the channel is closed.
type mockConfirmer struct {
	log    *callLog
	resume chan struct{}
	err    error
}

func (m *mockConfirmer) AwaitResume(ctx context.Context) error {
	if m.resume != nil {
		select {
		case <-m.resume:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	m.log.add("confirm.resume")
	return m.err
}
