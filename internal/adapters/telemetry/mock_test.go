package telemetry_test

import (
	"context"
	"sync"
	"time"
)

// recordingRenderer is a simple test double for ports.Renderer.
type recordingRenderer struct {
	mu            sync.Mutex
	planCalls     int
	startCalls    int
	logCalls      int
	completeCalls int
	logs          [][]byte
}

func (m *recordingRenderer) Start(_ context.Context) error { return nil }
func (m *recordingRenderer) Stop() error                   { return nil }
func (m *recordingRenderer) Wait() error                   { return nil }

func (m *recordingRenderer) OnPlanEmit(_ []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.planCalls++
}

func (m *recordingRenderer) OnStageStart(_, _, _ string, _ time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startCalls++
}

func (m *recordingRenderer) OnStageLog(_ string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logCalls++
	m.logs = append(m.logs, data)
}

func (m *recordingRenderer) OnStageComplete(_ string, _ time.Time, _ error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.completeCalls++
}

func (m *recordingRenderer) counts() (plan, start, log, complete int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.planCalls, m.startCalls, m.logCalls, m.completeCalls
}

func (m *recordingRenderer) logged() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	var all []byte
	for _, chunk := range m.logs {
		all = append(all, chunk...)
	}
	return all
}
