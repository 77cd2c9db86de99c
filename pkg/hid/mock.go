package hid

import (
	"errors"
	"sync"
	"time"
)

// MockDevice is an in-memory Device for tests. Output reports and feature
// sets are recorded in call order; input reports and feature responses are
// served from queues primed by the test.
type MockDevice struct {
	mu sync.Mutex

	writes           [][]byte
	featureSets      [][]byte
	inputs           [][]byte
	featureResponses map[byte][]byte

	// FailWriteAt makes the n-th WriteReport call (1-based) fail. Zero
	// disables the fault.
	FailWriteAt int
	writeCalls  int

	closed bool
}

func NewMockDevice() *MockDevice {
	return &MockDevice{featureResponses: make(map[byte][]byte)}
}

var (
	errMockClosed = errors.New("hid: mock device closed")

	// ErrMockWrite is returned by WriteReport when FailWriteAt triggers.
	ErrMockWrite = errors.New("hid: mock write failure")
)

func (m *MockDevice) WriteReport(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return errMockClosed
	}
	m.writeCalls++
	if m.FailWriteAt > 0 && m.writeCalls == m.FailWriteAt {
		return ErrMockWrite
	}
	m.writes = append(m.writes, append([]byte(nil), data...))
	return nil
}

func (m *MockDevice) ReadReport(length int, _ time.Duration) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, errMockClosed
	}
	buf := make([]byte, length)
	if len(m.inputs) > 0 {
		copy(buf, m.inputs[0])
		m.inputs = m.inputs[1:]
	}
	return buf, nil
}

func (m *MockDevice) GetFeature(reportID byte, length int) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, errMockClosed
	}
	buf := make([]byte, length)
	buf[0] = reportID
	copy(buf, m.featureResponses[reportID])
	return buf, nil
}

func (m *MockDevice) SendFeature(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return errMockClosed
	}
	m.featureSets = append(m.featureSets, append([]byte(nil), data...))
	return nil
}

func (m *MockDevice) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// QueueInput primes one input report, returned by the next ReadReport.
func (m *MockDevice) QueueInput(data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inputs = append(m.inputs, append([]byte(nil), data...))
}

// SetFeatureResponse primes the response for GetFeature calls with the given
// report id. The data is the full report, starting at the report id byte.
func (m *MockDevice) SetFeatureResponse(reportID byte, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.featureResponses[reportID] = append([]byte(nil), data...)
}

// Writes returns all recorded output reports in write order.
func (m *MockDevice) Writes() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][]byte(nil), m.writes...)
}

// FeatureSets returns all recorded SendFeature payloads in call order.
func (m *MockDevice) FeatureSets() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][]byte(nil), m.featureSets...)
}
