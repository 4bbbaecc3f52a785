package testing

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/imamik/discourse-setup/internal/config/wizard"
)

// bytesPerMB matches the unit host.Snapshot converts from.
const bytesPerMB = 1 << 20

// MockHost is a mock implementation of the host.Host interface.
type MockHost struct {
	mock.Mock
}

// NewMockHost creates a MockHost with no expectations.
func NewMockHost() *MockHost {
	return &MockHost{}
}

// WithResources stubs the capacity queries. Sizes are in MiB.
func (m *MockHost) WithResources(memoryMB, swapMB, freeDiskMB uint64, cores int) *MockHost {
	m.On("TotalMemory", mock.Anything).Return(memoryMB*bytesPerMB, nil).Maybe()
	m.On("TotalSwap", mock.Anything).Return(swapMB*bytesPerMB, nil).Maybe()
	m.On("FreeDisk", mock.Anything, mock.Anything).Return(freeDiskMB*bytesPerMB, nil).Maybe()
	m.On("PhysicalCores", mock.Anything).Return(cores, nil).Maybe()
	return m
}

// WithBoundPorts stubs IsPortBound: the listed ports are bound, all others free.
func (m *MockHost) WithBoundPorts(ports ...int) *MockHost {
	bound := make(map[int]bool, len(ports))
	for _, p := range ports {
		bound[p] = true
	}
	m.On("IsPortBound", mock.Anything, mock.AnythingOfType("int")).
		Return(func(_ context.Context, port int) bool { return bound[port] }, nil).
		Maybe()
	return m
}

// TotalMemory returns the mocked memory size in bytes.
func (m *MockHost) TotalMemory(ctx context.Context) (uint64, error) {
	args := m.Called(ctx)
	return args.Get(0).(uint64), args.Error(1)
}

// TotalSwap returns the mocked swap size in bytes.
func (m *MockHost) TotalSwap(ctx context.Context) (uint64, error) {
	args := m.Called(ctx)
	return args.Get(0).(uint64), args.Error(1)
}

// FreeDisk returns the mocked free space in bytes.
func (m *MockHost) FreeDisk(ctx context.Context, path string) (uint64, error) {
	args := m.Called(ctx, path)
	return args.Get(0).(uint64), args.Error(1)
}

// PhysicalCores returns the mocked core count.
func (m *MockHost) PhysicalCores(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// IsPortBound returns the mocked port state.
func (m *MockHost) IsPortBound(ctx context.Context, port int) (bool, error) {
	args := m.Called(ctx, port)
	if fn, ok := args.Get(0).(func(context.Context, int) bool); ok {
		return fn(ctx, port), args.Error(1)
	}
	return args.Bool(0), args.Error(1)
}

// ScriptedPrompter answers wizard questions from a fixed list, in order.
// Once the script is exhausted it returns Err, or ErrAborted when Err is nil.
type ScriptedPrompter struct {
	Answers []string
	Err     error

	// Asked records every question shown.
	Asked []wizard.Question
}

// NewScriptedPrompter creates a prompter that returns answers in order.
func NewScriptedPrompter(answers ...string) *ScriptedPrompter {
	return &ScriptedPrompter{Answers: answers}
}

// Input returns the next scripted answer.
func (p *ScriptedPrompter) Input(ctx context.Context, q wizard.Question) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", wizard.ErrAborted
	}
	p.Asked = append(p.Asked, q)
	if len(p.Answers) == 0 {
		if p.Err != nil {
			return "", p.Err
		}
		return "", wizard.ErrAborted
	}
	answer := p.Answers[0]
	p.Answers = p.Answers[1:]
	return answer, nil
}
