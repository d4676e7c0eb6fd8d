package helpers

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/andrescamacho/colony-go/internal/application/assignment/types"
	"github.com/andrescamacho/colony-go/internal/application/common"
)

// MockMediator is a test double for the Mediator interface.
// By default it answers CompleteDueAssignmentsCommand with an empty result
// and records the colony it was sent for.
type MockMediator struct {
	mu       sync.Mutex
	sendFunc func(ctx context.Context, request common.Request) (common.Response, error)
	callLog  []string
}

// NewMockMediator creates a new MockMediator
func NewMockMediator() *MockMediator {
	return &MockMediator{
		callLog: []string{},
	}
}

// Send implements the Mediator interface
func (m *MockMediator) Send(ctx context.Context, request common.Request) (common.Response, error) {
	m.mu.Lock()
	if req, ok := request.(*types.CompleteDueAssignmentsCommand); ok {
		m.callLog = append(m.callLog, fmt.Sprintf("CompleteDue:%s", req.ColonyID))
	}
	fn := m.sendFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, request)
	}

	switch req := request.(type) {
	case *types.CompleteDueAssignmentsCommand:
		return &types.CompleteDueAssignmentsResponse{ColonyID: req.ColonyID}, nil
	default:
		return nil, fmt.Errorf("unsupported request type: %T", request)
	}
}

// SetSendFunc sets a custom function for Send calls
func (m *MockMediator) SetSendFunc(fn func(ctx context.Context, request common.Request) (common.Response, error)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sendFunc = fn
}

// GetCallLog returns the list of commands that were called
func (m *MockMediator) GetCallLog() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.callLog...)
}

// Register implements the Mediator interface (no-op for tests)
func (m *MockMediator) Register(requestType reflect.Type, handler common.RequestHandler) error {
	return nil
}

// RegisterMiddleware implements the Mediator interface (no-op for tests)
func (m *MockMediator) RegisterMiddleware(middleware common.Middleware) {}

var _ common.Mediator = (*MockMediator)(nil)
