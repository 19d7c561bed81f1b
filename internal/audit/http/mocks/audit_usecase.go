// Package mocks provides mock implementations for testing HTTP handlers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	auditDomain "github.com/lifekey/lifekey/internal/audit/domain"
)

// MockAuditUseCase is a mock implementation of AuditUseCase for testing.
type MockAuditUseCase struct {
	mock.Mock
}

// Record mocks the Record method of AuditUseCase.
func (m *MockAuditUseCase) Record(
	ctx context.Context,
	actor, action, targetType, targetID string,
	metadata map[string]any,
) error {
	args := m.Called(ctx, actor, action, targetType, targetID, metadata)
	return args.Error(0)
}

// List mocks the List method of AuditUseCase.
func (m *MockAuditUseCase) List(
	ctx context.Context,
	offset, limit int,
) ([]*auditDomain.AuditEvent, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*auditDomain.AuditEvent), args.Error(1)
}
