// Package mocks provides mock implementations for testing audit use cases.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	auditDomain "github.com/lifekey/lifekey/internal/audit/domain"
)

// MockAuditEventRepository is a mock implementation of AuditEventRepository for testing.
type MockAuditEventRepository struct {
	mock.Mock
}

// Create mocks the Create method of AuditEventRepository.
func (m *MockAuditEventRepository) Create(ctx context.Context, event *auditDomain.AuditEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// List mocks the List method of AuditEventRepository.
func (m *MockAuditEventRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*auditDomain.AuditEvent, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*auditDomain.AuditEvent), args.Error(1)
}
