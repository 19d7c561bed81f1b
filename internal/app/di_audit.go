package app

import (
	"fmt"

	auditHTTP "github.com/lifekey/lifekey/internal/audit/http"
	auditRepository "github.com/lifekey/lifekey/internal/audit/repository"
	auditUseCase "github.com/lifekey/lifekey/internal/audit/usecase"
)

// AuditEventRepository returns the audit event repository based on the
// database driver.
func (c *Container) AuditEventRepository() (auditUseCase.AuditEventRepository, error) {
	c.auditEventRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["auditEventRepo"] = fmt.Errorf("failed to get database for audit event repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "postgres":
			c.auditEventRepo = auditRepository.NewPostgreSQLAuditEventRepository(db)
		case "mysql":
			c.auditEventRepo = auditRepository.NewMySQLAuditEventRepository(db)
		default:
			c.initErrors["auditEventRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["auditEventRepo"]; exists {
		return nil, storedErr
	}
	return c.auditEventRepo, nil
}

// AuditUseCase returns the audit use case.
func (c *Container) AuditUseCase() (auditUseCase.AuditUseCase, error) {
	c.auditUCInit.Do(func() {
		auditEventRepo, err := c.AuditEventRepository()
		if err != nil {
			c.initErrors["auditUC"] = fmt.Errorf("failed to get audit event repository for audit use case: %w", err)
			return
		}

		c.auditUC = auditUseCase.NewAuditUseCase(auditEventRepo)
	})
	if storedErr, exists := c.initErrors["auditUC"]; exists {
		return nil, storedErr
	}
	return c.auditUC, nil
}

// AuditEventHandler returns the HTTP handler for audit event listing.
func (c *Container) AuditEventHandler() (*auditHTTP.AuditEventHandler, error) {
	c.auditHandlerInit.Do(func() {
		auditUC, err := c.AuditUseCase()
		if err != nil {
			c.initErrors["auditHandler"] = fmt.Errorf("failed to get audit use case for audit event handler: %w", err)
			return
		}

		c.auditHandler = auditHTTP.NewAuditEventHandler(auditUC, c.Logger())
	})
	if storedErr, exists := c.initErrors["auditHandler"]; exists {
		return nil, storedErr
	}
	return c.auditHandler, nil
}
