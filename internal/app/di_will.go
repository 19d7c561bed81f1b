package app

import (
	"fmt"

	willHTTP "github.com/lifekey/lifekey/internal/will/http"
	willRepository "github.com/lifekey/lifekey/internal/will/repository"
	willUseCase "github.com/lifekey/lifekey/internal/will/usecase"
)

// RecipientRepository returns the recipient repository based on the database
// driver.
func (c *Container) RecipientRepository() (willUseCase.RecipientRepository, error) {
	c.recipientRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["recipientRepo"] = fmt.Errorf("failed to get database for recipient repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "postgres":
			c.recipientRepo = willRepository.NewPostgreSQLRecipientRepository(db)
		case "mysql":
			c.recipientRepo = willRepository.NewMySQLRecipientRepository(db)
		default:
			c.initErrors["recipientRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["recipientRepo"]; exists {
		return nil, storedErr
	}
	return c.recipientRepo, nil
}

// PolicyRepository returns the will policy repository based on the database
// driver.
func (c *Container) PolicyRepository() (willUseCase.PolicyRepository, error) {
	c.policyRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["policyRepo"] = fmt.Errorf("failed to get database for policy repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "postgres":
			c.policyRepo = willRepository.NewPostgreSQLPolicyRepository(db)
		case "mysql":
			c.policyRepo = willRepository.NewMySQLPolicyRepository(db)
		default:
			c.initErrors["policyRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["policyRepo"]; exists {
		return nil, storedErr
	}
	return c.policyRepo, nil
}

// AssignmentRepository returns the will assignment repository based on the
// database driver.
func (c *Container) AssignmentRepository() (willUseCase.AssignmentRepository, error) {
	c.assignmentRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["assignmentRepo"] = fmt.Errorf("failed to get database for assignment repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "postgres":
			c.assignmentRepo = willRepository.NewPostgreSQLAssignmentRepository(db)
		case "mysql":
			c.assignmentRepo = willRepository.NewMySQLAssignmentRepository(db)
		default:
			c.initErrors["assignmentRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["assignmentRepo"]; exists {
		return nil, storedErr
	}
	return c.assignmentRepo, nil
}

// WillUseCase returns the will use case.
func (c *Container) WillUseCase() (willUseCase.WillUseCase, error) {
	c.willUCInit.Do(func() {
		txManager, err := c.TxManager()
		if err != nil {
			c.initErrors["willUC"] = fmt.Errorf("failed to get tx manager for will use case: %w", err)
			return
		}

		recipientRepo, err := c.RecipientRepository()
		if err != nil {
			c.initErrors["willUC"] = fmt.Errorf("failed to get recipient repository for will use case: %w", err)
			return
		}

		policyRepo, err := c.PolicyRepository()
		if err != nil {
			c.initErrors["willUC"] = fmt.Errorf("failed to get policy repository for will use case: %w", err)
			return
		}

		assignmentRepo, err := c.AssignmentRepository()
		if err != nil {
			c.initErrors["willUC"] = fmt.Errorf("failed to get assignment repository for will use case: %w", err)
			return
		}

		vaultItemRepo, err := c.VaultItemRepository()
		if err != nil {
			c.initErrors["willUC"] = fmt.Errorf("failed to get vault item repository for will use case: %w", err)
			return
		}

		auditUC, err := c.AuditUseCase()
		if err != nil {
			c.initErrors["willUC"] = fmt.Errorf("failed to get audit use case for will use case: %w", err)
			return
		}

		c.willUC = willUseCase.NewWillUseCase(
			txManager,
			recipientRepo,
			policyRepo,
			assignmentRepo,
			vaultItemRepo,
			auditUC,
		)
	})
	if storedErr, exists := c.initErrors["willUC"]; exists {
		return nil, storedErr
	}
	return c.willUC, nil
}

// WillHandler returns the HTTP handler for recipient, policy, and assignment
// operations.
func (c *Container) WillHandler() (*willHTTP.WillHandler, error) {
	c.willHandlerInit.Do(func() {
		willUC, err := c.WillUseCase()
		if err != nil {
			c.initErrors["willHandler"] = fmt.Errorf("failed to get will use case for will handler: %w", err)
			return
		}

		c.willHandler = willHTTP.NewWillHandler(willUC, c.Logger())
	})
	if storedErr, exists := c.initErrors["willHandler"]; exists {
		return nil, storedErr
	}
	return c.willHandler, nil
}
