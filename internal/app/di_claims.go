package app

import (
	"fmt"

	claimHTTP "github.com/lifekey/lifekey/internal/claims/http"
	claimRepository "github.com/lifekey/lifekey/internal/claims/repository"
	claimUseCase "github.com/lifekey/lifekey/internal/claims/usecase"
)

// ClaimRepository returns the claim repository based on the database driver.
func (c *Container) ClaimRepository() (claimUseCase.ClaimRepository, error) {
	c.claimRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["claimRepo"] = fmt.Errorf("failed to get database for claim repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "postgres":
			c.claimRepo = claimRepository.NewPostgreSQLClaimRepository(db)
		case "mysql":
			c.claimRepo = claimRepository.NewMySQLClaimRepository(db)
		default:
			c.initErrors["claimRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["claimRepo"]; exists {
		return nil, storedErr
	}
	return c.claimRepo, nil
}

// ClaimUseCase returns the claim use case, wrapped with metrics when enabled.
func (c *Container) ClaimUseCase() (claimUseCase.ClaimUseCase, error) {
	c.claimUCInit.Do(func() {
		txManager, err := c.TxManager()
		if err != nil {
			c.initErrors["claimUC"] = fmt.Errorf("failed to get tx manager for claim use case: %w", err)
			return
		}

		claimRepo, err := c.ClaimRepository()
		if err != nil {
			c.initErrors["claimUC"] = fmt.Errorf("failed to get claim repository for claim use case: %w", err)
			return
		}

		recipientRepo, err := c.RecipientRepository()
		if err != nil {
			c.initErrors["claimUC"] = fmt.Errorf("failed to get recipient repository for claim use case: %w", err)
			return
		}

		policyRepo, err := c.PolicyRepository()
		if err != nil {
			c.initErrors["claimUC"] = fmt.Errorf("failed to get policy repository for claim use case: %w", err)
			return
		}

		documentStore, err := c.DocumentStore()
		if err != nil {
			c.initErrors["claimUC"] = fmt.Errorf("failed to get document store for claim use case: %w", err)
			return
		}

		auditUC, err := c.AuditUseCase()
		if err != nil {
			c.initErrors["claimUC"] = fmt.Errorf("failed to get audit use case for claim use case: %w", err)
			return
		}

		baseUseCase := claimUseCase.NewClaimUseCase(
			txManager,
			claimRepo,
			recipientRepo,
			policyRepo,
			documentStore,
			auditUC,
		)

		if c.config.MetricsEnabled {
			businessMetrics, err := c.BusinessMetrics()
			if err != nil {
				c.initErrors["claimUC"] = fmt.Errorf("failed to get business metrics for claim use case: %w", err)
				return
			}
			c.claimUC = claimUseCase.NewClaimUseCaseWithMetrics(baseUseCase, businessMetrics)
			return
		}

		c.claimUC = baseUseCase
	})
	if storedErr, exists := c.initErrors["claimUC"]; exists {
		return nil, storedErr
	}
	return c.claimUC, nil
}

// ClaimHandler returns the HTTP handler for claim operations.
func (c *Container) ClaimHandler() (*claimHTTP.ClaimHandler, error) {
	c.claimHandlerInit.Do(func() {
		claimUC, err := c.ClaimUseCase()
		if err != nil {
			c.initErrors["claimHandler"] = fmt.Errorf("failed to get claim use case for claim handler: %w", err)
			return
		}

		c.claimHandler = claimHTTP.NewClaimHandler(claimUC, c.Logger())
	})
	if storedErr, exists := c.initErrors["claimHandler"]; exists {
		return nil, storedErr
	}
	return c.claimHandler, nil
}
