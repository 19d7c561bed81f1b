package app

import (
	"fmt"

	releaseHTTP "github.com/lifekey/lifekey/internal/release/http"
	releaseRepository "github.com/lifekey/lifekey/internal/release/repository"
	releaseService "github.com/lifekey/lifekey/internal/release/service"
	releaseUseCase "github.com/lifekey/lifekey/internal/release/usecase"
)

// ReleaseTokenCodec returns the release token codec.
func (c *Container) ReleaseTokenCodec() releaseService.ReleaseTokenCodec {
	c.releaseTokenCodecInit.Do(func() {
		c.releaseTokenCodec = releaseService.NewReleaseTokenCodec(c.config.ReleaseTokenSecret)
	})
	return c.releaseTokenCodec
}

// ReleaseRepository returns the release repository based on the database
// driver.
func (c *Container) ReleaseRepository() (releaseUseCase.ReleaseRepository, error) {
	c.releaseRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["releaseRepo"] = fmt.Errorf("failed to get database for release repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "postgres":
			c.releaseRepo = releaseRepository.NewPostgreSQLReleaseRepository(db)
		case "mysql":
			c.releaseRepo = releaseRepository.NewMySQLReleaseRepository(db)
		default:
			c.initErrors["releaseRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["releaseRepo"]; exists {
		return nil, storedErr
	}
	return c.releaseRepo, nil
}

// ReleaseUseCase returns the release use case, wrapped with metrics when
// enabled.
func (c *Container) ReleaseUseCase() (releaseUseCase.ReleaseUseCase, error) {
	c.releaseUCInit.Do(func() {
		txManager, err := c.TxManager()
		if err != nil {
			c.initErrors["releaseUC"] = fmt.Errorf("failed to get tx manager for release use case: %w", err)
			return
		}

		releaseRepo, err := c.ReleaseRepository()
		if err != nil {
			c.initErrors["releaseUC"] = fmt.Errorf("failed to get release repository for release use case: %w", err)
			return
		}

		claimRepo, err := c.ClaimRepository()
		if err != nil {
			c.initErrors["releaseUC"] = fmt.Errorf("failed to get claim repository for release use case: %w", err)
			return
		}

		policyRepo, err := c.PolicyRepository()
		if err != nil {
			c.initErrors["releaseUC"] = fmt.Errorf("failed to get policy repository for release use case: %w", err)
			return
		}

		recipientRepo, err := c.RecipientRepository()
		if err != nil {
			c.initErrors["releaseUC"] = fmt.Errorf("failed to get recipient repository for release use case: %w", err)
			return
		}

		assignmentRepo, err := c.AssignmentRepository()
		if err != nil {
			c.initErrors["releaseUC"] = fmt.Errorf("failed to get assignment repository for release use case: %w", err)
			return
		}

		vaultItemRepo, err := c.VaultItemRepository()
		if err != nil {
			c.initErrors["releaseUC"] = fmt.Errorf("failed to get vault item repository for release use case: %w", err)
			return
		}

		payloadCipher, err := c.PayloadCipher()
		if err != nil {
			c.initErrors["releaseUC"] = fmt.Errorf("failed to get payload cipher for release use case: %w", err)
			return
		}

		auditUC, err := c.AuditUseCase()
		if err != nil {
			c.initErrors["releaseUC"] = fmt.Errorf("failed to get audit use case for release use case: %w", err)
			return
		}

		baseUseCase := releaseUseCase.NewReleaseUseCase(
			txManager,
			releaseRepo,
			claimRepo,
			policyRepo,
			recipientRepo,
			assignmentRepo,
			vaultItemRepo,
			payloadCipher,
			c.ReleaseTokenCodec(),
			auditUC,
			c.Logger(),
			c.config.ReleaseBaseURL,
			c.config.ReleaseTokenExpiration,
		)

		if c.config.MetricsEnabled {
			businessMetrics, err := c.BusinessMetrics()
			if err != nil {
				c.initErrors["releaseUC"] = fmt.Errorf("failed to get business metrics for release use case: %w", err)
				return
			}
			c.releaseUC = releaseUseCase.NewReleaseUseCaseWithMetrics(baseUseCase, businessMetrics)
			return
		}

		c.releaseUC = baseUseCase
	})
	if storedErr, exists := c.initErrors["releaseUC"]; exists {
		return nil, storedErr
	}
	return c.releaseUC, nil
}

// ReleaseHandler returns the HTTP handler for release operations.
func (c *Container) ReleaseHandler() (*releaseHTTP.ReleaseHandler, error) {
	c.releaseHandlerInit.Do(func() {
		releaseUC, err := c.ReleaseUseCase()
		if err != nil {
			c.initErrors["releaseHandler"] = fmt.Errorf("failed to get release use case for release handler: %w", err)
			return
		}

		c.releaseHandler = releaseHTTP.NewReleaseHandler(releaseUC, c.Logger())
	})
	if storedErr, exists := c.initErrors["releaseHandler"]; exists {
		return nil, storedErr
	}
	return c.releaseHandler, nil
}
