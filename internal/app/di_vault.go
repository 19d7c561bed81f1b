package app

import (
	"fmt"

	vaultHTTP "github.com/lifekey/lifekey/internal/vault/http"
	vaultRepository "github.com/lifekey/lifekey/internal/vault/repository"
	vaultService "github.com/lifekey/lifekey/internal/vault/service"
	vaultUseCase "github.com/lifekey/lifekey/internal/vault/usecase"
)

// PayloadCipher returns the AEAD cipher that seals vault item payloads.
func (c *Container) PayloadCipher() (vaultService.PayloadCipher, error) {
	c.payloadCipherInit.Do(func() {
		key, err := c.config.VaultKey()
		if err != nil {
			c.initErrors["payloadCipher"] = fmt.Errorf("failed to load vault encryption key: %w", err)
			return
		}

		cipher, err := vaultService.NewPayloadCipher(c.config.VaultCipherAlgorithm, key)
		if err != nil {
			c.initErrors["payloadCipher"] = fmt.Errorf("failed to create payload cipher: %w", err)
			return
		}
		c.payloadCipher = cipher
	})
	if storedErr, exists := c.initErrors["payloadCipher"]; exists {
		return nil, storedErr
	}
	return c.payloadCipher, nil
}

// VaultItemRepository returns the vault item repository based on the database
// driver.
func (c *Container) VaultItemRepository() (vaultUseCase.VaultItemRepository, error) {
	c.vaultItemRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["vaultItemRepo"] = fmt.Errorf("failed to get database for vault item repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "postgres":
			c.vaultItemRepo = vaultRepository.NewPostgreSQLVaultItemRepository(db)
		case "mysql":
			c.vaultItemRepo = vaultRepository.NewMySQLVaultItemRepository(db)
		default:
			c.initErrors["vaultItemRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["vaultItemRepo"]; exists {
		return nil, storedErr
	}
	return c.vaultItemRepo, nil
}

// VaultUseCase returns the vault use case, wrapped with metrics when enabled.
func (c *Container) VaultUseCase() (vaultUseCase.VaultUseCase, error) {
	c.vaultUCInit.Do(func() {
		txManager, err := c.TxManager()
		if err != nil {
			c.initErrors["vaultUC"] = fmt.Errorf("failed to get tx manager for vault use case: %w", err)
			return
		}

		vaultItemRepo, err := c.VaultItemRepository()
		if err != nil {
			c.initErrors["vaultUC"] = fmt.Errorf("failed to get vault item repository for vault use case: %w", err)
			return
		}

		payloadCipher, err := c.PayloadCipher()
		if err != nil {
			c.initErrors["vaultUC"] = fmt.Errorf("failed to get payload cipher for vault use case: %w", err)
			return
		}

		auditUC, err := c.AuditUseCase()
		if err != nil {
			c.initErrors["vaultUC"] = fmt.Errorf("failed to get audit use case for vault use case: %w", err)
			return
		}

		baseUseCase := vaultUseCase.NewVaultUseCase(txManager, vaultItemRepo, payloadCipher, auditUC)

		if c.config.MetricsEnabled {
			businessMetrics, err := c.BusinessMetrics()
			if err != nil {
				c.initErrors["vaultUC"] = fmt.Errorf("failed to get business metrics for vault use case: %w", err)
				return
			}
			c.vaultUC = vaultUseCase.NewVaultUseCaseWithMetrics(baseUseCase, businessMetrics)
			return
		}

		c.vaultUC = baseUseCase
	})
	if storedErr, exists := c.initErrors["vaultUC"]; exists {
		return nil, storedErr
	}
	return c.vaultUC, nil
}

// VaultItemHandler returns the HTTP handler for vault item operations.
func (c *Container) VaultItemHandler() (*vaultHTTP.VaultItemHandler, error) {
	c.vaultHandlerInit.Do(func() {
		vaultUC, err := c.VaultUseCase()
		if err != nil {
			c.initErrors["vaultHandler"] = fmt.Errorf("failed to get vault use case for vault item handler: %w", err)
			return
		}

		c.vaultHandler = vaultHTTP.NewVaultItemHandler(vaultUC, c.Logger())
	})
	if storedErr, exists := c.initErrors["vaultHandler"]; exists {
		return nil, storedErr
	}
	return c.vaultHandler, nil
}
