package app

import (
	"fmt"

	userHTTP "github.com/lifekey/lifekey/internal/user/http"
	userRepository "github.com/lifekey/lifekey/internal/user/repository"
	userService "github.com/lifekey/lifekey/internal/user/service"
	userUseCase "github.com/lifekey/lifekey/internal/user/usecase"
)

// PasswordService returns the argon2id password hashing service.
func (c *Container) PasswordService() userService.PasswordService {
	c.passwordServiceInit.Do(func() {
		c.passwordService = userService.NewPasswordService()
	})
	return c.passwordService
}

// SessionTokenCodec returns the session token codec.
func (c *Container) SessionTokenCodec() userService.SessionTokenCodec {
	c.sessionCodecInit.Do(func() {
		c.sessionCodec = userService.NewSessionTokenCodec(c.config.AuthTokenSecret)
	})
	return c.sessionCodec
}

// UserRepository returns the user repository based on the database driver.
func (c *Container) UserRepository() (userUseCase.UserRepository, error) {
	c.userRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["userRepo"] = fmt.Errorf("failed to get database for user repository: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "postgres":
			c.userRepo = userRepository.NewPostgreSQLUserRepository(db)
		case "mysql":
			c.userRepo = userRepository.NewMySQLUserRepository(db)
		default:
			c.initErrors["userRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["userRepo"]; exists {
		return nil, storedErr
	}
	return c.userRepo, nil
}

// UserUseCase returns the user use case.
func (c *Container) UserUseCase() (userUseCase.UserUseCase, error) {
	c.userUCInit.Do(func() {
		txManager, err := c.TxManager()
		if err != nil {
			c.initErrors["userUC"] = fmt.Errorf("failed to get tx manager for user use case: %w", err)
			return
		}

		userRepo, err := c.UserRepository()
		if err != nil {
			c.initErrors["userUC"] = fmt.Errorf("failed to get user repository for user use case: %w", err)
			return
		}

		auditUC, err := c.AuditUseCase()
		if err != nil {
			c.initErrors["userUC"] = fmt.Errorf("failed to get audit use case for user use case: %w", err)
			return
		}

		c.userUC = userUseCase.NewUserUseCase(
			txManager,
			userRepo,
			auditUC,
			c.PasswordService(),
			c.SessionTokenCodec(),
		)
	})
	if storedErr, exists := c.initErrors["userUC"]; exists {
		return nil, storedErr
	}
	return c.userUC, nil
}

// UserHandler returns the HTTP handler for account and session operations.
func (c *Container) UserHandler() (*userHTTP.UserHandler, error) {
	c.userHandlerInit.Do(func() {
		userUC, err := c.UserUseCase()
		if err != nil {
			c.initErrors["userHandler"] = fmt.Errorf("failed to get user use case for user handler: %w", err)
			return
		}

		c.userHandler = userHTTP.NewUserHandler(userUC, c.Logger())
	})
	if storedErr, exists := c.initErrors["userHandler"]; exists {
		return nil, storedErr
	}
	return c.userHandler, nil
}
