package app

import (
	gatewayHTTP "github.com/civicgate/trustplane/internal/gateway/http"
	gatewayRepository "github.com/civicgate/trustplane/internal/gateway/repository"
	gatewayService "github.com/civicgate/trustplane/internal/gateway/service"
	gatewayUseCase "github.com/civicgate/trustplane/internal/gateway/usecase"
)

// PasswordService returns the Argon2id password service.
func (c *Container) PasswordService() gatewayService.PasswordService {
	c.passwordServiceInit.Do(func() {
		c.passwordService = gatewayService.NewPasswordService()
	})
	return c.passwordService
}

// PrincipalRepository returns the principal repository.
func (c *Container) PrincipalRepository() gatewayUseCase.PrincipalRepository {
	c.principalRepoInit.Do(func() {
		c.principalRepo = gatewayRepository.NewMemoryPrincipalRepository()
	})
	return c.principalRepo
}

// AuthUseCase returns the authentication use case.
func (c *Container) AuthUseCase() (gatewayUseCase.AuthUseCase, error) {
	var err error
	c.authUseCaseInit.Do(func() {
		encryptor, encryptorErr := c.Encryptor()
		if encryptorErr != nil {
			err = encryptorErr
			c.initErrors["authUseCase"] = encryptorErr
			return
		}
		otp, otpErr := c.OtpUseCase()
		if otpErr != nil {
			err = otpErr
			c.initErrors["authUseCase"] = otpErr
			return
		}
		tokens, tokensErr := c.TokenService()
		if tokensErr != nil {
			err = tokensErr
			c.initErrors["authUseCase"] = tokensErr
			return
		}
		c.authUseCase = gatewayUseCase.NewAuthUseCase(
			c.config,
			c.PrincipalRepository(),
			c.PasswordService(),
			encryptor,
			c.Anonymizer(),
			otp,
			tokens,
			c.AuditSink(),
		)
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["authUseCase"]; exists {
		return nil, storedErr
	}
	return c.authUseCase, nil
}

// AuthHandler returns the authentication HTTP handler.
func (c *Container) AuthHandler() (*gatewayHTTP.AuthHandler, error) {
	var err error
	c.authHandlerInit.Do(func() {
		auth, authErr := c.AuthUseCase()
		if authErr != nil {
			err = authErr
			c.initErrors["authHandler"] = authErr
			return
		}
		c.authHandler = gatewayHTTP.NewAuthHandler(c.config, auth, c.Logger())
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["authHandler"]; exists {
		return nil, storedErr
	}
	return c.authHandler, nil
}
