package app

import (
	otpRepository "github.com/civicgate/trustplane/internal/otp/repository"
	otpService "github.com/civicgate/trustplane/internal/otp/service"
	otpUseCase "github.com/civicgate/trustplane/internal/otp/usecase"
)

// ChallengeRepository returns the OTP challenge repository.
func (c *Container) ChallengeRepository() otpUseCase.ChallengeRepository {
	c.challengeRepoInit.Do(func() {
		c.challengeRepo = otpRepository.NewMemoryChallengeRepository()
	})
	return c.challengeRepo
}

// RateLimitRepository returns the OTP challenge rate-limit repository.
func (c *Container) RateLimitRepository() otpUseCase.RateLimitRepository {
	c.rateLimitRepoInit.Do(func() {
		c.rateLimitRepo = otpRepository.NewMemoryRateLimitRepository()
	})
	return c.rateLimitRepo
}

// CodeGenerator returns the OTP code generator.
func (c *Container) CodeGenerator() otpService.CodeGenerator {
	c.codeGeneratorInit.Do(func() {
		c.codeGenerator = otpService.NewNumericGenerator()
	})
	return c.codeGenerator
}

// CodeDigester returns the keyed OTP code digester.
func (c *Container) CodeDigester() (otpService.CodeDigester, error) {
	var err error
	c.codeDigesterInit.Do(func() {
		c.codeDigester, err = otpService.NewCodeDigester([]byte(c.config.TrustTokenSecret))
		if err != nil {
			c.initErrors["codeDigester"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["codeDigester"]; exists {
		return nil, storedErr
	}
	return c.codeDigester, nil
}

// DeliveryService returns the out-of-band OTP delivery service.
func (c *Container) DeliveryService() otpService.DeliveryService {
	c.otpDeliveryInit.Do(func() {
		c.otpDelivery = otpService.NewLogDelivery(c.Logger())
	})
	return c.otpDelivery
}

// OtpUseCase returns the OTP challenge/verify use case.
func (c *Container) OtpUseCase() (otpUseCase.OtpUseCase, error) {
	var err error
	c.otpUseCaseInit.Do(func() {
		digester, digesterErr := c.CodeDigester()
		if digesterErr != nil {
			err = digesterErr
			c.initErrors["otpUseCase"] = digesterErr
			return
		}
		c.otpUseCase = otpUseCase.NewOtpUseCase(
			c.config,
			c.ChallengeRepository(),
			c.RateLimitRepository(),
			c.CodeGenerator(),
			digester,
			c.DeliveryService(),
			c.AuditSink(),
		)
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["otpUseCase"]; exists {
		return nil, storedErr
	}
	return c.otpUseCase, nil
}
