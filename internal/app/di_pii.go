package app

import (
	piiHTTP "github.com/civicgate/trustplane/internal/pii/http"
	piiUseCase "github.com/civicgate/trustplane/internal/pii/usecase"
)

// PIIUseCase returns the PII protection use case wrapped with metrics.
func (c *Container) PIIUseCase() (piiUseCase.PIIUseCase, error) {
	var err error
	c.piiUseCaseInit.Do(func() {
		encryptor, encryptorErr := c.Encryptor()
		if encryptorErr != nil {
			err = encryptorErr
			c.initErrors["piiUseCase"] = encryptorErr
			return
		}
		businessMetrics, metricsErr := c.BusinessMetrics()
		if metricsErr != nil {
			err = metricsErr
			c.initErrors["piiUseCase"] = metricsErr
			return
		}
		c.piiUseCase = piiUseCase.NewPIIUseCaseWithMetrics(
			piiUseCase.NewPIIUseCase(encryptor, c.Anonymizer()),
			businessMetrics,
		)
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["piiUseCase"]; exists {
		return nil, storedErr
	}
	return c.piiUseCase, nil
}

// PIIHandler returns the PII protection HTTP handler.
func (c *Container) PIIHandler() (*piiHTTP.PIIHandler, error) {
	var err error
	c.piiHandlerInit.Do(func() {
		pii, piiErr := c.PIIUseCase()
		if piiErr != nil {
			err = piiErr
			c.initErrors["piiHandler"] = piiErr
			return
		}
		c.piiHandler = piiHTTP.NewPIIHandler(pii, c.Logger())
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["piiHandler"]; exists {
		return nil, storedErr
	}
	return c.piiHandler, nil
}
