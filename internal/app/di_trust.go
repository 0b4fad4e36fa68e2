package app

import (
	trustService "github.com/civicgate/trustplane/internal/trust/service"
)

// TokenService returns the trust token service.
func (c *Container) TokenService() (trustService.TokenService, error) {
	var err error
	c.tokenServiceInit.Do(func() {
		c.tokenService, err = trustService.NewTokenService(
			c.config.TrustTokenSecret, c.config.TrustTokenExpiration,
		)
		if err != nil {
			c.initErrors["tokenService"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tokenService"]; exists {
		return nil, storedErr
	}
	return c.tokenService, nil
}

// RequestSigner returns the gateway-side request signer.
func (c *Container) RequestSigner() (trustService.RequestSigner, error) {
	var err error
	c.requestSignerInit.Do(func() {
		c.requestSigner, err = trustService.NewRequestSigner(
			c.config.GatewaySignatureSecret, c.config.InternalAPIKey,
		)
		if err != nil {
			c.initErrors["requestSigner"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["requestSigner"]; exists {
		return nil, storedErr
	}
	return c.requestSigner, nil
}

// RequestValidator returns the core-side request validator with the default
// public and role path tables.
func (c *Container) RequestValidator() (trustService.RequestValidator, error) {
	var err error
	c.requestValidatorInit.Do(func() {
		c.requestValidator, err = trustService.NewRequestValidator(
			c.config.GatewaySignatureSecret,
			c.config.GatewaySignatureMaxSkew,
			nil,
			nil,
		)
		if err != nil {
			c.initErrors["requestValidator"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["requestValidator"]; exists {
		return nil, storedErr
	}
	return c.requestValidator, nil
}
