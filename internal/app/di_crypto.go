package app

import (
	cryptoDomain "github.com/civicgate/trustplane/internal/crypto/domain"
	cryptoService "github.com/civicgate/trustplane/internal/crypto/service"
)

// Encryptor returns the versioned PII encryptor.
func (c *Container) Encryptor() (cryptoService.Encryptor, error) {
	var err error
	c.encryptorInit.Do(func() {
		keys, keysErr := c.config.ParsePIIKeys()
		if keysErr != nil {
			err = keysErr
			c.initErrors["encryptor"] = keysErr
			return
		}
		c.encryptor, err = cryptoService.NewPIIEncryptor(
			keys,
			c.config.PIIActiveKeyVersion,
			cryptoDomain.Algorithm(c.config.PIIAlgorithm),
			cryptoService.NewAEADManager(),
		)
		if err != nil {
			c.initErrors["encryptor"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["encryptor"]; exists {
		return nil, storedErr
	}
	return c.encryptor, nil
}

// Anonymizer returns the deterministic digest service.
func (c *Container) Anonymizer() cryptoService.Anonymizer {
	c.anonymizerInit.Do(func() {
		c.anonymizer = cryptoService.NewSHA256Anonymizer()
	})
	return c.anonymizer
}
