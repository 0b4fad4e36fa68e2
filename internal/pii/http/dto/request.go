// Package dto provides data transfer objects for the PII HTTP layer.
package dto

import (
	validation "github.com/jellydator/validation"

	appValidation "github.com/civicgate/trustplane/internal/validation"
)

// maxValueLength bounds PII payloads; values larger than this indicate a
// caller is pushing documents, not field values.
const maxValueLength = 65536

// EncryptRequest asks for a plaintext value to be protected.
type EncryptRequest struct {
	Plaintext string `json:"plaintext"`
}

// Validate checks the encrypt request fields.
func (r *EncryptRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.Plaintext,
			validation.Required.Error("plaintext is required"),
			validation.Length(1, maxValueLength).Error("plaintext exceeds the maximum length"),
		),
	)
	return appValidation.WrapValidationError(err)
}

// DecryptRequest asks for a versioned blob to be recovered.
type DecryptRequest struct {
	Content string `json:"content"`
}

// Validate checks the decrypt request fields.
func (r *DecryptRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.Content,
			validation.Required.Error("content is required"),
			appValidation.NotBlank,
		),
	)
	return appValidation.WrapValidationError(err)
}

// AnonymizeRequest asks for a deterministic digest of a value.
type AnonymizeRequest struct {
	Value   string `json:"value"`
	AsEmail bool   `json:"as_email"`
}

// Validate checks the anonymize request fields.
func (r *AnonymizeRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.Value,
			validation.Required.Error("value is required"),
			appValidation.NotBlank,
			validation.Length(1, maxValueLength).Error("value exceeds the maximum length"),
		),
	)
	return appValidation.WrapValidationError(err)
}
