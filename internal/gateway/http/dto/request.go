// Package dto provides data transfer objects for the gateway HTTP layer.
package dto

import (
	validation "github.com/jellydator/validation"

	appValidation "github.com/civicgate/trustplane/internal/validation"
)

// LoginRequest starts the two-step login flow.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the login request fields.
func (r *LoginRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			appValidation.NotBlank,
			appValidation.Email,
			validation.Length(5, 255).Error("email must be between 5 and 255 characters"),
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 128).Error("password must be between 8 and 128 characters"),
		),
	)
	return appValidation.WrapValidationError(err)
}

// RegisterPrincipalRequest creates a directory entry. Admin surface only.
type RegisterPrincipalRequest struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Cedula   string `json:"cedula"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Validate checks the registration request fields.
func (r *RegisterPrincipalRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			appValidation.NotBlank,
			appValidation.Email,
			validation.Length(5, 255).Error("email must be between 5 and 255 characters"),
		),
		validation.Field(&r.FullName,
			validation.Required.Error("full_name is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("full_name must be between 1 and 255 characters"),
		),
		validation.Field(&r.Cedula,
			validation.Required.Error("cedula is required"),
			appValidation.NoWhitespace,
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 128).Error("password must be between 8 and 128 characters"),
		),
		validation.Field(&r.Role,
			validation.Required.Error("role is required"),
		),
	)
	return appValidation.WrapValidationError(err)
}

// VerifyRequest completes the login flow with the delivered code.
type VerifyRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// Validate checks the verify request fields.
func (r *VerifyRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			appValidation.NotBlank,
			appValidation.Email,
		),
		validation.Field(&r.Code,
			validation.Required.Error("code is required"),
			appValidation.NumericCode,
		),
	)
	return appValidation.WrapValidationError(err)
}
