package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/civicgate/trustplane/internal/audit"
	"github.com/civicgate/trustplane/internal/config"
	cryptoService "github.com/civicgate/trustplane/internal/crypto/service"
	"github.com/civicgate/trustplane/internal/errors"
	gatewayDomain "github.com/civicgate/trustplane/internal/gateway/domain"
	gatewayService "github.com/civicgate/trustplane/internal/gateway/service"
	otpUseCase "github.com/civicgate/trustplane/internal/otp/usecase"
	trustDomain "github.com/civicgate/trustplane/internal/trust/domain"
	trustService "github.com/civicgate/trustplane/internal/trust/service"
)

// authUseCase implements AuthUseCase.
type authUseCase struct {
	config          *config.Config
	principalRepo   PrincipalRepository
	passwordService gatewayService.PasswordService
	encryptor       cryptoService.Encryptor
	anonymizer      cryptoService.Anonymizer
	otp             otpUseCase.OtpUseCase
	tokens          trustService.TokenService
	auditSink       audit.Sink
}

// NewAuthUseCase creates a new AuthUseCase with the provided dependencies.
func NewAuthUseCase(
	cfg *config.Config,
	principalRepo PrincipalRepository,
	passwordService gatewayService.PasswordService,
	encryptor cryptoService.Encryptor,
	anonymizer cryptoService.Anonymizer,
	otp otpUseCase.OtpUseCase,
	tokens trustService.TokenService,
	auditSink audit.Sink,
) AuthUseCase {
	return &authUseCase{
		config:          cfg,
		principalRepo:   principalRepo,
		passwordService: passwordService,
		encryptor:       encryptor,
		anonymizer:      anonymizer,
		otp:             otp,
		tokens:          tokens,
		auditSink:       auditSink,
	}
}

// Register creates a principal.
//
// Email and full name are stored only as versioned ciphertexts; the email and
// cedula additionally get deterministic digests for lookup. The plaintext
// never reaches the repository.
func (u *authUseCase) Register(
	ctx context.Context,
	input RegisterPrincipalInput,
) (*gatewayDomain.Principal, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" || input.Password == "" {
		return nil, errors.Wrap(errors.ErrInvalidInput, "email and password are required")
	}
	if !input.Role.Valid() {
		return nil, trustDomain.ErrInvalidRole
	}

	emailEncrypted, err := u.encryptor.EncryptString(email)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt email: %w", err)
	}
	fullNameEncrypted, err := u.encryptor.EncryptString(input.FullName)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt full name: %w", err)
	}
	passwordHash, err := u.passwordService.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	principal := &gatewayDomain.Principal{
		ID:                uuid.Must(uuid.NewV7()),
		EmailEncrypted:    emailEncrypted,
		EmailDigest:       u.anonymizer.HashEmail(email),
		FullNameEncrypted: fullNameEncrypted,
		CedulaDigest:      u.anonymizer.Hash(input.Cedula),
		PasswordHash:      passwordHash,
		Role:              input.Role,
		IsActive:          true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := u.principalRepo.Create(ctx, principal); err != nil {
		return nil, err
	}

	return principal, nil
}

// Login verifies the password and dispatches an OTP challenge.
//
// A password check runs even when the principal does not exist, so the
// response time does not reveal whether the email is registered.
func (u *authUseCase) Login(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return errors.Wrap(errors.ErrInvalidInput, "email and password are required")
	}

	principal, err := u.principalRepo.GetByEmailDigest(ctx, u.anonymizer.HashEmail(email))
	if err != nil {
		if errors.Is(err, gatewayDomain.ErrPrincipalNotFound) {
			// Burn a comparison against a dummy hash to even out timing.
			u.passwordService.ComparePassword(password, dummyPasswordHash)
			u.emitLoginFailed(ctx, email, "unknown email")
			return gatewayDomain.ErrInvalidCredentials
		}
		return err
	}

	if !u.passwordService.ComparePassword(password, principal.PasswordHash) {
		u.emitLoginFailed(ctx, email, "wrong password")
		return gatewayDomain.ErrInvalidCredentials
	}
	if !principal.IsActive {
		u.emitLoginFailed(ctx, email, "principal inactive")
		return gatewayDomain.ErrInvalidCredentials
	}

	return u.otp.Challenge(ctx, email)
}

// VerifyLogin consumes the OTP challenge and mints the trust token.
func (u *authUseCase) VerifyLogin(
	ctx context.Context,
	email, code string,
) (string, *trustDomain.TokenClaims, error) {
	email = strings.TrimSpace(email)
	if email == "" || code == "" {
		return "", nil, errors.Wrap(errors.ErrInvalidInput, "email and code are required")
	}

	if err := u.otp.Verify(ctx, email, code); err != nil {
		return "", nil, err
	}

	principal, err := u.principalRepo.GetByEmailDigest(ctx, u.anonymizer.HashEmail(email))
	if err != nil {
		if errors.Is(err, gatewayDomain.ErrPrincipalNotFound) {
			return "", nil, gatewayDomain.ErrInvalidCredentials
		}
		return "", nil, err
	}
	if !principal.IsActive {
		return "", nil, gatewayDomain.ErrInvalidCredentials
	}

	token, claims, err := u.tokens.Issue(principal.ID.String(), principal.Role, u.config.InternalAPIKey, nil)
	if err != nil {
		return "", nil, err
	}

	u.auditSink.Emit(ctx, audit.Event{
		Type:      audit.EventTokenIssued,
		Outcome:   audit.OutcomeSuccess,
		Actor:     audit.MaskActor(principal.ID.String()),
		ActorRole: string(principal.Role),
	})
	return token, claims, nil
}

func (u *authUseCase) emitLoginFailed(ctx context.Context, email, reason string) {
	u.auditSink.Emit(ctx, audit.Event{
		Type:    audit.EventLoginFailed,
		Outcome: audit.OutcomeDenied,
		Actor:   audit.MaskActor(email),
		Reason:  reason,
	})
}

// dummyPasswordHash is a valid Argon2id hash of a random value, used to keep
// the unknown-email path as slow as the wrong-password path.
const dummyPasswordHash = "$argon2id$v=19$m=65536,t=2,p=1$wzLcGhgLGr9PKS0MUNVeMw$yPnbcMKEMg1zRT6oBf2aIGyQ1D4CLz1jY4UQe0e0dVU"
