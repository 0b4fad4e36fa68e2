package usecase

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civicgate/trustplane/internal/audit"
	"github.com/civicgate/trustplane/internal/config"
	cryptoDomain "github.com/civicgate/trustplane/internal/crypto/domain"
	cryptoService "github.com/civicgate/trustplane/internal/crypto/service"
	"github.com/civicgate/trustplane/internal/errors"
	gatewayDomain "github.com/civicgate/trustplane/internal/gateway/domain"
	gatewayService "github.com/civicgate/trustplane/internal/gateway/service"
	otpDomain "github.com/civicgate/trustplane/internal/otp/domain"
	trustDomain "github.com/civicgate/trustplane/internal/trust/domain"
	trustService "github.com/civicgate/trustplane/internal/trust/service"
)

// fakePrincipalRepo is a minimal in-memory PrincipalRepository for tests.
type fakePrincipalRepo struct {
	mu       sync.Mutex
	byDigest map[string]*gatewayDomain.Principal
}

func newFakePrincipalRepo() *fakePrincipalRepo {
	return &fakePrincipalRepo{byDigest: make(map[string]*gatewayDomain.Principal)}
}

func (r *fakePrincipalRepo) Create(ctx context.Context, principal *gatewayDomain.Principal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byDigest[principal.EmailDigest]; ok {
		return gatewayDomain.ErrPrincipalExists
	}
	stored := *principal
	r.byDigest[principal.EmailDigest] = &stored
	return nil
}

func (r *fakePrincipalRepo) GetByEmailDigest(
	ctx context.Context, emailDigest string,
) (*gatewayDomain.Principal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	principal, ok := r.byDigest[emailDigest]
	if !ok {
		return nil, gatewayDomain.ErrPrincipalNotFound
	}
	copied := *principal
	return &copied, nil
}

func (r *fakePrincipalRepo) Get(ctx context.Context, id uuid.UUID) (*gatewayDomain.Principal, error) {
	return nil, gatewayDomain.ErrPrincipalNotFound
}

// fakeOtp records challenges and accepts a single fixed code.
type fakeOtp struct {
	mu         sync.Mutex
	challenged []string
	code       string
	verifyErr  error
}

func (o *fakeOtp) Challenge(ctx context.Context, destination string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.challenged = append(o.challenged, destination)
	return nil
}

func (o *fakeOtp) Verify(ctx context.Context, destination, code string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.verifyErr != nil {
		return o.verifyErr
	}
	if code != o.code {
		return otpDomain.ErrCodeMismatch
	}
	return nil
}

type authFixture struct {
	usecase AuthUseCase
	repo    *fakePrincipalRepo
	otp     *fakeOtp
	tokens  trustService.TokenService
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	keys := map[uint][]byte{1: bytes.Repeat([]byte{0x42}, 32)}
	encryptor, err := cryptoService.NewPIIEncryptor(
		keys, 1, cryptoDomain.AESGCM, cryptoService.NewAEADManager(),
	)
	require.NoError(t, err)

	tokens, err := trustService.NewTokenService(
		"it-is-a-very-secret-token-value-1234", time.Hour,
	)
	require.NoError(t, err)

	fixture := &authFixture{
		repo:   newFakePrincipalRepo(),
		otp:    &fakeOtp{code: "123456"},
		tokens: tokens,
	}

	cfg := &config.Config{InternalAPIKey: "core-api"}
	fixture.usecase = NewAuthUseCase(
		cfg,
		fixture.repo,
		gatewayService.NewPasswordService(),
		encryptor,
		cryptoService.NewSHA256Anonymizer(),
		fixture.otp,
		tokens,
		audit.NopSink{},
	)
	return fixture
}

func registerAnalyst(t *testing.T, fixture *authFixture) *gatewayDomain.Principal {
	t.Helper()
	principal, err := fixture.usecase.Register(context.Background(), RegisterPrincipalInput{
		Email:    "ana@example.com",
		FullName: "Ana Gomez",
		Cedula:   "001-1234567-8",
		Password: "correct-horse-battery",
		Role:     trustDomain.RoleAnalyst,
	})
	require.NoError(t, err)
	return principal
}

func TestAuthUseCaseRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("stores no plaintext pii", func(t *testing.T) {
		fixture := newAuthFixture(t)
		principal := registerAnalyst(t, fixture)

		assert.NotContains(t, principal.EmailEncrypted, "ana@example.com")
		assert.NotContains(t, principal.FullNameEncrypted, "Ana")
		assert.NotEqual(t, "001-1234567-8", principal.CedulaDigest)
		assert.Len(t, principal.CedulaDigest, 64)
		assert.NotContains(t, principal.PasswordHash, "correct-horse-battery")
		assert.True(t, principal.IsActive)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		fixture := newAuthFixture(t)
		registerAnalyst(t, fixture)

		_, err := fixture.usecase.Register(ctx, RegisterPrincipalInput{
			Email:    "ana@example.com",
			Password: "another-password-42",
			Role:     trustDomain.RoleAnalyst,
		})
		assert.ErrorIs(t, err, gatewayDomain.ErrPrincipalExists)
	})

	t.Run("invalid role rejected", func(t *testing.T) {
		fixture := newAuthFixture(t)
		_, err := fixture.usecase.Register(ctx, RegisterPrincipalInput{
			Email:    "bob@example.com",
			Password: "another-password-42",
			Role:     trustDomain.Role("SUPERUSER"),
		})
		assert.ErrorIs(t, err, trustDomain.ErrInvalidRole)
	})

	t.Run("missing fields rejected", func(t *testing.T) {
		fixture := newAuthFixture(t)
		_, err := fixture.usecase.Register(ctx, RegisterPrincipalInput{Role: trustDomain.RoleCitizen})
		assert.ErrorIs(t, err, errors.ErrInvalidInput)
	})
}

func TestAuthUseCaseLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("correct password dispatches challenge", func(t *testing.T) {
		fixture := newAuthFixture(t)
		registerAnalyst(t, fixture)

		require.NoError(t, fixture.usecase.Login(ctx, "ana@example.com", "correct-horse-battery"))
		assert.Equal(t, []string{"ana@example.com"}, fixture.otp.challenged)
	})

	t.Run("unknown email and wrong password return the same error", func(t *testing.T) {
		fixture := newAuthFixture(t)
		registerAnalyst(t, fixture)

		unknownErr := fixture.usecase.Login(ctx, "ghost@example.com", "correct-horse-battery")
		wrongErr := fixture.usecase.Login(ctx, "ana@example.com", "not-the-password")

		assert.ErrorIs(t, unknownErr, gatewayDomain.ErrInvalidCredentials)
		assert.ErrorIs(t, wrongErr, gatewayDomain.ErrInvalidCredentials)
		assert.Equal(t, unknownErr.Error(), wrongErr.Error())
		assert.Empty(t, fixture.otp.challenged)
	})

	t.Run("email lookup is case and whitespace insensitive", func(t *testing.T) {
		fixture := newAuthFixture(t)
		registerAnalyst(t, fixture)

		require.NoError(t, fixture.usecase.Login(ctx, "  ANA@Example.COM ", "correct-horse-battery"))
		assert.Len(t, fixture.otp.challenged, 1)
	})
}

func TestAuthUseCaseVerifyLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("correct code mints token with principal claims", func(t *testing.T) {
		fixture := newAuthFixture(t)
		principal := registerAnalyst(t, fixture)

		token, claims, err := fixture.usecase.VerifyLogin(ctx, "ana@example.com", "123456")
		require.NoError(t, err)
		require.NotEmpty(t, token)
		assert.Equal(t, principal.ID.String(), claims.Subject)
		assert.Equal(t, trustDomain.RoleAnalyst, claims.Role)
		assert.Equal(t, "core-api", claims.APIKey)

		validated, err := fixture.tokens.Validate(token)
		require.NoError(t, err)
		assert.Equal(t, claims.Subject, validated.Subject)
	})

	t.Run("wrong code mints nothing", func(t *testing.T) {
		fixture := newAuthFixture(t)
		registerAnalyst(t, fixture)

		token, _, err := fixture.usecase.VerifyLogin(ctx, "ana@example.com", "000000")
		assert.ErrorIs(t, err, errors.ErrUnauthorized)
		assert.Empty(t, token)
	})

	t.Run("verified code for unknown principal rejected", func(t *testing.T) {
		fixture := newAuthFixture(t)

		token, _, err := fixture.usecase.VerifyLogin(ctx, "ghost@example.com", "123456")
		assert.ErrorIs(t, err, gatewayDomain.ErrInvalidCredentials)
		assert.Empty(t, token)
	})
}
