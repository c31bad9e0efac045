package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/davidmarquez/tastebite-backend/internal/users"
	pkgauth "github.com/davidmarquez/tastebite-backend/pkg/auth"
	"github.com/davidmarquez/tastebite-backend/pkg/auth/session"
	"github.com/davidmarquez/tastebite-backend/pkg/config"
	"github.com/davidmarquez/tastebite-backend/pkg/db"
	"github.com/davidmarquez/tastebite-backend/pkg/db/models"
	"github.com/davidmarquez/tastebite-backend/pkg/enums"
	pkgerrors "github.com/davidmarquez/tastebite-backend/pkg/errors"
	"github.com/davidmarquez/tastebite-backend/pkg/security"
	"gorm.io/gorm"
)

const (
	invalidCredentialsMessage = "invalid credentials"
	minPasswordLength         = 8
)

// Service defines the behavior needed by the auth controller.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, input LoginInput) (*AuthResult, error)
	Refresh(ctx context.Context, accessToken, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, accessID string) error
}

// RegisterInput carries the validated signup payload plus the caller address
// used for rate limiting.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Phone    *string
	RemoteIP string
}

// LoginInput carries the credential pair plus the caller address.
type LoginInput struct {
	Email    string
	Password string
	RemoteIP string
}

// TokenPair is a freshly minted access/refresh token set.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthResult is what register and login hand back to the controller.
type AuthResult struct {
	User   *models.User
	Tokens TokenPair
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type sessionManager interface {
	Generate(ctx context.Context, accessID string) (string, error)
	Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error)
	Revoke(ctx context.Context, accessID string) error
}

type rateLimiter interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

type service struct {
	tx      txRunner
	users   *users.Repository
	session sessionManager
	limiter rateLimiter
	jwtCfg  config.JWTConfig
	pwCfg   config.PasswordConfig
	rlCfg   config.AuthRateLimitConfig
	now     func() time.Time
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	Tx             txRunner
	UserRepo       *users.Repository
	SessionManager sessionManager
	RateLimiter    rateLimiter
	JWTConfig      config.JWTConfig
	PasswordConfig config.PasswordConfig
	RateLimits     config.AuthRateLimitConfig
}

// NewService constructs the auth service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Tx == nil {
		return nil, fmt.Errorf("tx runner is required")
	}
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if params.SessionManager == nil {
		return nil, fmt.Errorf("session manager is required")
	}
	if params.RateLimiter == nil {
		return nil, fmt.Errorf("rate limiter is required")
	}
	return &service{
		tx:      params.Tx,
		users:   params.UserRepo,
		session: params.SessionManager,
		limiter: params.RateLimiter,
		jwtCfg:  params.JWTConfig,
		pwCfg:   params.PasswordConfig,
		rlCfg:   params.RateLimits,
		now:     time.Now,
	}, nil
}

// Register creates a customer account and signs the new user straight in.
func (s *service) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	email := normalizeEmail(input.Email)
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if len(input.Password) < minPasswordLength {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}

	if err := s.allow(ctx, "register:email:"+email, int64(s.rlCfg.RegisterEmailLimit), s.rlCfg.RegisterWindow); err != nil {
		return nil, err
	}
	if err := s.allowIP(ctx, "register:ip:", input.RemoteIP, int64(s.rlCfg.RegisterIPLimit), s.rlCfg.RegisterWindow); err != nil {
		return nil, err
	}

	hash, err := security.HashPassword(input.Password, s.pwCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Phone:        input.Phone,
	}
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.users.WithTx(tx)
		if err := repo.Create(ctx, user); err != nil {
			if db.IsUniqueViolation(err, "") {
				return pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
		}
		role, err := repo.FindRoleByName(ctx, enums.UserRoleCustomer)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load customer role")
		}
		if err := repo.AddRole(ctx, user, role); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "attach customer role")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Tokens: *tokens}, nil
}

// Login verifies credentials and mints a token pair. Unknown emails and wrong
// passwords surface the same message.
func (s *service) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	email := normalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	if err := s.allow(ctx, "login:email:"+email, int64(s.rlCfg.LoginEmailLimit), s.rlCfg.LoginWindow); err != nil {
		return nil, err
	}
	if err := s.allowIP(ctx, "login:ip:", input.RemoteIP, int64(s.rlCfg.LoginIPLimit), s.rlCfg.LoginWindow); err != nil {
		return nil, err
	}

	user, err := s.users.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}

	match, err := security.VerifyPassword(input.Password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !match {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Tokens: *tokens}, nil
}

// Refresh rotates the redis session tied to the presented access token. The
// access token may be expired; its signature and jti still have to check out.
func (s *service) Refresh(ctx context.Context, accessToken, refreshToken string) (*TokenPair, error) {
	claims, err := pkgauth.ParseAccessTokenAllowExpired(s.jwtCfg, accessToken)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid access token")
	}

	newAccessID, newRefresh, err := s.session.Rotate(ctx, claims.ID, refreshToken)
	if err != nil {
		if errors.Is(err, session.ErrInvalidRefreshToken) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid refresh token")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rotate session")
	}

	// Roles are re-read so a revoked role does not outlive its access token.
	user, err := s.users.FindUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "account no longer exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}

	access, err := pkgauth.MintAccessToken(s.jwtCfg, s.now(), pkgauth.AccessTokenPayload{
		UserID: user.ID,
		Roles:  user.RoleNames(),
		JTI:    newAccessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}
	return &TokenPair{AccessToken: access, RefreshToken: newRefresh}, nil
}

// Logout revokes the refresh session for the given access identifier.
func (s *service) Logout(ctx context.Context, accessID string) error {
	if strings.TrimSpace(accessID) == "" {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session identifier")
	}
	if err := s.session.Revoke(ctx, accessID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke session")
	}
	return nil
}

func (s *service) issueTokens(ctx context.Context, user *models.User) (*TokenPair, error) {
	accessID := session.NewAccessID()
	access, err := pkgauth.MintAccessToken(s.jwtCfg, s.now(), pkgauth.AccessTokenPayload{
		UserID: user.ID,
		Roles:  user.RoleNames(),
		JTI:    accessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}
	refresh, err := s.session.Generate(ctx, accessID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create session")
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *service) allow(ctx context.Context, scope string, limit int64, window time.Duration) error {
	if limit <= 0 || window <= 0 {
		return nil
	}
	allowed, _, err := s.limiter.FixedWindowAllow(ctx, scope, limit, window)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limit check")
	}
	if !allowed {
		return pkgerrors.New(pkgerrors.CodeRateLimit, "too many attempts, try again later")
	}
	return nil
}

func (s *service) allowIP(ctx context.Context, prefix, remoteIP string, limit int64, window time.Duration) error {
	ip := strings.TrimSpace(remoteIP)
	if ip == "" {
		return nil
	}
	return s.allow(ctx, prefix+ip, limit, window)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
