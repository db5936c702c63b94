package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"

	"github.com/OWAISARSHED/LearnPak/internal/access"
	"github.com/OWAISARSHED/LearnPak/internal/domain"
	"github.com/OWAISARSHED/LearnPak/internal/infrastructure/security"
)

type AuthUseCase struct {
	userRepo     UserRepository
	tokenStore   TokenStore
	hasher       *security.PasswordHasher
	tokenManager *security.TokenManager
}

func NewAuthUseCase(
	ur UserRepository,
	ts TokenStore,
	h *security.PasswordHasher,
	tm *security.TokenManager,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo:     ur,
		tokenStore:   ts,
		hasher:       h,
		tokenManager: tm,
	}
}

// Session is what register, login and refresh hand back to the client.
type Session struct {
	User         *domain.User
	AccessToken  string
	RefreshToken string
}

type RegisterInput struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
	// Role may only be chosen between student and instructor; admins are bootstrapped
	// by the createadmin command.
	Role string `validate:"omitempty,oneof=student instructor"`
}

func (uc *AuthUseCase) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	role := domain.Role(in.Role)
	if role == "" {
		role = domain.RoleStudent
	}

	hash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:       uuid.New(),
		Name:     in.Name,
		Email:    normalizeEmail(in.Email),
		Password: hash,
		Role:     role,
		// instructors wait for an admin; everyone else is approved on sign-up
		IsApproved: role != domain.RoleInstructor,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return uc.newSession(ctx, user)
}

func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := uc.userRepo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if isNotFound(err) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := uc.hasher.Compare(user.Password, password); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return uc.newSession(ctx, user)
}

// Refresh rotates a refresh token: the old one is revoked and a new pair issued.
func (uc *AuthUseCase) Refresh(ctx context.Context, oldRefreshToken string) (*Session, error) {
	userID, err := uc.tokenManager.ValidateRefreshToken(oldRefreshToken)
	if err != nil {
		return nil, domain.ErrTokenRevoked
	}

	storedID, err := uc.tokenStore.ConsumeRefresh(ctx, oldRefreshToken)
	if err != nil {
		if errors.Is(err, domain.ErrTokenRevoked) {
			return nil, err
		}
		return nil, pkgerrors.Wrap(err, "consume refresh token")
	}
	if storedID != userID {
		return nil, domain.ErrTokenRevoked
	}

	user, err := uc.userByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return uc.newSession(ctx, user)
}

func (uc *AuthUseCase) Logout(ctx context.Context, refreshToken string) error {
	return uc.tokenStore.DeleteRefresh(ctx, refreshToken)
}

// Authenticate turns an access token into a Principal. The user is reloaded so role
// and verification changes apply without waiting for the token to expire.
func (uc *AuthUseCase) Authenticate(ctx context.Context, accessToken string) (*domain.Principal, error) {
	userID, err := uc.tokenManager.ValidateAccessToken(accessToken)
	if err != nil {
		return nil, domain.ErrNotAuthenticated
	}
	user, err := uc.userByID(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, domain.ErrNotAuthenticated
		}
		return nil, err
	}
	return user.Principal(), nil
}

func (uc *AuthUseCase) Profile(ctx context.Context, p *domain.Principal) (*domain.User, error) {
	if err := access.RequireAuthenticated(p); err != nil {
		return nil, err
	}
	return uc.userRepo.GetByID(ctx, p.ID)
}

type ProfileUpdate struct {
	Name     string
	Email    string `validate:"omitempty,email"`
	Bio      string
	Avatar   string
	Password string `validate:"omitempty,min=6"`
}

// UpdateProfile applies the non-empty fields of in. Role and gate flags are never
// touched here.
func (uc *AuthUseCase) UpdateProfile(ctx context.Context, p *domain.Principal, in ProfileUpdate) (*Session, error) {
	if err := access.RequireAuthenticated(p); err != nil {
		return nil, err
	}
	if err := validateInput(in); err != nil {
		return nil, err
	}
	user, err := uc.userRepo.GetByID(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	if in.Name != "" {
		user.Name = in.Name
	}
	if in.Email != "" {
		user.Email = normalizeEmail(in.Email)
	}
	if in.Bio != "" {
		user.Bio = in.Bio
	}
	if in.Avatar != "" {
		user.Avatar = in.Avatar
	}
	if in.Password != "" {
		hash, err := uc.hasher.Hash(in.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hash
	}

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return uc.newSession(ctx, user)
}

// UploadIdentity stores a reference to an already uploaded verification document.
// Presence of the reference is what puts the account into review.
func (uc *AuthUseCase) UploadIdentity(ctx context.Context, p *domain.Principal, docRef string) (*domain.User, error) {
	if err := access.RequireAuthenticated(p); err != nil {
		return nil, err
	}
	if strings.TrimSpace(docRef) == "" {
		return nil, domain.Invalid("identityDoc is required")
	}
	user, err := uc.userRepo.GetByID(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	user.IdentityDoc = docRef
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	log.Printf("identity document uploaded for user %s", user.ID)
	return user, nil
}

// EnsureAdmin creates the admin account, or resets its password when it exists.
// It reports whether a new account was created.
func (uc *AuthUseCase) EnsureAdmin(ctx context.Context, email, password string) (bool, error) {
	if password == "" {
		return false, domain.Invalid("admin password is required")
	}
	hash, err := uc.hasher.Hash(password)
	if err != nil {
		return false, err
	}

	existing, err := uc.userRepo.GetByEmail(ctx, normalizeEmail(email))
	switch {
	case err == nil:
		existing.Password = hash
		return false, uc.userRepo.Update(ctx, existing)
	case !errors.Is(err, domain.ErrNotFound):
		return false, err
	}

	admin := &domain.User{
		ID:         uuid.New(),
		Name:       "System Admin",
		Email:      normalizeEmail(email),
		Password:   hash,
		Role:       domain.RoleAdmin,
		IsApproved: true,
		IsVerified: true,
	}
	return true, uc.userRepo.Create(ctx, admin)
}

func (uc *AuthUseCase) newSession(ctx context.Context, user *domain.User) (*Session, error) {
	accessToken, refreshToken, err := uc.tokenManager.Generate(user.ID.String())
	if err != nil {
		return nil, err
	}
	if err := uc.tokenStore.SaveRefresh(ctx, user.ID.String(), refreshToken); err != nil {
		return nil, err
	}
	return &Session{User: user, AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (uc *AuthUseCase) userByID(ctx context.Context, raw string) (*domain.User, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, domain.ErrNotAuthenticated
	}
	return uc.userRepo.GetByID(ctx, id)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
