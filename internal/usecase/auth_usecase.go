package usecase

import (
	"context"
	"strings"

	"ripple/internal/domain/entity"
	"ripple/internal/domain/repository"
	"ripple/pkg/errors"
	"ripple/pkg/logger"
)

type AuthUseCase struct {
	userRepo     repository.UserRepository
	vendorRepo   repository.VendorRepository
	charityRepo  repository.PublicCharityRepository
	firebaseAuth FirebaseAuthClient
}

func NewAuthUseCase(
	userRepo repository.UserRepository,
	vendorRepo repository.VendorRepository,
	charityRepo repository.PublicCharityRepository,
	firebaseAuth FirebaseAuthClient,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo:     userRepo,
		vendorRepo:   vendorRepo,
		charityRepo:  charityRepo,
		firebaseAuth: firebaseAuth,
	}
}

type SignUpInput struct {
	Email        string
	Password     string
	Name         string
	Type         string
	Phone        string
	BusinessName string
	Address      string
	Category     string
}

type AuthResult struct {
	User    *entity.User
	Session *entity.AuthSession
}

func (uc *AuthUseCase) SignUp(ctx context.Context, input SignUpInput) (*AuthResult, error) {
	if !entity.ValidRole(input.Type) {
		return nil, errors.BadRequest("Type must be one of donor, charity or vendor", nil)
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if existing, err := uc.userRepo.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, errors.Conflict("Email already in use")
	}

	uid, err := uc.firebaseAuth.CreateUser(ctx, email, input.Password, input.Name)
	if err != nil {
		return nil, errors.BadRequest("Failed to create account", err)
	}

	user := &entity.User{
		ID:    uid,
		Email: email,
		Name:  input.Name,
		Type:  input.Type,
		Phone: input.Phone,
	}

	if err := uc.createRecords(ctx, user, input); err != nil {
		if delErr := uc.firebaseAuth.DeleteUser(ctx, uid); delErr != nil {
			logger.Error("Failed to roll back auth user %s: %v", uid, delErr)
		}
		return nil, errors.Wrap(err, "Failed to create user record")
	}

	session, err := uc.firebaseAuth.SignInWithPassword(ctx, email, input.Password)
	if err != nil {
		// The account exists; the client can sign in separately.
		logger.Warn("Sign in after sign up failed for %s: %v", uid, err)
		return &AuthResult{User: user}, nil
	}

	return &AuthResult{User: user, Session: session}, nil
}

func (uc *AuthUseCase) createRecords(ctx context.Context, user *entity.User, input SignUpInput) error {
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return err
	}

	switch user.Type {
	case entity.RoleVendor:
		businessName := input.BusinessName
		if businessName == "" {
			businessName = user.Name
		}
		return uc.vendorRepo.Create(ctx, &entity.Vendor{
			ID:           user.ID,
			BusinessName: businessName,
			Email:        user.Email,
			Phone:        user.Phone,
			Address:      input.Address,
			Category:     input.Category,
			Type:         entity.RoleVendor,
		})
	case entity.RoleCharity:
		return uc.charityRepo.Upsert(ctx, &entity.PublicCharity{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
		})
	}
	return nil
}

// SignIn authenticates with email and password. When expectedRole is set and
// the account has a different role, every session of the account is revoked
// and no token is returned.
func (uc *AuthUseCase) SignIn(ctx context.Context, email, password, expectedRole string) (*AuthResult, error) {
	if expectedRole != "" && !entity.ValidRole(expectedRole) {
		return nil, errors.BadRequest("Invalid expected role", nil)
	}

	session, err := uc.firebaseAuth.SignInWithPassword(ctx, strings.ToLower(strings.TrimSpace(email)), password)
	if err != nil {
		return nil, errors.Wrap(err, "Sign in failed")
	}

	user, err := uc.GetProfile(ctx, session.UID)
	if err != nil {
		if errors.Is(err, errors.CodeNotFound) {
			uc.signOut(ctx, session.UID)
			return nil, errors.Forbidden("Access denied: no account record", err)
		}
		return nil, err
	}

	if expectedRole != "" && user.Type != expectedRole {
		logger.Warn("Role mismatch for %s: stored %s, expected %s", user.ID, user.Type, expectedRole)
		uc.signOut(ctx, user.ID)
		return nil, errors.RoleMismatch(expectedRole)
	}

	return &AuthResult{User: user, Session: session}, nil
}

func (uc *AuthUseCase) signOut(ctx context.Context, uid string) {
	if err := uc.firebaseAuth.RevokeRefreshTokens(ctx, uid); err != nil {
		logger.Error("Failed to revoke tokens for %s: %v", uid, err)
	}
}

func (uc *AuthUseCase) VerifyToken(ctx context.Context, token string) (string, error) {
	uid, err := uc.firebaseAuth.VerifyToken(ctx, token)
	if err != nil {
		return "", errors.Unauthorized("Invalid or expired token", err)
	}
	return uid, nil
}

// GetProfile loads the user record, falling back to the vendors collection
// for vendor accounts that only have a vendor profile.
func (uc *AuthUseCase) GetProfile(ctx context.Context, uid string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, uid)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, errors.CodeNotFound) {
		return nil, err
	}

	vendor, vErr := uc.vendorRepo.GetByID(ctx, uid)
	if vErr != nil {
		return nil, err
	}
	return &entity.User{
		ID:        vendor.ID,
		Email:     vendor.Email,
		Name:      vendor.BusinessName,
		Type:      entity.RoleVendor,
		Phone:     vendor.Phone,
		CreatedAt: vendor.CreatedAt,
		UpdatedAt: vendor.UpdatedAt,
	}, nil
}

// RequireRole fails with a forbidden error unless uid's account has role.
func (uc *AuthUseCase) RequireRole(ctx context.Context, uid, role string) (*entity.User, error) {
	user, err := uc.GetProfile(ctx, uid)
	if err != nil {
		if errors.Is(err, errors.CodeNotFound) {
			return nil, errors.Forbidden("Access denied: user record not found", err)
		}
		return nil, err
	}
	if user.Type != role {
		return nil, errors.Forbidden("Access denied: "+role+" role required", nil)
	}
	return user, nil
}
