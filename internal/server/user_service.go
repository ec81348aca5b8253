package server

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/nadim/adgm-agent/internal/config"
	"github.com/nadim/adgm-agent/internal/db"
	"github.com/nadim/adgm-agent/internal/types"
)

// DBClient is the slice of the database layer the user service needs.
// *db.DB satisfies it; tests substitute an in-memory fake.
type DBClient interface {
	CreateUser(ctx context.Context, name, email, phone string) (uuid.UUID, error)
	GetUser(ctx context.Context, id uuid.UUID) (*db.User, error)
	GetUserByEmail(ctx context.Context, email string) (*db.User, error)
	CheckEmailExists(ctx context.Context, email string) (bool, error)
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error
}

var _ DBClient = (*db.DB)(nil)

// UserService implements account registration, login, and password
// changes over the user store.
type UserService struct {
	db             DBClient
	passwordConfig *config.PasswordConfig
}

// NewUserService creates a UserService.
func NewUserService(db DBClient, passwordConfig *config.PasswordConfig) *UserService {
	return &UserService{db: db, passwordConfig: passwordConfig}
}

// publicUser strips the password hash from a stored user record.
func publicUser(dbUser *db.User) *types.User {
	if dbUser == nil {
		return nil
	}
	return &types.User{
		ID:          dbUser.ID,
		Name:        dbUser.Name,
		Email:       dbUser.Email,
		Phone:       dbUser.Phone,
		PasswordSet: dbUser.PasswordSet,
		CreatedAt:   dbUser.CreatedAt,
		UpdatedAt:   dbUser.UpdatedAt,
	}
}

// Register creates an account. The user row is created first and the
// password hash set in a second step; a failure between the two leaves
// an account without a usable password, which Login rejects.
func (s *UserService) Register(ctx context.Context, req *types.CreateUserRequest) (*types.User, error) {
	exists, err := s.db.CheckEmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, &ErrEmailAlreadyExists{Email: req.Email}
	}

	passwordHash, err := s.passwordConfig.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	userID, err := s.db.CreateUser(ctx, req.Name, req.Email, req.Phone)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	if err := s.db.UpdatePassword(ctx, userID, passwordHash); err != nil {
		return nil, fmt.Errorf("failed to set password: %w", err)
	}

	dbUser, err := s.db.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve created user: %w", err)
	}
	if dbUser == nil {
		return nil, fmt.Errorf("created user not found: %s", userID)
	}

	return publicUser(dbUser), nil
}

// Login verifies credentials. Unknown email, wrong password, and an
// account whose password was never set all answer the same generic
// invalid-credentials error.
func (s *UserService) Login(ctx context.Context, req *types.LoginRequest) (*types.User, error) {
	dbUser, err := s.db.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	if dbUser == nil {
		return nil, &ErrInvalidCredentials{}
	}
	if !s.passwordConfig.VerifyPassword(req.Password, dbUser.PasswordHash) {
		return nil, &ErrInvalidCredentials{}
	}
	if !dbUser.PasswordSet {
		return nil, &ErrInvalidCredentials{}
	}

	return publicUser(dbUser), nil
}

// UpdatePassword replaces a user's password after verifying the
// current one.
func (s *UserService) UpdatePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	dbUser, err := s.db.GetUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if dbUser == nil {
		return &ErrUserNotFound{UserID: userID}
	}

	if !s.passwordConfig.VerifyPassword(currentPassword, dbUser.PasswordHash) {
		return &ErrPasswordMismatch{}
	}

	newPasswordHash, err := s.passwordConfig.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}
	if err := s.db.UpdatePassword(ctx, userID, newPasswordHash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}
