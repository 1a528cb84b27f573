package service

import (
	"context"
	"strings"

	"kkapi/internal/auth"
	"kkapi/internal/middleware"
	"kkapi/internal/models"
	"kkapi/internal/repository"
)

// defaultPasswordDigest is stored verbatim when the bootstrap user is
// created without an explicit password.
const defaultPasswordDigest = "$2a$10$TVk79hQVVpmfu2BOupaIl.lw80Wlwvnpwl0oOjjLH180fi16F9p0K"

type UserService struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenManager
}

type InitUserInput struct {
	Username string
	Password string
}

type LoginInput struct {
	Username string
	Password string
}

// LoginResult is the payload returned on successful login.
type LoginResult struct {
	Token    string `json:"token"`
	UserID   uint   `json:"userId"`
	Username string `json:"userName"`
}

type UpdateProfileInput struct {
	UserID      uint
	Nickname    *string
	Avatar      *string
	Description *string
	Link        *string
	Email       *string
	HomePath    *string
}

type ChangePasswordInput struct {
	UserID         uint
	OldPassword    string
	NewPassword    string
	RepeatPassword string
}

func NewUserService(userRepo repository.UserRepository, tokens *auth.TokenManager) *UserService {
	return &UserService{userRepo: userRepo, tokens: tokens}
}

// InitUser creates the first account. It refuses to run once any user
// exists, so the endpoint is only live on a fresh database.
func (s *UserService) InitUser(ctx context.Context, in InitUserInput) (*models.User, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" {
		return nil, models.NewValidationError("Username is required")
	}
	count, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, models.NewConflictError("Already initialized")
	}

	digest := defaultPasswordDigest
	if in.Password != "" {
		digest, err = auth.HashPassword(in.Password)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
	}
	user := &models.User{
		Username: username,
		Password: digest,
		Nickname: username,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and issues a session token. Unknown user
// and wrong password are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	if in.Username == "" || in.Password == "" {
		return nil, models.NewValidationError("Username and password are required")
	}
	user, err := s.userRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if user == nil || !auth.VerifyPassword(in.Password, user.Password) {
		middleware.LoginFailures.Inc()
		return nil, models.NewUnauthorizedError("Invalid username or password")
	}
	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &LoginResult{
		Token:    token,
		UserID:   user.ID,
		Username: user.Username,
	}, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.userRepo.List(ctx)
}

func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", id)
	}
	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.UpdateResult, error) {
	updates := map[string]interface{}{}
	if in.Nickname != nil {
		if strings.TrimSpace(*in.Nickname) == "" {
			return nil, models.NewValidationError("Nickname cannot be empty")
		}
		updates["nickname"] = *in.Nickname
	}
	if in.Avatar != nil {
		updates["avatar"] = *in.Avatar
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.Link != nil {
		updates["link"] = *in.Link
	}
	if in.Email != nil {
		updates["email"] = *in.Email
	}
	if in.HomePath != nil {
		updates["home_path"] = *in.HomePath
	}
	if len(updates) == 0 {
		return nil, models.NewValidationError("Nothing to update")
	}
	result, err := s.userRepo.UpdateProfile(ctx, in.UserID, updates)
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, models.NewNotFoundError("User", in.UserID)
	}
	return &result, nil
}

func (s *UserService) ChangePassword(ctx context.Context, in ChangePasswordInput) error {
	if in.NewPassword == "" {
		return models.NewValidationError("New password is required")
	}
	if in.NewPassword != in.RepeatPassword {
		return models.NewValidationError("Passwords do not match")
	}
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return models.NewNotFoundError("User", in.UserID)
	}
	if !auth.VerifyPassword(in.OldPassword, user.Password) {
		return models.NewUnauthorizedError("Old password is incorrect")
	}
	digest, err := auth.HashPassword(in.NewPassword)
	if err != nil {
		return models.NewInternalError(err)
	}
	if _, err := s.userRepo.UpdatePassword(ctx, user.ID, digest); err != nil {
		return err
	}
	return nil
}
