// Package service implements the application's business logic on top of
// the repository layer. Services validate input, enforce uniqueness and
// authorization rules, and translate storage failures into AppErrors.
package service

import (
	"context"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	userRepo repository.UserRepository
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
	FullName string
	// Role is only honored for privileged callers; self-service
	// registration never populates it and gets the default user role.
	Role string
}

type UpdateProfileInput struct {
	UserID   uint
	FullName string
	Email    string
}

// AdminUpdateUserInput carries a sparse admin edit; nil pointer fields are
// left untouched.
type AdminUpdateUserInput struct {
	UserID   uint
	Role     *string
	Active   *bool
	FullName *string
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Register validates all fields, reports every failure at once, and
// creates the account in a single insert so a failed role assignment
// never leaves a half-configured row behind.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	var problems []string
	if err := validation.ValidateUsername(in.Username); err != nil {
		problems = append(problems, err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		problems = append(problems, err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		problems = append(problems, err.Error())
	}
	role := in.Role
	if role == "" {
		role = models.RoleUser
	} else if !models.ValidRole(role) {
		problems = append(problems, "unknown role")
	}
	if len(problems) > 0 {
		return nil, models.NewValidationErrors(problems)
	}

	existing, err := s.userRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, models.NewStorageError(err)
	}
	if existing != nil {
		return nil, models.NewConflictError("Username is already taken")
	}

	existing, err = s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, models.NewStorageError(err)
	}
	if existing != nil {
		return nil, models.NewConflictError("Email is already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username: in.Username,
		Email:    in.Email,
		Password: string(hash),
		FullName: in.FullName,
		Role:     role,
		Active:   true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// The unique index can still fire under concurrent registration.
		return nil, models.NewConflictError("Username or email is already taken")
	}
	return user, nil
}

// Authenticate checks credentials and records the login time. Unknown
// username, wrong password, and deactivated account all return the same
// AuthError so the response reveals nothing about which check failed.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, models.NewStorageError(err)
	}
	if user == nil || !user.Active {
		return nil, models.NewAuthError()
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, models.NewAuthError()
	}

	now := time.Now()
	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, models.NewStorageError(err)
	}
	user.LastLogin = &now
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, models.NewStorageError(err)
	}
	return user, nil
}

// UpdateProfile applies self-service edits to name and email. Changing the
// email re-checks uniqueness against other accounts.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, models.NewStorageError(err)
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", in.UserID)
	}

	fields := map[string]interface{}{}
	if in.FullName != user.FullName {
		fields["full_name"] = in.FullName
		user.FullName = in.FullName
	}
	if in.Email != "" && in.Email != user.Email {
		if err := validation.ValidateEmail(in.Email); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		other, err := s.userRepo.GetByEmail(ctx, in.Email)
		if err != nil {
			return nil, models.NewStorageError(err)
		}
		if other != nil && other.ID != user.ID {
			return nil, models.NewConflictError("Email is already registered")
		}
		fields["email"] = in.Email
		user.Email = in.Email
	}

	if err := s.userRepo.UpdateFields(ctx, user.ID, fields); err != nil {
		return nil, models.NewStorageError(err)
	}
	return user, nil
}

// ChangePassword verifies the current password before storing a new hash.
func (s *UserService) ChangePassword(ctx context.Context, userID uint, current, next string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return models.NewStorageError(err)
	}
	if user == nil {
		return models.NewNotFoundError("User", userID)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(current)) != nil {
		return models.NewValidationError("Current password is incorrect")
	}
	if err := validation.ValidatePassword(next); err != nil {
		return models.NewValidationError(err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return models.NewInternalError(err)
	}
	if err := s.userRepo.UpdateFields(ctx, userID, map[string]interface{}{"password": string(hash)}); err != nil {
		return models.NewStorageError(err)
	}
	return nil
}

// UpdateAvatar records a new avatar filename and returns the previous one
// so the caller can delete the orphaned file after the database commit.
func (s *UserService) UpdateAvatar(ctx context.Context, userID uint, filename string) (string, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", models.NewStorageError(err)
	}
	if user == nil {
		return "", models.NewNotFoundError("User", userID)
	}

	old := user.Avatar
	if err := s.userRepo.UpdateFields(ctx, userID, map[string]interface{}{"avatar": filename}); err != nil {
		return "", models.NewStorageError(err)
	}
	return old, nil
}

// DeleteAvatar clears the avatar reference and returns the old filename.
func (s *UserService) DeleteAvatar(ctx context.Context, userID uint) (string, error) {
	return s.UpdateAvatar(ctx, userID, "")
}

// AdminUpdate applies a sparse admin edit to any account.
func (s *UserService) AdminUpdate(ctx context.Context, in AdminUpdateUserInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, models.NewStorageError(err)
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", in.UserID)
	}

	fields := map[string]interface{}{}
	if in.Role != nil {
		if !models.ValidRole(*in.Role) {
			return nil, models.NewValidationError("Unknown role")
		}
		fields["role"] = *in.Role
		user.Role = *in.Role
	}
	if in.Active != nil {
		fields["active"] = *in.Active
		user.Active = *in.Active
	}
	if in.FullName != nil {
		fields["full_name"] = *in.FullName
		user.FullName = *in.FullName
	}

	if err := s.userRepo.UpdateFields(ctx, user.ID, fields); err != nil {
		return nil, models.NewStorageError(err)
	}
	return user, nil
}

// Delete removes the account; owned posts and comments cascade.
func (s *UserService) Delete(ctx context.Context, userID uint) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return models.NewStorageError(err)
	}
	if user == nil {
		return models.NewNotFoundError("User", userID)
	}
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return models.NewStorageError(err)
	}
	return nil
}

func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	users, err := s.userRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, models.NewStorageError(err)
	}
	return users, nil
}

func (s *UserService) CountUsers(ctx context.Context) (int64, error) {
	count, err := s.userRepo.Count(ctx)
	if err != nil {
		return 0, models.NewStorageError(err)
	}
	return count, nil
}
