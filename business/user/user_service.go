package user

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"shopifyPulse/domain"
	"shopifyPulse/pkg/logger"
	"shopifyPulse/pkg/utils"
)

// UserRepository contract interface
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

const (
	RoleMember = "member"
	RoleAdmin  = "admin"

	tokenTTL = 24 * time.Hour
)

type userService struct {
	userRepo UserRepository
	validate *validator.Validate
}

func NewUserService(userRepo UserRepository, validate *validator.Validate) *userService {
	return &userService{
		userRepo: userRepo,
		validate: validate,
	}
}

func (s *userService) Register(ctx context.Context, user *domain.User) (domain.User, error) {
	if err := s.validate.Var(user.Email, "required,email"); err != nil {
		logger.Error("invalid email format", "error", err)
		return domain.User{}, errors.New("invalid email format")
	}

	if err := s.validate.Var(user.Password, "required,min=8"); err != nil {
		logger.Error("invalid user password", "error", err)
		return domain.User{}, errors.New("password must be at least 8 characters")
	}

	// Check if email already exists
	existingUser, err := s.userRepo.FindByEmail(ctx, user.Email)
	if err == nil && existingUser.ID > 0 {
		logger.Error("email already exists")
		return domain.User{}, errors.New("email already exists")
	}

	passwordHash, err := utils.HashPassword(user.Password)
	if err != nil {
		logger.Error("failed to hash password", "error", err)
		return domain.User{}, errors.New("failed to hash password")
	}

	newUser := domain.User{
		Email:           user.Email,
		Password:        passwordHash,
		FirstName:       user.FirstName,
		LastName:        user.LastName,
		Role:            RoleMember,
		StoreID:         user.StoreID,
		ReportFrequency: "weekly",
	}

	if err := s.userRepo.Create(ctx, &newUser); err != nil {
		logger.Error("failed to create new user", "error", err)
		return domain.User{}, err
	}

	newUser.Password = ""
	return newUser, nil
}

func (s *userService) Login(ctx context.Context, email, password string) (string, domain.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		logger.Error("invalid user credentials", "error", err)
		return "", domain.User{}, errors.New("invalid credentials")
	}

	if !utils.CheckPassword(password, user.Password) {
		logger.Error("user password incorrect", "email", email)
		return "", domain.User{}, errors.New("invalid credentials")
	}

	userIDStr := strconv.FormatUint(uint64(user.ID), 10)
	token, err := utils.GenerateJWT(userIDStr, user.Role, tokenTTL)
	if err != nil {
		logger.Error("failed to generate token", "error", err)
		return "", domain.User{}, errors.New("failed to generate token")
	}

	now := time.Now()
	user.LastLogin = &now
	if err := s.userRepo.Update(ctx, &user); err != nil {
		logger.Warn("failed to stamp last login", "user_id", user.ID, "error", err)
	}

	user.Password = ""
	return token, user, nil
}

// GetUserByID retrieves a user by ID
func (s *userService) GetUserByID(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("failed to get user by id", "error", err)
		return domain.User{}, err
	}

	user.Password = ""
	return user, nil
}
