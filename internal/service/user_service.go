package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/classpress/forumcore/internal/model"
	"github.com/classpress/forumcore/internal/repository"
	"github.com/classpress/forumcore/pkg/apperror"
)

type RegisterInput struct {
	Username      string `validate:"required,min=3,max=50"`
	Password      string `validate:"required"`
	Email         string `validate:"required,email"`
	FirstName     string
	MiddleName    string
	LastName      string
	PreferredName string
	Roles         []model.Role
}

type UserService interface {
	Register(ctx context.Context, input RegisterInput) (*model.User, error)
	Authenticate(ctx context.Context, username, password string) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindAll(ctx context.Context) ([]*model.User, error)
	Exists(ctx context.Context, username string) (bool, error)
	UpdateField(ctx context.Context, username, field string, value any) error
	SetRole(ctx context.Context, username string, role model.Role, enabled bool) error
	ResetPassword(ctx context.Context, username, newPassword string) error
	Delete(ctx context.Context, username string) error
}

type userService struct {
	repo repository.UserRepository

	// plainPasswords keeps credentials byte-compatible with legacy rows.
	// When false (the default) passwords are stored bcrypt-hashed.
	plainPasswords bool
}

func NewUserService(repo repository.UserRepository, plainPasswords bool) UserService {
	return &userService{repo: repo, plainPasswords: plainPasswords}
}

func (s *userService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	encoded, err := s.encodePassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:      input.Username,
		Password:      encoded,
		Email:         input.Email,
		FirstName:     input.FirstName,
		MiddleName:    input.MiddleName,
		LastName:      input.LastName,
		PreferredName: input.PreferredName,
	}
	for _, role := range input.Roles {
		switch role {
		case model.RoleAdmin:
			user.IsAdmin = true
		case model.RoleStudent:
			user.IsStudent = true
		case model.RoleStaff:
			user.IsStaff = true
		default:
			return nil, apperror.New("unknown role "+string(role), apperror.ErrInvalidInput)
		}
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if !s.verifyPassword(user.Password, password) {
		return nil, apperror.New("wrong password", apperror.ErrInvalidInput)
	}
	return user, nil
}

func (s *userService) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.repo.FindByUsername(ctx, username)
}

func (s *userService) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.repo.FindByEmail(ctx, email)
}

func (s *userService) FindAll(ctx context.Context) ([]*model.User, error) {
	return s.repo.FindAll(ctx)
}

func (s *userService) Exists(ctx context.Context, username string) (bool, error) {
	return s.repo.Exists(ctx, username)
}

func (s *userService) UpdateField(ctx context.Context, username, field string, value any) error {
	if field == "password" {
		password, ok := value.(string)
		if !ok {
			return apperror.New("password must be a string", apperror.ErrInvalidInput)
		}
		return s.ResetPassword(ctx, username, password)
	}
	return s.repo.UpdateField(ctx, username, field, value)
}

func (s *userService) SetRole(ctx context.Context, username string, role model.Role, enabled bool) error {
	return s.repo.SetRole(ctx, username, role, enabled)
}

func (s *userService) ResetPassword(ctx context.Context, username, newPassword string) error {
	if newPassword == "" {
		return apperror.New("password must not be empty", apperror.ErrInvalidInput)
	}
	encoded, err := s.encodePassword(newPassword)
	if err != nil {
		return err
	}
	return s.repo.UpdateField(ctx, username, "password", encoded)
}

func (s *userService) Delete(ctx context.Context, username string) error {
	return s.repo.Delete(ctx, username)
}

func (s *userService) encodePassword(password string) (string, error) {
	if s.plainPasswords {
		return password, nil
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.Join(apperror.ErrInternal, err)
	}
	return string(hashed), nil
}

func (s *userService) verifyPassword(stored, password string) bool {
	if s.plainPasswords {
		return stored == password
	}
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
}
