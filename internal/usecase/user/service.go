package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/inkpress/inkpress/domain"
)

type Service struct {
	userRepo  domain.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
}

var _ domain.UserUsecase = (*Service)(nil)

// NewService will create a new user service object
func NewService(userRepo domain.UserRepository, jwtSecret []byte, tokenTTL time.Duration) *Service {
	return &Service{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

// generateToken signs a bearer token carrying the user ID and role.
func (s *Service) generateToken(u domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": u.ID,
		"role":    string(u.Role),
		"iat":     now.Unix(),
		"exp":     now.Add(s.tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func (s *Service) Register(ctx context.Context, name, email, password string) (string, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" || password == "" {
		return "", domain.ErrBadParamInput
	}

	_, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return "", domain.ErrConflict
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return "", err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	u := domain.User{
		Name:     name,
		Email:    email,
		Password: string(hashed),
		Role:     domain.RoleUser,
	}
	if err := s.userRepo.Insert(ctx, &u); err != nil {
		return "", err
	}

	return s.generateToken(u)
}

func (s *Service) Login(ctx context.Context, email, password string) (string, domain.User, error) {
	u, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", domain.User{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return "", domain.User{}, domain.ErrBadParamInput
	}

	token, err := s.generateToken(u)
	if err != nil {
		return "", domain.User{}, err
	}

	// The hash never leaves the service layer.
	u.Password = ""
	return token, u, nil
}

func (s *Service) Profile(ctx context.Context, id int64) (domain.User, error) {
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}
	u.Password = ""
	return u, nil
}

func (s *Service) UpdateProfile(ctx context.Context, id int64, patch domain.UserPatch) (domain.User, error) {
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}

	changed := false
	if patch.Name != "" {
		u.Name = patch.Name
		changed = true
	}
	if patch.Email != "" {
		u.Email = patch.Email
		changed = true
	}
	if patch.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(patch.Password), bcrypt.DefaultCost)
		if err != nil {
			return domain.User{}, err
		}
		u.Password = string(hashed)
		changed = true
	}
	if patch.Image != "" {
		u.Image = patch.Image
		changed = true
	}
	if patch.Bio != "" {
		u.Bio = patch.Bio
		changed = true
	}
	if !changed {
		return domain.User{}, domain.ErrBadParamInput
	}

	u.UpdatedAt = time.Now()
	if err := s.userRepo.Update(ctx, &u); err != nil {
		return domain.User{}, err
	}

	u.Password = ""
	return u, nil
}
