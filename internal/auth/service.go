package auth

import (
	"context"
	"errors"
	"log"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrMissingFields      = errors.New("missing required fields")
	ErrEmailTaken         = errors.New("email already exists")
	ErrInvalidInvite      = errors.New("invalid invite code")
)

type Service struct {
	repo       UserRepository
	inviteCode string
}

// NewService creates the staff account service. When inviteCode is not
// empty, registration requires it.
func NewService(repo UserRepository, inviteCode string) *Service {
	return &Service{repo: repo, inviteCode: inviteCode}
}

// REGISTER
func (s *Service) Register(ctx context.Context, name, email, password, invite string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || password == "" {
		return nil, ErrMissingFields
	}
	if s.inviteCode != "" && invite != s.inviteCode {
		return nil, ErrInvalidInvite
	}

	exists, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword(
		[]byte(password),
		bcrypt.DefaultCost,
	)
	if err != nil {
		return nil, err
	}

	user := &User{
		Name:     name,
		Email:    email,
		Password: string(hashedPassword),
		Role:     RoleStaff,
	}

	if err := s.repo.Save(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("[AUTH] staff registered id=%s", user.ID)
	return user, nil
}

// LOGIN returns the user and a signed token.
func (s *Service) Login(ctx context.Context, email, password string) (*User, string, error) {
	user, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}

	err = bcrypt.CompareHashAndPassword(
		[]byte(user.Password),
		[]byte(password),
	)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}
