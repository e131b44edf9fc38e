package service

import (
	"strings"

	"go-gudang-tekstil/internal/apperr"
	"go-gudang-tekstil/internal/model"
	"go-gudang-tekstil/internal/repository"
	"go-gudang-tekstil/pkg/token"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Login(email, password string) (*LoginResponse, error)
	GetUserByID(id uuid.UUID) (*model.User, error)
	HashPassword(password string) (string, error)
	VerifyPassword(password, hash string) bool
}

type LoginResponse struct {
	User      *model.User `json:"user"`
	Token     string      `json:"token"`
	ExpiresIn int         `json:"expiresIn"` // seconds
}

type authService struct {
	userRepo   repository.UserRepository
	tokens     *token.Maker
	bcryptCost int
}

func NewAuthService(userRepo repository.UserRepository, tokens *token.Maker, bcryptCost int) AuthService {
	return &authService{
		userRepo:   userRepo,
		tokens:     tokens,
		bcryptCost: bcryptCost,
	}
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password produce the identical message so callers cannot enumerate users.
func (s *authService) Login(email, password string) (*LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(strings.ToLower(email))
	if err != nil {
		return nil, apperr.Unauthorized("Invalid email or password")
	}

	if !user.CheckPassword(password) {
		return nil, apperr.Unauthorized("Invalid email or password")
	}

	tok, err := s.tokens.Generate(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		User:      user,
		Token:     tok,
		ExpiresIn: int(s.tokens.TTL().Seconds()),
	}, nil
}

func (s *authService) GetUserByID(id uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, apperr.Unauthorized("User not found")
	}
	return user, nil
}

func (s *authService) HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (s *authService) VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
