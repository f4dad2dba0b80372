package services

import (
	"fmt"
	"time"

	"github.com/takdanai-ph/taskboard/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const resetTokenTTL = time.Hour

type TokenClaims struct {
	UserId   string `json:"sub"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Exp      int64  `json:"exp"`
}

type AuthService struct {
	users     domain.UserRepository
	secretKey []byte
}

func NewAuthService(users domain.UserRepository, secret string) *AuthService {
	return &AuthService{users: users, secretKey: []byte(secret)}
}

// LogIn checks the credentials and returns a signed token alongside the
// authenticated user. Lookup failures and bad passwords collapse into the
// same error so usernames cannot be probed.
func (s *AuthService) LogIn(username, password string) (string, *domain.User, error) {
	user, err := s.users.GetByUsername(username)
	if err != nil {
		return "", nil, domain.ErrInvalidCredentials()
	}

	if !CheckPasswordHash(password, user.Password) {
		return "", nil, domain.ErrInvalidCredentials()
	}

	token, err := s.createToken(*user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) createToken(user domain.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256,
		jwt.MapClaims{
			"sub":      user.Id.Hex(),
			"username": user.Username,
			"role":     user.Role.String(),
			"exp":      time.Now().Add(time.Hour * 24).Unix(),
		})

	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", err
	}
	return tokenString, nil
}

func (s *AuthService) VerifyToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.MapClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secretKey, nil
	})
	if err != nil {
		return nil, domain.ErrInvalidToken()
	}
	if !token.Valid {
		return nil, domain.ErrInvalidToken()
	}

	claims, ok := token.Claims.(*jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("unable to parse token claims")
	}

	tokenClaims := &TokenClaims{}
	if sub, ok := (*claims)["sub"].(string); ok {
		tokenClaims.UserId = sub
	}
	if username, ok := (*claims)["username"].(string); ok {
		tokenClaims.Username = username
	}
	if role, ok := (*claims)["role"].(string); ok {
		tokenClaims.Role = role
	}
	if exp, ok := (*claims)["exp"].(float64); ok {
		tokenClaims.Exp = int64(exp)
	}
	return tokenClaims, nil
}

// ResolveUser loads the full user record behind a verified token.
func (s *AuthService) ResolveUser(tokenString string) (*domain.User, error) {
	claims, err := s.VerifyToken(tokenString)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetById(claims.UserId)
	if err != nil {
		return nil, domain.ErrInvalidToken()
	}
	return user, nil
}

// ForgotPassword issues a one-hour reset token for the account behind email.
// The token is returned to the caller for delivery; the handler never leaks
// whether the email existed.
func (s *AuthService) ForgotPassword(email string) (string, error) {
	user, err := s.users.GetByEmail(email)
	if err != nil {
		return "", err
	}

	user.ResetToken = uuid.NewString()
	user.ResetExpires = time.Now().Add(resetTokenTTL)
	if err := s.users.Update(*user); err != nil {
		return "", err
	}
	return user.ResetToken, nil
}

func (s *AuthService) ResetPassword(token, newPassword string) error {
	if newPassword == "" {
		return domain.ErrValidation("password is required")
	}

	user, err := s.users.GetByResetToken(token)
	if err != nil {
		return domain.ErrResetTokenExpired()
	}
	if time.Now().After(user.ResetExpires) {
		return domain.ErrResetTokenExpired()
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.Password = hash
	user.ResetToken = ""
	user.ResetExpires = time.Time{}
	return s.users.Update(*user)
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
