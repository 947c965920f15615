package services

import (
	"errors"
	"net/mail"
	"strings"
	"time"
	"unicode"

	"github.com/rowanherne/morrow/internal/models"
	"github.com/rowanherne/morrow/internal/security"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrAuthCredentialsInvalid = errors.New("auth credentials invalid")
	ErrEmailTaken             = errors.New("email already registered")
	ErrWeakPassword           = errors.New("weak password")
	ErrRecoveryCodeNotFound   = errors.New("recovery code not found")
)

type AuthUserRepository interface {
	ExistsByNormalizedEmail(email string) (bool, error)
	FindByNormalizedEmail(email string) (models.User, bool, error)
	FindByID(userID uint) (models.User, bool, error)
	Create(user *models.User) error
	Save(user *models.User) error
	ListWithRecoveryCodeHash() ([]models.User, error)
}

type AuthService struct {
	users AuthUserRepository
}

func NewAuthService(users AuthUserRepository) *AuthService {
	return &AuthService{users: users}
}

// Register creates a user and returns the one-time recovery code in plain
// text. Only the bcrypt hash of the code is stored.
func (service *AuthService) Register(emailRaw string, passwordRaw string) (models.User, string, error) {
	email, password, err := NormalizeCredentialsInput(emailRaw, passwordRaw)
	if err != nil {
		return models.User{}, "", err
	}
	if err := ValidatePasswordStrength(password); err != nil {
		return models.User{}, "", err
	}

	exists, err := service.users.ExistsByNormalizedEmail(email)
	if err != nil {
		return models.User{}, "", err
	}
	if exists {
		return models.User{}, "", ErrEmailTaken
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, "", err
	}

	recoveryCode, err := security.GenerateRecoveryCode()
	if err != nil {
		return models.User{}, "", err
	}
	recoveryHash, err := bcrypt.GenerateFromPassword([]byte(security.NormalizeRecoveryCode(recoveryCode)), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, "", err
	}

	user := models.User{
		Email:            email,
		PasswordHash:     string(passwordHash),
		RecoveryCodeHash: string(recoveryHash),
		CreatedAt:        time.Now(),
	}
	if err := service.users.Create(&user); err != nil {
		return models.User{}, "", err
	}
	return user, recoveryCode, nil
}

// Authenticate verifies an email and password pair. It returns
// ErrAuthCredentialsInvalid for unknown emails and wrong passwords alike.
func (service *AuthService) Authenticate(emailRaw string, passwordRaw string) (models.User, error) {
	email, password, err := NormalizeCredentialsInput(emailRaw, passwordRaw)
	if err != nil {
		return models.User{}, err
	}

	user, found, err := service.users.FindByNormalizedEmail(email)
	if err != nil {
		return models.User{}, err
	}
	if !found {
		return models.User{}, ErrAuthCredentialsInvalid
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.User{}, ErrAuthCredentialsInvalid
	}
	return user, nil
}

// AuthenticateByRecoveryCode resets the password for the account whose
// recovery code matches and returns the updated user.
func (service *AuthService) AuthenticateByRecoveryCode(codeRaw string, newPasswordRaw string) (models.User, error) {
	code := security.NormalizeRecoveryCode(codeRaw)
	newPassword := strings.TrimSpace(newPasswordRaw)
	if code == "" || newPassword == "" {
		return models.User{}, ErrAuthCredentialsInvalid
	}
	if err := ValidatePasswordStrength(newPassword); err != nil {
		return models.User{}, err
	}

	user, err := service.findUserByRecoveryCode(code)
	if err != nil {
		return models.User{}, err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}
	user.PasswordHash = string(passwordHash)
	if err := service.users.Save(user); err != nil {
		return models.User{}, err
	}
	return *user, nil
}

func (service *AuthService) FindByID(userID uint) (models.User, bool, error) {
	return service.users.FindByID(userID)
}

func (service *AuthService) findUserByRecoveryCode(code string) (*models.User, error) {
	users, err := service.users.ListWithRecoveryCodeHash()
	if err != nil {
		return nil, err
	}

	for index := range users {
		hash := strings.TrimSpace(users[index].RecoveryCodeHash)
		if hash == "" {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)) == nil {
			return &users[index], nil
		}
	}
	return nil, ErrRecoveryCodeNotFound
}

func NormalizeAuthEmail(raw string) string {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return ""
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return ""
	}
	return email
}

func NormalizeCredentialsInput(emailRaw string, passwordRaw string) (string, string, error) {
	email := NormalizeAuthEmail(emailRaw)
	password := strings.TrimSpace(passwordRaw)
	if email == "" || password == "" {
		return "", "", ErrAuthCredentialsInvalid
	}
	return email, password, nil
}

func ValidatePasswordStrength(password string) error {
	if len([]rune(password)) < 8 {
		return ErrWeakPassword
	}

	hasUpper := false
	hasLower := false
	hasDigit := false
	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsDigit(char):
			hasDigit = true
		}
	}

	if hasUpper && hasLower && hasDigit {
		return nil
	}
	return ErrWeakPassword
}
