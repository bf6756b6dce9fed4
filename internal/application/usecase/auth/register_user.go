// Package auth contains authentication-related use cases.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// CategorySeeder creates the default category set for a new user.
type CategorySeeder interface {
	Execute(ctx context.Context, userID uuid.UUID) error
}

// RegisterUserInput represents the input for user registration.
type RegisterUserInput struct {
	Username string
	Email    string
	FullName string
	Password string
}

// RegisterUserOutput represents the output of user registration.
type RegisterUserOutput struct {
	User    *entity.User
	Message string
}

// RegisterUserUseCase handles user registration logic.
type RegisterUserUseCase struct {
	userRepo                 adapter.UserRepository
	passwordService          adapter.PasswordService
	verificationTokenService adapter.EmailVerificationTokenService
	emailService             adapter.EmailService
	categorySeeder           CategorySeeder
	appBaseURL               string
}

// NewRegisterUserUseCase creates a new RegisterUserUseCase instance.
func NewRegisterUserUseCase(
	userRepo adapter.UserRepository,
	passwordService adapter.PasswordService,
	verificationTokenService adapter.EmailVerificationTokenService,
	emailService adapter.EmailService,
	categorySeeder CategorySeeder,
	appBaseURL string,
) *RegisterUserUseCase {
	return &RegisterUserUseCase{
		userRepo:                 userRepo,
		passwordService:          passwordService,
		verificationTokenService: verificationTokenService,
		emailService:             emailService,
		categorySeeder:           categorySeeder,
		appBaseURL:               appBaseURL,
	}
}

// Execute performs the user registration. The account starts unverified and
// a verification email is queued; login is blocked until the link is used.
func (uc *RegisterUserUseCase) Execute(ctx context.Context, input RegisterUserInput) (*RegisterUserOutput, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)
	input.FullName = strings.TrimSpace(input.FullName)

	if input.Username == "" || input.Email == "" || input.Password == "" {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeMissingFields,
			"username, email and password are required",
			nil,
		)
	}

	if !isValidUsername(input.Username) {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidUsername,
			"invalid username format",
			domainerror.ErrInvalidUsername,
		)
	}

	if !isValidEmail(input.Email) {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidEmail,
			"invalid email format",
			domainerror.ErrInvalidEmail,
		)
	}

	if err := uc.passwordService.ValidatePasswordStrength(input.Password); err != nil {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeWeakPassword,
			"password does not meet minimum requirements",
			domainerror.ErrWeakPassword,
		)
	}

	exists, err := uc.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeEmailExists,
			"email already exists",
			domainerror.ErrEmailAlreadyExists,
		)
	}

	exists, err = uc.userRepo.ExistsByUsername(ctx, input.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username existence: %w", err)
	}
	if exists {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeUsernameExists,
			"username already exists",
			domainerror.ErrUsernameAlreadyExists,
		)
	}

	passwordHash, err := uc.passwordService.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := entity.NewUser(input.Username, input.Email, input.FullName, passwordHash)

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// Seed the default category set. Registration does not fail if seeding
	// does; the user just starts without defaults.
	if uc.categorySeeder != nil {
		if err := uc.categorySeeder.Execute(ctx, user.ID); err != nil {
			slog.Error("Failed to seed default categories", "error", err, "userID", user.ID)
		}
	}

	uc.sendVerificationEmail(ctx, user)

	return &RegisterUserOutput{
		User:    user,
		Message: "Account created. Check your email to verify your address before logging in",
	}, nil
}

// sendVerificationEmail generates a verification token and queues the email.
// Failures are logged rather than surfaced; the verification flow can be
// retried later.
func (uc *RegisterUserUseCase) sendVerificationEmail(ctx context.Context, user *entity.User) {
	token, err := uc.verificationTokenService.GenerateVerificationToken(ctx, user.ID, user.Email)
	if err != nil {
		slog.Error("Failed to generate verification token", "error", err, "userID", user.ID)
		return
	}

	verifyURL := fmt.Sprintf("%s/verify-email?token=%s", uc.appBaseURL, token.Token)

	if uc.emailService == nil {
		slog.Info("Verification token generated (email service not configured)",
			"userID", user.ID,
			"email", user.Email,
			"verifyURL", verifyURL,
		)
		return
	}

	err = uc.emailService.QueueEmailVerificationEmail(ctx, adapter.QueueEmailVerificationInput{
		UserID:    user.ID.String(),
		UserEmail: user.Email,
		UserName:  user.FullName,
		VerifyURL: verifyURL,
		ExpiresIn: "24 hours",
	})
	if err != nil {
		slog.Error("Failed to queue verification email", "error", err, "userID", user.ID)
		return
	}
	slog.Info("Verification email queued", "userID", user.ID, "email", user.Email)
}

// isValidEmail validates email format using a simple regex.
func isValidEmail(email string) bool {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return emailRegex.MatchString(email)
}

// isValidUsername validates the username format: 4-30 characters, starting
// with a letter or underscore, containing only letters, digits or underscores.
func isValidUsername(username string) bool {
	usernameRegex := regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]{3,29}$`)
	return usernameRegex.MatchString(username)
}
