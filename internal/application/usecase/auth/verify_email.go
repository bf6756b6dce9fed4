// Package auth contains authentication-related use cases.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/expense-tracker/backend/internal/application/adapter"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// VerifyEmailInput represents the input for email verification.
type VerifyEmailInput struct {
	Token string
}

// VerifyEmailOutput represents the output of email verification.
type VerifyEmailOutput struct {
	Message string
}

// VerifyEmailUseCase handles email verification logic.
type VerifyEmailUseCase struct {
	userRepo                 adapter.UserRepository
	verificationTokenService adapter.EmailVerificationTokenService
	now                      func() time.Time
}

// NewVerifyEmailUseCase creates a new VerifyEmailUseCase instance.
func NewVerifyEmailUseCase(
	userRepo adapter.UserRepository,
	verificationTokenService adapter.EmailVerificationTokenService,
) *VerifyEmailUseCase {
	return &VerifyEmailUseCase{
		userRepo:                 userRepo,
		verificationTokenService: verificationTokenService,
		now:                      time.Now,
	}
}

// Execute performs the email verification. Verifying an already verified
// account is a no-op success.
func (uc *VerifyEmailUseCase) Execute(ctx context.Context, input VerifyEmailInput) (*VerifyEmailOutput, error) {
	token, err := uc.verificationTokenService.ValidateVerificationToken(ctx, input.Token)
	if err != nil {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidVerificationToken,
			"invalid or expired verification token",
			domainerror.ErrInvalidVerificationToken,
		)
	}

	if uc.now().UTC().After(token.ExpiresAt) {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidVerificationToken,
			"verification token has expired",
			domainerror.ErrInvalidVerificationToken,
		)
	}

	user, err := uc.userRepo.FindByID(ctx, token.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !user.EmailVerified {
		user.MarkEmailVerified(uc.now())
		if err := uc.userRepo.Update(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to mark email verified: %w", err)
		}
	}

	if err := uc.verificationTokenService.InvalidateVerificationToken(ctx, input.Token); err != nil {
		// The account is verified either way.
		slog.Warn("Failed to invalidate verification token", "error", err, "userID", user.ID)
	}

	return &VerifyEmailOutput{
		Message: "Email address verified. You can now log in",
	}, nil
}
