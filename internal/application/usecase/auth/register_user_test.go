package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

type stubUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newStubUserRepo(users ...*entity.User) *stubUserRepo {
	r := &stubUserRepo{users: make(map[uuid.UUID]*entity.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *stubUserRepo) Create(_ context.Context, u *entity.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domainerror.ErrUserNotFound
	}
	return u, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domainerror.ErrUserNotFound
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, domainerror.ErrUserNotFound
}

func (r *stubUserRepo) Update(_ context.Context, u *entity.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	return err == nil, nil
}

func (r *stubUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := r.FindByUsername(ctx, username)
	return err == nil, nil
}

// stubPasswordService hashes by prefixing and accepts any password of at
// least 8 characters.
type stubPasswordService struct{}

func (stubPasswordService) HashPassword(password string) (string, error) {
	return "hashed:" + password, nil
}

func (stubPasswordService) VerifyPassword(hashedPassword, password string) error {
	if hashedPassword != "hashed:"+password {
		return domainerror.ErrInvalidCredentials
	}
	return nil
}

func (stubPasswordService) ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return domainerror.ErrWeakPassword
	}
	return nil
}

type stubVerificationTokenService struct {
	issued      map[string]*adapter.OneTimeToken
	invalidated []string
}

func newStubVerificationTokenService() *stubVerificationTokenService {
	return &stubVerificationTokenService{issued: make(map[string]*adapter.OneTimeToken)}
}

func (s *stubVerificationTokenService) GenerateVerificationToken(_ context.Context, userID uuid.UUID, email string) (*adapter.OneTimeToken, error) {
	t := &adapter.OneTimeToken{
		Token:     uuid.NewString(),
		UserID:    userID,
		Email:     email,
		ExpiresAt: time.Now().UTC().Add(24 * time.Hour),
	}
	s.issued[t.Token] = t
	return t, nil
}

func (s *stubVerificationTokenService) ValidateVerificationToken(_ context.Context, token string) (*adapter.OneTimeToken, error) {
	t, ok := s.issued[token]
	if !ok {
		return nil, domainerror.ErrInvalidVerificationToken
	}
	return t, nil
}

func (s *stubVerificationTokenService) InvalidateVerificationToken(_ context.Context, token string) error {
	delete(s.issued, token)
	s.invalidated = append(s.invalidated, token)
	return nil
}

type stubEmailService struct {
	resetQueued        []adapter.QueuePasswordResetInput
	verificationQueued []adapter.QueueEmailVerificationInput
}

func (s *stubEmailService) QueuePasswordResetEmail(_ context.Context, input adapter.QueuePasswordResetInput) error {
	s.resetQueued = append(s.resetQueued, input)
	return nil
}

func (s *stubEmailService) QueueEmailVerificationEmail(_ context.Context, input adapter.QueueEmailVerificationInput) error {
	s.verificationQueued = append(s.verificationQueued, input)
	return nil
}

type stubCategorySeeder struct {
	seeded []uuid.UUID
}

func (s *stubCategorySeeder) Execute(_ context.Context, userID uuid.UUID) error {
	s.seeded = append(s.seeded, userID)
	return nil
}

func TestRegisterUser(t *testing.T) {
	ctx := context.Background()

	validInput := RegisterUserInput{
		Username: "alice_w",
		Email:    "alice@example.com",
		FullName: "Alice Walker",
		Password: "Str0ng!Pass",
	}

	newUseCase := func(repo *stubUserRepo) (*RegisterUserUseCase, *stubEmailService, *stubCategorySeeder) {
		emails := &stubEmailService{}
		seeder := &stubCategorySeeder{}
		uc := NewRegisterUserUseCase(
			repo,
			stubPasswordService{},
			newStubVerificationTokenService(),
			emails,
			seeder,
			"https://app.example.com",
		)
		return uc, emails, seeder
	}

	t.Run("creates an unverified user, seeds categories and queues the email", func(t *testing.T) {
		repo := newStubUserRepo()
		uc, emails, seeder := newUseCase(repo)

		out, err := uc.Execute(ctx, validInput)
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if out.User.EmailVerified {
			t.Error("new user should not be verified")
		}
		if out.User.PasswordHash != "hashed:Str0ng!Pass" {
			t.Errorf("PasswordHash = %q", out.User.PasswordHash)
		}
		if len(seeder.seeded) != 1 || seeder.seeded[0] != out.User.ID {
			t.Errorf("seeded = %v, want [%s]", seeder.seeded, out.User.ID)
		}
		if len(emails.verificationQueued) != 1 {
			t.Fatalf("verification emails queued = %d, want 1", len(emails.verificationQueued))
		}
		queued := emails.verificationQueued[0]
		if queued.UserEmail != validInput.Email {
			t.Errorf("queued email = %q, want %q", queued.UserEmail, validInput.Email)
		}
	})

	t.Run("validation failures", func(t *testing.T) {
		tests := []struct {
			name    string
			mutate  func(*RegisterUserInput)
			wantErr error
		}{
			{"empty username", func(in *RegisterUserInput) { in.Username = "" }, nil},
			{"short username", func(in *RegisterUserInput) { in.Username = "ab1" }, domainerror.ErrInvalidUsername},
			{"username starting with digit", func(in *RegisterUserInput) { in.Username = "1alice" }, domainerror.ErrInvalidUsername},
			{"username with spaces", func(in *RegisterUserInput) { in.Username = "alice w" }, domainerror.ErrInvalidUsername},
			{"bad email", func(in *RegisterUserInput) { in.Email = "not-an-email" }, domainerror.ErrInvalidEmail},
			{"weak password", func(in *RegisterUserInput) { in.Password = "short" }, domainerror.ErrWeakPassword},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				uc, _, _ := newUseCase(newStubUserRepo())
				input := validInput
				tt.mutate(&input)
				_, err := uc.Execute(ctx, input)
				if err == nil {
					t.Fatal("Execute() error = nil, want error")
				}
				if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
					t.Errorf("Execute() error = %v, want %v", err, tt.wantErr)
				}
			})
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		existing := entity.NewUser("someone", validInput.Email, "Someone", "hashed:x")
		uc, _, _ := newUseCase(newStubUserRepo(existing))

		_, err := uc.Execute(ctx, validInput)
		if !errors.Is(err, domainerror.ErrEmailAlreadyExists) {
			t.Errorf("Execute() error = %v, want ErrEmailAlreadyExists", err)
		}
	})

	t.Run("duplicate username", func(t *testing.T) {
		existing := entity.NewUser(validInput.Username, "other@example.com", "Other", "hashed:x")
		uc, _, _ := newUseCase(newStubUserRepo(existing))

		_, err := uc.Execute(ctx, validInput)
		if !errors.Is(err, domainerror.ErrUsernameAlreadyExists) {
			t.Errorf("Execute() error = %v, want ErrUsernameAlreadyExists", err)
		}
	})
}
