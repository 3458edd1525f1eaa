package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/civic-reports/internal/domain/entity"
	repo "github.com/oksasatya/civic-reports/internal/domain/repository"
	"github.com/oksasatya/civic-reports/pkg/mailer"
	mailtpl "github.com/oksasatya/civic-reports/pkg/mailer/templates"
	"github.com/oksasatya/civic-reports/pkg/validation"
)

const MsgMissingCredentials = "Missing credentials"

// EmailQueue publishes email jobs for the worker.
type EmailQueue interface {
	PublishJSON(ctx context.Context, body any) error
}

type AccountService struct {
	Repo      repo.AccountRepository
	Passwords PasswordPolicy
	Queue     EmailQueue // optional
	Brand     mailtpl.Brand
	Logger    *logrus.Logger
	Now       func() time.Time
}

func NewAccountService(r repo.AccountRepository, passwords PasswordPolicy, queue EmailQueue, brand mailtpl.Brand, logger *logrus.Logger) *AccountService {
	if passwords == nil {
		passwords = PlaintextPasswords{}
	}
	return &AccountService{
		Repo:      r,
		Passwords: passwords,
		Queue:     queue,
		Brand:     brand,
		Logger:    logger,
		Now:       time.Now,
	}
}

type SignUpInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	Phone    string `json:"phone"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// SignUp registers a new account keyed by email and returns its public view.
func (s *AccountService) SignUp(ctx context.Context, in SignUpInput) (*entity.PublicAccount, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	if strings.TrimSpace(in.Password) == "" {
		in.Password = ""
	}
	if err := validation.Struct(in); err != nil {
		return nil, &ValidationError{Message: MsgMissingFields, Fields: validation.ToDetails(err)}
	}

	existing, err := s.Repo.GetByEmail(ctx, in.Email)
	switch {
	case err == nil && existing != nil:
		return nil, ErrAccountExists
	case err != nil && !errors.Is(err, repo.ErrNotFound):
		s.logError("lookup account failed", err, in.Email)
		return nil, storeErr("lookup account", err)
	}

	sealed, err := s.Passwords.Seal(in.Password)
	if err != nil {
		return nil, err
	}
	a := &entity.Account{
		Name:      in.Name,
		Email:     in.Email,
		Password:  sealed,
		Phone:     in.Phone,
		CreatedAt: s.Now().UTC().Truncate(time.Millisecond),
	}
	if err := s.Repo.Create(ctx, a); err != nil {
		s.logError("create account failed", err, in.Email)
		return nil, storeErr("create account", err)
	}

	s.enqueueWelcome(ctx, a)

	pub := a.Public()
	return &pub, nil
}

// Authenticate checks credentials. Unknown email and wrong password both
// yield ErrInvalidCredentials.
func (s *AccountService) Authenticate(ctx context.Context, in LoginInput) (*entity.PublicAccount, error) {
	in.Email = strings.TrimSpace(in.Email)
	if in.Email == "" || in.Password == "" {
		return nil, &ValidationError{Message: MsgMissingCredentials}
	}

	a, err := s.Repo.GetByEmail(ctx, in.Email)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		s.logError("lookup account failed", err, in.Email)
		return nil, storeErr("lookup account", err)
	}
	if !s.Passwords.Matches(a.Password, in.Password) {
		return nil, ErrInvalidCredentials
	}
	pub := a.Public()
	return &pub, nil
}

func (s *AccountService) enqueueWelcome(ctx context.Context, a *entity.Account) {
	if s.Queue == nil {
		return
	}
	job := mailer.EmailJob{
		To:       a.Email,
		Template: mailtpl.Welcome,
		Data:     mailtpl.NewWelcomeData(s.Brand, a.Name, a.Email, mailtpl.WithTime(a.CreatedAt)),
	}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := s.Queue.PublishJSON(c, job); err != nil {
		s.logError("enqueue welcome email failed", err, a.Email)
	}
}

func (s *AccountService) logError(msg string, err error, email string) {
	if s.Logger == nil {
		return
	}
	s.Logger.WithError(err).WithField("email", email).Error(msg)
}
