package service

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/classpress/forumcore/internal/model"
	"github.com/classpress/forumcore/internal/repository"
	"github.com/classpress/forumcore/pkg/apperror"
)

const (
	invitationCodeLength = 6
	passcodeLength       = 10
	passcodeCharset      = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// EmailValidator is the external email-syntax predicate invoked before an
// invitation is issued. It returns nil for acceptable input.
type EmailValidator func(email string) error

func defaultEmailValidator(email string) error {
	if err := validate.Var(email, "required,email"); err != nil {
		return apperror.New("invalid email address", apperror.ErrInvalidInput)
	}
	return nil
}

// AccessService manages the two ephemeral credential flows: invitation
// codes binding an email to a role, and one-time passcodes for password
// reset. It also owns the expiry sweep.
type AccessService interface {
	IssueInvitation(ctx context.Context, email string, role model.Role) (string, error)
	Redeem(ctx context.Context, code string) (email string, role model.Role, err error)
	IssueOTP(ctx context.Context, email string) (string, error)
	ValidateOTP(ctx context.Context, email, passcode string) (bool, error)
	ConsumeOTP(ctx context.Context, passcode string) error
	SweepExpired(ctx context.Context) error
}

type accessService struct {
	repo          repository.CodeRepository
	ttl           time.Duration
	validateEmail EmailValidator
}

// NewAccessService wires the code store with the configured TTL. Passing a
// nil validator selects the built-in predicate.
func NewAccessService(repo repository.CodeRepository, ttl time.Duration, validateEmail EmailValidator) AccessService {
	if validateEmail == nil {
		validateEmail = defaultEmailValidator
	}
	return &accessService{repo: repo, ttl: ttl, validateEmail: validateEmail}
}

// IssueInvitation stores and returns a short code for the email/role pair.
// The code is a truncated random UUID, kept for compatibility with codes
// already in circulation.
func (s *accessService) IssueInvitation(ctx context.Context, email string, role model.Role) (string, error) {
	if err := s.validateEmail(email); err != nil {
		return "", err
	}
	switch role {
	case model.RoleAdmin, model.RoleStudent, model.RoleStaff:
	default:
		return "", apperror.New("unknown role "+string(role), apperror.ErrInvalidInput)
	}

	inv := &model.InvitationCode{
		Code:      uuid.NewString()[:invitationCodeLength],
		Email:     email,
		Role:      string(role),
		CreatedAt: time.Now(),
	}
	if err := s.repo.CreateInvitation(ctx, inv); err != nil {
		return "", err
	}
	return inv.Code, nil
}

// Redeem hands back the email and role bound to the code and deletes the
// row; a second redeem of the same code reports ErrNotFound.
func (s *accessService) Redeem(ctx context.Context, code string) (string, model.Role, error) {
	inv, err := s.repo.FindInvitation(ctx, code)
	if err != nil {
		return "", "", err
	}
	deleted, err := s.repo.DeleteInvitation(ctx, code)
	if err != nil {
		return "", "", err
	}
	if deleted == 0 {
		return "", "", apperror.ErrNotFound
	}
	return inv.Email, model.Role(inv.Role), nil
}

// IssueOTP draws a fresh passcode from crypto/rand and upserts it by
// email, replacing any earlier passcode for the same address.
func (s *accessService) IssueOTP(ctx context.Context, email string) (string, error) {
	if err := s.validateEmail(email); err != nil {
		return "", err
	}
	passcode, err := generatePasscode(passcodeLength)
	if err != nil {
		return "", err
	}
	if err := s.repo.UpsertPasscode(ctx, email, passcode); err != nil {
		return "", err
	}
	return passcode, nil
}

// ValidateOTP reports whether the passcode on file for the email matches.
// A missing row is simply false, not an error.
func (s *accessService) ValidateOTP(ctx context.Context, email, passcode string) (bool, error) {
	otp, err := s.repo.FindPasscode(ctx, email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return otp.Passcode != "" && otp.Passcode == passcode, nil
}

func (s *accessService) ConsumeOTP(ctx context.Context, passcode string) error {
	deleted, err := s.repo.DeletePasscode(ctx, passcode)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return apperror.ErrNotFound
	}
	return nil
}

// SweepExpired drops invitation codes and passcodes older than the TTL.
// Intended to run at session start; safe to call any number of times.
func (s *accessService) SweepExpired(ctx context.Context) error {
	return s.repo.DeleteExpired(ctx, time.Now().Add(-s.ttl))
}

func generatePasscode(length int) (string, error) {
	max := big.NewInt(int64(len(passcodeCharset)))
	b := make([]byte, length)
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", errors.Join(apperror.ErrInternal, err)
		}
		b[i] = passcodeCharset[n.Int64()]
	}
	return string(b), nil
}
