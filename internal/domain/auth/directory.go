package auth

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"hrconnect/internal/auth"
	"hrconnect/internal/domain/employee"
	"hrconnect/internal/domain/record"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrMFARequired        = errors.New("mfa code required")
	ErrMFAInvalid         = errors.New("invalid mfa code")
	ErrMissingFields      = errors.New("name and email are required")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrEmailTaken         = errors.New("email already in use")
	ErrInvalidRole        = errors.New("invalid role")
)

// Directory is the static user table. Passwords are hashed when it is built.
type Directory struct {
	accounts *record.Store[account]
	log      *zap.Logger
}

func NewDirectory(seed []SeedUser, cost int, log *zap.Logger) (*Directory, error) {
	if log == nil {
		log = zap.NewNop()
	}
	accounts := make([]account, 0, len(seed))
	for _, s := range seed {
		if !ValidRole(s.Role) {
			return nil, fmt.Errorf("user %s: %w", s.Email, ErrInvalidRole)
		}
		hash, err := auth.HashPassword(s.Password, cost)
		if err != nil {
			return nil, fmt.Errorf("hash password for %s: %w", s.Email, err)
		}
		u := s.User
		u.MFAEnabled = s.TOTPSecret != ""
		accounts = append(accounts, account{user: u, hash: hash, totpSecret: s.TOTPSecret})
	}
	return &Directory{accounts: record.New(accounts), log: log}, nil
}

// Authenticate looks the email up exactly and checks the password, then the
// TOTP code for users that have one configured.
func (d *Directory) Authenticate(email, password, code string) (User, error) {
	acc, ok := d.byEmail(email)
	if !ok {
		return User{}, ErrInvalidCredentials
	}
	if err := auth.CheckPassword(acc.hash, password); err != nil {
		return User{}, ErrInvalidCredentials
	}
	if acc.totpSecret != "" {
		if code == "" {
			return User{}, ErrMFARequired
		}
		if !auth.ValidateTOTP(code, acc.totpSecret) {
			d.log.Warn("mfa code rejected", zap.Int64("userId", acc.user.ID))
			return User{}, ErrMFAInvalid
		}
	}
	return acc.user, nil
}

func (d *Directory) Get(id int64) (User, error) {
	acc, err := d.accounts.Get(id)
	if err != nil {
		return User{}, err
	}
	return acc.user, nil
}

func (d *Directory) UpdateProfile(id int64, p Profile) (User, error) {
	p.Name = strings.TrimSpace(p.Name)
	p.Email = strings.TrimSpace(p.Email)
	if p.Name == "" || p.Email == "" {
		return User{}, ErrMissingFields
	}
	if !employee.ValidEmail(p.Email) {
		return User{}, ErrInvalidEmail
	}
	updated, err := d.accounts.ModifyAmong(id, func(acc account, all []account) (account, error) {
		for _, other := range all {
			if other.user.ID != id && other.user.Email == p.Email {
				return acc, ErrEmailTaken
			}
		}
		acc.user.Name = p.Name
		acc.user.Email = p.Email
		acc.user.Phone = p.Phone
		acc.user.Department = p.Department
		acc.user.Position = p.Position
		return acc, nil
	})
	if err != nil {
		return User{}, err
	}
	return updated.user, nil
}

// EnableTOTP turns on MFA for the user once code proves the authenticator
// holds secret. The returned user carries the new MFA flag.
func (d *Directory) EnableTOTP(id int64, secret, code string) (User, error) {
	if !auth.ValidateTOTP(code, secret) {
		return User{}, ErrMFAInvalid
	}
	updated, err := d.accounts.Update(id, func(acc account) account {
		acc.totpSecret = secret
		acc.user.MFAEnabled = true
		return acc
	})
	if err != nil {
		return User{}, err
	}
	d.log.Info("mfa enabled", zap.Int64("userId", id))
	return updated.user, nil
}

func (d *Directory) DisableTOTP(id int64) (User, error) {
	updated, err := d.accounts.Update(id, func(acc account) account {
		acc.totpSecret = ""
		acc.user.MFAEnabled = false
		return acc
	})
	if err != nil {
		return User{}, err
	}
	return updated.user, nil
}

func (d *Directory) byEmail(email string) (account, bool) {
	for _, acc := range d.accounts.List() {
		if acc.user.Email == email {
			return acc, true
		}
	}
	return account{}, false
}
