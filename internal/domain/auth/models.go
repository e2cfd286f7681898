package auth

// User is the account as it is shown to clients and kept in the session.
// Credentials never leave the directory.
type User struct {
	ID         int64  `json:"id" yaml:"id"`
	Name       string `json:"name" yaml:"name"`
	Email      string `json:"email" yaml:"email"`
	Role       string `json:"role" yaml:"role"`
	Avatar     string `json:"avatar,omitempty" yaml:"avatar"`
	Department string `json:"department" yaml:"department"`
	Position   string `json:"position" yaml:"position"`
	Phone      string `json:"phone,omitempty" yaml:"phone"`
	MFAEnabled bool   `json:"mfaEnabled" yaml:"-"`
}

// SeedUser is a fixture entry with its plaintext password.
type SeedUser struct {
	User       `yaml:",inline"`
	Password   string `yaml:"password"`
	TOTPSecret string `yaml:"totpSecret"`
}

// Profile is the part of a user that can edit themselves.
type Profile struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Department string `json:"department"`
	Position   string `json:"position"`
}

type account struct {
	user       User
	hash       string
	totpSecret string
}

func (a account) RecordID() int64 { return a.user.ID }

func (a account) WithID(id int64) account {
	a.user.ID = id
	return a
}
