package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// Verifier checks raw credentials against stored hashes. Credential
// storage itself lives in the repo layer.
type Verifier interface {
	HashPassword(pswd string) (string, error)
	ComparePasswords(hashed, pswd []byte) error
}

type Core struct{}

func New() *Core {
	return &Core{}
}

func (c *Core) HashPassword(pswd string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(pswd), bcrypt.DefaultCost)
	return string(bytes), err
}

func (c *Core) ComparePasswords(hashed, pswd []byte) error {
	if err := bcrypt.CompareHashAndPassword(hashed, pswd); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}
