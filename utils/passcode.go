package utils

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// PasscodeChecker verifies the blog admin passcode, preferring a bcrypt
// hash when one is configured.
type PasscodeChecker struct {
	plain string
	hash  []byte
}

func NewPasscodeChecker(plain, hash string) *PasscodeChecker {
	c := &PasscodeChecker{plain: plain}
	if hash != "" {
		c.hash = []byte(hash)
	}
	return c
}

// Configured reports whether any passcode has been set.
func (c *PasscodeChecker) Configured() bool {
	return c.plain != "" || len(c.hash) > 0
}

func (c *PasscodeChecker) Check(input string) bool {
	if input == "" || !c.Configured() {
		return false
	}
	if len(c.hash) > 0 {
		return bcrypt.CompareHashAndPassword(c.hash, []byte(input)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(c.plain), []byte(input)) == 1
}

func HashPasscode(passcode string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(passcode), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}
