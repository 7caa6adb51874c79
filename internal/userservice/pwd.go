package userservice

import (
	"golang.org/x/crypto/bcrypt"
)

const passwordCost = 12

func (p *Password) set(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), passwordCost)
	if err != nil {
		return err
	}

	p.Plain = pwd
	p.hash = hash

	return nil
}

// matches reports whether pwd hashes to p. Any bcrypt failure, including a malformed
// stored hash, is a mismatch.
func (p *Password) matches(pwd string) bool {
	return bcrypt.CompareHashAndPassword(p.hash, []byte(pwd)) == nil
}
