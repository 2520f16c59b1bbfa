// Package password wraps bcrypt for one-way credential hashing. bcrypt
// embeds a random salt in every hash and compares in constant time.
package password

import "golang.org/x/crypto/bcrypt"

// MinLength is the minimum accepted plaintext password length.
const MinLength = 6

// Hash derives a salted bcrypt hash from plain.
func Hash(plain string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// Verify reports whether plain matches hash.
func Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
