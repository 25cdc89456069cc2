package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword is used to provision the operator credential
// (ADMIN_PASSWORD_HASH); the server itself only verifies.
func HashPassword(raw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	return string(b), err
}

func CheckPassword(hash, raw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(raw)) == nil
}
