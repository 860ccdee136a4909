package service

import "golang.org/x/crypto/bcrypt"

// HashPassword derives a salted adaptive hash of the password. The salt is
// generated per call and embedded in the output, so hashing the same password
// twice yields different strings that both verify.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored hash. A mismatch
// is a false return, never an error.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
