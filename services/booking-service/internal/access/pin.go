package access

import (
	"crypto/rand"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

const pinLength = 6

// GeneratePIN returns a numeric door code. Leading zeros are kept, so every
// code is exactly pinLength digits.
func GeneratePIN() (string, error) {
	digits := make([]byte, pinLength)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}

// HashPIN stores the code bcrypt-hashed. The plaintext travels only in the
// reservation-created event for the door controller and the confirmation mail.
func HashPIN(pin string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func VerifyPIN(hash, pin string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin)) == nil
}
