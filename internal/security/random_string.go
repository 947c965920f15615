package security

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
)

// recoveryCodeAlphabet avoids ambiguous characters such as 0/O and 1/I.
const recoveryCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const (
	recoveryCodeGroups    = 3
	recoveryCodeGroupSize = 4
)

var (
	errNegativeLength = errors.New("length must be non-negative")
	errEmptyAlphabet  = errors.New("alphabet must not be empty")
)

// RandomString returns a cryptographically secure, unbiased string of the requested length.
func RandomString(length int, alphabet string) (string, error) {
	if length < 0 {
		return "", errNegativeLength
	}
	if length == 0 {
		return "", nil
	}
	if len(alphabet) == 0 {
		return "", errEmptyAlphabet
	}

	limit := big.NewInt(int64(len(alphabet)))
	value := make([]byte, length)
	for index := range value {
		position, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		value[index] = alphabet[position.Int64()]
	}

	return string(value), nil
}

// GenerateRecoveryCode returns a human-friendly code such as "K7QP-M2XW-9RTN".
func GenerateRecoveryCode() (string, error) {
	groups := make([]string, recoveryCodeGroups)
	for index := range groups {
		group, err := RandomString(recoveryCodeGroupSize, recoveryCodeAlphabet)
		if err != nil {
			return "", err
		}
		groups[index] = group
	}
	return strings.Join(groups, "-"), nil
}

// NormalizeRecoveryCode strips separators and whitespace so user input
// compares equal regardless of how the code was typed.
func NormalizeRecoveryCode(code string) string {
	cleaned := strings.Map(func(char rune) rune {
		switch char {
		case '-', ' ', '\t':
			return -1
		}
		return char
	}, code)
	return strings.ToUpper(cleaned)
}
