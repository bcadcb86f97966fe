package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"strings"
)

const (
	selectorBytes = 16
	verifierBytes = 32
)

var ErrMalformedResetToken = errors.New("malformed reset token")

// GenerateResetToken creates a new recovery token. The raw form handed out
// by email is "<selector>.<verifier>"; only the selector and the SHA-256 of
// the verifier are meant to be stored.
func GenerateResetToken() (raw, selector, verifierHash string, err error) {
	buf := make([]byte, selectorBytes+verifierBytes)
	if _, err = rand.Read(buf); err != nil {
		return "", "", "", err
	}

	selector = hex.EncodeToString(buf[:selectorBytes])
	verifier := hex.EncodeToString(buf[selectorBytes:])

	return selector + "." + verifier, selector, HashResetVerifier(verifier), nil
}

// SplitResetToken separates the raw token into its selector and verifier.
func SplitResetToken(raw string) (selector, verifier string, err error) {
	parts := strings.SplitN(raw, ".", 2)
	if len(parts) != 2 {
		return "", "", ErrMalformedResetToken
	}
	if len(parts[0]) != selectorBytes*2 || len(parts[1]) != verifierBytes*2 {
		return "", "", ErrMalformedResetToken
	}
	return parts[0], parts[1], nil
}

func HashResetVerifier(verifier string) string {
	sum := sha256.Sum256([]byte(verifier))
	return hex.EncodeToString(sum[:])
}

// VerifyResetVerifier compares in constant time the supplied verifier
// against the stored hash.
func VerifyResetVerifier(verifier, storedHash string) bool {
	computed := HashResetVerifier(verifier)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(storedHash)) == 1
}
