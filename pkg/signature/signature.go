// Package signature authenticates payment gateway callbacks.
//
// The gateway signs orderID + "|" + paymentID with HMAC-SHA256 under a secret
// shared with this service and sends the digest as lowercase hex.
package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

const separator = "|"

type VerifierInterface interface {
	Verify(orderID, paymentID, signature string) bool
}

type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

func (v *Verifier) Sign(orderID, paymentID string) string {
	return sign(orderID, paymentID, v.secret)
}

func (v *Verifier) Verify(orderID, paymentID, signature string) bool {
	return verify(orderID, paymentID, signature, v.secret)
}

// Verify checks signature against the digest of orderID and paymentID under secret.
func Verify(orderID, paymentID, signature, secret string) bool {
	return verify(orderID, paymentID, signature, []byte(secret))
}

func Sign(orderID, paymentID, secret string) string {
	return sign(orderID, paymentID, []byte(secret))
}

func sign(orderID, paymentID string, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(orderID + separator + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func verify(orderID, paymentID, signature string, secret []byte) bool {
	expected := sign(orderID, paymentID, secret)
	return hmac.Equal([]byte(expected), []byte(signature))
}
