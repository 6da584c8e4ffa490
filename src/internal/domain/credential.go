package domain

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/pbkdf2"
)

// Credential hashing parameters. The salt is install-wide rather than
// per-credential: stored hashes must be reproducible from the plaintext alone
// so a fresh load from durable storage still authenticates.
var credentialSalt = []byte("bugginho-atm.credential.v1")

const (
	credentialIterations = 4096
	credentialKeyLength  = 32
)

// HashCredential derives the stored one-way hash for a plaintext password.
// Deterministic: the same plaintext always yields the same hash.
func HashCredential(plain string) string {
	key := pbkdf2.Key([]byte(plain), credentialSalt, credentialIterations, credentialKeyLength, sha256.New)
	return hex.EncodeToString(key)
}

// Authenticate compares the hash of plain against the stored credential hash
// in constant time, records the outcome as the session authentication state
// and returns it. There is no lockout here; attempt limits belong to the
// caller.
func (a *Account) Authenticate(plain string) bool {
	computed := HashCredential(plain)
	a.authenticated = subtle.ConstantTimeCompare([]byte(computed), []byte(a.credentialHash)) == 1
	return a.authenticated
}
