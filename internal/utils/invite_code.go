package utils

import (
	"crypto/rand"
	"fmt"
)

// inviteCodeAlphabet excludes nothing: codes are case-normalized on input,
// so the full uppercase alphanumeric set is fine.
const inviteCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// InviteCodeLength is the length of generated project invite codes.
// The schema allows 6-8 characters.
const InviteCodeLength = 6

// GenerateInviteCode produces a random uppercase alphanumeric invite code.
// Uniqueness is enforced by the store constraint; callers retry on conflict.
func GenerateInviteCode() (string, error) {
	b := make([]byte, InviteCodeLength)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes for invite code: %w", err)
	}
	for i := range b {
		b[i] = inviteCodeAlphabet[int(b[i])%len(inviteCodeAlphabet)]
	}
	return string(b), nil
}
