package auth

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt.MinCost keeps these tests fast; the logic is identical at any cost.
func newTestPasswords() *PasswordService {
	return NewPasswordServiceForTest(bcrypt.MinCost)
}

func TestHashAndVerify(t *testing.T) {
	ps := newTestPasswords()

	hash, err := ps.Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Fatal("Hash() returned the plaintext")
	}

	if err := ps.Verify(hash, "correct horse battery staple"); err != nil {
		t.Errorf("Verify() with correct password error = %v", err)
	}
	if err := ps.Verify(hash, "wrong password"); err == nil {
		t.Error("Verify() with wrong password should fail")
	}
}

func TestHash_SaltsDiffer(t *testing.T) {
	ps := newTestPasswords()

	h1, err := ps.Hash("same password")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	h2, err := ps.Hash("same password")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if h1 == h2 {
		t.Error("two hashes of the same password are identical — salting is broken")
	}
}

func TestHash_RejectsOverlongPassword(t *testing.T) {
	ps := newTestPasswords()

	if _, err := ps.Hash(strings.Repeat("x", 73)); err == nil {
		t.Error("expected error for a password over 72 bytes")
	}
}
