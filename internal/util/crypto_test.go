package util

import (
	"strings"
	"testing"
)

func TestHashPassword(t *testing.T) {
	password := "MyPassword123"

	hashed, err := HashPassword(password)
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if !strings.HasPrefix(hashed, "$2") {
		t.Error("hash should be in bcrypt format")
	}

	_, err = HashPassword("")
	if err == nil {
		t.Error("empty password should return an error")
	}

	// bcrypt salts internally, so equal inputs hash differently
	hashed2, _ := HashPassword(password)
	if hashed == hashed2 {
		t.Error("same password should produce different hashes")
	}
}

func TestCheckPassword(t *testing.T) {
	password := "TestPass456"
	hashed, _ := HashPassword(password)

	if !CheckPassword(password, hashed) {
		t.Error("correct password should verify")
	}

	if CheckPassword("WrongPass", hashed) {
		t.Error("wrong password should not verify")
	}

	if CheckPassword("", hashed) {
		t.Error("empty password should not verify")
	}
	if CheckPassword(password, "") {
		t.Error("empty hash should not verify")
	}

	if CheckPassword(password, "invalid-format") {
		t.Error("malformed hash should not verify")
	}
}

func TestRandomString(t *testing.T) {
	str, err := RandomString(32)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if len(str) != 32 {
		t.Errorf("length mismatch: want 32, got %d", len(str))
	}

	str2, _ := RandomString(32)
	if str == str2 {
		t.Error("should generate distinct random strings")
	}

	_, err = RandomString(0)
	if err == nil {
		t.Error("length 0 should return an error")
	}
	_, err = RandomString(-5)
	if err == nil {
		t.Error("negative length should return an error")
	}
}

func BenchmarkHashPassword(b *testing.B) {
	for i := 0; i < b.N; i++ {
		HashPassword("BenchPassword")
	}
}
