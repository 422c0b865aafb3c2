package passwd

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashPasswordWithCost(t *testing.T) {
	password := "hostel-secret"
	hashed, err := HashPasswordWithCost(password, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPasswordWithCost returned an error for valid password: %v", err)
	}
	if hashed == "" || hashed == password {
		t.Fatal("expected a bcrypt hash distinct from the password")
	}

	cost, err := bcrypt.Cost([]byte(hashed))
	if err != nil {
		t.Fatalf("stored hash is not a bcrypt hash: %v", err)
	}
	if cost != bcrypt.MinCost {
		t.Errorf("cost = %d, want %d", cost, bcrypt.MinCost)
	}
}

func TestHashPasswordWithCost_OutOfRangeCost(t *testing.T) {
	hashed, err := HashPasswordWithCost("hostel-secret", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cost, _ := bcrypt.Cost([]byte(hashed))
	if cost != bcrypt.DefaultCost {
		t.Errorf("cost = %d, want fallback %d", cost, bcrypt.DefaultCost)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     error
	}{
		{"too short", "short", ErrPasswordTooShort},
		{"empty", "", ErrPasswordTooShort},
		{"minimum length", strings.Repeat("a", MinPasswordLen), nil},
		{"maximum length", strings.Repeat("a", MaxPasswordLen), nil},
		{"too long", strings.Repeat("a", MaxPasswordLen+1), ErrPasswordTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Validate(tt.password); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestHashPassword_RejectsInvalid(t *testing.T) {
	if _, err := HashPassword(strings.Repeat("a", MaxPasswordLen+1)); !errors.Is(err, ErrPasswordTooLong) {
		t.Errorf("expected ErrPasswordTooLong, got %v", err)
	}
}

func TestAuthenticate(t *testing.T) {
	hashed, err := HashPasswordWithCost("correct-horse", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	if !Authenticate("correct-horse", hashed) {
		t.Error("Authenticate returned false for the correct password")
	}
	if Authenticate("wrong-horse", hashed) {
		t.Error("Authenticate returned true for the wrong password")
	}
	if Authenticate("correct-horse", "not-a-hash") {
		t.Error("Authenticate returned true for a malformed hash")
	}
}
