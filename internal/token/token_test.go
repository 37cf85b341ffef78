package token

import (
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"comanda/internal/models"
)

func testAccount() *models.Account {
	return &models.Account{
		ID:    primitive.NewObjectID(),
		Email: "a@x.com",
		Role:  models.RoleWaiter,
	}
}

func TestSignAndParse(t *testing.T) {
	m := NewManager("secret", 24*time.Hour)
	acc := testAccount()

	tok, err := m.Sign(acc)
	if err != nil {
		t.Fatalf("Sign returned error: %v", err)
	}

	claims, err := m.Parse(tok)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if claims.Sub != acc.ID.Hex() {
		t.Errorf("expected sub %s, got %s", acc.ID.Hex(), claims.Sub)
	}
	if claims.Role != string(models.RoleWaiter) {
		t.Errorf("expected role waiter, got %s", claims.Role)
	}
	if claims.Email != acc.Email {
		t.Errorf("expected email %s, got %s", acc.Email, claims.Email)
	}
}

func TestParse_Expired(t *testing.T) {
	m := NewManager("secret", -time.Minute)

	tok, err := m.Sign(testAccount())
	if err != nil {
		t.Fatalf("Sign returned error: %v", err)
	}

	_, err = m.Parse(tok)
	if !errors.Is(err, ErrExpired) {
		t.Fatalf("expected ErrExpired, got %v", err)
	}
}

func TestParse_WrongSecret(t *testing.T) {
	m := NewManager("secret", 24*time.Hour)
	other := NewManager("other-secret", 24*time.Hour)

	tok, err := m.Sign(testAccount())
	if err != nil {
		t.Fatalf("Sign returned error: %v", err)
	}

	_, err = other.Parse(tok)
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestParse_Garbage(t *testing.T) {
	m := NewManager("secret", 24*time.Hour)

	if _, err := m.Parse("not-a-token"); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}
