package profile

import (
	"context"
	"errors"
	"testing"
)

func TestIdentifier_Identify_KnownCaller(t *testing.T) {
	store, _ := newTestStore()
	ident := NewIdentifier(store, nil)
	ctx := context.Background()

	registered, err := ident.Register(ctx, "691 234 5678", "Μαρία Παπαδοπούλου", "")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if registered.PhoneNumber != "+306912345678" {
		t.Errorf("PhoneNumber = %q, want normalized E.164", registered.PhoneNumber)
	}

	// Identify with a differently formatted rendering of the same number.
	p, isNew, err := ident.Identify(ctx, "0030 6912345678")
	if err != nil {
		t.Fatalf("Identify: %v", err)
	}
	if isNew {
		t.Error("isNew = true for registered caller")
	}
	if p == nil || p.UserID != registered.UserID {
		t.Errorf("profile = %+v, want user %s", p, registered.UserID)
	}
}

func TestIdentifier_Identify_UnknownCaller(t *testing.T) {
	store, _ := newTestStore()
	ident := NewIdentifier(store, nil)

	p, isNew, err := ident.Identify(context.Background(), "6912345678")
	if err != nil {
		t.Fatalf("Identify: %v", err)
	}
	if !isNew {
		t.Error("isNew = false for unknown caller")
	}
	if p != nil {
		t.Errorf("profile = %+v, want nil", p)
	}
}

func TestIdentifier_Identify_InvalidNumber(t *testing.T) {
	store, _ := newTestStore()
	ident := NewIdentifier(store, nil)

	_, isNew, err := ident.Identify(context.Background(), "not a number")
	if err == nil {
		t.Fatal("expected error for invalid number")
	}
	if isNew {
		t.Error("isNew should be false on error")
	}
}

func TestIdentifier_Identify_DisabledStore(t *testing.T) {
	ident := NewIdentifier(NewStore(nil, nil), nil)

	// Without Redis the conversation proceeds with an unknown caller.
	p, isNew, err := ident.Identify(context.Background(), "6912345678")
	if err != nil {
		t.Fatalf("Identify: %v", err)
	}
	if !isNew || p != nil {
		t.Errorf("got (%+v, %v), want (nil, true)", p, isNew)
	}
}

func TestIdentifier_Register_Duplicate(t *testing.T) {
	store, _ := newTestStore()
	ident := NewIdentifier(store, nil)
	ctx := context.Background()

	if _, err := ident.Register(ctx, "6912345678", "Μαρία", ""); err != nil {
		t.Fatalf("Register: %v", err)
	}
	_, err := ident.Register(ctx, "+30 691 234 5678", "Μαρία", "")
	if !errors.Is(err, ErrExists) {
		t.Errorf("err = %v, want ErrExists", err)
	}
}

func TestIdentifier_RecordCall(t *testing.T) {
	store, _ := newTestStore()
	ident := NewIdentifier(store, nil)
	ctx := context.Background()

	p, err := ident.Register(ctx, "6912345678", "Μαρία", "")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	rec := NewCallRecord(p.UserID)
	rec.Summary = "έκλεισε ραντεβού για καθαρισμό"
	if err := ident.RecordCall(ctx, rec); err != nil {
		t.Fatalf("RecordCall: %v", err)
	}

	calls, err := store.RecentCalls(ctx, p.UserID, 5)
	if err != nil {
		t.Fatalf("RecentCalls: %v", err)
	}
	if len(calls) != 1 || calls[0].Summary != "έκλεισε ραντεβού για καθαρισμό" {
		t.Errorf("calls = %+v", calls)
	}
}
