package logging

import (
	"errors"
	"log/slog"
	"testing"
)

func TestWithOperation(t *testing.T) {
	logger := slog.Default()
	result := WithOperation(logger, "test_operation")
	if result == nil {
		t.Error("WithOperation returned nil")
	}
}

func TestWithTool(t *testing.T) {
	logger := slog.Default()
	result := WithTool(logger, "test_tool")
	if result == nil {
		t.Error("WithTool returned nil")
	}
}

func TestWithService(t *testing.T) {
	logger := slog.Default()
	result := WithService(logger, "calendar")
	if result == nil {
		t.Error("WithService returned nil")
	}
}

func TestOperationAttr(t *testing.T) {
	attr := Operation("test_op")
	if attr.Key != KeyOperation {
		t.Errorf("Operation key = %q, want %q", attr.Key, KeyOperation)
	}
	if attr.Value.String() != "test_op" {
		t.Errorf("Operation value = %q, want %q", attr.Value.String(), "test_op")
	}
}

func TestServiceAttr(t *testing.T) {
	attr := Service("calendar")
	if attr.Key != KeyService {
		t.Errorf("Service key = %q, want %q", attr.Key, KeyService)
	}
	if attr.Value.String() != "calendar" {
		t.Errorf("Service value = %q, want %q", attr.Value.String(), "calendar")
	}
}

func TestToolAttr(t *testing.T) {
	attr := Tool("create_appointment")
	if attr.Key != KeyTool {
		t.Errorf("Tool key = %q, want %q", attr.Key, KeyTool)
	}
	if attr.Value.String() != "create_appointment" {
		t.Errorf("Tool value = %q, want %q", attr.Value.String(), "create_appointment")
	}
}

func TestCallIDAttr(t *testing.T) {
	attr := CallID("abc-123")
	if attr.Key != KeyCallID {
		t.Errorf("CallID key = %q, want %q", attr.Key, KeyCallID)
	}
	if attr.Value.String() != "abc-123" {
		t.Errorf("CallID value = %q, want %q", attr.Value.String(), "abc-123")
	}
}

func TestFunctionAttr(t *testing.T) {
	attr := Function("check_availability")
	if attr.Key != KeyFunction {
		t.Errorf("Function key = %q, want %q", attr.Key, KeyFunction)
	}
	if attr.Value.String() != "check_availability" {
		t.Errorf("Function value = %q, want %q", attr.Value.String(), "check_availability")
	}
}

func TestStatusAttr(t *testing.T) {
	attr := Status(StatusSuccess)
	if attr.Key != KeyStatus {
		t.Errorf("Status key = %q, want %q", attr.Key, KeyStatus)
	}
	if attr.Value.String() != StatusSuccess {
		t.Errorf("Status value = %q, want %q", attr.Value.String(), StatusSuccess)
	}
}

func TestErr(t *testing.T) {
	// Test with error
	err := errors.New("test error")
	attr := Err(err)
	if attr.Key != KeyError {
		t.Errorf("Err key = %q, want %q", attr.Key, KeyError)
	}
	if attr.Value.String() != "test error" {
		t.Errorf("Err value = %q, want %q", attr.Value.String(), "test error")
	}

	// Test with nil - should return an empty group that slog will omit
	attr = Err(nil)
	// Empty Group has empty key
	if attr.Key != "" {
		t.Errorf("Err(nil) key = %q, want empty string (empty group)", attr.Key)
	}
}

func TestAnonymizePhone(t *testing.T) {
	tests := []struct {
		number   string
		wantLen  int  // Expected length of result (0 for empty)
		hasValue bool // Whether result should have a value
	}{
		{"+306912345678", 23, true}, // "caller:" + 16 hex chars
		{"+302101234567", 23, true},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.number, func(t *testing.T) {
			result := AnonymizePhone(tt.number)
			if tt.hasValue {
				if len(result) != tt.wantLen {
					t.Errorf("AnonymizePhone(%q) length = %d, want %d", tt.number, len(result), tt.wantLen)
				}
				if result[:7] != "caller:" {
					t.Errorf("AnonymizePhone(%q) should start with 'caller:', got %q", tt.number, result)
				}
			} else {
				if result != "" {
					t.Errorf("AnonymizePhone(%q) = %q, want empty string", tt.number, result)
				}
			}
		})
	}

	// Test deterministic hashing
	hash1 := AnonymizePhone("+306912345678")
	hash2 := AnonymizePhone("+306912345678")
	if hash1 != hash2 {
		t.Error("AnonymizePhone should return deterministic results")
	}

	// Test different numbers produce different hashes
	hash3 := AnonymizePhone("+306998765432")
	if hash1 == hash3 {
		t.Error("Different numbers should produce different hashes")
	}
}

func TestCallerHash(t *testing.T) {
	attr := CallerHash("+306912345678")
	if attr.Key != KeyCallerHash {
		t.Errorf("CallerHash key = %q, want %q", attr.Key, KeyCallerHash)
	}
	if len(attr.Value.String()) != 23 {
		t.Errorf("CallerHash value length = %d, want 23", len(attr.Value.String()))
	}
}

func TestSanitizeToken(t *testing.T) {
	tests := []struct {
		token    string
		expected string
	}{
		{"", "<empty>"},
		{"abc123", "[token:6 chars]"},
		{"a_very_long_token_string", "[token:24 chars]"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			result := SanitizeToken(tt.token)
			if result != tt.expected {
				t.Errorf("SanitizeToken(%q) = %q, want %q", tt.token, result, tt.expected)
			}
		})
	}
}

func TestStatusConstants(t *testing.T) {
	if StatusSuccess != "success" {
		t.Errorf("StatusSuccess = %q, want %q", StatusSuccess, "success")
	}
	if StatusError != "error" {
		t.Errorf("StatusError = %q, want %q", StatusError, "error")
	}
}
