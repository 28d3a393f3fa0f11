package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
)

func TestSkillError_Error(t *testing.T) {
	tests := []struct {
		name    string
		err     *SkillError
		wantStr string
	}{
		{
			name: "simple error",
			err: &SkillError{
				Code:    "TEST_001",
				Message: "test error",
			},
			wantStr: "[TEST_001] test error",
		},
		{
			name: "error with cause",
			err: &SkillError{
				Code:    "TEST_002",
				Message: "wrapped error",
				Cause:   errors.New("underlying"),
			},
			wantStr: "[TEST_002] wrapped error: underlying",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantStr {
				t.Errorf("Error() = %q, want %q", got, tt.wantStr)
			}
		})
	}
}

func TestSkillError_Unwrap(t *testing.T) {
	underlying := errors.New("underlying error")
	err := &SkillError{
		Code:    "TEST_001",
		Message: "test",
		Cause:   underlying,
	}

	if got := err.Unwrap(); got != underlying {
		t.Errorf("Unwrap() = %v, want %v", got, underlying)
	}
}

func TestSkillError_WithDetail(t *testing.T) {
	err := New("TEST_001", "test").
		WithDetail("key1", "value1").
		WithDetail("key2", 42)

	if err.Details["key1"] != "value1" {
		t.Errorf("Details[key1] = %v, want value1", err.Details["key1"])
	}
	if err.Details["key2"] != 42 {
		t.Errorf("Details[key2] = %v, want 42", err.Details["key2"])
	}
}

func TestSkillError_WithCause(t *testing.T) {
	cause := errors.New("cause")
	err := New("TEST_001", "test").WithCause(cause)

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
}

func TestSkillError_MarshalJSON(t *testing.T) {
	err := &SkillError{
		Code:    "TEST_001",
		Message: "test error",
		Details: map[string]any{"skill": "alpha"},
		Cause:   errors.New("underlying"),
	}

	data, jsonErr := json.Marshal(err)
	if jsonErr != nil {
		t.Fatalf("Marshal failed: %v", jsonErr)
	}

	var result map[string]any
	if jsonErr := json.Unmarshal(data, &result); jsonErr != nil {
		t.Fatalf("Unmarshal failed: %v", jsonErr)
	}

	if result["code"] != "TEST_001" {
		t.Errorf("code = %v, want TEST_001", result["code"])
	}
	if result["message"] != "test error" {
		t.Errorf("message = %v, want test error", result["message"])
	}
	if result["cause"] != "underlying" {
		t.Errorf("cause = %v, want underlying", result["cause"])
	}
	details, ok := result["details"].(map[string]any)
	if !ok {
		t.Fatalf("details not a map")
	}
	if details["skill"] != "alpha" {
		t.Errorf("details.skill = %v, want alpha", details["skill"])
	}
}

func TestNew(t *testing.T) {
	err := New("CODE_001", "message")
	if err.Code != "CODE_001" {
		t.Errorf("Code = %s, want CODE_001", err.Code)
	}
	if err.Message != "message" {
		t.Errorf("Message = %s, want message", err.Message)
	}
}

func TestNewf(t *testing.T) {
	err := Newf("CODE_001", "value is %d", 42)
	if err.Message != "value is 42" {
		t.Errorf("Message = %s, want 'value is 42'", err.Message)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("original")
	err := Wrap("CODE_001", "wrapped", cause)

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Message != "wrapped" {
		t.Errorf("Message = %s, want wrapped", err.Message)
	}
}

func TestWrapf(t *testing.T) {
	cause := errors.New("original")
	err := Wrapf("CODE_001", cause, "wrapped %s", "value")

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Message != "wrapped value" {
		t.Errorf("Message = %s, want 'wrapped value'", err.Message)
	}
}

func TestHasCode(t *testing.T) {
	err := New("TEST_001", "test")
	if !HasCode(err, "TEST_001") {
		t.Error("HasCode(err, TEST_001) = false, want true")
	}
	if HasCode(err, "TEST_002") {
		t.Error("HasCode(err, TEST_002) = true, want false")
	}
	if HasCode(errors.New("plain"), "TEST_001") {
		t.Error("HasCode(regular error) = true, want false")
	}

	// Test wrapped error
	wrapped := fmt.Errorf("outer: %w", err)
	if !HasCode(wrapped, "TEST_001") {
		t.Error("HasCode should find code in wrapped error")
	}
}

func TestCode(t *testing.T) {
	err := New("TEST_001", "test")
	if got := Code(err); got != "TEST_001" {
		t.Errorf("Code() = %s, want TEST_001", got)
	}
	if got := Code(errors.New("regular")); got != "" {
		t.Errorf("Code(regular) = %s, want empty", got)
	}

	// Test wrapped error
	wrapped := fmt.Errorf("outer: %w", err)
	if got := Code(wrapped); got != "TEST_001" {
		t.Errorf("Code(wrapped) = %s, want TEST_001", got)
	}
}

// Test factory functions produce correct codes
func TestFactoryFunctions(t *testing.T) {
	tests := []struct {
		name     string
		err      *SkillError
		wantCode string
	}{
		{"ConfigMissingField", ConfigMissingField("field"), CodeConfigMissingField},
		{"ConfigInvalidValue", ConfigInvalidValue("field", "val", "reason"), CodeConfigInvalidValue},
		{"ProjectNotFound", ProjectNotFound("/work"), CodeProjectNotFound},
		{"GitRootNotFound", GitRootNotFound("/work"), CodeGitRootNotFound},
		{"CatalogUnavailable", CatalogUnavailable("/work", []string{"shared-agent-skills"}), CodeCatalogUnavailable},
		{"TargetUnwritable", TargetUnwritable("/work/.claude/skills", errors.New("err")), CodeTargetUnwritable},
		{"EntryOperationFailed", EntryOperationFailed("alpha", "symlink", "/work/alpha.md", errors.New("err")), CodeEntryOperationFailed},
		{"Mismatch", Mismatch("alpha", "/work/alpha.md"), CodeMismatch},
		{"HookTemplateMissing", HookTemplateMissing("/hooks/post-merge", errors.New("err")), CodeHookTemplateMissing},
		{"HookWriteFailed", HookWriteFailed("/hooks/post-merge", errors.New("err")), CodeHookWriteFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("%s Code = %s, want %s", tt.name, tt.err.Code, tt.wantCode)
			}
			// Verify error string is non-empty
			if tt.err.Error() == "" {
				t.Errorf("%s Error() is empty", tt.name)
			}
		})
	}
}

func TestErrorsUnwrapChain(t *testing.T) {
	root := errors.New("root cause")
	wrapped := Wrap("WRAP_001", "wrapped", root)

	// Test errors.Is works through the chain
	if !errors.Is(wrapped, root) {
		t.Error("errors.Is should find root cause")
	}
}

func TestEntryOperationFailedDetails(t *testing.T) {
	cause := errors.New("permission denied")
	err := EntryOperationFailed("alpha", "symlink", "/work/alpha.md", cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the filesystem cause")
	}
	if err.Details["skill"] != "alpha" {
		t.Errorf("Details[skill] = %v, want alpha", err.Details["skill"])
	}
	if err.Details["op"] != "symlink" {
		t.Errorf("Details[op] = %v, want symlink", err.Details["op"])
	}
	if got := err.Error(); got != "[ENTRY_001] symlink /work/alpha.md: permission denied" {
		t.Errorf("Error() = %q", got)
	}
}
