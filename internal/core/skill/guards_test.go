package skill

import (
	"errors"
	"strings"
	"testing"

	"github.com/example/planvault/internal/core/validation"
)

func TestValidateDraft(t *testing.T) {
	tests := []struct {
		name      string
		draft     Draft
		wantField string
	}{
		{
			name:  "valid skill",
			draft: Draft{FilePath: "skills/go/errors.md", Name: "errors", Category: "go"},
		},
		{
			name:  "category optional",
			draft: Draft{FilePath: "skills/errors.md", Name: "errors"},
		},
		{
			name:      "missing file path",
			draft:     Draft{Name: "errors"},
			wantField: "file_path",
		},
		{
			name:      "missing name",
			draft:     Draft{FilePath: "skills/go/errors.md"},
			wantField: "name",
		},
		{
			name:      "category too long",
			draft:     Draft{FilePath: "skills/go/errors.md", Name: "errors", Category: strings.Repeat("x", 256)},
			wantField: "category",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkField(t, ValidateDraft(tt.draft), tt.wantField)
		})
	}
}

func TestValidateChange(t *testing.T) {
	empty := ""
	newPath := "skills/go/errors-v2.md"

	tests := []struct {
		name      string
		change    Change
		wantField string
	}{
		{
			name:   "move file",
			change: Change{FilePath: &newPath},
		},
		{
			name:      "empty update rejected",
			change:    Change{Empty: true},
			wantField: "update",
		},
		{
			name:      "file path cleared",
			change:    Change{FilePath: &empty},
			wantField: "file_path",
		},
		{
			name:      "name cleared",
			change:    Change{Name: &empty},
			wantField: "name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkField(t, ValidateChange(tt.change), tt.wantField)
		})
	}
}

func checkField(t *testing.T, err error, wantField string) {
	t.Helper()
	if wantField == "" {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return
	}
	var verr *validation.Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, ok := verr.Fields[wantField]; !ok {
		t.Errorf("expected error on field %q, got %v", wantField, verr.Fields)
	}
}
