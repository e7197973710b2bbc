package errors

import (
	"testing"
)

func TestValidateIconName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "database", false},
		{"with dash", "load-balancer", false},
		{"with dot", "k8s.pod", false},
		{"namespaced", "aws/lambda", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 200)), true},
		{"path traversal", "../etc/passwd", true},
		{"double slash", "aws//lambda", true},
		{"absolute", "/etc/passwd", true},
		{"backslash", "aws\\lambda", true},
		{"control char", "db\x01", true},
		{"trailing slash", "aws/", true},
		{"space", "my icon", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateIconName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateIconName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidIcon) {
				t.Errorf("ValidateIconName(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidIcon)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"https://icons.example.com", false},
		{"http://localhost:8080/icons", false},
		{"", true},
		{"ftp://example.com", true},
		{"file:///etc/passwd", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if err := ValidateURL(tt.input); (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
