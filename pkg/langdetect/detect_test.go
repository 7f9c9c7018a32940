package langdetect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/sharplint/pkg/langdetect"
)

func TestIsCSharp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want bool
	}{
		{"Program.cs", true},
		{"src/Views/Home.CS", true},
		{"script.csx", true},
		{"README.md", false},
		{"main.go", false},
		{"noext", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, langdetect.IsCSharp(tt.path))
		})
	}
}

func TestDetect(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Go", langdetect.Detect("main.go", []byte("package main\n")))
}

func TestIsVendored(t *testing.T) {
	t.Parallel()

	assert.True(t, langdetect.IsVendored("vendor/lib/Thing.cs"))
	assert.False(t, langdetect.IsVendored("src/Thing.cs"))
}
