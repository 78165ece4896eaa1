package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidHostLabel(t *testing.T) {
	tests := []struct {
		name  string
		label string
		valid bool
	}{
		{name: "plain name", label: "web", valid: true},
		{name: "alphanumeric", label: "db01", valid: true},
		{name: "inner hyphen", label: "my-service", valid: true},
		{name: "single character", label: "a", valid: true},
		{name: "empty", label: "", valid: false},
		{name: "underscore", label: "my_service", valid: false},
		{name: "leading hyphen", label: "-web", valid: false},
		{name: "trailing hyphen", label: "web-", valid: false},
		{name: "dot inside", label: "web.local", valid: false},
		{name: "space inside", label: "my service", valid: false},
		{name: "64 characters", label: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", valid: false},
		{name: "63 characters", label: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", valid: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValidHostLabel(tt.label))
		})
	}
}

func TestCleanHostLabel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "already clean", input: "web", expected: "web"},
		{name: "strips domain", input: "web.example.com", expected: "web"},
		{name: "lowercases", input: "Web", expected: "web"},
		{name: "trims whitespace", input: " web ", expected: "web"},
		{name: "empty stays empty", input: "", expected: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanHostLabel(tt.input))
		})
	}
}
