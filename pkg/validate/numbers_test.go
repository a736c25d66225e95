package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsDigits(t *testing.T) {
	tests := []struct {
		name     string
		s        string
		n        int
		expected bool
	}{
		{"Valid two digits", "47", 2, true},
		{"Valid three digits", "047", 3, true},
		{"Too short", "4", 2, false},
		{"Too long", "475", 2, false},
		{"Non-digit character", "4a", 2, false},
		{"Empty string", "", 2, false},
		{"Unicode digits rejected", "４７", 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsDigits(tt.s, tt.n))
		})
	}
}

func TestDistinct(t *testing.T) {
	tests := []struct {
		name     string
		ss       []string
		expected bool
	}{
		{"All unique", []string{"47", "68", "83"}, true},
		{"Duplicate", []string{"47", "68", "47"}, false},
		{"Single element", []string{"47"}, true},
		{"Empty slice", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Distinct(tt.ss))
		})
	}
}
