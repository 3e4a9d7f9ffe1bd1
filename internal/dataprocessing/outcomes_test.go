package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectOutcomeColumns(t *testing.T) {
	table := &Table{
		Headers: []string{"Öğrenci No", "Ad Soyad", "PÇ1", "pc 2", "PC", "Puan"},
	}

	// "PC" without a digit is not an outcome column.
	assert.Equal(t, []int{2, 3}, DetectOutcomeColumns(table))
}

func TestOutcomeNumber(t *testing.T) {
	tests := []struct {
		input string
		want  int
		ok    bool
	}{
		{"PÇ 4", 4, true},
		{"pc4", 4, true},
		{"PC04", 4, true},
		{"PÇ 11 (tasarım)", 11, true},
		{"PC", 0, false},
	}

	for _, tt := range tests {
		n, ok := OutcomeNumber(tt.input)
		assert.Equal(t, tt.ok, ok, "input %q", tt.input)
		if ok {
			assert.Equal(t, tt.want, n, "input %q", tt.input)
		}
	}
}

func TestCoerceBinary(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"1", 1},
		{"0", 0},
		{"1.0", 1},
		{"0.9", 0}, // truncated, not rounded
		{"5", 1},   // clamped
		{"-3", 0},  // clamped
		{"", 0},
		{"evet", 0},
		{" 1 ", 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CoerceBinary(tt.input), "input %q", tt.input)
	}
}
