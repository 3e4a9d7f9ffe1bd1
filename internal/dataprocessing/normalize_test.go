package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeColumn(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases and trims", "  Öğrenci No  ", "öğrenci no"},
		{"collapses whitespace runs", "Ad \t  Soyad", "ad soyad"},
		{"already normalized", "student number", "student number"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeColumn(tt.input))
		})
	}
}

func TestFoldColumn(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"turkish outcome column", "PÇ 4", "pc4"},
		{"ascii outcome column", "pc4", "pc4"},
		{"punctuated", "P.C. 4", "pc4"},
		{"dotless i", "Sıra No", "sirano"},
		{"dotted capital I", "İndex", "index"},
		{"accented student column", "Öğrenci No", "ogrencino"},
		{"plain passthrough", "Student Number", "studentnumber"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FoldColumn(tt.input))
		})
	}
}

func TestCollapseWhitespace(t *testing.T) {
	assert.Equal(t, "Ana Maria", CollapseWhitespace("  Ana   Maria "))
	assert.Equal(t, "", CollapseWhitespace("   "))
}
