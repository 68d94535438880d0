package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{1, "1 B"},
		{1023, "1023 B"},
		{1024, "1 KB"},
		{1536, "1.5 KB"},
		{10 * 1024, "10 KB"},
		{1024*1024 - 1, "1024 KB"},
		{1 << 20, "1 MB"},
		{10_485_760, "10 MB"},
		{1_572_864, "1.5 MB"},
		{3 << 30, "3 GB"},
		{5 << 40, "5 TB"},
		{2048 << 40, "2048 TB"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Bytes(tt.in), "Bytes(%d)", tt.in)
	}
}

func TestInitials(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Jane Doe", "JD"},
		{"", ""},
		{"Madonna", "M"},
		{"  jane   mary  doe ", "JM"},
		{"\tЖанна\nДо", "ЖД"},
		{"   ", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Initials(tt.in), "Initials(%q)", tt.in)
	}
}
