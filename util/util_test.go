package util

import (
	"testing"
)

func TestPkToHash(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "simple string", input: "test"},
		{name: "empty string", input: ""},
		{name: "ssh key format", input: "ssh-rsa AAAAB3NzaC1yc2EAAAADAQABAAABAQ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := PkToHash(tt.input)
			if len(result) != 64 {
				t.Errorf("Expected hash length 64, got %d", len(result))
			}
			result2 := PkToHash(tt.input)
			if result != result2 {
				t.Errorf("Hash should be consistent: %s != %s", result, result2)
			}
		})
	}
}

func TestPkToHashDifferentInputs(t *testing.T) {
	hash1 := PkToHash("input1")
	hash2 := PkToHash("input2")

	if hash1 == hash2 {
		t.Error("Different inputs should produce different hashes")
	}
}

func TestRandomString(t *testing.T) {
	for _, length := range []int{10, 20, 32, 64} {
		result := RandomString(length)
		if len(result) != length {
			t.Errorf("Expected length %d, got %d", length, len(result))
		}
	}
}

func TestRandomStringUniqueness(t *testing.T) {
	results := make(map[string]bool)
	for i := 0; i < 100; i++ {
		s := RandomString(32)
		if results[s] {
			t.Errorf("RandomString produced duplicate: %s", s)
		}
		results[s] = true
	}
}

func TestNormalizeInput(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "newlines replaced",
			input:    "line1\nline2\nline3",
			expected: "line1 line2 line3",
		},
		{
			name:     "html escaped",
			input:    "<script>alert('xss')</script>",
			expected: "&lt;script&gt;alert(&#39;xss&#39;)&lt;/script&gt;",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "normal text",
			input:    "Hello World",
			expected: "Hello World",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NormalizeInput(tt.input)
			if result != tt.expected {
				t.Errorf("Expected '%s', got '%s'", tt.expected, result)
			}
		})
	}
}

func TestSyllableCount(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected int
	}{
		{name: "empty", line: "", expected: 0},
		{name: "single word", line: "moon", expected: 1},
		{name: "two syllables", line: "水 water", expected: 2},
		{name: "classic first line", line: "an old silent pond", expected: 5},
		{name: "silent e", line: "stone", expected: 1},
		{name: "le ending kept", line: "little", expected: 2},
		{name: "no vowels still counts one", line: "hmm", expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SyllableCount(tt.line); got != tt.expected {
				t.Errorf("SyllableCount(%q) = %d, want %d", tt.line, got, tt.expected)
			}
		})
	}
}
