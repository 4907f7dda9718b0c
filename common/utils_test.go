package common

import (
	"path/filepath"
	"testing"
)

func TestStringInSlice(t *testing.T) {
	tests := []struct {
		name  string
		s     string
		slice []string
		want  bool
	}{
		{"present", "firefox", []string{"chromium", "firefox", "curl"}, true},
		{"absent", "wget", []string{"chromium", "firefox"}, false},
		{"empty slice", "firefox", nil, false},
		{"empty string present", "", []string{""}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StringInSlice(tt.s, tt.slice); got != tt.want {
				t.Errorf("StringInSlice(%q, %v) = %v, want %v", tt.s, tt.slice, got, tt.want)
			}
		})
	}
}

func TestRemoveFromSlice(t *testing.T) {
	tests := []struct {
		name  string
		slice []string
		s     string
		want  []string
	}{
		{"single occurrence", []string{"a", "b", "c"}, "b", []string{"a", "c"}},
		{"multiple occurrences", []string{"a", "b", "a"}, "a", []string{"b"}},
		{"absent", []string{"a", "b"}, "c", []string{"a", "b"}},
		{"empty", nil, "a", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RemoveFromSlice(tt.slice, tt.s)
			if len(got) != len(tt.want) {
				t.Fatalf("RemoveFromSlice() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("RemoveFromSlice()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()

	if FileExists(filepath.Join(dir, "missing")) {
		t.Error("FileExists() = true for missing file")
	}
}
