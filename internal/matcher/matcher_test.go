package matcher_test

import (
	"testing"

	"snapname/internal/matcher"
)

func TestMatch(t *testing.T) {
	m, err := matcher.New("Screenshot ", ".png")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	tests := []struct {
		name     string
		basename string
		want     bool
	}{
		{"macos screenshot", "Screenshot 2024-01-15 at 10.30.00.png", true},
		{"date only", "Screenshot 2024-01-15.png", true},
		{"trailing copy suffix", "Screenshot 2024-01-15 at 10.30.00 (2).png", true},
		{"camera file", "IMG_0001.png", false},
		{"underscore instead of space", "Screenshot_2024.png", false},
		{"wrong extension", "Screenshot 2024-01-15 at 10.30.00.jpg", false},
		{"lowercase prefix", "screenshot 2024-01-15.png", false},
		{"unpadded date", "Screenshot 2024-1-5.png", false},
		{"prefix not at start", "old Screenshot 2024-01-15.png", false},
		{"extension not at end", "Screenshot 2024-01-15.png.part", false},
		{"empty", "", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := m.Match(tc.basename); got != tc.want {
				t.Fatalf("Match(%q) = %v, want %v", tc.basename, got, tc.want)
			}
		})
	}
}

func TestNewRejectsBadInputs(t *testing.T) {
	if _, err := matcher.New("", ".png"); err == nil {
		t.Fatal("expected error for empty prefix")
	}
	if _, err := matcher.New("Screenshot ", "png"); err == nil {
		t.Fatal("expected error for extension without dot")
	}
}

func TestExtension(t *testing.T) {
	m, err := matcher.New("Screenshot ", ".png")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if got := m.Extension(); got != ".png" {
		t.Fatalf("Extension() = %q, want %q", got, ".png")
	}
}
