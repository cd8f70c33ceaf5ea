package utils

import (
	"path/filepath"
	"testing"
)

func TestIsSpriteFile(t *testing.T) {
	cases := map[string]bool{
		"hero.png":      true,
		"hero.PNG":      true,
		"hero.webp":     true,
		"hero.gif":      true,
		"hero.jsonl":    false,
		"hero":          false,
		"dir/hero.bmp":  true,
		"notes.txt":     false,
	}
	for name, want := range cases {
		if got := IsSpriteFile(name); got != want {
			t.Errorf("IsSpriteFile(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestGenerateOutputFilename(t *testing.T) {
	got := GenerateOutputFilename("/sprites/hero.png", "/out", "_import", "jsonl")
	want := filepath.Join("/out", "hero_import.jsonl")
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSanitizeName(t *testing.T) {
	cases := map[string]string{
		"/sprites/hero.png":   "hero",
		"my sprite.png":       "my_sprite",
		"odd:name?.webp":      "odd_name_",
		"trailing...png":      "trailing",
	}
	for in, want := range cases {
		if got := SanitizeName(in); got != want {
			t.Errorf("SanitizeName(%q) = %q, want %q", in, got, want)
		}
	}
}
