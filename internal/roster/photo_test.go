package roster

import (
	"errors"
	"strings"
	"testing"
)

func TestInitials_TwoWords(t *testing.T) {
	if got := Initials("John Doe"); got != "JD" {
		t.Errorf("expected JD, got %q", got)
	}
}

func TestInitials_SingleWord(t *testing.T) {
	if got := Initials("Plato"); got != "PL" {
		t.Errorf("expected PL, got %q", got)
	}
}

func TestInitials_ExtraWords(t *testing.T) {
	// Only the first two words count.
	if got := Initials("Anna Maria Jones"); got != "AM" {
		t.Errorf("expected AM, got %q", got)
	}
}

func TestInitials_LowercaseInput(t *testing.T) {
	if got := Initials("jane smith"); got != "JS" {
		t.Errorf("expected JS, got %q", got)
	}
}

func TestInitials_SingleRune(t *testing.T) {
	if got := Initials("X"); got != "X" {
		t.Errorf("expected X, got %q", got)
	}
}

func TestNormalizePhoto_EmptyFallsBack(t *testing.T) {
	photo, err := NormalizePhoto("John Doe", "")
	if err != nil {
		t.Fatalf("NormalizePhoto failed: %v", err)
	}
	if photo != "JD" {
		t.Errorf("expected initials fallback JD, got %q", photo)
	}
}

func TestNormalizePhoto_KeepsEmbeddedImage(t *testing.T) {
	uri := "data:image/png;base64,iVBORw0KGgo="
	photo, err := NormalizePhoto("John Doe", uri)
	if err != nil {
		t.Fatalf("NormalizePhoto failed: %v", err)
	}
	if photo != uri {
		t.Errorf("expected embedded image to pass through, got %q", photo)
	}
}

func TestNormalizePhoto_RejectsNonImage(t *testing.T) {
	cases := []string{
		"https://example.com/photo.jpg",
		"data:text/plain;base64,aGVsbG8=",
		"just some text",
	}
	for _, photo := range cases {
		if _, err := NormalizePhoto("John Doe", photo); !errors.Is(err, ErrPhotoNotImage) {
			t.Errorf("photo %q: expected ErrPhotoNotImage, got %v", photo, err)
		}
	}
}

func TestNormalizePhoto_RejectsOversized(t *testing.T) {
	big := "data:image/jpeg;base64," + strings.Repeat("A", MaxEncodedPhotoBytes)
	if _, err := NormalizePhoto("John Doe", big); !errors.Is(err, ErrPhotoTooLarge) {
		t.Errorf("expected ErrPhotoTooLarge, got %v", err)
	}
}

func TestNormalizePhoto_AcceptsAtCap(t *testing.T) {
	prefix := "data:image/jpeg;base64,"
	photo := prefix + strings.Repeat("A", MaxEncodedPhotoBytes-len(prefix))
	if _, err := NormalizePhoto("John Doe", photo); err != nil {
		t.Errorf("photo at the cap should pass, got %v", err)
	}
}
