package roster

import (
	"errors"
	"strings"
	"unicode"
)

// MaxEncodedPhotoBytes caps the encoded size of an embedded photo at 1 MiB
// of text. Oversized uploads are rejected before any store interaction.
const MaxEncodedPhotoBytes = 1 << 20

var (
	ErrPhotoTooLarge = errors.New("encoded photo exceeds 1 MiB")
	ErrPhotoNotImage = errors.New("photo must be a data:image/... string")
)

// Initials derives the two-character uppercase fallback from a name:
// the first letter of each of the first two words ("John Doe" -> "JD"),
// or the first two letters of a single-word name.
func Initials(name string) string {
	fields := strings.Fields(name)
	var runes []rune
	if len(fields) >= 2 {
		runes = []rune{firstRune(fields[0]), firstRune(fields[1])}
	} else if len(fields) == 1 {
		r := []rune(fields[0])
		if len(r) >= 2 {
			runes = r[:2]
		} else {
			runes = r
		}
	}
	return strings.ToUpper(string(runes))
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}

// NormalizePhoto resolves the photo_data value for a record: an embedded
// image is validated and kept, anything empty falls back to the initials.
// The result is never empty and never a general URL.
func NormalizePhoto(name, photo string) (string, error) {
	photo = strings.TrimSpace(photo)
	if photo == "" {
		return Initials(name), nil
	}
	if !strings.HasPrefix(photo, "data:image/") {
		return "", ErrPhotoNotImage
	}
	if len(photo) > MaxEncodedPhotoBytes {
		return "", ErrPhotoTooLarge
	}
	return photo, nil
}

// cleanName collapses inner whitespace so initials and stored names are
// derived from the same text.
func cleanName(name string) string {
	return strings.Join(strings.FieldsFunc(name, unicode.IsSpace), " ")
}
