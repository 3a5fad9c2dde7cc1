package compare

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	errNoIndex = errors.New("no index in response")

	// errNoMatchReply marks a negative reply: the endpoint explicitly saying
	// no candidate matches.
	errNoMatchReply = errors.New("negative reply")
)

// parseIndex extracts the bare integer index the endpoint was asked to
// return. Models occasionally pad the reply with whitespace, a trailing
// period, or a short sentence, so the first integer token wins. A minus sign
// in front of that token is part of it: "-1" padded with words is still the
// no-match reply, surfaced as errNoMatchReply. Anything at or above n is an
// error.
func parseIndex(text string, n int) (int, error) {
	for i := 0; i < len(text); i++ {
		if text[i] < '0' || text[i] > '9' {
			continue
		}
		start := i
		if i > 0 && text[i-1] == '-' && (i == 1 || !isAlnum(text[i-2])) {
			start = i - 1
		}
		end := i
		for end < len(text) && text[end] >= '0' && text[end] <= '9' {
			end++
		}
		return checkRange(text[start:end], n)
	}
	return 0, fmt.Errorf("%w: %q", errNoIndex, truncate(text, 80))
}

func checkRange(token string, n int) (int, error) {
	idx, err := strconv.Atoi(token)
	if err != nil {
		return 0, fmt.Errorf("parse index %q: %w", token, err)
	}
	if idx < 0 {
		return 0, errNoMatchReply
	}
	if idx >= n {
		return 0, fmt.Errorf("index %d out of range [0, %d)", idx, n)
	}
	return idx, nil
}

func isAlnum(b byte) bool {
	return b >= '0' && b <= '9' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// decodeDataURI splits an embedded data:image/...;base64,... string into its
// MIME type and raw bytes.
func decodeDataURI(uri string) (mime string, data []byte, err error) {
	if !strings.HasPrefix(uri, "data:") {
		return "", nil, errors.New("not a data URI")
	}
	meta, payload, ok := strings.Cut(uri[len("data:"):], ",")
	if !ok {
		return "", nil, errors.New("malformed data URI")
	}
	mime = meta
	if i := strings.IndexByte(meta, ';'); i >= 0 {
		mime = meta[:i]
	}
	if !strings.HasSuffix(meta, ";base64") {
		return "", nil, errors.New("data URI is not base64-encoded")
	}
	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decode data URI: %w", err)
	}
	return mime, data, nil
}
