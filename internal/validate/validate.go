// Package validate holds post-match checks that turn a regex hit into a
// credible secret. Each check is cheap and works on the copied match only.
package validate

import (
	"encoding/base64"
	"encoding/json"
	"strings"
)

const (
	upperAlnum = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	base64Like = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789+/="
)

func inAlphabet(s, allowed string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(allowed, s[i]) < 0 {
			return false
		}
	}
	return true
}

// JWT reports whether s has three segments whose header decodes to a JSON
// object. The signature is not checked.
func JWT(s string) bool {
	parts := strings.Split(s, ".")
	if len(parts) != 3 || parts[2] == "" {
		return false
	}
	hdr, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(parts[0], "="))
	if err != nil {
		return false
	}
	if _, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(parts[1], "=")); err != nil {
		return false
	}
	var obj map[string]any
	return json.Unmarshal(hdr, &obj) == nil
}

// AWSAccessKeyID accepts long-term (AKIA) and temporary (ASIA) key IDs.
func AWSAccessKeyID(s string) bool {
	if len(s) != 20 || !(strings.HasPrefix(s, "AKIA") || strings.HasPrefix(s, "ASIA")) {
		return false
	}
	return inAlphabet(s[4:], upperAlnum)
}

// AWSSecret rejects 40-character runs that are obviously placeholders.
func AWSSecret(s string) bool {
	if len(s) != 40 || !inAlphabet(s, base64Like) {
		return false
	}
	return strings.Count(s, s[:1]) != len(s)
}
