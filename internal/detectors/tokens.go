package detectors

import (
	"bytes"
	"regexp"

	"github.com/redactyl/guardscan/internal/types"
	"github.com/redactyl/guardscan/internal/validate"
)

var (
	reJWT          = regexp.MustCompile(`eyJ[A-Za-z0-9_-]+?\.[A-Za-z0-9._-]+?\.[A-Za-z0-9._-]+`)
	reStripeSecret = regexp.MustCompile(`sk_live_[A-Za-z0-9]{24,}`)

	pemBegin = []byte("-----BEGIN ")
	pemKey   = []byte(" PRIVATE KEY-----")
)

func JWTToken(path string, data []byte) []types.Finding {
	return findChecked(path, data, reJWT, "jwt", types.SevMed, 0.7, validate.JWT)
}

func StripeSecret(path string, data []byte) []types.Finding {
	return findSimple(path, data, reStripeSecret, "stripe_secret", types.SevHigh, 0.95)
}

// PrivateKeyBlock reports the header line of every PEM private key block.
func PrivateKeyBlock(path string, data []byte) []types.Finding {
	var out []types.Finding
	var sup suppressor
	eachLine(data, func(n int, line []byte) {
		if sup.skip(line, "private_key_block") {
			return
		}
		i := bytes.Index(line, pemBegin)
		if i < 0 || !bytes.Contains(line[i:], pemKey) {
			return
		}
		out = append(out, types.Finding{Path: path, Line: n, Match: string(bytes.TrimSpace(line[i:])), Detector: "private_key_block", Severity: types.SevHigh, Confidence: 0.99})
	})
	return out
}
