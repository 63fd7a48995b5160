package detectors

import (
	"regexp"

	"github.com/redactyl/guardscan/internal/types"
	"github.com/redactyl/guardscan/internal/validate"
)

var (
	reAWSAccess = regexp.MustCompile(`\b(?:AKIA|ASIA)[0-9A-Z]{16}\b`)
	// Broad shape; only trusted when a key name sits next to it.
	reAWSSecret = regexp.MustCompile(`(?i)(aws_secret_access_key|aws_secret_key|secretKey)["'\s:=]+([A-Za-z0-9/+=]{40})`)
	reGoogleKey = regexp.MustCompile(`\bAIza[0-9A-Za-z\-_]{35}\b`)
)

// AWSKeys reports AWS access key IDs and secret access keys.
func AWSKeys(path string, data []byte) []types.Finding {
	var out []types.Finding
	var sup suppressor
	eachLine(data, func(n int, line []byte) {
		if sup.skip(line, "aws_access_key") {
			return
		}
		if m := reAWSAccess.Find(line); m != nil && validate.AWSAccessKeyID(string(m)) {
			out = append(out, types.Finding{Path: path, Line: n, Match: string(m), Detector: "aws_access_key", Severity: types.SevHigh, Confidence: 0.9})
		}
		if m := reAWSSecret.FindSubmatch(line); len(m) == 3 && validate.AWSSecret(string(m[2])) {
			out = append(out, types.Finding{Path: path, Line: n, Match: string(m[2]), Detector: "aws_secret_key", Severity: types.SevHigh, Confidence: 0.95})
		}
	})
	return out
}

func GoogleAPIKey(path string, data []byte) []types.Finding {
	return findSimple(path, data, reGoogleKey, "google_api_key", types.SevHigh, 0.95)
}
