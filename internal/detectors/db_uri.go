package detectors

import (
	"regexp"

	"github.com/redactyl/guardscan/internal/types"
)

var dbURIs = []struct {
	id string
	re *regexp.Regexp
}{
	{"postgres_uri_creds", regexp.MustCompile(`\bpostgres(?:ql)?://[^\s:@/]+:[^\s@/]+@[^\s/]+/[^\s?]+`)},
	{"mysql_uri_creds", regexp.MustCompile(`\bmysql://[^\s:@/]+:[^\s@/]+@[^\s/]+/[^\s?]+`)},
	{"mongodb_uri_creds", regexp.MustCompile(`\bmongodb(?:\+srv)?:/{2}[^\s:@/]+:[^\s@/]+@[^\s/]+/[^\s?]+`)},
}

// DBURIs reports connection strings with an inline user and password.
// Lines tagged "guardscan:ignore db_uri" are skipped.
func DBURIs(path string, data []byte) []types.Finding {
	var out []types.Finding
	var sup suppressor
	eachLine(data, func(n int, line []byte) {
		if sup.skip(line, "db_uri") {
			return
		}
		for _, d := range dbURIs {
			if m := d.re.Find(line); m != nil {
				out = append(out, types.Finding{Path: path, Line: n, Match: string(m), Detector: d.id, Severity: types.SevHigh, Confidence: 0.9})
			}
		}
	})
	return out
}
