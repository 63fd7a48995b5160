package detectors

import (
	"sort"

	"github.com/redactyl/guardscan/internal/types"
)

// Detector inspects data read from path. Implementations may be handed a
// live file mapping and must copy anything they keep.
type Detector func(path string, data []byte) []types.Finding

var all = []Detector{
	AWSKeys, GitHubToken, SlackToken, SlackWebhook, JWTToken, PrivateKeyBlock,
	StripeSecret, GoogleAPIKey, GitLabToken, OpenAIAPIKey, AnthropicAPIKey,
	NPMToken, SendGridAPIKey, DBURIs, EntropyNearbySecrets,
}

// RunAll runs every detector over data and drops duplicate findings.
func RunAll(path string, data []byte) []types.Finding {
	var out []types.Finding
	for _, d := range all {
		out = append(out, d(path, data)...)
	}
	return dedupe(out)
}

var ids = []string{
	"aws_access_key",
	"aws_secret_key",
	"github_token",
	"slack_token",
	"slack_webhook",
	"jwt",
	"private_key_block",
	"stripe_secret",
	"google_api_key",
	"gitlab_token",
	"openai_api_key",
	"anthropic_api_key",
	"npm_token",
	"sendgrid_api_key",
	"postgres_uri_creds",
	"mysql_uri_creds",
	"mongodb_uri_creds",
	"entropy_context",
}

// IDs lists every detector ID a finding can carry.
func IDs() []string {
	return append([]string(nil), ids...)
}

// Coarse groups for test-detector.
var funcByID = map[string]Detector{
	"aws":        AWSKeys,
	"github":     GitHubToken,
	"slack":      SlackToken,
	"slackweb":   SlackWebhook,
	"jwt":        JWTToken,
	"privatekey": PrivateKeyBlock,
	"stripe":     StripeSecret,
	"google":     GoogleAPIKey,
	"gitlab":     GitLabToken,
	"openai":     OpenAIAPIKey,
	"anthropic":  AnthropicAPIKey,
	"npm":        NPMToken,
	"sendgrid":   SendGridAPIKey,
	"dburi":      DBURIs,
	"entropy":    EntropyNearbySecrets,
}

func FunctionIDs() []string {
	out := make([]string, 0, len(funcByID))
	for id := range funcByID {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// RunFunction runs a single detector group. Unknown groups report nothing.
func RunFunction(id, path string, data []byte) []types.Finding {
	if f, ok := funcByID[id]; ok {
		return f(path, data)
	}
	return nil
}

func dedupe(findings []types.Finding) []types.Finding {
	seen := make(map[string]bool, len(findings))
	var result []types.Finding
	for _, f := range findings {
		key := f.Path + "|" + f.Detector + "|" + f.Match
		if !seen[key] {
			seen[key] = true
			result = append(result, f)
		}
	}
	return result
}
