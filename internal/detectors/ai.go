package detectors

import (
	"regexp"

	"github.com/redactyl/guardscan/internal/types"
)

var (
	reOpenAIKey     = regexp.MustCompile(`\bsk-[A-Za-z0-9]{32,}\b`)
	reOpenAIContext = regexp.MustCompile(`(?i)(openai|gpt|chatgpt)`)
	reAnthropicKey  = regexp.MustCompile(`\bsk-ant-[A-Za-z0-9_-]{30,}\b`)
)

// OpenAIAPIKey needs an OpenAI hint on the line since the key shape alone is
// shared with other vendors.
func OpenAIAPIKey(path string, data []byte) []types.Finding {
	return findWithContext(path, data, reOpenAIContext, reOpenAIKey, "openai_api_key", types.SevHigh, 0.9)
}

func AnthropicAPIKey(path string, data []byte) []types.Finding {
	return findSimple(path, data, reAnthropicKey, "anthropic_api_key", types.SevHigh, 0.95)
}
