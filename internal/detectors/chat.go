package detectors

import (
	"regexp"

	"github.com/redactyl/guardscan/internal/types"
)

var (
	reSlackToken   = regexp.MustCompile(`xox[abprs]-[A-Za-z0-9-]{10,48}`)
	reSlackWebhook = regexp.MustCompile(`https://hooks\.slack\.com/services/[A-Z0-9]{9,}/[A-Z0-9]{9,}/[A-Za-z0-9]{24,}`)
	reSendGridKey  = regexp.MustCompile(`\bSG\.[A-Za-z0-9_-]{16}\.[A-Za-z0-9_-]{32,}\b`)
)

func SlackToken(path string, data []byte) []types.Finding {
	return findSimple(path, data, reSlackToken, "slack_token", types.SevHigh, 0.85)
}

func SlackWebhook(path string, data []byte) []types.Finding {
	return findSimple(path, data, reSlackWebhook, "slack_webhook", types.SevHigh, 0.95)
}

func SendGridAPIKey(path string, data []byte) []types.Finding {
	return findSimple(path, data, reSendGridKey, "sendgrid_api_key", types.SevHigh, 0.95)
}
