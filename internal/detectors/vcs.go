package detectors

import (
	"regexp"

	"github.com/redactyl/guardscan/internal/types"
)

var (
	reGitHubToken = regexp.MustCompile(`g(hp|ho|hu|hs|hr)_[A-Za-z0-9]{36}`)
	reGitLabToken = regexp.MustCompile(`\bglpat-[A-Za-z0-9_-]{20}\b`)
	reNPMToken    = regexp.MustCompile(`\bnpm_[A-Za-z0-9]{36}\b`)
)

func GitHubToken(path string, data []byte) []types.Finding {
	return findSimple(path, data, reGitHubToken, "github_token", types.SevHigh, 0.9)
}

func GitLabToken(path string, data []byte) []types.Finding {
	return findSimple(path, data, reGitLabToken, "gitlab_token", types.SevHigh, 0.9)
}

func NPMToken(path string, data []byte) []types.Finding {
	return findSimple(path, data, reNPMToken, "npm_token", types.SevHigh, 0.9)
}
