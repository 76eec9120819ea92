// Package normalize turns configuration text into comparable line lists.
package normalize

import (
	"strings"

	"github.com/olusolaa/config-baseline-auditor/internal/core/domain"
)

// commentMarkers start comment lines on every supported platform
// ("!" on Cisco, "#" on Comware and VRP).
var commentMarkers = []string{"!", "#"}

// Normalize splits config into trimmed lines, dropping blank and comment lines.
// Order is preserved and nothing is deduplicated or case folded. platform is
// accepted for platform-specific rules; all platforms currently share one rule.
func Normalize(config string, _ domain.Platform) []string {
	lines := []string{}
	if config == "" {
		return lines
	}

	for _, line := range strings.Split(config, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || isComment(line) {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

func NormalizeForNetworkOS(config, networkOS string) []string {
	return Normalize(config, domain.ResolvePlatform(networkOS))
}

func isComment(line string) bool {
	for _, m := range commentMarkers {
		if strings.HasPrefix(line, m) {
			return true
		}
	}
	return false
}
