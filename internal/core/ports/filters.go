package ports

import "github.com/olusolaa/config-baseline-auditor/internal/core/domain"

// SectionExtractor selects security-relevant stanzas from configuration text.
type SectionExtractor interface {
	Extract(config string, platform domain.Platform) string
}

type Normalizer func(config string, platform domain.Platform) []string

type BaselineComparer func(running, baseline []string, platform domain.Platform) domain.DiffResult
