// Package baseline diffs normalized running configuration lines against a baseline.
package baseline

import (
	"fmt"
	"strings"

	"github.com/olusolaa/config-baseline-auditor/internal/core/domain"
	"github.com/olusolaa/config-baseline-auditor/pkg/compare"
)

const summaryNoDifferences = "Configuration matches baseline"

// Compare classifies every baseline line as present, replaced by a running line
// of the same command family, or missing. Running lines absent from the
// baseline are not reported, so ExtraConfigs is always empty.
func Compare(running, baseline []string, platform domain.Platform) domain.DiffResult {
	present := compare.NewLineSet(running)

	missing := []string{}
	different := []domain.ConfigPair{}

	for _, want := range baseline {
		if present.Contains(want) {
			continue
		}

		similar, found := firstSimilar(want, running, platform)
		if !found {
			missing = append(missing, want)
			continue
		}
		if similar != want {
			different = append(different, domain.ConfigPair{Baseline: want, Running: similar})
		}
	}

	return domain.DiffResult{
		HasDifferences:   len(missing) > 0 || len(different) > 0,
		MissingConfigs:   missing,
		ExtraConfigs:     []string{},
		DifferentConfigs: different,
		Summary:          Summary(missing, nil, different),
	}
}

func CompareForNetworkOS(running, baseline []string, networkOS string) domain.DiffResult {
	return Compare(running, baseline, domain.ResolvePlatform(networkOS))
}

func firstSimilar(want string, running []string, platform domain.Platform) (string, bool) {
	for _, line := range running {
		if isSimilar(want, line, platform) {
			return line, true
		}
	}
	return "", false
}

// isSimilar reports whether two lines belong to the same command family. The
// rule is the same on every platform. Tokenizing cannot fail: a line without
// tokens has the empty token.
func isSimilar(baselineLine, runningLine string, _ domain.Platform) bool {
	return compare.SameCommandFamily(baselineLine, runningLine)
}

// Summary renders the human readable outcome of a comparison. extra is
// accepted for symmetry with DiffResult but never reported.
func Summary(missing, _ []string, different []domain.ConfigPair) string {
	var parts []string
	if len(missing) > 0 {
		parts = append(parts, fmt.Sprintf("Missing %d baseline configuration(s)", len(missing)))
	}
	if len(different) > 0 {
		parts = append(parts, fmt.Sprintf("Found %d configuration difference(s)", len(different)))
	}
	if len(parts) == 0 {
		return summaryNoDifferences
	}
	return strings.Join(parts, "; ")
}
