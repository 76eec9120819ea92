package domain

import "sort"

// Platform selects the pattern table and comparison rules for a device dialect.
type Platform string

const (
	PlatformUnknown Platform = ""
	PlatformCisco   Platform = "cisco"
	PlatformH3C     Platform = "h3c"
	PlatformHuawei  Platform = "huawei"
)

func (p Platform) String() string {
	if p == PlatformUnknown {
		return "unknown"
	}
	return string(p)
}

func (p Platform) Known() bool {
	return p != PlatformUnknown
}

// Network OS tags as supplied by the orchestration layer.
const (
	NetworkOSIOS     = "ios"
	NetworkOSNXOS    = "nxos"
	NetworkOSEOS     = "eos"
	NetworkOSComware = "comware"
	NetworkOSCE      = "ce"
)

// ios, nxos and eos share one pattern table; their security stanzas use compatible syntax.
var networkOSPlatforms = map[string]Platform{
	NetworkOSIOS:     PlatformCisco,
	NetworkOSNXOS:    PlatformCisco,
	NetworkOSEOS:     PlatformCisco,
	NetworkOSComware: PlatformH3C,
	NetworkOSCE:      PlatformHuawei,
}

// ResolvePlatform maps a network_os tag to its platform. Unrecognised tags,
// including differently cased ones, resolve to PlatformUnknown.
func ResolvePlatform(networkOS string) Platform {
	return networkOSPlatforms[networkOS]
}

func SupportedNetworkOS() []string {
	tags := make([]string, 0, len(networkOSPlatforms))
	for tag := range networkOSPlatforms {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
