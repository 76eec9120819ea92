package extract

import "github.com/olusolaa/config-baseline-auditor/internal/core/domain"

// Built-in section tables. Output follows table order, so the order here is the
// order sections appear in extracted text.
var (
	ciscoSections = []Section{
		directive("service password-encryption", "!"),
		block("banner login", "!"),
		block("line con 0", "line"),
		block("line vty", "line"),
		directive("snmp-server community", "!"),
		directive("tacacs-server host", "!"),
	}

	h3cSections = []Section{
		block("header login", "#"),
		block("line aux", "line"),
		block("line vty", "line"),
		directive("hwtacacs scheme", "#"),
		directive("snmp-agent community", "#"),
	}

	huaweiSections = []Section{
		block("user-interface console", "user-interface"),
		block("user-interface vty", "user-interface"),
		directive("hwtacacs-server", "#"),
		directive("snmp-agent community", "#"),
	}
)

func defaultTables() map[domain.Platform][]Section {
	return map[domain.Platform][]Section{
		domain.PlatformCisco:  ciscoSections,
		domain.PlatformH3C:    h3cSections,
		domain.PlatformHuawei: huaweiSections,
	}
}
