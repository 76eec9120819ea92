// Package extract pulls security-relevant stanzas out of device configuration text.
package extract

import (
	"strings"

	"github.com/olusolaa/config-baseline-auditor/internal/core/domain"
)

type Extractor struct {
	tables map[domain.Platform][]Section
}

type Option func(*Extractor)

// WithSections appends sections to a platform's table. Appending to
// PlatformUnknown is ignored so unknown platforms keep passing text through.
func WithSections(platform domain.Platform, sections ...Section) Option {
	return func(e *Extractor) {
		if !platform.Known() || len(sections) == 0 {
			return
		}
		table := make([]Section, 0, len(e.tables[platform])+len(sections))
		table = append(table, e.tables[platform]...)
		e.tables[platform] = append(table, sections...)
	}
}

func New(opts ...Option) *Extractor {
	e := &Extractor{tables: defaultTables()}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Extract returns the text of every section in the platform's table, in table
// order and then match order, joined by newlines. Text for a platform without a
// table is returned unchanged.
func (e *Extractor) Extract(config string, platform domain.Platform) string {
	table, ok := e.tables[platform]
	if !ok {
		return config
	}
	if config == "" {
		return ""
	}

	var extracted []string
	for _, s := range table {
		extracted = append(extracted, s.FindAll(config)...)
	}
	return strings.Join(extracted, "\n")
}

func (e *Extractor) Sections(platform domain.Platform) []Section {
	return append([]Section(nil), e.tables[platform]...)
}

var builtin = New()

func Extract(config string, platform domain.Platform) string {
	return builtin.Extract(config, platform)
}

// ExtractForNetworkOS is Extract keyed by a network_os tag such as "ios" or "ce".
func ExtractForNetworkOS(config, networkOS string) string {
	return builtin.Extract(config, domain.ResolvePlatform(networkOS))
}
