package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolvePlatform(t *testing.T) {
	testCases := []struct {
		networkOS string
		expected  Platform
	}{
		{"ios", PlatformCisco},
		{"nxos", PlatformCisco},
		{"eos", PlatformCisco},
		{"comware", PlatformH3C},
		{"ce", PlatformHuawei},
		{"junos", PlatformUnknown},
		{"IOS", PlatformUnknown},
		{"", PlatformUnknown},
	}

	for _, tc := range testCases {
		t.Run(tc.networkOS, func(t *testing.T) {
			p := ResolvePlatform(tc.networkOS)
			assert.Equal(t, tc.expected, p)
			assert.Equal(t, tc.expected != PlatformUnknown, p.Known())
		})
	}
}

func TestSupportedNetworkOS(t *testing.T) {
	assert.Equal(t, []string{"ce", "comware", "eos", "ios", "nxos"}, SupportedNetworkOS())
}

func TestPlatformString(t *testing.T) {
	assert.Equal(t, "unknown", PlatformUnknown.String())
	assert.Equal(t, "huawei", PlatformHuawei.String())
}
