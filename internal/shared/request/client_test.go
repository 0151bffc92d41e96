package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveClientType(t *testing.T) {
	cases := []struct {
		header, ua string
		want       ClientType
	}{
		{"web", "", ClientWeb},
		{"MOBILE", "Mozilla/5.0", ClientMobile},
		{"", "Mozilla/5.0 (X11; Linux x86_64)", ClientWeb},
		{"", "Dart/3.2 (dart:io)", ClientMobile},
		{"", "curl/8.4.0", ClientAPI},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ResolveClientType(tc.header, tc.ua), tc.header+"|"+tc.ua)
	}
	assert.True(t, IsWebClient(ClientWeb))
	assert.False(t, IsWebClient(ClientAPI))
}
