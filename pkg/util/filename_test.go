package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeFilename(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain name untouched", in: "01_intro.png", want: "01_intro.png"},
		{name: "strips directories", in: "../../etc/passwd", want: "passwd"},
		{name: "strips windows paths", in: `C:\uploads\scene.png`, want: "scene.png"},
		{name: "replaces unsafe runes", in: `sc*ne?.png`, want: "sc_ne_.png"},
		{name: "dot only", in: ".", want: "_"},
		{name: "dot dot", in: "..", want: "_"},
		{name: "keeps unicode", in: "场景01.png", want: "场景01.png"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SanitizeFilename(tc.in))
		})
	}
}
