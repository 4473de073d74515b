package longview

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringWidth(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, StringWidth(""))
	assert.Equal(t, 5, StringWidth("héllo"))
	assert.Equal(t, 4, StringWidth("日本"))
}

func TestSanitizeRowCases(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in, want string
	}{
		{in: "plain", want: "plain"},
		{in: "a\tb", want: "a   b"},
		{in: "\tx", want: "    x"},
		{in: "日本\tx", want: "日本    x"},
		{in: "ab\x1bc\x7f", want: "abc"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, SanitizeRow(tc.in, 4), "row %q", tc.in)
	}
	assert.Equal(t, "a   b", SanitizeRow("a\tb", 0), "non-positive tab width uses 4")
}
