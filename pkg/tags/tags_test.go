package tags

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundTrip(t *testing.T) {
	cases := [][]string{
		{},
		{"Cardio"},
		{"Bodybuilding", "Powerlifting", "General fitness"},
		{"with \"quotes\"", "with,comma"},
	}

	for _, in := range cases {
		out := Decode(Encode(in))
		assert.Equal(t, in, out)
	}
}

func TestEncodeNil(t *testing.T) {
	assert.Equal(t, "[]", Encode(nil))
}

func TestDecodeMalformed(t *testing.T) {
	cases := []string{
		"",
		"not json",
		"{\"a\":1}",
		"[1,2,3]",
		"null",
		"[\"unterminated",
	}

	for _, in := range cases {
		out := Decode(in)
		assert.NotNil(t, out, "input %q", in)
		assert.Empty(t, out, "input %q", in)
	}
}

func TestContainsAny(t *testing.T) {
	set := []string{"Cardio", "Pilates"}

	assert.True(t, ContainsAny(set, []string{"Pilates", "Powerlifting"}))
	assert.False(t, ContainsAny(set, []string{"Powerlifting"}))
	assert.False(t, ContainsAny(set, nil))
	assert.False(t, ContainsAny(nil, []string{"Cardio"}))
}
