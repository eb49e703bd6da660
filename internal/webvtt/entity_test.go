package webvtt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeEntities(t *testing.T) {
	cases := map[string]string{
		"Tom &amp; Jerry":    "Tom & Jerry",
		"&lt;tag&gt;":        "<tag>",
		"plain text":         "plain text",
		"&nbsp;pad":          " pad",
		"&#65;&#x42;":        "AB",
		"dangling &unknown;": "dangling &unknown;",
		"no closing &amp":    "no closing &amp",
		"":                   "",
	}
	for in, want := range cases {
		assert.Equal(t, want, DecodeEntities(in), "input=%q", in)
	}
}
