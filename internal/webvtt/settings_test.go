package webvtt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCueSettingsDefaults(t *testing.T) {
	s := ParseCueSettings("")
	assert.Equal(t, AlignAuto, s.Vertical)
	assert.True(t, s.SnapToLines)
	assert.Equal(t, -1.0, s.Line)
	assert.Equal(t, -1.0, s.Position)
	assert.Equal(t, 1.0, s.Size)
	assert.Equal(t, AlignCenter, s.Align)
}

func TestParseCueSettingsPosition(t *testing.T) {
	// Q1: alignment sub-value of "position" lands on PositionAlign.
	s := ParseCueSettings("position:40%,line-right")
	assert.InDelta(t, 0.4, s.Position, 1e-9)
	assert.Equal(t, AlignRight, s.PositionAlign)
	assert.Equal(t, AlignStart, s.LineAlign, "line-align must be untouched by position")
}

func TestParseCueSettingsLine(t *testing.T) {
	s := ParseCueSettings("line:10%,center")
	assert.InDelta(t, 0.1, s.Line, 1e-9)
	assert.Equal(t, AlignCenter, s.LineAlign)
}

func TestParseCueSettingsRegionAndAlign(t *testing.T) {
	s := ParseCueSettings("region:bottom align:left vertical:rl")
	assert.True(t, s.HasRegionID)
	assert.Equal(t, "bottom", s.RegionID)
	assert.Equal(t, AlignLeft, s.Align)
	assert.Equal(t, AlignRight, s.Vertical)
}

func TestParseCueSettingsUnknownKeyIgnored(t *testing.T) {
	s := ParseCueSettings("bogus:value size:50%")
	assert.InDelta(t, 0.5, s.Size, 1e-9)
}

func TestParseCueSettingsMalformedKeepsDefault(t *testing.T) {
	s := ParseCueSettings("size:notapercent")
	assert.Equal(t, 1.0, s.Size)
}
