package models

import (
	"fmt"
	"strings"
)

// ColorTag is the closed set of colors an interval can be tagged with.
type ColorTag string

const (
	ColorRed    ColorTag = "red"
	ColorOrange ColorTag = "orange"
	ColorYellow ColorTag = "yellow"
	ColorGreen  ColorTag = "green"
	ColorBlue   ColorTag = "blue"
	ColorPurple ColorTag = "purple"
	ColorPink   ColorTag = "pink"

	// DefaultColor is used for new intervals and for unrecognized stored tags.
	DefaultColor = ColorBlue
)

// ColorTags lists every tag in display order.
var ColorTags = []ColorTag{
	ColorRed,
	ColorOrange,
	ColorYellow,
	ColorGreen,
	ColorBlue,
	ColorPurple,
	ColorPink,
}

// Valid reports whether c is one of the seven known tags.
func (c ColorTag) Valid() bool {
	for _, tag := range ColorTags {
		if c == tag {
			return true
		}
	}
	return false
}

func (c ColorTag) String() string {
	return string(c)
}

// ParseColorTag parses a tag name case-insensitively.
func ParseColorTag(s string) (ColorTag, error) {
	tag := ColorTag(strings.ToLower(strings.TrimSpace(s)))
	if !tag.Valid() {
		return "", fmt.Errorf("invalid color tag: %q", s)
	}
	return tag, nil
}
