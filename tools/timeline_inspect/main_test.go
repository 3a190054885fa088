package main

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
)

func TestTruncate_KeepsRunesWhole(t *testing.T) {
	req := require.New(t)

	short := "tick"
	req.Equal(short, truncate(short, contentWidth))

	// 39 ASCII bytes then a 3-byte rune straddling byte 40
	long := "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa€€€"
	cut := truncate(long, contentWidth)
	req.True(utf8.ValidString(cut))
	req.Equal(contentWidth, utf8.RuneCountInString(cut))
	req.Equal("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa€", cut)
}
