package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#888888", ColorRGB(0x88, 0x88, 0x88)},
		{"#bbb", ColorRGB(0xbb, 0xbb, 0xbb)},
		{" #FF0010 ", ColorRGB(0xff, 0x00, 0x10)},
		{"default", ColorDefault},
		{"", ColorDefault},
		{"4", ColorBlue},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseColor_Invalid(t *testing.T) {
	for _, in := range []string{"#12", "#gggggg", "256", "red"} {
		_, err := ParseColor(in)
		assert.Error(t, err, in)
	}
}

func TestColor_RGBRoundTrip(t *testing.T) {
	c := ColorRGB(1, 2, 3)
	r, g, b := c.RGB()

	assert.True(t, c.IsRGB())
	assert.Equal(t, [3]uint8{1, 2, 3}, [3]uint8{r, g, b})
	assert.Equal(t, "#010203", c.String())
	assert.False(t, ColorDefault.IsRGB())
	assert.False(t, ColorRed.IsRGB())
}

func TestColor_Scale(t *testing.T) {
	c := ColorRGB(100, 200, 50).Scale(1.5)
	r, g, b := c.RGB()

	assert.Equal(t, uint8(150), r)
	assert.Equal(t, uint8(255), g, "channels clamp at 255")
	assert.Equal(t, uint8(75), b)
	assert.Equal(t, ColorRed, ColorRed.Scale(2), "palette colors are unchanged")
}

func TestStyle_Attributes(t *testing.T) {
	s := DefaultStyle().Bold(true).Underline(true).Bold(false)

	assert.Equal(t, AttrUnderline, s.Attributes())
	fg, bg, _ := s.Decompose()
	assert.Equal(t, ColorDefault, fg)
	assert.Equal(t, ColorDefault, bg)
}

func TestClip_SetContent(t *testing.T) {
	rec := &recordingTarget{w: 10, h: 10}
	clip := NewClip(rec, 2, 2, 3, 3)

	clip.SetContent(1, 1, 'a', nil, DefaultStyle())
	clip.SetContent(2, 2, 'b', nil, DefaultStyle())
	clip.SetContent(4, 4, 'c', nil, DefaultStyle())
	clip.SetContent(5, 4, 'd', nil, DefaultStyle())

	assert.Equal(t, "bc", string(rec.runes))
}

func TestClip_Nested(t *testing.T) {
	rec := &recordingTarget{w: 10, h: 10}
	inner := NewClip(NewClip(rec, 0, 0, 5, 5), 3, 3, 5, 5)

	x, y, w, h := inner.Bounds()
	assert.Equal(t, [4]int{3, 3, 2, 2}, [4]int{x, y, w, h})
}

type recordingTarget struct {
	w, h  int
	runes []rune
}

func (r *recordingTarget) Size() (int, int) { return r.w, r.h }

func (r *recordingTarget) SetContent(x, y int, mainc rune, comb []rune, style Style) {
	r.runes = append(r.runes, mainc)
}
