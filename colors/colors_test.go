package colors

import (
	"image/color"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propbind/access"
	"propbind/coerce"
)

type swatch struct {
	Label string
	Hue   int
}

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want color.RGBA
	}{
		{"#FF0000", color.RGBA{R: 0xff, A: 0xff}},
		{"#f00", color.RGBA{R: 0xff, A: 0xff}},
		{"#8000FF00", color.RGBA{G: 0xff, A: 0x80}},
		{" #0000ff ", color.RGBA{B: 0xff, A: 0xff}},
		{"red", color.RGBA{R: 0xff, A: 0xff}},
		{"CornflowerBlue", color.RGBA{R: 0x64, G: 0x95, B: 0xed, A: 0xff}},
		{"transparent", color.RGBA{}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "#", "#12345", "#GGGGGG", "not-a-color"} {
		_, err := Parse(in)
		assert.ErrorIs(t, err, ErrInvalidColor, "input %q", in)
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "#FF0000", Format(color.RGBA{R: 0xff, A: 0xff}))
	assert.Equal(t, "#8000FF00", Format(color.RGBA{G: 0xff, A: 0x80}))
}

func TestRegister_ConversionChain(t *testing.T) {
	t.Parallel()

	r := coerce.NewRegistry(coerce.WithAccessCache(access.NewCache()))
	Register(r)

	rgba := reflect.TypeFor[color.RGBA]()

	got, err := r.Convert(reflect.TypeFor[string](), rgba, "#FF0000", false)
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0xff, A: 0xff}, got)
	assert.Equal(t, coerce.StrategyConstruct, r.Strategy(reflect.TypeFor[string](), rgba))

	text, err := r.Convert(rgba, reflect.TypeFor[string](), color.RGBA{B: 0xff, A: 0xff}, false)
	require.NoError(t, err)
	assert.Equal(t, "#0000FF", text)

	_, err = r.Convert(rgba, reflect.TypeFor[swatch](), color.RGBA{R: 1}, false)
	assert.ErrorIs(t, err, coerce.ErrUnsupportedConversion)

	assert.True(t, r.IsConvertible(reflect.TypeFor[string](), rgba))
	assert.False(t, r.IsConvertible(rgba, reflect.TypeFor[swatch]()))
}
