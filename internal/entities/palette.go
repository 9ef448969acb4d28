package entities

import "math/rand/v2"

// Palette colors offered when creating a word, encoded as signed ARGB.
const (
	ColorRedOrange  = int32(-21615)   // #FFFFAB91
	ColorLightGreen = int32(-1577573) // #FFE7ED9B
	ColorViolet     = int32(-3173158) // #FFCF94DA
	ColorBabyBlue   = int32(-8266006) // #FF81DEEA
	ColorRedPink    = int32(-749647)  // #FFF48FB1
)

// Palette lists the selectable word colors in display order.
var Palette = []int32{
	ColorRedOrange,
	ColorLightGreen,
	ColorViolet,
	ColorBabyBlue,
	ColorRedPink,
}

// RandomColor picks a palette color uniformly at random.
func RandomColor() int32 {
	return Palette[rand.IntN(len(Palette))]
}

// IsPaletteColor reports whether c is one of the palette colors.
func IsPaletteColor(c int32) bool {
	for _, p := range Palette {
		if p == c {
			return true
		}
	}
	return false
}
