package utils

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
)

// ColorToHexARGB converts a signed ARGB word color to hex.
// Example: -8266006 -> "#FF81DEEA"
func ColorToHexARGB(color int32) string {
	bytes := make([]byte, 4)
	binary.BigEndian.PutUint32(bytes, uint32(color))

	return fmt.Sprintf("#%02X%02X%02X%02X", bytes[0], bytes[1], bytes[2], bytes[3])
}

// HexARGBToColor parses "#AARRGGBB" (or "#RRGGBB", taken as opaque) into the
// signed ARGB representation stored on words.
func HexARGBToColor(hex string) (int32, error) {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	switch len(hex) {
	case 6:
		hex = "FF" + hex
	case 8:
	default:
		return 0, fmt.Errorf("invalid color %q: expected #RRGGBB or #AARRGGBB", hex)
	}

	value, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("failed to parse color string: %w", err)
	}

	return int32(uint32(value)), nil
}
