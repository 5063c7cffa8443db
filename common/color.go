package common

// Color is a linear RGB color with components in [0, 1].
type Color [3]float32

// HexColor converts a 0xRRGGBB literal into a Color.
//
// Parameters:
//   - hex: packed 24-bit color
//
// Returns:
//   - Color: the unpacked color
func HexColor(hex uint32) Color {
	return Color{
		float32((hex>>16)&0xff) / 255,
		float32((hex>>8)&0xff) / 255,
		float32(hex&0xff) / 255,
	}
}

// RGBA returns the color with the given alpha appended.
func (c Color) RGBA(alpha float32) [4]float32 {
	return [4]float32{c[0], c[1], c[2], alpha}
}
