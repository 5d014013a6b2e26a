package certificate

import "image/color"

// Certificate palette.
var (
	colorWhite   = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	colorBlue800 = color.NRGBA{R: 0x1e, G: 0x40, B: 0xaf, A: 0xff}
	colorBlue900 = color.NRGBA{R: 0x1e, G: 0x3a, B: 0x8a, A: 0xff}
	colorGray300 = color.NRGBA{R: 0xd1, G: 0xd5, B: 0xdb, A: 0xff}
	colorGray400 = color.NRGBA{R: 0x9c, G: 0xa3, B: 0xaf, A: 0xff}
	colorGray600 = color.NRGBA{R: 0x4b, G: 0x55, B: 0x63, A: 0xff}
	colorGray700 = color.NRGBA{R: 0x37, G: 0x41, B: 0x51, A: 0xff}
	colorGray800 = color.NRGBA{R: 0x1f, G: 0x29, B: 0x37, A: 0xff}
)
