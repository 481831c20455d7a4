package nxbasic

// defaultFontData holds the characters ' ' to '_' in color 1, used when
// a cartridge brings no font of its own.
var defaultFontData = [...]byte{
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x01, 0x00, 0x01, 0x00, 0x01, 0x00, 0x01, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00,
	0x04, 0x40, 0x04, 0x40, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x04, 0x40, 0x04, 0x40, 0x15, 0x50, 0x04, 0x40, 0x15, 0x50, 0x04, 0x40, 0x04, 0x40, 0x00, 0x00,
	0x01, 0x00, 0x05, 0x50, 0x11, 0x00, 0x05, 0x40, 0x01, 0x10, 0x15, 0x40, 0x01, 0x00, 0x00, 0x00,
	0x14, 0x00, 0x14, 0x10, 0x00, 0x40, 0x01, 0x00, 0x04, 0x00, 0x10, 0x50, 0x00, 0x50, 0x00, 0x00,
	0x04, 0x00, 0x11, 0x00, 0x11, 0x00, 0x04, 0x00, 0x11, 0x10, 0x10, 0x40, 0x05, 0x10, 0x00, 0x00,
	0x01, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x40, 0x01, 0x00, 0x04, 0x00, 0x04, 0x00, 0x04, 0x00, 0x01, 0x00, 0x00, 0x40, 0x00, 0x00,
	0x04, 0x00, 0x01, 0x00, 0x00, 0x40, 0x00, 0x40, 0x00, 0x40, 0x01, 0x00, 0x04, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x01, 0x00, 0x11, 0x10, 0x05, 0x40, 0x11, 0x10, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x01, 0x00, 0x01, 0x00, 0x15, 0x50, 0x01, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01, 0x00, 0x01, 0x00, 0x04, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x15, 0x50, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x10, 0x00, 0x40, 0x01, 0x00, 0x04, 0x00, 0x10, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x05, 0x40, 0x10, 0x10, 0x10, 0x50, 0x11, 0x10, 0x14, 0x10, 0x10, 0x10, 0x05, 0x40, 0x00, 0x00,
	0x01, 0x00, 0x05, 0x00, 0x01, 0x00, 0x01, 0x00, 0x01, 0x00, 0x01, 0x00, 0x05, 0x40, 0x00, 0x00,
	0x05, 0x40, 0x10, 0x10, 0x00, 0x10, 0x01, 0x40, 0x04, 0x00, 0x10, 0x00, 0x15, 0x50, 0x00, 0x00,
	0x05, 0x40, 0x10, 0x10, 0x00, 0x10, 0x01, 0x40, 0x00, 0x10, 0x10, 0x10, 0x05, 0x40, 0x00, 0x00,
	0x00, 0x40, 0x01, 0x40, 0x04, 0x40, 0x10, 0x40, 0x15, 0x50, 0x00, 0x40, 0x00, 0x40, 0x00, 0x00,
	0x15, 0x50, 0x10, 0x00, 0x15, 0x40, 0x00, 0x10, 0x00, 0x10, 0x10, 0x10, 0x05, 0x40, 0x00, 0x00,
	0x05, 0x40, 0x10, 0x00, 0x10, 0x00, 0x15, 0x40, 0x10, 0x10, 0x10, 0x10, 0x05, 0x40, 0x00, 0x00,
	0x15, 0x50, 0x00, 0x10, 0x00, 0x40, 0x01, 0x00, 0x04, 0x00, 0x04, 0x00, 0x04, 0x00, 0x00, 0x00,
	0x05, 0x40, 0x10, 0x10, 0x10, 0x10, 0x05, 0x40, 0x10, 0x10, 0x10, 0x10, 0x05, 0x40, 0x00, 0x00,
	0x05, 0x40, 0x10, 0x10, 0x10, 0x10, 0x05, 0x50, 0x00, 0x10, 0x00, 0x10, 0x05, 0x40, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01, 0x00, 0x01, 0x00, 0x04, 0x00, 0x00, 0x00,
	0x00, 0x40, 0x01, 0x00, 0x04, 0x00, 0x10, 0x00, 0x04, 0x00, 0x01, 0x00, 0x00, 0x40, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x15, 0x50, 0x00, 0x00, 0x15, 0x50, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x04, 0x00, 0x01, 0x00, 0x00, 0x40, 0x00, 0x10, 0x00, 0x40, 0x01, 0x00, 0x04, 0x00, 0x00, 0x00,
	0x05, 0x40, 0x10, 0x10, 0x00, 0x10, 0x00, 0x40, 0x01, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00,
	0x05, 0x40, 0x10, 0x10, 0x11, 0x50, 0x11, 0x10, 0x11, 0x50, 0x10, 0x00, 0x05, 0x40, 0x00, 0x00,
	0x05, 0x40, 0x10, 0x10, 0x10, 0x10, 0x15, 0x50, 0x10, 0x10, 0x10, 0x10, 0x10, 0x10, 0x00, 0x00,
	0x15, 0x40, 0x10, 0x10, 0x10, 0x10, 0x15, 0x40, 0x10, 0x10, 0x10, 0x10, 0x15, 0x40, 0x00, 0x00,
	0x05, 0x40, 0x10, 0x10, 0x10, 0x00, 0x10, 0x00, 0x10, 0x00, 0x10, 0x10, 0x05, 0x40, 0x00, 0x00,
	0x15, 0x40, 0x10, 0x10, 0x10, 0x10, 0x10, 0x10, 0x10, 0x10, 0x10, 0x10, 0x15, 0x40, 0x00, 0x00,
	0x15, 0x50, 0x10, 0x00, 0x10, 0x00, 0x15, 0x40, 0x10, 0x00, 0x10, 0x00, 0x15, 0x50, 0x00, 0x00,
	0x15, 0x50, 0x10, 0x00, 0x10, 0x00, 0x15, 0x40, 0x10, 0x00, 0x10, 0x00, 0x10, 0x00, 0x00, 0x00,
	0x05, 0x40, 0x10, 0x10, 0x10, 0x00, 0x11, 0x50, 0x10, 0x10, 0x10, 0x10, 0x05, 0x50, 0x00, 0x00,
	0x10, 0x10, 0x10, 0x10, 0x10, 0x10, 0x15, 0x50, 0x10, 0x10, 0x10, 0x10, 0x10, 0x10, 0x00, 0x00,
	0x05, 0x40, 0x01, 0x00, 0x01, 0x00, 0x01, 0x00, 0x01, 0x00, 0x01, 0x00, 0x05, 0x40, 0x00, 0x00,
	0x01, 0x50, 0x00, 0x40, 0x00, 0x40, 0x00, 0x40, 0x00, 0x40, 0x10, 0x40, 0x05, 0x00, 0x00, 0x00,
	0x10, 0x10, 0x10, 0x40, 0x11, 0x00, 0x14, 0x00, 0x11, 0x00, 0x10, 0x40, 0x10, 0x10, 0x00, 0x00,
	0x10, 0x00, 0x10, 0x00, 0x10, 0x00, 0x10, 0x00, 0x10, 0x00, 0x10, 0x00, 0x15, 0x50, 0x00, 0x00,
	0x10, 0x10, 0x14, 0x50, 0x11, 0x10, 0x11, 0x10, 0x10, 0x10, 0x10, 0x10, 0x10, 0x10, 0x00, 0x00,
	0x10, 0x10, 0x14, 0x10, 0x11, 0x10, 0x10, 0x50, 0x10, 0x10, 0x10, 0x10, 0x10, 0x10, 0x00, 0x00,
	0x05, 0x40, 0x10, 0x10, 0x10, 0x10, 0x10, 0x10, 0x10, 0x10, 0x10, 0x10, 0x05, 0x40, 0x00, 0x00,
	0x15, 0x40, 0x10, 0x10, 0x10, 0x10, 0x15, 0x40, 0x10, 0x00, 0x10, 0x00, 0x10, 0x00, 0x00, 0x00,
	0x05, 0x40, 0x10, 0x10, 0x10, 0x10, 0x10, 0x10, 0x11, 0x10, 0x10, 0x40, 0x05, 0x10, 0x00, 0x00,
	0x15, 0x40, 0x10, 0x10, 0x10, 0x10, 0x15, 0x40, 0x11, 0x00, 0x10, 0x40, 0x10, 0x10, 0x00, 0x00,
	0x05, 0x50, 0x10, 0x00, 0x10, 0x00, 0x05, 0x40, 0x00, 0x10, 0x00, 0x10, 0x15, 0x40, 0x00, 0x00,
	0x15, 0x50, 0x01, 0x00, 0x01, 0x00, 0x01, 0x00, 0x01, 0x00, 0x01, 0x00, 0x01, 0x00, 0x00, 0x00,
	0x10, 0x10, 0x10, 0x10, 0x10, 0x10, 0x10, 0x10, 0x10, 0x10, 0x10, 0x10, 0x05, 0x40, 0x00, 0x00,
	0x10, 0x10, 0x10, 0x10, 0x10, 0x10, 0x10, 0x10, 0x10, 0x10, 0x04, 0x40, 0x01, 0x00, 0x00, 0x00,
	0x10, 0x10, 0x10, 0x10, 0x10, 0x10, 0x11, 0x10, 0x11, 0x10, 0x11, 0x10, 0x04, 0x40, 0x00, 0x00,
	0x10, 0x10, 0x10, 0x10, 0x04, 0x40, 0x01, 0x00, 0x04, 0x40, 0x10, 0x10, 0x10, 0x10, 0x00, 0x00,
	0x10, 0x10, 0x10, 0x10, 0x04, 0x40, 0x01, 0x00, 0x01, 0x00, 0x01, 0x00, 0x01, 0x00, 0x00, 0x00,
	0x15, 0x50, 0x00, 0x10, 0x00, 0x40, 0x01, 0x00, 0x04, 0x00, 0x10, 0x00, 0x15, 0x50, 0x00, 0x00,
	0x05, 0x40, 0x04, 0x00, 0x04, 0x00, 0x04, 0x00, 0x04, 0x00, 0x04, 0x00, 0x05, 0x40, 0x00, 0x00,
	0x00, 0x00, 0x10, 0x00, 0x04, 0x00, 0x01, 0x00, 0x00, 0x40, 0x00, 0x10, 0x00, 0x00, 0x00, 0x00,
	0x05, 0x40, 0x00, 0x40, 0x00, 0x40, 0x00, 0x40, 0x00, 0x40, 0x00, 0x40, 0x05, 0x40, 0x00, 0x00,
	0x01, 0x00, 0x04, 0x40, 0x10, 0x10, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x15, 0x50, 0x00, 0x00,
}

func defaultFont() []byte { return defaultFontData[:] }
