// Package video turns the video memory and registers of a machine into
// RGB pixels, one scanline at a time.
package video

import (
	"github.com/antibyte/nxterm/pkg/machine"
)

// pixel layout in the line buffers: color:2, palette:3, priority at bit 7
const priorityBit = 0x80

// RGB converts a 6 bit color register value (rrggbb) to 0xRRGGBB.
func RGB(c byte) uint32 {
	r := uint32(c>>4&0x03) * 0x55
	g := uint32(c>>2&0x03) * 0x55
	b := uint32(c&0x03) * 0x55
	return r<<16 | g<<8 | b
}

// characterPixel returns the 2 bit color of a character pixel.
func characterPixel(char []byte, x, y int) byte {
	if x < 4 {
		return char[y<<1] >> ((3 - x) << 1) & 0x03
	}
	return char[y<<1+1] >> ((7 - x) << 1) & 0x03
}

// Render draws the full screen into out, which must hold at least
// ScreenWidth*ScreenHeight pixels. raster is called before each line
// and may change registers for that line.
func Render(m *machine.Machine, out []uint32, raster func(y int)) {
	var line, sprites [machine.ScreenWidth]byte
	for y := 0; y < machine.ScreenHeight; y++ {
		if raster != nil {
			raster(y)
		}
		RenderLine(m, y, line[:], sprites[:])
		colors := m.Colors()
		row := out[y*machine.ScreenWidth : (y+1)*machine.ScreenWidth]
		for x, p := range line {
			row[x] = RGB(colors[p&0x1F])
		}
	}
}

// RenderLine fills line with the pixels of screen line y. sprites is a
// scratch buffer of the same size.
func RenderLine(m *machine.Machine, y int, line, sprites []byte) {
	clear(line)
	d := m.DisplayAttr()
	if d.Has(machine.DisplayPlaneB) {
		renderPlane(m, 1, d.Has(machine.DisplayPlaneBCellSize), y, line)
	}
	if d.Has(machine.DisplayPlaneA) {
		renderPlane(m, 0, d.Has(machine.DisplayPlaneACellSize), y, line)
	}
	if d.Has(machine.DisplaySprites) {
		clear(sprites)
		renderSprites(m, y, sprites)
		for x, p := range sprites {
			if p != 0 && p&priorityBit >= line[x]&priorityBit {
				line[x] = p
			}
		}
	}
}

func renderPlane(m *machine.Machine, plane int, bigCells bool, y int, line []byte) {
	scrollX, scrollY := m.Scroll(plane)
	shift, mask := 3, 7
	if bigCells {
		shift, mask = 4, 15
	}
	planeY := y + scrollY
	row := planeY >> shift
	cellY := planeY & mask

	for x := range line {
		planeX := x + scrollX
		cell := m.Cell(plane, planeX>>shift, row)
		prio := byte(0)
		if cell.Attr.Priority() {
			prio = priorityBit
		}
		if prio < line[x]&priorityBit {
			continue
		}
		cx, cy := planeX&mask, cellY
		if cell.Attr.FlipX() {
			cx = mask - cx
		}
		if cell.Attr.FlipY() {
			cy = mask - cy
		}
		char := int(cell.Character) + (cy>>3)*16 + cx>>3
		if p := characterPixel(m.Character(char), cx&7, cy&7); p != 0 {
			line[x] = p | byte(cell.Attr.Palette())<<2 | prio
		}
	}
}

// renderSprites draws all sprites touching line y, sprite 0 on top.
func renderSprites(m *machine.Machine, y int, buf []byte) {
	for i := machine.NumSprites - 1; i >= 0; i-- {
		s := m.Sprite(i)
		if s.X == 0 && s.Y == 0 {
			continue
		}
		size := (s.Attr.Size() + 1) << 3
		sy := y - int(s.Y) + machine.SpriteOffset
		if sy < 0 || sy >= size {
			continue
		}
		if s.Attr.FlipY() {
			sy = size - sy - 1
		}
		prio := byte(0)
		if s.Attr.Priority() {
			prio = priorityBit
		}
		left := int(s.X) - machine.SpriteOffset
		for sx := 0; sx < size; sx++ {
			x := left + sx
			if x < 0 || x >= len(buf) {
				continue
			}
			cx := sx
			if s.Attr.FlipX() {
				cx = size - sx - 1
			}
			char := int(s.Character) + (sy>>3)*16 + cx>>3
			if p := characterPixel(m.Character(char), cx&7, sy&7); p != 0 {
				buf[x] = p | byte(s.Attr.Palette())<<2 | prio
			}
		}
	}
}
