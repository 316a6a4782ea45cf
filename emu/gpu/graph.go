package gpu

/*
 * geforce - Raster executors for the graphics engine.
 *
 * Copyright 2025, The geforce emulator authors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// graphicsOp names an executable raster operation. Class handlers latch
// parameters into the channel and then trigger exactly one of these.
type graphicsOp int

const (
	opFillRect graphicsOp = iota
	opFillRectClipped
	opImageFromCPU
	opCopyArea
	opMemCopy
	opClearSurface
)

var opTable = map[graphicsOp]func(*GPU, *Channel){
	opFillRect:        func(g *GPU, ch *Channel) { g.fillRect(ch, false) },
	opFillRectClipped: func(g *GPU, ch *Channel) { g.fillRect(ch, true) },
	opImageFromCPU:    (*GPU).drawImage,
	opCopyArea:        (*GPU).copyArea,
	opMemCopy:         (*GPU).memCopy,
	opClearSurface:    (*GPU).clearSurface,
}

func (g *GPU) runOp(ch *Channel, op graphicsOp) {
	if fn, ok := opTable[op]; ok {
		fn(g, ch)
	}
}

// getPixel reads one pixel through a DMA object at a given column.
func (g *GPU) getPixel(obj, ofs, x, cb uint32) uint32 {
	switch cb {
	case 1:
		return uint32(g.dmaRead8(obj, ofs+x))
	case 2:
		return uint32(g.dmaRead16(obj, ofs+x*2))
	default:
		return g.dmaRead32(obj, ofs+x*4)
	}
}

// putPixel writes one pixel to the destination surface. X8R8G8B8
// destinations keep their pad byte clear.
func (g *GPU) putPixel(ch *Channel, ofs, x, value uint32) {
	switch {
	case ch.s2dColorBytes == 1:
		g.dmaWrite8(ch.s2dImgDst, ofs+x, uint8(value))
	case ch.s2dColorBytes == 2:
		g.dmaWrite16(ch.s2dImgDst, ofs+x*2, uint16(value))
	case ch.s2dColorFmt == 6:
		g.dmaWrite32(ch.s2dImgDst, ofs+x*4, value&0x00FFFFFF)
	default:
		g.dmaWrite32(ch.s2dImgDst, ofs+x*4, value)
	}
}

// fillRect paints a solid rectangle. The clipped form walks the full
// rectangle and tests every pixel against the clip box, so the reported
// dirty area is always the whole rectangle.
func (g *GPU) fillRect(ch *Channel, clipped bool) {
	var clipx0, clipy0, clipx1, clipy1 int16
	var dx, dy int16
	var width, height uint16

	if clipped {
		clipx0 = int16(ch.gdiClipYX0)
		clipy0 = int16(ch.gdiClipYX0 >> 16)
		clipx1 = int16(ch.gdiClipYX1)
		clipy1 = int16(ch.gdiClipYX1 >> 16)
		dx = int16(ch.gdiRectYX0)
		dy = int16(ch.gdiRectYX0 >> 16)
		clipx0 -= dx
		clipy0 -= dy
		clipx1 -= dx
		clipy1 -= dy
		width = uint16(ch.gdiRectYX1) - uint16(dx)
		height = uint16(ch.gdiRectYX1>>16) - uint16(dy)
	} else {
		dx = int16(ch.gdiRectXY >> 16)
		dy = int16(ch.gdiRectXY)
		width = uint16(ch.gdiRectWH >> 16)
		height = uint16(ch.gdiRectWH)
	}

	pitch := ch.s2dPitch >> 16
	color := ch.gdiRectColor
	ofs := ch.s2dOfsDst + uint32(int32(dy))*pitch + uint32(int32(dx))*ch.s2dColorBytes

	for y := uint16(0); y < height; y++ {
		for x := uint16(0); x < width; x++ {
			if !clipped || (int(x) >= int(clipx0) && int(x) < int(clipx1) &&
				int(y) >= int(clipy0) && int(y) < int(clipy1)) {
				g.putPixel(ch, ofs, uint32(x), color)
			}
		}
		ofs += pitch
	}

	g.disp.MarkDirty(int(dx), int(dy), int(width), int(height))
}

// ifcWord fetches a pixel out of the streamed upload buffer, honoring
// the upload's pixel size.
func (u *ifcState) ifcWord(wo uint32) uint32 {
	var idx uint32
	switch u.colorBytes {
	case 4:
		idx = wo
	case 2:
		idx = wo >> 1
	default:
		idx = wo >> 2
	}
	if idx >= uint32(len(u.words)) {
		return 0
	}
	switch u.colorBytes {
	case 4:
		return u.words[idx]
	case 2:
		return (u.words[idx] >> ((wo & 1) * 16)) & 0xFFFF
	default:
		return (u.words[idx] >> ((wo & 3) * 8)) & 0xFF
	}
}

// drawImage unpacks a completed CPU upload onto the destination surface.
// Source rows are padded to the configured source width.
func (g *GPU) drawImage(ch *Channel) {
	u := &ch.ifc
	dx := uint32(uint16(u.yx))
	dy := uint32(uint16(u.yx >> 16))
	dwidth := u.dhw & 0xFFFF
	height := u.dhw >> 16
	swidth := u.shw & 0xFFFF
	pitch := ch.s2dPitch >> 16

	ofs := ch.s2dOfsDst + dy*pitch + dx*ch.s2dColorBytes
	wo := uint32(0)

	for y := uint32(0); y < height; y++ {
		for x := uint32(0); x < dwidth; x++ {
			g.putPixel(ch, ofs, x, u.ifcWord(wo))
			wo++
		}
		wo += swidth - dwidth
		ofs += pitch
	}

	g.disp.MarkDirty(int(dx), int(dy), int(dwidth), int(height))
}

// copyArea blits between the source and destination surfaces. Walk
// direction reverses per axis when the rectangles overlap so a
// self-copy never reads pixels it already wrote.
func (g *GPU) copyArea(ch *Channel) {
	sx := uint16(ch.blitSYX)
	sy := uint16(ch.blitSYX >> 16)
	dx := uint16(ch.blitDYX)
	dy := uint16(ch.blitDYX >> 16)
	width := uint16(ch.blitHW)
	height := uint16(ch.blitHW >> 16)

	spitch := ch.s2dPitch & 0xFFFF
	dpitch := ch.s2dPitch >> 16
	srcOfs := ch.s2dOfsSrc
	dstOfs := ch.s2dOfsDst

	xdir := dx > sx
	ydir := dy > sy

	if ydir {
		srcOfs += (uint32(sy) + uint32(height) - 1) * spitch
		dstOfs += (uint32(dy) + uint32(height) - 1) * dpitch
		spitch = -spitch
		dpitch = -dpitch
	} else {
		srcOfs += uint32(sy) * spitch
		dstOfs += uint32(dy) * dpitch
	}
	srcOfs += uint32(sx) * ch.s2dColorBytes
	dstOfs += uint32(dx) * ch.s2dColorBytes

	for y := uint16(0); y < height; y++ {
		for x := uint16(0); x < width; x++ {
			xa := uint32(x)
			if xdir {
				xa = uint32(width - x - 1)
			}
			g.putPixel(ch, dstOfs, xa,
				g.getPixel(ch.s2dImgSrc, srcOfs, xa, ch.s2dColorBytes))
		}
		srcOfs += spitch
		dstOfs += dpitch
	}

	g.disp.MarkDirty(int(dx), int(dy), int(width), int(height))
}

// memCopy moves line_count runs of line_length bytes between two DMA
// objects, a word at a time.
func (g *GPU) memCopy(ch *Channel) {
	srcOfs := ch.m2mfSrcOfs
	dstOfs := ch.m2mfDstOfs

	for y := uint32(0); y < ch.m2mfLineCount&0xFFFF; y++ {
		for i := uint32(0); i < ch.m2mfLineLength; i += 4 {
			g.dmaWrite32(ch.m2mfDst, dstOfs+i, g.dmaRead32(ch.m2mfSrc, srcOfs+i))
		}
		srcOfs += ch.m2mfSrcPitch
		dstOfs += ch.m2mfDstPitch
	}

	// A copy into a framebuffer DMA object touches the scanout.
	target := (g.mem.InstRead32(ch.m2mfDst) >> 12) & 0xFF
	if target == 0x03 || target == 0x0B {
		width := ch.m2mfLineLength / (g.bpp >> 3)
		g.disp.MarkDirty(0, 0, int(width), int(ch.m2mfLineCount&0xFFFF))
	}
}

// clearSurface clears the color and depth planes selected by the clear
// mask over the 3D clip rectangle.
func (g *GPU) clearSurface(ch *Channel) {
	dx := ch.d3dClipH & 0xFFFF
	dy := ch.d3dClipV & 0xFFFF
	width := ch.d3dClipH >> 16
	height := ch.d3dClipV >> 16

	if ch.d3dClearSurface&0x000000F0 != 0 {
		pitch := ch.d3dPitchA & 0xFFFF
		ofs := ch.d3dColorOfs + dy*pitch + dx*ch.d3dColorBytes
		for y := uint32(0); y < height; y++ {
			for x := uint32(0); x < width; x++ {
				if ch.d3dColorBytes == 2 {
					g.dmaWrite16(ch.d3dColorObj, ofs+x*2, uint16(ch.d3dColorClear))
				} else {
					g.dmaWrite32(ch.d3dColorObj, ofs+x*4, ch.d3dColorClear)
				}
			}
			ofs += pitch
		}
		g.disp.MarkDirty(int(dx), int(dy), int(width), int(height))
	}

	if ch.d3dClearSurface&0x00000001 != 0 {
		pitch := ch.d3dPitchA >> 16
		ofs := ch.d3dZetaOfs + dy*pitch + dx*ch.d3dDepthBytes
		for y := uint32(0); y < height; y++ {
			for x := uint32(0); x < width; x++ {
				if ch.d3dDepthBytes == 2 {
					g.dmaWrite16(ch.d3dZetaObj, ofs+x*2, uint16(ch.d3dZStencilClear))
				} else {
					g.dmaWrite32(ch.d3dZetaObj, ofs+x*4, ch.d3dZStencilClear)
				}
			}
			ofs += pitch
		}
	}
}
