package gpu

/*
 * geforce - Per-class method handlers.
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

import (
	"log/slog"
	"math"
)

// Clip rectangle object.
func (g *GPU) execClip(ch *Channel, subc, cls, mthd, param uint32) {
	switch mthd {
	case 0x0C0:
		ch.clipYX = param
	case 0x0C1:
		ch.clipHW = param
	default:
		slog.Debug("gpu: unknown clip method", "method", mthd)
	}
}

// Memory to memory format object.
func (g *GPU) execM2MF(ch *Channel, subc, cls, mthd, param uint32) {
	switch mthd {
	case 0x061:
		ch.m2mfSrc = param
	case 0x062:
		ch.m2mfDst = param
	case 0x0C3:
		ch.m2mfSrcOfs = param
	case 0x0C4:
		ch.m2mfDstOfs = param
	case 0x0C5:
		ch.m2mfSrcPitch = param
	case 0x0C6:
		ch.m2mfDstPitch = param
	case 0x0C7:
		ch.m2mfLineLength = param
	case 0x0C8:
		ch.m2mfLineCount = param
	case 0x0C9:
		ch.m2mfFormat = param
	case 0x0CA:
		ch.m2mfBufNotify = param
		g.runOp(ch, opMemCopy)
		g.writeNotify(ch, subc, 0x10)
	default:
		slog.Debug("gpu: unknown m2mf method", "method", mthd)
	}
}

// Raster operation selector.
func (g *GPU) execROP(ch *Channel, subc, cls, mthd, param uint32) {
	if mthd == 0x0C0 {
		ch.rop = uint8(param)
	} else {
		slog.Debug("gpu: unknown rop method", "method", mthd)
	}
}

// 8x8 pattern in mono bitmap and indexed color encodings.
func (g *GPU) execPattern(ch *Channel, subc, cls, mthd, param uint32) {
	switch mthd {
	case 0x0C2:
		ch.pattShape = param
	case 0x0C3:
		ch.pattType = param
	case 0x0C4:
		ch.pattBgColor = param
	case 0x0C5:
		ch.pattFgColor = param
	case 0x0C6, 0x0C7:
		for i := uint32(0); i < 32; i++ {
			ch.pattDataMono[i+(mthd&1)*32] = (param>>(i^7))&1 != 0
		}
	default:
		if mthd >= 0x100 && mthd < 0x110 {
			i := (mthd - 0x100) * 4
			ch.pattDataColor[i] = param & 0xFF
			ch.pattDataColor[i+1] = (param >> 8) & 0xFF
			ch.pattDataColor[i+2] = (param >> 16) & 0xFF
			ch.pattDataColor[i+3] = param >> 24
		} else {
			slog.Debug("gpu: unknown pattern method", "method", mthd)
		}
	}
}

// GDI rectangle fills, plain and clip tested.
func (g *GPU) execGDI(ch *Channel, subc, cls, mthd, param uint32) {
	switch mthd {
	case 0x0BF:
		ch.gdiOperation = param
	case 0x0C0:
		ch.gdiColorFmt = param
	case 0x0C1:
		ch.gdiMonoFmt = param
	case 0x0FF:
		ch.gdiRectColor = param
	case 0x17D:
		ch.gdiClipYX0 = param
	case 0x17E:
		ch.gdiClipYX1 = param
	case 0x17F:
		ch.gdiRectColor = param
	default:
		switch {
		case mthd >= 0x100 && mthd < 0x140:
			if mthd&1 != 0 {
				ch.gdiRectWH = param
				g.runOp(ch, opFillRect)
			} else {
				ch.gdiRectXY = param
			}
		case mthd >= 0x180 && mthd < 0x1C0:
			if mthd&1 != 0 {
				ch.gdiRectYX1 = param
				g.runOp(ch, opFillRectClipped)
			} else {
				ch.gdiRectYX0 = param
			}
		default:
			slog.Debug("gpu: unknown gdi method", "method", mthd)
		}
	}
}

// 2D surface descriptor pair.
func (g *GPU) execSurface2D(ch *Channel, subc, cls, mthd, param uint32) {
	switch mthd {
	case 0x061:
		ch.s2dImgSrc = param
	case 0x062:
		ch.s2dImgDst = param
	case 0x0C0:
		ch.s2dColorFmt = param
		switch {
		case param == 1: // Y8
			ch.s2dColorBytes = 1
		case param == 4: // R5G6B5
			ch.s2dColorBytes = 2
		case param == 0x6 || param == 0xA || param == 0xB:
			// X8R8G8B8_Z8R8G8B8, A8R8G8B8, Y32
			ch.s2dColorBytes = 4
		default:
			slog.Warn("gpu: unknown 2D surface color format", "format", param)
			ch.s2dColorBytes = 4
		}
	case 0x0C1:
		ch.s2dPitch = param
	case 0x0C2:
		ch.s2dOfsSrc = param
	case 0x0C3:
		ch.s2dOfsDst = param
	default:
		slog.Debug("gpu: unknown surface method", "method", mthd)
	}
}

// Pixel size implied by a drawing object's color format, falling back
// to the surface format for Y8 surfaces.
func colorBytesFor(s2dFmt, fmt uint32) uint32 {
	switch {
	case s2dFmt == 1: // Y8
		return 1
	case fmt == 1 || fmt == 2 || fmt == 3:
		// R5G6B5, A1R5G5B5, X1R5G5B5
		return 2
	case fmt == 4 || fmt == 5:
		// A8R8G8B8, X8R8G8B8
		return 4
	default:
		slog.Warn("gpu: unknown color format", "format", fmt)
		return 4
	}
}

// The destination size sentinel that switches an upload to the direct
// path: a 1024x4096 transfer onto a Y32 surface with 4KiB pitch.
const ifcUploadSentinel = 0x10000400

// CPU image upload.
func (g *GPU) execIFC(ch *Channel, subc, cls, mthd, param uint32) {
	u := &ch.ifc
	switch mthd {
	case 0x061:
		u.colorKeyEnable = g.mem.InstRead32(param)&0xFF != 0x30
	case 0x0BF:
		u.operation = param
	case 0x0C0:
		u.colorFmt = param
		u.colorBytes = colorBytesFor(ch.s2dColorFmt, param)
	case 0x0C1:
		u.yx = param
	case 0x0C2:
		u.dhw = param
	case 0x0C3:
		u.shw = param
		// Any size reconfiguration drops a partial buffer first.
		u.release()
		if param == ifcUploadSentinel && u.dhw == ifcUploadSentinel &&
			ch.s2dColorFmt == 0xB && ch.s2dPitch == 0x10001000 {
			x := u.yx & 0xFFFF
			y := u.yx >> 16
			u.state = uploadFast
			u.fastOfs = ch.s2dOfsDst + ((y << 12) | (x << 2))
		} else {
			width := param & 0xFFFF
			height := param >> 16
			count := (width*height*u.colorBytes + 3) >> 2
			if count == 0 {
				// Degenerate transfer, nothing to stream.
				slog.Debug("gpu: empty image upload", "size", param)
				break
			}
			u.state = uploadStream
			u.words = make([]uint32, count)
			u.left = count
		}
	default:
		if mthd >= 0x100 && mthd < 0x800 {
			switch u.state {
			case uploadFast:
				g.dmaWrite32(ch.s2dImgDst, u.fastOfs, param)
				u.fastOfs += 4
			case uploadStream:
				u.words[u.ptr] = param
				u.ptr++
				u.left--
				if u.left == 0 {
					g.runOp(ch, opImageFromCPU)
					u.release()
				}
			default:
				slog.Debug("gpu: image data before size configuration")
			}
		} else {
			slog.Debug("gpu: unknown image upload method", "method", mthd)
		}
	}
}

// Screen to screen blit.
func (g *GPU) execBlit(ch *Channel, subc, cls, mthd, param uint32) {
	switch mthd {
	case 0x061:
		ch.blitColorKeyEnable = g.mem.InstRead32(param)&0xFF != 0x30
	case 0x0BF:
		ch.blitOperation = param
	case 0x0C0:
		ch.blitSYX = param
	case 0x0C1:
		ch.blitDYX = param
	case 0x0C2:
		ch.blitHW = param
		g.runOp(ch, opCopyArea)
	default:
		slog.Debug("gpu: unknown blit method", "method", mthd)
	}
}

// Minimal 3D object: surface setup, clears, vertex accumulation.
func (g *GPU) execD3D(ch *Channel, subc, cls, mthd, param uint32) {
	switch mthd {
	case 0x061:
		ch.d3dAObj = param
	case 0x062:
		ch.d3dBObj = param
	case 0x065:
		ch.d3dColorObj = param
	case 0x066:
		ch.d3dZetaObj = param
	case 0x080:
		ch.d3dClipH = param
	case 0x081:
		ch.d3dClipV = param
	case 0x082:
		ch.d3dSurfaceFmt = param
		var fmtColor, fmtDepth uint32
		if cls == 0x0097 {
			fmtColor = param & 0x0F
			fmtDepth = (param >> 4) & 0x0F
		} else {
			fmtColor = param & 0x1F
			fmtDepth = (param >> 5) & 0x07
		}
		switch fmtColor {
		case 0x9: // B8
			ch.d3dColorBytes = 1
		case 0x3: // R5G6B5
			ch.d3dColorBytes = 2
		case 0x4, 0x5, 0x8:
			// X8R8G8B8_Z8R8G8B8, X8R8G8B8_O8R8G8B8, A8R8G8B8
			ch.d3dColorBytes = 4
		}
		switch fmtDepth {
		case 0x1: // Z16
			ch.d3dDepthBytes = 2
		case 0x2: // Z24S8
			ch.d3dDepthBytes = 4
		}
	case 0x083:
		ch.d3dPitchA = param
	case 0x084:
		ch.d3dColorOfs = param
	case 0x085:
		ch.d3dZetaOfs = param
	case 0x763:
		ch.d3dZStencilClear = param
	case 0x764:
		ch.d3dColorClear = param
	case 0x765:
		ch.d3dClearSurface = param
		g.runOp(ch, opClearSurface)
	case 0x606:
		// Vertex words accumulate but are never shaded.
		ch.d3dVertexData[ch.d3dVertexIdx][ch.d3dAttribIdx][ch.d3dCompIdx] =
			math.Float32frombits(param)
		ch.d3dCompIdx++
		if ch.d3dCompIdx == 4 {
			ch.d3dCompIdx = 0
			ch.d3dAttribIdx++
			if ch.d3dAttribIdx == 16 {
				ch.d3dAttribIdx = 0
				ch.d3dVertexIdx++
				if ch.d3dVertexIdx >= 3 {
					ch.d3dVertexIdx = 0
				}
			}
		}
	default:
		slog.Debug("gpu: unhandled 3D method", "method", mthd)
	}
}
