package gpu

/*
 * geforce - Raster operation test cases.
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
	"testing"
)

func TestFillRect(t *testing.T) {
	g, disp, _, _ := newTestCard()
	ch := setupSurface(g, 2)
	ch.gdiRectColor = 0x1234
	ch.gdiRectXY = 2<<16 | 1
	ch.gdiRectWH = 4<<16 | 3

	g.runOp(ch, opFillRect)

	for y := uint32(0); y < 3; y++ {
		for x := uint32(0); x < 4; x++ {
			addr := dstBase + (1+y)*0x100 + (2+x)*2
			if v := g.mem.Read16(addr); v != 0x1234 {
				t.Errorf("pixel %d,%d expected %04x got: %04x", 2+x, 1+y, 0x1234, v)
			}
		}
	}
	// Neighbors stay clean.
	if v := g.mem.Read16(dstBase + 0x100 + 1*2); v != 0 {
		t.Errorf("left neighbor expected %04x got: %04x", 0, v)
	}
	if v := g.mem.Read16(dstBase + 4*0x100 + 2*2); v != 0 {
		t.Errorf("bottom neighbor expected %04x got: %04x", 0, v)
	}
	if r := disp.last(); r != [4]int{2, 1, 4, 3} {
		t.Errorf("dirty rectangle expected %v got: %v", [4]int{2, 1, 4, 3}, r)
	}
}

// The same fill driven through the pushbuffer: bind the surface and GDI
// objects, select the 16 bit format and paint. The 32 bit fill color
// truncates to the surface depth.
func TestFillRectPushbuffer(t *testing.T) {
	g, disp, _, _ := newTestCard()
	setHash(g, 1, 0x511, 0, 0x3100, engineGraphics)
	setHash(g, 2, 0x50A, 0, 0x3000, engineGraphics)
	setHash(g, 3, 0x5D1, 0, dstInst, engineGraphics)
	makeObject(g, 0x3100, classSurface2D)
	makeObject(g, 0x3000, classGDI)
	makeDMA(g, dstInst, 0x03, 0, 0xFFFFF, dstBase)

	submit(g, []uint32{
		hdr(1, 0x000, 1), 0x511,
		hdr(1, 0x062, 1), 0x5D1, // Destination DMA object by handle
		hdr(1, 0x0C0, 1), 4, // R5G6B5 pixels
		hdr(1, 0x0C1, 1), 0x01000100,
		hdr(1, 0x0C3, 1), 0,
		hdr(0, 0x000, 1), 0x50A,
		hdr(0, 0x0FF, 1), 0xAABBCCDD,
		hdr(0, 0x100, 2), 0, 4<<16 | 4,
	})

	ch := &g.channels[0]
	if ch.s2dImgDst != dstInst {
		t.Fatalf("destination object expected %08x got: %08x", dstInst, ch.s2dImgDst)
	}
	if ch.s2dColorBytes != 2 {
		t.Fatalf("pixel size expected %d got: %d", 2, ch.s2dColorBytes)
	}
	for y := uint32(0); y < 4; y++ {
		for x := uint32(0); x < 4; x++ {
			if v := g.mem.Read16(dstBase + y*0x100 + x*2); v != 0xCCDD {
				t.Errorf("pixel %d,%d expected %04x got: %04x", x, y, 0xCCDD, v)
			}
		}
	}
	if v := g.mem.Read16(dstBase + 4*2); v != 0 {
		t.Errorf("right neighbor expected %04x got: %04x", 0, v)
	}
	if r := disp.last(); r != [4]int{0, 0, 4, 4} {
		t.Errorf("dirty rectangle expected %v got: %v", [4]int{0, 0, 4, 4}, r)
	}
}

// A clip box that misses the rectangle entirely paints nothing, but the
// full rectangle is still reported dirty.
func TestFillRectClippedEmpty(t *testing.T) {
	g, disp, _, _ := newTestCard()
	ch := setupSurface(g, 2)
	for y := uint32(1); y < 4; y++ {
		for x := uint32(2); x < 6; x++ {
			g.mem.Write16(dstBase+y*0x100+x*2, 0x5A5A)
		}
	}
	ch.gdiRectColor = 0xFFFF
	ch.gdiClipYX0 = 0x20<<16 | 0x20
	ch.gdiClipYX1 = 0x24<<16 | 0x24
	ch.gdiRectYX0 = 1<<16 | 2
	ch.gdiRectYX1 = 4<<16 | 6

	g.runOp(ch, opFillRectClipped)

	for y := uint32(1); y < 4; y++ {
		for x := uint32(2); x < 6; x++ {
			if v := g.mem.Read16(dstBase + y*0x100 + x*2); v != 0x5A5A {
				t.Errorf("pixel %d,%d painted expected %04x got: %04x", x, y, 0x5A5A, v)
			}
		}
	}
	if r := disp.last(); r != [4]int{2, 1, 4, 3} {
		t.Errorf("dirty rectangle expected %v got: %v", [4]int{2, 1, 4, 3}, r)
	}
}

func TestFillRectClippedPartial(t *testing.T) {
	g, _, _, _ := newTestCard()
	ch := setupSurface(g, 2)
	ch.gdiRectColor = 0xABCD
	ch.gdiClipYX0 = 2<<16 | 3
	ch.gdiClipYX1 = 4<<16 | 5
	ch.gdiRectYX0 = 1<<16 | 2
	ch.gdiRectYX1 = 4<<16 | 6

	g.runOp(ch, opFillRectClipped)

	for y := uint32(1); y < 4; y++ {
		for x := uint32(2); x < 6; x++ {
			want := uint16(0)
			if x >= 3 && x < 5 && y >= 2 && y < 4 {
				want = 0xABCD
			}
			if v := g.mem.Read16(dstBase + y*0x100 + x*2); v != want {
				t.Errorf("pixel %d,%d expected %04x got: %04x", x, y, want, v)
			}
		}
	}
}

// A blit whose destination overlaps its source must read every source
// pixel before overwriting it.
func TestCopyAreaOverlap(t *testing.T) {
	g, disp, _, _ := newTestCard()
	ch := setupSurface(g, 2)
	ch.s2dImgSrc = dstInst
	ch.s2dOfsSrc = 0

	var orig [5][5]uint16
	for y := uint32(0); y < 5; y++ {
		for x := uint32(0); x < 5; x++ {
			orig[y][x] = uint16((y+1)<<4 | (x + 1))
			g.mem.Write16(dstBase+y*0x100+x*2, orig[y][x])
		}
	}

	ch.blitSYX = 0
	ch.blitDYX = 1<<16 | 1
	ch.blitHW = 4<<16 | 4
	g.runOp(ch, opCopyArea)

	for y := uint32(0); y < 4; y++ {
		for x := uint32(0); x < 4; x++ {
			if v := g.mem.Read16(dstBase + (1+y)*0x100 + (1+x)*2); v != orig[y][x] {
				t.Errorf("pixel %d,%d expected %04x got: %04x", 1+x, 1+y, orig[y][x], v)
			}
		}
	}
	// The row above the destination keeps its original contents.
	for x := uint32(0); x < 5; x++ {
		if v := g.mem.Read16(dstBase + x*2); v != orig[0][x] {
			t.Errorf("row 0 pixel %d expected %04x got: %04x", x, orig[0][x], v)
		}
	}
	if r := disp.last(); r != [4]int{1, 1, 4, 4} {
		t.Errorf("dirty rectangle expected %v got: %v", [4]int{1, 1, 4, 4}, r)
	}
}

// A streamed CPU upload draws itself once the last expected word lands
// and then releases the buffer.
func TestImageUpload(t *testing.T) {
	g, disp, _, _ := newTestCard()
	ch := setupSurface(g, 2)

	g.execIFC(ch, 0, classIFC, 0x0C0, 1)           // R5G6B5, two bytes
	g.execIFC(ch, 0, classIFC, 0x0C1, 0x00020001)  // Destination 1,2
	g.execIFC(ch, 0, classIFC, 0x0C2, 0x00020003)  // Drawn size 3x2
	g.execIFC(ch, 0, classIFC, 0x0C3, 0x00020004)  // Source rows padded to 4

	if ch.ifc.state != uploadStream {
		t.Fatalf("upload state expected %d got: %d", uploadStream, ch.ifc.state)
	}
	if ch.ifc.left != 4 {
		t.Fatalf("expected word count expected %d got: %d", 4, ch.ifc.left)
	}

	pix := func(i uint32) uint32 { return 0x1000 + i }
	for w := uint32(0); w < 4; w++ {
		g.execIFC(ch, 0, classIFC, 0x100+w, pix(2*w)|pix(2*w+1)<<16)
	}

	want := [2][3]uint32{
		{pix(0), pix(1), pix(2)},
		{pix(4), pix(5), pix(6)},
	}
	for y := uint32(0); y < 2; y++ {
		for x := uint32(0); x < 3; x++ {
			addr := dstBase + (2+y)*0x100 + (1+x)*2
			if v := g.mem.Read16(addr); uint32(v) != want[y][x] {
				t.Errorf("pixel %d,%d expected %04x got: %04x", 1+x, 2+y, want[y][x], v)
			}
		}
	}
	if ch.ifc.state != uploadConfig {
		t.Errorf("upload state after draw expected %d got: %d", uploadConfig, ch.ifc.state)
	}
	if ch.ifc.words != nil {
		t.Error("stream buffer not released after draw")
	}
	if r := disp.last(); r != [4]int{1, 2, 3, 2} {
		t.Errorf("dirty rectangle expected %v got: %v", [4]int{1, 2, 3, 2}, r)
	}
}

// A transfer sized to zero pixels never enters streaming; stray data
// words afterwards are dropped.
func TestImageUploadEmpty(t *testing.T) {
	g, _, _, _ := newTestCard()
	ch := setupSurface(g, 2)

	g.execIFC(ch, 0, classIFC, 0x0C0, 1)
	g.execIFC(ch, 0, classIFC, 0x0C1, 0)
	g.execIFC(ch, 0, classIFC, 0x0C2, 0)
	g.execIFC(ch, 0, classIFC, 0x0C3, 0)

	if ch.ifc.state != uploadConfig {
		t.Errorf("upload state expected %d got: %d", uploadConfig, ch.ifc.state)
	}
	g.execIFC(ch, 0, classIFC, 0x100, 0x12345678)
	if v := g.mem.Read32(dstBase); v != 0 {
		t.Errorf("surface touched expected %08x got: %08x", 0, v)
	}
}

// The sentinel transfer geometry on a swizzled surface streams words
// straight to device memory.
func TestImageUploadFast(t *testing.T) {
	g, _, _, _ := newTestCard()
	ch := setupSurface(g, 4)
	ch.s2dColorFmt = 0xB
	ch.s2dPitch = 0x10001000

	g.execIFC(ch, 0, classIFCNV10, 0x0C1, 0x00020001)
	g.execIFC(ch, 0, classIFCNV10, 0x0C2, ifcUploadSentinel)
	g.execIFC(ch, 0, classIFCNV10, 0x0C3, ifcUploadSentinel)

	if ch.ifc.state != uploadFast {
		t.Fatalf("upload state expected %d got: %d", uploadFast, ch.ifc.state)
	}

	g.execIFC(ch, 0, classIFCNV10, 0x100, 0x11223344)
	g.execIFC(ch, 0, classIFCNV10, 0x101, 0x55667788)

	if v := g.mem.Read32(dstBase + 0x2004); v != 0x11223344 {
		t.Errorf("first word expected %08x got: %08x", 0x11223344, v)
	}
	if v := g.mem.Read32(dstBase + 0x2008); v != 0x55667788 {
		t.Errorf("second word expected %08x got: %08x", 0x55667788, v)
	}
}

func TestMemCopy(t *testing.T) {
	g, disp, _, _ := newTestCard()
	makeDMA(g, dstInst, 0x03, 0, 0xFFFFF, dstBase)
	makeDMA(g, srcInst, 0x03, 0, 0xFFFFF, srcBase)
	for i := uint32(0); i < 16; i += 4 {
		g.mem.Write32(srcBase+i, 0xA0A0A000+i)
		g.mem.Write32(srcBase+0x20+i, 0xB0B0B000+i)
	}

	ch := &g.channels[0]
	ch.m2mfSrc = srcInst
	ch.m2mfDst = dstInst
	ch.m2mfSrcOfs = 0
	ch.m2mfDstOfs = 0
	ch.m2mfSrcPitch = 0x20
	ch.m2mfDstPitch = 0x100
	ch.m2mfLineLength = 16
	ch.m2mfLineCount = 2
	g.runOp(ch, opMemCopy)

	for i := uint32(0); i < 16; i += 4 {
		if v := g.mem.Read32(dstBase + i); v != 0xA0A0A000+i {
			t.Errorf("row 0 word %d expected %08x got: %08x", i/4, 0xA0A0A000+i, v)
		}
		if v := g.mem.Read32(dstBase + 0x100 + i); v != 0xB0B0B000+i {
			t.Errorf("row 1 word %d expected %08x got: %08x", i/4, 0xB0B0B000+i, v)
		}
	}
	// Target 0x03 is the framebuffer, so the copy reports a dirty area
	// sized in 32 bit pixels.
	if r := disp.last(); r != [4]int{0, 0, 4, 2} {
		t.Errorf("dirty rectangle expected %v got: %v", [4]int{0, 0, 4, 2}, r)
	}
}

func TestClearSurface(t *testing.T) {
	g, disp, _, _ := newTestCard()
	makeDMA(g, dstInst, 0x03, 0, 0xFFFFF, dstBase)
	makeDMA(g, srcInst, 0x03, 0, 0xFFFFF, srcBase)

	ch := &g.channels[0]
	ch.d3dColorObj = dstInst
	ch.d3dZetaObj = srcInst
	ch.d3dColorBytes = 4
	ch.d3dDepthBytes = 2
	ch.d3dPitchA = 0x01000100
	ch.d3dColorOfs = 0
	ch.d3dZetaOfs = 0
	ch.d3dClipH = 2<<16 | 1
	ch.d3dClipV = 2<<16 | 1
	ch.d3dColorClear = 0xCAFEBABE
	ch.d3dZStencilClear = 0x0000FFF8

	// Color planes only.
	ch.d3dClearSurface = 0xF0
	g.runOp(ch, opClearSurface)

	for y := uint32(1); y < 3; y++ {
		for x := uint32(1); x < 3; x++ {
			if v := g.mem.Read32(dstBase + y*0x100 + x*4); v != 0xCAFEBABE {
				t.Errorf("color %d,%d expected %08x got: %08x", x, y, 0xCAFEBABE, v)
			}
		}
	}
	if v := g.mem.Read32(dstBase); v != 0 {
		t.Errorf("color outside clip expected %08x got: %08x", 0, v)
	}
	if v := g.mem.Read16(srcBase + 0x100 + 2); v != 0 {
		t.Errorf("depth cleared by color mask expected %04x got: %04x", 0, v)
	}
	if r := disp.last(); r != [4]int{1, 1, 2, 2} {
		t.Errorf("dirty rectangle expected %v got: %v", [4]int{1, 1, 2, 2}, r)
	}

	// Depth plane only.
	ch.d3dClearSurface = 0x1
	g.runOp(ch, opClearSurface)

	for y := uint32(1); y < 3; y++ {
		for x := uint32(1); x < 3; x++ {
			if v := g.mem.Read16(srcBase + y*0x100 + x*2); v != 0xFFF8 {
				t.Errorf("depth %d,%d expected %04x got: %04x", x, y, 0xFFF8, v)
			}
		}
	}
}
