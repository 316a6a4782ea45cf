package gpu

/*
 * geforce - DMA object address translation.
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

// DMA descriptor word 0 flags.
const (
	dmaLinear    = 0x00002000 // Linear mapping, else page table
	dmaSystemMem = 0x00020000 // Target is system memory, else device memory
)

const pageMask = 0xFFFFF000

// Translate an offset through a paged DMA object. One 32-bit page table
// entry per 4KiB page follows the two descriptor words.
func (g *GPU) dmaPageLookup(object, addr uint32) uint32 {
	adj := addr + (g.mem.InstRead32(object) >> 20)
	pageOfs := adj & 0xFFF
	pageIdx := adj >> 12
	page := g.mem.InstRead32(object+8+pageIdx*4) & pageMask
	return page | pageOfs
}

// Translate an offset through a linear DMA object.
func (g *GPU) dmaLinearLookup(object, addr uint32) uint32 {
	adjust := g.mem.InstRead32(object) >> 20
	base := g.mem.InstRead32(object+8) & pageMask
	return base + adjust + addr
}

// Resolve a channel-relative offset to an absolute address and whether
// the object targets system memory.
func (g *GPU) dmaTranslate(object, addr uint32) (abs uint32, system bool) {
	flags := g.mem.InstRead32(object)
	if flags&dmaLinear != 0 {
		abs = g.dmaLinearLookup(object, addr)
	} else {
		abs = g.dmaPageLookup(object, addr)
	}
	return abs, flags&dmaSystemMem != 0
}

func (g *GPU) dmaRead8(object, addr uint32) uint8 {
	abs, system := g.dmaTranslate(object, addr)
	if system {
		return g.sys.Read8(abs)
	}
	return g.mem.Read8(abs)
}

func (g *GPU) dmaRead16(object, addr uint32) uint16 {
	abs, system := g.dmaTranslate(object, addr)
	if system {
		return g.sys.Read16(abs)
	}
	return g.mem.Read16(abs)
}

func (g *GPU) dmaRead32(object, addr uint32) uint32 {
	abs, system := g.dmaTranslate(object, addr)
	if system {
		return g.sys.Read32(abs)
	}
	return g.mem.Read32(abs)
}

func (g *GPU) dmaWrite8(object, addr uint32, val uint8) {
	abs, system := g.dmaTranslate(object, addr)
	if system {
		g.sys.Write8(abs, val)
	} else {
		g.mem.Write8(abs, val)
	}
}

func (g *GPU) dmaWrite16(object, addr uint32, val uint16) {
	abs, system := g.dmaTranslate(object, addr)
	if system {
		g.sys.Write16(abs, val)
	} else {
		g.mem.Write16(abs, val)
	}
}

func (g *GPU) dmaWrite32(object, addr uint32, val uint32) {
	abs, system := g.dmaTranslate(object, addr)
	if system {
		g.sys.Write32(abs, val)
	} else {
		g.mem.Write32(abs, val)
	}
}

func (g *GPU) dmaWrite64(object, addr uint32, val uint64) {
	abs, system := g.dmaTranslate(object, addr)
	if system {
		g.sys.Write64(abs, val)
	} else {
		g.mem.Write64(abs, val)
	}
}
