package gpu

/*
 * geforce - Test fixtures shared by the gpu package tests.
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

// Instance memory layout used by all tests. The hash table register
// value 0x100 puts a 512 slot table at 0x10000, the save area register
// value 0x2 puts the per-channel context slots at 0x200.
const (
	testRAMHT = 0x0100
	testRAMFC = 0x0002

	ramhtBase = 0x10000
	saveBase  = 0x200

	pbInst   = 0x2000 // Pushbuffer DMA object
	dstInst  = 0x2100 // Destination surface DMA object
	srcInst  = 0x2200 // Source surface DMA object
	sysInst  = 0x2300 // System memory DMA object
	pageInst = 0x2400 // Page table DMA object
	noteInst = 0x2500 // Notifier DMA object
	pb2Inst  = 0x2600 // Second pushbuffer for context switch tests

	pbBase   = 0x40000
	pb2Base  = 0x60000
	dstBase  = 0x80000
	srcBase  = 0xA0000
	noteBase = 0xC0000
)

// testDisplay records every dirty rectangle reported by the card.
type testDisplay struct {
	rects [][4]int
}

func (d *testDisplay) MarkDirty(x, y, width, height int) {
	d.rects = append(d.rects, [4]int{x, y, width, height})
}

func (d *testDisplay) last() [4]int {
	if len(d.rects) == 0 {
		return [4]int{-1, -1, -1, -1}
	}
	return d.rects[len(d.rects)-1]
}

// testIRQ records the interrupt line level and each rising edge.
type testIRQ struct {
	level bool
	rises int
}

func (q *testIRQ) Set(level bool) {
	if level && !q.level {
		q.rises++
	}
	q.level = level
}

// testClock is a hand-advanced nanosecond source.
type testClock struct {
	ns int64
}

func (c *testClock) Now() int64 {
	return c.ns
}

// testBus is a sparse guest physical memory.
type testBus struct {
	mem map[uint32]uint8
}

func newTestBus() *testBus {
	return &testBus{mem: make(map[uint32]uint8)}
}

func (b *testBus) Read8(addr uint32) uint8 {
	return b.mem[addr]
}

func (b *testBus) Read16(addr uint32) uint16 {
	return uint16(b.mem[addr]) | uint16(b.mem[addr+1])<<8
}

func (b *testBus) Read32(addr uint32) uint32 {
	return uint32(b.Read16(addr)) | uint32(b.Read16(addr+2))<<16
}

func (b *testBus) Write8(addr uint32, val uint8) {
	b.mem[addr] = val
}

func (b *testBus) Write16(addr uint32, val uint16) {
	b.mem[addr] = uint8(val)
	b.mem[addr+1] = uint8(val >> 8)
}

func (b *testBus) Write32(addr uint32, val uint32) {
	b.Write16(addr, uint16(val))
	b.Write16(addr+2, uint16(val>>16))
}

func (b *testBus) Write64(addr uint32, val uint64) {
	b.Write32(addr, uint32(val))
	b.Write32(addr+4, uint32(val>>32))
}

// newTestCard builds a GeForce3 with recording collaborators and the
// test instance memory layout configured.
func newTestCard() (*GPU, *testDisplay, *testIRQ, *testClock) {
	disp := &testDisplay{}
	irq := &testIRQ{}
	clk := &testClock{}
	g := New(Config{
		Model:   GeForce3,
		Sys:     newTestBus(),
		Display: disp,
		IRQ:     irq,
		Clock:   clk,
	})
	g.WriteReg(0x002210, testRAMHT)
	g.WriteReg(0x002214, testRAMFC)
	return g, disp, irq, clk
}

// makeDMA writes a three-word linear or paged DMA descriptor. The
// target selects the address space: 0x03 is linear device memory, 0x23
// linear system memory, 0x00 paged device memory.
func makeDMA(g *GPU, inst, target, adjust, limit, base uint32) {
	g.mem.InstWrite32(inst, target<<12|adjust<<20|0x3D)
	g.mem.InstWrite32(inst+4, limit)
	g.mem.InstWrite32(inst+8, base)
}

// setHash stores one hash table entry. The lookup probes every slot,
// so placement only matters when two entries share a handle.
func setHash(g *GPU, slot, handle, chid, object uint32, engine uint8) {
	ctx := chid<<24 | uint32(engine)<<16 | object>>4
	g.mem.InstWrite32(ramhtBase+slot*8, handle)
	g.mem.InstWrite32(ramhtBase+slot*8+4, ctx)
}

// makeObject writes a two-word graphics object descriptor.
func makeObject(g *GPU, inst, class uint32) {
	g.mem.InstWrite32(inst, class)
	g.mem.InstWrite32(inst+4, 0)
}

// hdr builds a method run header.
func hdr(subc, mthd, count uint32) uint32 {
	return count<<18 | subc<<13 | mthd<<2
}

// hdrNI builds a non-incrementing method run header.
func hdrNI(subc, mthd, count uint32) uint32 {
	return ctrlNoIncrement | hdr(subc, mthd, count)
}

// submit copies a command stream into the pushbuffer and kicks channel
// zero by moving the put pointer.
func submit(g *GPU, words []uint32) {
	makeDMA(g, pbInst, 0x03, 0, 0xFFFF, pbBase)
	for i, w := range words {
		g.mem.Write32(pbBase+uint32(i)*4, w)
	}
	g.WriteReg(0x00322C, pbInst>>4)
	g.WriteReg(0x003244, 0)
	g.WriteReg(0x003240, uint32(len(words))*4)
}

// setupSurface binds both 2D surfaces of channel zero to device memory
// with a 0x100 byte pitch.
func setupSurface(g *GPU, colorBytes uint32) *Channel {
	makeDMA(g, dstInst, 0x03, 0, 0xFFFFF, dstBase)
	makeDMA(g, srcInst, 0x03, 0, 0xFFFFF, srcBase)
	ch := &g.channels[0]
	ch.s2dImgDst = dstInst
	ch.s2dImgSrc = srcInst
	ch.s2dColorBytes = colorBytes
	switch colorBytes {
	case 1:
		ch.s2dColorFmt = 1
	case 2:
		ch.s2dColorFmt = 4
	default:
		ch.s2dColorFmt = 0xA
	}
	ch.s2dPitch = 0x100<<16 | 0x100
	ch.s2dOfsSrc = 0
	ch.s2dOfsDst = 0
	return ch
}
