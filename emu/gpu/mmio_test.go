package gpu

/*
 * geforce - Register aperture test cases.
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

func TestPMCID(t *testing.T) {
	g, _, _, _ := newTestCard()
	if v := g.ReadReg(0x000000); v != 0x020200A5 {
		t.Errorf("NV20 id expected %08x got: %08x", 0x020200A5, v)
	}

	g35 := New(Config{Model: GeForceFX5900})
	if v := g35.ReadReg(0x000000); v != 0x03500000 {
		t.Errorf("NV35 id expected %08x got: %08x", 0x03500000, v)
	}

	g40 := New(Config{Model: GeForce6800})
	if v := g40.ReadReg(0x000000); v != 0x04000000 {
		t.Errorf("NV40 id expected %08x got: %08x", 0x04000000, v)
	}
}

// The master interrupt register composes the domain pairs, and the
// master enable gates the line without hiding the status.
func TestIRQGating(t *testing.T) {
	g, _, irq, _ := newTestCard()
	g.VBlank()

	if v := g.ReadReg(0x000100); v != 0 {
		t.Errorf("master status without enables expected %08x got: %08x", 0, v)
	}
	if irq.level {
		t.Error("line raised without enables")
	}

	g.WriteReg(0x600140, 1)
	if v := g.ReadReg(0x000100); v != intrCRTC {
		t.Errorf("master status expected %08x got: %08x", intrCRTC, v)
	}
	if irq.level {
		t.Error("line raised without master enable")
	}

	g.WriteReg(0x000140, 1)
	if !irq.level {
		t.Error("line not raised")
	}

	// Dropping the master enable drops the line, status stays.
	g.WriteReg(0x000140, 0)
	if irq.level {
		t.Error("line still raised with master enable clear")
	}
	if v := g.ReadReg(0x000100); v != intrCRTC {
		t.Errorf("master status expected %08x got: %08x", intrCRTC, v)
	}

	// Write one to clear.
	g.WriteReg(0x000140, 1)
	g.WriteReg(0x600100, 1)
	if v := g.ReadReg(0x000100); v != 0 {
		t.Errorf("master status after clear expected %08x got: %08x", 0, v)
	}
	if irq.level {
		t.Error("line still raised after clear")
	}
}

func TestSubWordAccess(t *testing.T) {
	g, _, _, _ := newTestCard()

	// A byte write merges into the surrounding register.
	g.MMIOWrite(0x002211, 0xAB, 1)
	if v := g.ReadReg(0x002210); v != 0xAB00 {
		t.Errorf("merged register expected %08x got: %08x", 0xAB00, v)
	}
	if v := g.MMIORead(0x002211, 1); v != 0xAB {
		t.Errorf("byte read expected %02x got: %02x", 0xAB, v)
	}
	if v := g.MMIORead(0x002210, 2); v != 0xAB00 {
		t.Errorf("halfword read expected %04x got: %04x", 0xAB00, v)
	}
	if v := g.MMIORead(0x002210, 8); v != 0xAB00|uint64(testRAMFC)<<32 {
		t.Errorf("doubleword read expected %016x got: %016x",
			0xAB00|uint64(testRAMFC)<<32, v)
	}

	g.MMIOWrite(0x002210, uint64(testRAMHT)|uint64(testRAMFC)<<32, 8)
	if v := g.ReadReg(0x002210); v != testRAMHT {
		t.Errorf("restored register expected %08x got: %08x", testRAMHT, v)
	}
}

// The 0x700000 window exposes instance memory with the address flip.
func TestRAMINAperture(t *testing.T) {
	g, _, _, _ := newTestCard()

	g.WriteReg(0x700010, 0x12345678)
	if v := g.mem.InstRead32(0x10); v != 0x12345678 {
		t.Errorf("instance memory expected %08x got: %08x", 0x12345678, v)
	}

	g.mem.InstWrite32(0x20, 0x9ABCDEF0)
	if v := g.ReadReg(0x700020); v != 0x9ABCDEF0 {
		t.Errorf("aperture read expected %08x got: %08x", 0x9ABCDEF0, v)
	}
}

func TestChannelApertureSentinel(t *testing.T) {
	g, _, _, _ := newTestCard()
	if v := g.ReadReg(0x800010); v != 0xFFFF {
		t.Errorf("free slot count expected %08x got: %08x", 0xFFFF, v)
	}
	if v := g.ReadReg(0xC05010); v != 0xFFFF {
		t.Errorf("alternate window free slot count expected %08x got: %08x", 0xFFFF, v)
	}
}

// The straps register holds an override only while its top bit is set.
func TestStraps(t *testing.T) {
	g, _, _, _ := newTestCard()
	if v := g.ReadReg(0x101000); v != 0x7FF86DEB {
		t.Errorf("power-on straps expected %08x got: %08x", 0x7FF86DEB, v)
	}
	g.WriteReg(0x101000, 0x80000001)
	if v := g.ReadReg(0x101000); v != 0x80000001 {
		t.Errorf("overridden straps expected %08x got: %08x", 0x80000001, v)
	}
	g.WriteReg(0x101000, 0)
	if v := g.ReadReg(0x101000); v != 0x7FF86DEB {
		t.Errorf("restored straps expected %08x got: %08x", 0x7FF86DEB, v)
	}
}

func TestTimer(t *testing.T) {
	g, _, _, clk := newTestCard()

	clk.ns = 1000
	g.WriteReg(0x009400, 0)
	clk.ns = 1000 + 0x5000
	if v := g.ReadReg(0x009400); v != 0x5000 {
		t.Errorf("timer low expected %08x got: %08x", 0x5000, v)
	}

	g.WriteReg(0x009410, 2)
	if v := g.ReadReg(0x009410); v != 2 {
		t.Errorf("timer high expected %08x got: %08x", 2, v)
	}
	if v := g.ReadReg(0x009400); v != 0 {
		t.Errorf("timer low after reload expected %08x got: %08x", 0, v)
	}

	// The low five bits always read zero.
	clk.ns += 0x3F
	if v := g.ReadReg(0x009400); v != 0x20 {
		t.Errorf("masked timer low expected %08x got: %08x", 0x20, v)
	}
}

func TestRunoutStatus(t *testing.T) {
	g, _, _, _ := newTestCard()
	if v := g.ReadReg(0x002400); v != 0x10 {
		t.Errorf("empty runout status expected %08x got: %08x", 0x10, v)
	}
	if v := g.ReadReg(0x003214); v != 0x10 {
		t.Errorf("empty cache status expected %08x got: %08x", 0x10, v)
	}

	g.deferMethod(0, 0x104, 0x55)
	if v := g.ReadReg(0x002400); v != 0 {
		t.Errorf("pending runout status expected %08x got: %08x", 0, v)
	}
	if v := g.ReadReg(0x003214); v != 0 {
		t.Errorf("pending cache status expected %08x got: %08x", 0, v)
	}
}

func TestZcompSize(t *testing.T) {
	g, _, _, _ := newTestCard()
	if v := g.ReadReg(0x100320); v != 0x00007FFF {
		t.Errorf("NV20 zcomp size expected %08x got: %08x", 0x00007FFF, v)
	}
}
