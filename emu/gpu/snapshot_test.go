package gpu

/*
 * geforce - Snapshot test cases.
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
	"bytes"
	"encoding/binary"
	"testing"
)

func TestSnapshotRoundTrip(t *testing.T) {
	g, _, _, _ := newTestCard()
	g.WriteReg(0x003248, 0x1234)
	g.WriteReg(0x600800, 0x2000)
	g.WriteReg(0x000140, 1)

	ch := &g.channels[1]
	ch.pattFgColor = 0xDEAD
	ch.s2dPitch = 0x01000100
	ch.schs[3].object = 0x3200
	ch.schs[3].engine = engineGraphics

	// An upload caught mid-stream rides along with the snapshot.
	ch.ifc.state = uploadStream
	ch.ifc.words = []uint32{1, 2, 3}
	ch.ifc.ptr = 2
	ch.ifc.left = 1

	g.mem.Write32(0x1234, 0xCAFED00D)

	var buf bytes.Buffer
	if err := g.SaveState(&buf); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	g2, _, _, _ := newTestCard()
	if err := g2.LoadState(bytes.NewReader(buf.Bytes())); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if v := g2.ReadReg(0x003248); v != 0x1234 {
		t.Errorf("reference count expected %08x got: %08x", 0x1234, v)
	}
	if v := g2.ReadReg(0x600800); v != 0x2000 {
		t.Errorf("scanout base expected %08x got: %08x", 0x2000, v)
	}
	if v := g2.ReadReg(0x000140); v != 1 {
		t.Errorf("master enable expected %08x got: %08x", 1, v)
	}
	if v := g2.ReadReg(0x002210); v != testRAMHT {
		t.Errorf("hash table register expected %08x got: %08x", testRAMHT, v)
	}
	if v := g2.mem.Read32(0x1234); v != 0xCAFED00D {
		t.Errorf("device memory expected %08x got: %08x", 0xCAFED00D, v)
	}

	ch2 := &g2.channels[1]
	if ch2.pattFgColor != 0xDEAD {
		t.Errorf("foreground color expected %08x got: %08x", 0xDEAD, ch2.pattFgColor)
	}
	if ch2.s2dPitch != 0x01000100 {
		t.Errorf("surface pitch expected %08x got: %08x", 0x01000100, ch2.s2dPitch)
	}
	if ch2.schs[3].object != 0x3200 {
		t.Errorf("bound object expected %08x got: %08x", 0x3200, ch2.schs[3].object)
	}
	if ch2.schs[3].engine != engineGraphics {
		t.Errorf("bound engine expected %d got: %d", engineGraphics, ch2.schs[3].engine)
	}
	if ch2.ifc.state != uploadStream {
		t.Errorf("upload state expected %d got: %d", uploadStream, ch2.ifc.state)
	}
	if len(ch2.ifc.words) != 3 || ch2.ifc.words[1] != 2 {
		t.Errorf("upload buffer expected %v got: %v", []uint32{1, 2, 3}, ch2.ifc.words)
	}
	if ch2.ifc.ptr != 2 || ch2.ifc.left != 1 {
		t.Errorf("upload cursor expected %d/%d got: %d/%d", 2, 1, ch2.ifc.ptr, ch2.ifc.left)
	}
}

func TestSnapshotModelMismatch(t *testing.T) {
	g, _, _, _ := newTestCard()
	var buf bytes.Buffer
	if err := g.SaveState(&buf); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	g35 := New(Config{Model: GeForceFX5900})
	if err := g35.LoadState(bytes.NewReader(buf.Bytes())); err == nil {
		t.Error("load across card types did not fail")
	}
}

// A corrupt upload buffer count is rejected before it allocates.
func TestSnapshotBadUploadCount(t *testing.T) {
	g, _, _, _ := newTestCard()
	var buf bytes.Buffer
	if err := g.SaveState(&buf); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	data := buf.Bytes()
	ofs := 8 + binary.Size(snapRegs{}) + binary.Size(snapChannel{})
	binary.LittleEndian.PutUint32(data[ofs:], 0xFFFFFFFF)

	g2, _, _, _ := newTestCard()
	if err := g2.LoadState(bytes.NewReader(data)); err == nil {
		t.Error("load with oversized upload buffer did not fail")
	}
}

func TestSnapshotBadMagic(t *testing.T) {
	g, _, _, _ := newTestCard()
	if err := g.LoadState(bytes.NewReader([]byte("XXXX....."))); err == nil {
		t.Error("load with bad magic did not fail")
	}
}
