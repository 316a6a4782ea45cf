package gpu

/*
 * geforce - Object hash table test cases.
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

func TestHashLookup(t *testing.T) {
	g, _, _, _ := newTestCard()
	setHash(g, 3, 0x1234, 0, 0x3000, engineGraphics)

	var object uint32
	var engine uint8
	if !g.ramhtLookup(0x1234, 0, &object, &engine) {
		t.Fatal("lookup failed for stored handle")
	}
	if object != 0x3000 {
		t.Errorf("object expected %08x got: %08x", 0x3000, object)
	}
	if engine != engineGraphics {
		t.Errorf("engine expected %d got: %d", engineGraphics, engine)
	}
}

// Two channels can bind the same handle to different objects. The entry
// whose context word names the wrong channel must be skipped even when
// the probe reaches it first.
func TestHashChannelMatch(t *testing.T) {
	g, _, _, _ := newTestCard()
	setHash(g, 0, 0xBEEF, 1, 0x3000, engineGraphics)
	setHash(g, 1, 0xBEEF, 2, 0x3100, engineGraphics)

	var object uint32
	if !g.ramhtLookup(0xBEEF, 2, &object, nil) {
		t.Fatal("lookup failed for channel 2")
	}
	if object != 0x3100 {
		t.Errorf("channel 2 object expected %08x got: %08x", 0x3100, object)
	}
	if !g.ramhtLookup(0xBEEF, 1, &object, nil) {
		t.Fatal("lookup failed for channel 1")
	}
	if object != 0x3000 {
		t.Errorf("channel 1 object expected %08x got: %08x", 0x3000, object)
	}
}

// A miss leaves the caller's binding alone.
func TestHashMiss(t *testing.T) {
	g, _, _, _ := newTestCard()
	setHash(g, 3, 0x1234, 0, 0x3000, engineGraphics)

	object := uint32(0xAAAA)
	engine := uint8(0x55)
	if g.ramhtLookup(0x4321, 0, &object, &engine) {
		t.Fatal("lookup succeeded for unknown handle")
	}
	if object != 0xAAAA {
		t.Errorf("object clobbered expected %08x got: %08x", 0xAAAA, object)
	}
	if engine != 0x55 {
		t.Errorf("engine clobbered expected %02x got: %02x", 0x55, engine)
	}
}

// Handle 0x1FF hashes to the last slot of the 512 entry table; finding
// an entry stored near the front proves the probe wraps around.
func TestHashWraparound(t *testing.T) {
	g, _, _, _ := newTestCard()
	setHash(g, 2, 0x1FF, 0, 0x3200, engineGraphics)

	var object uint32
	if !g.ramhtLookup(0x1FF, 0, &object, nil) {
		t.Fatal("wrapped lookup failed")
	}
	if object != 0x3200 {
		t.Errorf("object expected %08x got: %08x", 0x3200, object)
	}
}
