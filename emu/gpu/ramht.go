package gpu

/*
 * geforce - Object hash table lookup.
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
)

// Look up an object handle for one channel in the instance memory hash
// table. The table is open addressed, 8 bytes a slot, probed linearly
// with wraparound. Failure leaves the outputs untouched; the guest sees
// whatever stale binding was there before.
func (g *GPU) ramhtLookup(handle, chid uint32, object *uint32, engine *uint8) bool {
	base := (g.fifoRAMHT & 0xFFF) << 8
	bits := ((g.fifoRAMHT >> 16) & 0xFF) + 9
	size := uint32(1) << bits << 3

	// XOR-fold the handle in bits-wide chunks, then mix in the channel.
	hash := uint32(0)
	for x := handle; x != 0; x >>= bits {
		hash ^= x & ((1 << bits) - 1)
	}
	hash ^= (chid & 0xF) << (bits - 4)
	hash <<= 3

	it := hash
	for {
		if g.mem.InstRead32(base+it) == handle {
			ctx := g.mem.InstRead32(base + it + 4)
			if chid == g.layout.ContextChannel(ctx) {
				if object != nil {
					*object = g.layout.ContextObject(ctx)
				}
				if engine != nil {
					*engine = g.layout.ContextEngine(ctx)
				}
				return true
			}
		}
		it += 8
		if it >= size {
			it = 0
		}
		if it == hash {
			break
		}
	}

	slog.Debug("gpu: hash lookup failed", "handle", handle, "channel", chid)
	return false
}
