package gpu

/*
 * geforce - Interrupt aggregation.
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

// Per-domain contribution bits in the master interrupt register.
const (
	intrBus   = 0x10000000
	intrFIFO  = 0x00000100
	intrGraph = 0x00001000
	intrCRTC  = 0x01000000
)

// mcIntrStatus composes the master interrupt register from the four
// domain status/enable pairs.
func (g *GPU) mcIntrStatus() uint32 {
	level := uint32(0)
	if g.busIntr&g.busIntrEn != 0 {
		level |= intrBus
	}
	if g.fifoIntr&g.fifoIntrEn != 0 {
		level |= intrFIFO
	}
	if g.graphIntr&g.graphIntrEn != 0 {
		level |= intrGraph
	}
	if g.crtcIntr&g.crtcIntrEn != 0 {
		level |= intrCRTC
	}
	return level
}

// updateIRQ drives the host interrupt line. The master enable gates
// everything, so clearing it drops the line even with domains pending.
func (g *GPU) updateIRQ() {
	g.irq.Set(g.mcIntrStatus() != 0 && g.mcIntrEn&1 != 0)
}
