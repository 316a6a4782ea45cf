package gpu

/*
 * geforce - PTIMER free-running counter.
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

// currentTime is the nanosecond counter exposed through PTIMER and
// stamped into notifier records. The low five bits always read zero.
func (g *GPU) currentTime() uint64 {
	return (g.timerInit1 + uint64(g.clock.Now()-g.timerInit2)) &^ 0x1F
}

// setTimeLow reloads the low half of the counter, rebasing it on the
// host clock.
func (g *GPU) setTimeLow(val uint32) {
	g.timerInit2 = g.clock.Now()
	g.timerInit1 = g.timerInit1&0xFFFFFFFF00000000 | uint64(val)
}

// setTimeHigh reloads the high half of the counter.
func (g *GPU) setTimeHigh(val uint32) {
	g.timerInit2 = g.clock.Now()
	g.timerInit1 = g.timerInit1&0x00000000FFFFFFFF | uint64(val)<<32
}
