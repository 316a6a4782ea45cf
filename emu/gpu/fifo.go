package gpu

/*
 * geforce - Pushbuffer FIFO processing.
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

// Pushbuffer control words.
const (
	ctrlOldJumpMask = 0xE0000003
	ctrlOldJump     = 0x20000000
	ctrlReturn      = 0x00020000
	ctrlHeaderMask  = 0xA0030003
	ctrlNoIncrement = 0x40000000
	ctrlAddressMask = 0xFFFFFFFC
)

// Context save area slots for a channel's FIFO cursor state.
const (
	saveDMAPut      = 0x0
	saveDMAGet      = 0x4
	saveRefCnt      = 0x8
	saveDMAInstance = 0xC
)

// Address of one channel's slot in the context save area.
func (g *GPU) saveAreaAddr(chid, offset uint32) uint32 {
	l := g.layout
	return l.SaveAreaBase(g.fifoRAMFC) + chid*l.SaveAreaStride() + offset
}

func (g *GPU) saveAreaWrite32(chid, offset, value uint32) {
	g.mem.InstWrite32(g.saveAreaAddr(chid, offset), value)
}

func (g *GPU) saveAreaRead32(chid, offset uint32) uint32 {
	return g.mem.InstRead32(g.saveAreaAddr(chid, offset))
}

// Swap the FIFO cursor registers between the outgoing and incoming
// channel. The drain loop only runs after the switch completes, so no
// partially switched state is ever observable.
func (g *GPU) contextSwitch(oldchid, chid uint32) {
	sem := g.layout.SemaphoreSlot()

	g.saveAreaWrite32(oldchid, saveDMAPut, g.cache1DMAPut)
	g.saveAreaWrite32(oldchid, saveDMAGet, g.cache1DMAGet)
	g.saveAreaWrite32(oldchid, saveRefCnt, g.cache1RefCnt)
	g.saveAreaWrite32(oldchid, saveDMAInstance, g.cache1DMAInstance)
	g.saveAreaWrite32(oldchid, sem, g.cache1Semaphore)

	g.cache1DMAPut = g.saveAreaRead32(chid, saveDMAPut)
	g.cache1DMAGet = g.saveAreaRead32(chid, saveDMAGet)
	g.cache1RefCnt = g.saveAreaRead32(chid, saveRefCnt)
	g.cache1DMAInstance = g.saveAreaRead32(chid, saveDMAInstance)
	g.cache1Semaphore = g.saveAreaRead32(chid, sem)

	g.cache1Push1 = (g.cache1Push1 &^ 0x1F) | chid
}

// Drain a channel's pushbuffer. Runs to cursor exhaustion or to the
// first dispatch failure, which leaves the failing word unconsumed.
func (g *GPU) fifoProcess(chid uint32) {
	oldchid := g.cache1Push1 & 0x1F
	if oldchid == chid {
		if g.cache1DMAPut == g.cache1DMAGet {
			return
		}
	} else {
		if g.saveAreaRead32(chid, saveDMAPut) == g.saveAreaRead32(chid, saveDMAGet) {
			return
		}
		g.contextSwitch(oldchid, chid)
	}

	ch := &g.channels[chid]

	for g.cache1DMAGet != g.cache1DMAPut {
		word := g.dmaRead32(g.cache1DMAInstance<<4, g.cache1DMAGet)
		g.cache1DMAGet += 4

		if ch.dma.mcnt != 0 {
			// Parameter for the current method run.
			if !g.executeCommand(chid, ch.dma.subc, ch.dma.mthd, word) {
				g.cache1DMAGet -= 4
				break
			}
			if !ch.dma.ni {
				ch.dma.mthd++
			}
			ch.dma.mcnt--
			continue
		}

		switch {
		case word&ctrlOldJumpMask == ctrlOldJump:
			g.cache1DMAGet = word & 0x1FFFFFFF
		case word&3 == 1:
			g.cache1DMAGet = word & ctrlAddressMask
		case word&3 == 2:
			// Call. Only one level, nesting is ignored.
			if ch.subrActive {
				slog.Warn("gpu: call with subroutine active", "channel", chid)
			} else {
				ch.subrReturn = g.cache1DMAGet
				ch.subrActive = true
				g.cache1DMAGet = word & ctrlAddressMask
			}
		case word == ctrlReturn:
			if !ch.subrActive {
				slog.Warn("gpu: return with subroutine inactive", "channel", chid)
			} else {
				g.cache1DMAGet = ch.subrReturn
				ch.subrActive = false
			}
		case word&ctrlHeaderMask == 0:
			ch.dma.mthd = (word >> 2) & 0x7FF
			ch.dma.subc = (word >> 13) & 7
			ch.dma.mcnt = (word >> 18) & 0x7FF
			ch.dma.ni = word&ctrlNoIncrement != 0
		default:
			slog.Warn("gpu: unexpected FIFO word", "channel", chid, "word", word)
		}
	}
}

// VBlank is the periodic retrace entry point. It raises the CRTC
// interrupt and, when deferred processing was armed, drains every
// channel in turn.
func (g *GPU) VBlank() {
	g.crtcIntr |= 0x00000001
	g.updateIRQ()

	if g.acquireActive {
		g.acquireActive = false
		for chid := uint32(0); chid < ChannelCount; chid++ {
			g.fifoProcess(chid)
		}
	}
}
