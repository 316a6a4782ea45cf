package gpu

/*
 * geforce - Method dispatch.
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

// Engine ids found in hash table context words.
const (
	engineSoftware = 0x00 // Deferred to external emulation
	engineGraphics = 0x01 // Local graphics engine
)

// Object classes with local handlers.
const (
	classClip      = 0x19
	classM2MF      = 0x39
	classROP       = 0x43
	classPattern   = 0x44
	classGDI       = 0x4A
	classBlit      = 0x5F
	classBlitNV9   = 0x9F
	classIFC       = 0x61
	classIFCNV5    = 0x65
	classIFCNV10   = 0x8A
	classSurface2D = 0x62
	classD3D       = 0x97
)

// Per-class method handler. All handlers share one shape so dispatch is
// a single table lookup.
type classFunc func(g *GPU, ch *Channel, subc, cls, mthd, param uint32)

var classTable = map[uint8]classFunc{
	classClip:      (*GPU).execClip,
	classM2MF:      (*GPU).execM2MF,
	classROP:       (*GPU).execROP,
	classPattern:   (*GPU).execPattern,
	classGDI:       (*GPU).execGDI,
	classBlit:      (*GPU).execBlit,
	classBlitNV9:   (*GPU).execBlit,
	classIFC:       (*GPU).execIFC,
	classIFCNV5:    (*GPU).execIFC,
	classIFCNV10:   (*GPU).execIFC,
	classSurface2D: (*GPU).execSurface2D,
	classD3D:       (*GPU).execD3D,
}

// Dispatch one (subchannel, method, parameter) triple on a channel.
// A false return tells the drain loop to stop and rewind; handlers may
// have mutated state before failing.
func (g *GPU) executeCommand(chid, subc, mthd, param uint32) bool {
	ch := &g.channels[chid]
	software := false

	switch {
	case mthd == 0x000:
		// Bind the subchannel to a new object. The notifier address is
		// cross-linked into the object's second word on both sides of
		// the rebind so the outgoing object keeps its notifier.
		sch := &ch.schs[subc]
		if sch.engine == engineGraphics {
			word1 := g.mem.InstRead32(sch.object + 0x4)
			g.mem.InstWrite32(sch.object+0x4, g.layout.LinkNotifier(word1, sch.notifier))
		}

		g.ramhtLookup(param, chid, &sch.object, &sch.engine)

		switch sch.engine {
		case engineGraphics:
			word1 := g.mem.InstRead32(sch.object + 0x4)
			sch.notifier = g.layout.ObjectNotifier(word1)
		case engineSoftware:
			software = true
		}

	case mthd == 0x014:
		g.cache1RefCnt = param

	case mthd >= 0x040:
		sch := &ch.schs[subc]
		switch sch.engine {
		case engineGraphics:
			// Methods in this range carry object handles; resolve them
			// before the class handler sees the parameter.
			if mthd >= 0x060 && mthd < 0x080 {
				g.ramhtLookup(param, chid, &param, nil)
			}

			cls := g.mem.InstRead32(sch.object) & g.classMask
			if fn, ok := classTable[uint8(cls)]; ok {
				fn(g, ch, subc, cls, mthd, param)
			} else {
				slog.Debug("gpu: unimplemented object class",
					"class", cls, "method", mthd)
			}

			if ch.notifyPending {
				ch.notifyPending = false
				g.writeNotify(ch, subc, 0x0)
				if ch.notifyType != 0 {
					g.graphIntr |= 0x00000001
					g.updateIRQ()
					g.graphNSource |= 0x00000001
					g.graphNotify = 0x00110000
				}
			}

			if mthd == 0x041 {
				ch.notifyPending = true
				ch.notifyType = param
			} else if mthd == 0x060 {
				sch.notifier = param
			}
		case engineSoftware:
			software = true
		}
	}

	if software {
		g.deferMethod(subc, mthd, param)
	}
	return true
}

// Append a triple to the pending queue for external servicing and raise
// the FIFO interrupt. The retrace tick re-drains once the guest has
// taken the queue.
func (g *GPU) deferMethod(subc, mthd, param uint32) {
	g.fifoIntr |= 0x00000001
	g.updateIRQ()
	g.cache1Pull0 |= 0x00000100
	g.cache1Method[g.cache1Put/4] = (mthd << 2) | (subc << 13)
	g.cache1Data[g.cache1Put/4] = param
	g.cache1Put += 4
	if g.cache1Put == cache1Size*4 {
		g.cache1Put = 0
	}
	g.acquireActive = true
}

// Write a completion record through the DMA path to the subchannel's
// notifier. Notifiers bound to a null object (target tag 0x30) are
// skipped.
func (g *GPU) writeNotify(ch *Channel, subc, base uint32) {
	notifier := ch.schs[subc].notifier
	if g.mem.InstRead32(notifier)&0xFF == 0x30 {
		return
	}
	g.dmaWrite64(notifier, base, g.currentTime())
	g.dmaWrite32(notifier, base+0x8, 0)
	g.dmaWrite32(notifier, base+0xC, 0)
}
