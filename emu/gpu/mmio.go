package gpu

/*
 * geforce - Register aperture.
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

import "log/slog"

// Aperture windows inside the register space.
const (
	raminBase    = 0x700000
	raminLimit   = 0x800000
	chanBase     = 0x800000
	chanLimit    = 0xA00000
	chanAltBase  = 0xC00000
	chanAltLimit = 0xE00000
)

// ReadReg reads one aligned 32-bit register.
func (g *GPU) ReadReg(addr uint32) uint32 {
	switch addr {
	case 0x000000: // PMC_ID
		if g.cardType == 0x20 {
			return 0x020200A5
		}
		return g.cardType << 20

	case 0x000100: // PMC_INTR
		return g.mcIntrStatus()
	case 0x000140: // PMC_INTR_EN
		return g.mcIntrEn
	case 0x000200: // PMC_ENABLE
		return g.mcEnable

	case 0x001100: // PBUS_INTR
		return g.busIntr
	case 0x001140: // PBUS_INTR_EN
		return g.busIntrEn

	case 0x002100: // PFIFO_INTR
		return g.fifoIntr
	case 0x002140: // PFIFO_INTR_EN
		return g.fifoIntrEn
	case 0x002210: // PFIFO_RAMHT
		return g.fifoRAMHT
	case 0x002214: // PFIFO_RAMFC
		if g.cardType < 0x40 {
			return g.fifoRAMFC
		}
	case 0x002218: // PFIFO_RAMRO
		return g.fifoRAMRO
	case 0x002220: // PFIFO_RAMFC on newer cards
		if g.cardType >= 0x40 {
			return g.fifoRAMFC
		}
	case 0x002400: // PFIFO_RUNOUT_STATUS
		if g.cache1Get != g.cache1Put {
			return 0
		}
		return 0x00000010
	case 0x002504: // PFIFO_MODE
		return g.fifoMode

	case 0x003204: // PFIFO_CACHE1_PUSH1
		return g.cache1Push1
	case 0x003210: // PFIFO_CACHE1_PUT
		return g.cache1Put
	case 0x003214: // PFIFO_CACHE1_STATUS
		if g.cache1Get != g.cache1Put {
			return 0
		}
		return 0x00000010
	case 0x003220: // PFIFO_CACHE1_DMA_PUSH
		return g.cache1DMAPush
	case 0x00322C: // PFIFO_CACHE1_DMA_INSTANCE
		return g.cache1DMAInstance
	case 0x003230: // PFIFO_CACHE1_DMA_CTL
		return 0x80000000
	case 0x003240: // PFIFO_CACHE1_DMA_PUT
		return g.cache1DMAPut
	case 0x003244: // PFIFO_CACHE1_DMA_GET
		return g.cache1DMAGet
	case 0x003248: // PFIFO_CACHE1_REF_CNT
		return g.cache1RefCnt
	case 0x003250: // PFIFO_CACHE1_PULL0
		if g.cache1Get != g.cache1Put {
			g.cache1Pull0 |= 0x00000100
		}
		return g.cache1Pull0
	case 0x003270: // PFIFO_CACHE1_GET
		return g.cache1Get
	case 0x0032E0: // PFIFO_GRCTX_INSTANCE
		return g.grctxInstance

	case 0x009100: // PTIMER_INTR
		return g.timerIntr
	case 0x009140: // PTIMER_INTR_EN
		return g.timerIntrEn
	case 0x009200: // PTIMER_NUMERATOR
		return g.timerNum
	case 0x009210: // PTIMER_DENOMINATOR
		return g.timerDen
	case 0x009400: // PTIMER_TIME_0
		return uint32(g.currentTime())
	case 0x009410: // PTIMER_TIME_1
		return uint32(g.currentTime() >> 32)
	case 0x009420: // PTIMER_ALARM_0
		return g.timerAlarm

	case 0x100320: // PFB_ZCOMP_SIZE
		switch g.cardType {
		case 0x20:
			return 0x00007FFF
		case 0x35:
			return 0x0005C7FF
		default:
			return 0x0002E3FF
		}

	case 0x101000: // PSTRAPS_OPTION
		return g.straps0

	case 0x400100: // PGRAPH_INTR
		return g.graphIntr
	case 0x400108: // PGRAPH_NSOURCE
		return g.graphNSource
	case 0x40013C: // PGRAPH_INTR_EN on newer cards
		if g.cardType >= 0x40 {
			return g.graphIntrEn
		}
	case 0x400140: // PGRAPH_INTR_EN
		if g.cardType < 0x40 {
			return g.graphIntrEn
		}
	case 0x40014C: // PGRAPH_CTX_SWITCH1
		return g.graphCtxSwitch1
	case 0x400150: // PGRAPH_CTX_SWITCH2
		return g.graphCtxSwitch2
	case 0x400158: // PGRAPH_CTX_SWITCH4
		return g.graphCtxSwitch4
	case 0x400700: // PGRAPH_STATUS
		return g.graphStatus
	case 0x400704: // PGRAPH_TRAPPED_ADDR
		return g.graphTrappedAddr
	case 0x400708: // PGRAPH_TRAPPED_DATA
		return g.graphTrappedData

	case 0x600100: // PCRTC_INTR_0
		return g.crtcIntr
	case 0x600140: // PCRTC_INTR_EN_0
		return g.crtcIntrEn
	case 0x600800: // PCRTC_START
		return g.crtcStart
	case 0x600804: // PCRTC_CONFIG
		return g.crtcConfig
	case 0x600808: // PCRTC_RASTER
		return 0

	case 0x680300: // PRAMDAC_CU_START_POS
		return g.ramdacCuStartPos
	case 0x680508: // PRAMDAC_VPLL_COEFF
		return g.ramdacVPLL
	case 0x68050C: // PRAMDAC_PLL_COEFF_SELECT
		return g.ramdacPLLSelect
	case 0x680578: // PRAMDAC_VPLL2_COEFF
		return g.ramdacVPLLB
	case 0x680600: // PRAMDAC_GENERAL_CONTROL
		return g.ramdacGeneral
	}

	switch {
	case addr >= raminBase && addr < raminLimit:
		return g.mem.InstRead32(addr - raminBase)
	case addr >= chanBase && addr < chanLimit,
		addr >= chanAltBase && addr < chanAltLimit:
		return g.channelRead(addr)
	}

	slog.Debug("gpu: unimplemented register read", "addr", addr)
	return 0
}

// WriteReg writes one aligned 32-bit register.
func (g *GPU) WriteReg(addr, val uint32) {
	switch addr {
	case 0x000140: // PMC_INTR_EN
		g.mcIntrEn = val
		g.updateIRQ()
	case 0x000200: // PMC_ENABLE
		g.mcEnable = val

	case 0x001100: // PBUS_INTR, write-one-to-clear
		g.busIntr &^= val
		g.updateIRQ()
	case 0x001140: // PBUS_INTR_EN
		g.busIntrEn = val
		g.updateIRQ()

	case 0x002100: // PFIFO_INTR, write-one-to-clear
		g.fifoIntr &^= val
		g.updateIRQ()
	case 0x002140: // PFIFO_INTR_EN
		g.fifoIntrEn = val
		g.updateIRQ()
	case 0x002210: // PFIFO_RAMHT
		g.fifoRAMHT = val
	case 0x002214: // PFIFO_RAMFC
		if g.cardType < 0x40 {
			g.fifoRAMFC = val
		}
	case 0x002218: // PFIFO_RAMRO
		g.fifoRAMRO = val
	case 0x002220: // PFIFO_RAMFC on newer cards
		if g.cardType >= 0x40 {
			g.fifoRAMFC = val
		}
	case 0x002504: // PFIFO_MODE
		g.fifoMode = val

	case 0x003204: // PFIFO_CACHE1_PUSH1
		g.cache1Push1 = val
	case 0x003210: // PFIFO_CACHE1_PUT
		g.cache1Put = val
	case 0x003220: // PFIFO_CACHE1_DMA_PUSH
		g.cache1DMAPush = val
	case 0x00322C: // PFIFO_CACHE1_DMA_INSTANCE
		g.cache1DMAInstance = val
	case 0x003240: // PFIFO_CACHE1_DMA_PUT
		g.cache1DMAPut = val
		g.fifoProcess(g.cache1Push1 & 0x1F)
	case 0x003244: // PFIFO_CACHE1_DMA_GET
		g.cache1DMAGet = val
	case 0x003248: // PFIFO_CACHE1_REF_CNT
		g.cache1RefCnt = val
	case 0x003250: // PFIFO_CACHE1_PULL0
		g.cache1Pull0 = val
	case 0x003270: // PFIFO_CACHE1_GET
		// Retiring deferred entries. The interrupt stays up until the
		// driver catches up with the put pointer.
		g.cache1Get = val & (cache1Size*4 - 1)
		if g.cache1Get != g.cache1Put {
			g.fifoIntr |= 0x00000001
		} else {
			g.fifoIntr &^= 0x00000001
			g.cache1Pull0 &^= 0x00000100
		}
		g.updateIRQ()
	case 0x0032E0: // PFIFO_GRCTX_INSTANCE
		g.grctxInstance = val

	case 0x009100: // PTIMER_INTR, write-one-to-clear
		g.timerIntr &^= val
	case 0x009140: // PTIMER_INTR_EN
		g.timerIntrEn = val
	case 0x009200: // PTIMER_NUMERATOR
		g.timerNum = val
	case 0x009210: // PTIMER_DENOMINATOR
		g.timerDen = val
	case 0x009400: // PTIMER_TIME_0
		g.setTimeLow(val)
	case 0x009410: // PTIMER_TIME_1
		g.setTimeHigh(val)
	case 0x009420: // PTIMER_ALARM_0
		g.timerAlarm = val

	case 0x101000: // PSTRAPS_OPTION, top bit selects override
		if val>>31 != 0 {
			g.straps0 = val
		} else {
			g.straps0 = g.straps0Orig
		}

	case 0x400100: // PGRAPH_INTR, write-one-to-clear
		g.graphIntr &^= val
		g.updateIRQ()
	case 0x400108: // PGRAPH_NSOURCE
		g.graphNSource = val
	case 0x40013C: // PGRAPH_INTR_EN on newer cards
		if g.cardType >= 0x40 {
			g.graphIntrEn = val
			g.updateIRQ()
		}
	case 0x400140: // PGRAPH_INTR_EN
		if g.cardType < 0x40 {
			g.graphIntrEn = val
			g.updateIRQ()
		}

	case 0x600100: // PCRTC_INTR_0, write-one-to-clear
		g.crtcIntr &^= val
		g.updateIRQ()
	case 0x600140: // PCRTC_INTR_EN_0
		g.crtcIntrEn = val
		g.updateIRQ()
	case 0x600800: // PCRTC_START
		g.crtcStart = val
		// Scanout base moved, repaint everything.
		g.disp.MarkDirty(0, 0, int(g.xres), int(g.yres))
	case 0x600804: // PCRTC_CONFIG
		g.crtcConfig = val

	case 0x680300: // PRAMDAC_CU_START_POS
		prevX, prevY := g.cursorX, g.cursorY
		g.ramdacCuStartPos = val
		g.cursorX = int16(int32(val) << 20 >> 20)
		g.cursorY = int16(int32(val) << 4 >> 20)
		if g.cursorSize != 0 {
			g.disp.MarkDirty(int(prevX), int(prevY), int(g.cursorSize), int(g.cursorSize))
			g.disp.MarkDirty(int(g.cursorX), int(g.cursorY), int(g.cursorSize), int(g.cursorSize))
		}
	case 0x680508: // PRAMDAC_VPLL_COEFF
		g.ramdacVPLL = val
	case 0x68050C: // PRAMDAC_PLL_COEFF_SELECT
		g.ramdacPLLSelect = val
	case 0x680578: // PRAMDAC_VPLL2_COEFF
		g.ramdacVPLLB = val
	case 0x680600: // PRAMDAC_GENERAL_CONTROL
		g.ramdacGeneral = val

	default:
		switch {
		case addr >= raminBase && addr < raminLimit:
			g.mem.InstWrite32(addr-raminBase, val)
		case addr >= chanBase && addr < chanLimit,
			addr >= chanAltBase && addr < chanAltLimit:
			g.channelWrite(addr, val)
		default:
			slog.Debug("gpu: unimplemented register write", "addr", addr, "val", val)
		}
	}
}

// channelID splits a FIFO aperture address into channel and offset.
// The alternate window packs channels tighter.
func channelID(addr uint32) (chid, offset uint32) {
	if addr >= chanBase && addr < chanLimit {
		chid = (addr >> 16) & 0x1F
		offset = addr & 0x1FFF
	} else {
		chid = (addr >> 12) & 0x1FF
		offset = addr & 0x1FF
	}
	if chid >= ChannelCount {
		chid = 0
	}
	return chid, offset
}

// channelRead services the per-channel submission window. Put, get and
// reference count come from the live registers for the resident channel
// and from the context save area for everyone else.
func (g *GPU) channelRead(addr uint32) uint32 {
	chid, offset := channelID(addr)

	if offset == 0x10 {
		return 0xFFFF
	}
	if offset < 0x40 || offset > 0x48 {
		return 0
	}
	if g.cache1Push1&0x1F == chid {
		switch offset {
		case 0x40:
			return g.cache1DMAPut
		case 0x44:
			return g.cache1DMAGet
		case 0x48:
			return g.cache1RefCnt
		}
	}
	switch offset {
	case 0x40:
		return g.saveAreaRead32(chid, saveDMAPut)
	case 0x44:
		return g.saveAreaRead32(chid, saveDMAGet)
	case 0x48:
		return g.saveAreaRead32(chid, saveRefCnt)
	}
	return 0
}

// channelWrite accepts a put-pointer update for any channel and kicks
// the corresponding pushbuffer.
func (g *GPU) channelWrite(addr, val uint32) {
	chid, offset := channelID(addr)
	if offset != 0x40 {
		return
	}
	if g.cache1Push1&0x1F == chid {
		g.cache1DMAPut = val
	} else {
		g.saveAreaWrite32(chid, saveDMAPut, val)
	}
	g.fifoProcess(chid)
}

// MMIORead services a 1, 2, 4 or 8 byte access by composing aligned
// 32-bit register reads.
func (g *GPU) MMIORead(addr uint32, size uint32) uint64 {
	if size == 8 {
		lo := uint64(g.MMIORead(addr, 4))
		hi := uint64(g.MMIORead(addr+4, 4))
		return lo | hi<<32
	}
	base := addr &^ 3
	shift := (addr & 3) * 8
	word := uint64(g.ReadReg(base))
	switch size {
	case 1:
		return (word >> shift) & 0xFF
	case 2:
		return (word >> shift) & 0xFFFF
	default:
		return word
	}
}

// MMIOWrite services a 1, 2, 4 or 8 byte access. Partial writes merge
// into the current register value.
func (g *GPU) MMIOWrite(addr uint32, val uint64, size uint32) {
	if size == 8 {
		g.MMIOWrite(addr, val&0xFFFFFFFF, 4)
		g.MMIOWrite(addr+4, val>>32, 4)
		return
	}
	base := addr &^ 3
	if size == 4 {
		g.WriteReg(base, uint32(val))
		return
	}
	shift := (addr & 3) * 8
	var mask uint32
	if size == 1 {
		mask = 0xFF << shift
	} else {
		mask = 0xFFFF << shift
	}
	word := g.ReadReg(base)&^mask | (uint32(val)<<shift)&mask
	g.WriteReg(base, word)
}
