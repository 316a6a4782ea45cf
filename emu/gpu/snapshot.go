package gpu

/*
 * geforce - Device state snapshots.
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
	"compress/gzip"
	"encoding/binary"
	"fmt"
	"io"
)

const (
	snapshotMagic   = "GFSN"
	snapshotVersion = 1
)

// snapRegs mirrors the scalar device registers with fixed-size exported
// fields so the whole block serializes in one write.
type snapRegs struct {
	CardType  uint32
	ClassMask uint32

	McIntrEn, McEnable   uint32
	BusIntr, BusIntrEn   uint32
	FifoIntr, FifoIntrEn uint32
	GraphIntr            uint32
	GraphIntrEn          uint32
	GraphNSource         uint32
	GraphNotify          uint32
	GraphCtxSwitch1      uint32
	GraphCtxSwitch2      uint32
	GraphCtxSwitch4      uint32
	GraphStatus          uint32
	GraphTrappedAddr     uint32
	GraphTrappedData     uint32
	CrtcIntr, CrtcIntrEn uint32

	FifoRAMHT, FifoRAMFC uint32
	FifoRAMRO, FifoMode  uint32
	Cache1Push1          uint32
	Cache1Put            uint32
	Cache1Get            uint32
	Cache1DMAPush        uint32
	Cache1DMAInstance    uint32
	Cache1DMAPut         uint32
	Cache1DMAGet         uint32
	Cache1RefCnt         uint32
	Cache1Pull0          uint32
	Cache1Semaphore      uint32
	GrctxInstance        uint32
	Cache1Method         [cache1Size]uint32
	Cache1Data           [cache1Size]uint32

	TimerIntr, TimerIntrEn uint32
	TimerNum, TimerDen     uint32
	TimerInit1             uint64
	TimerInit2             int64
	TimerAlarm             uint32

	RamdacCuStartPos uint32
	RamdacVPLL       uint32
	RamdacVPLLB      uint32
	RamdacPLLSelect  uint32
	RamdacGeneral    uint32
	CrtcStart        uint32
	CrtcConfig       uint32

	Straps0 uint32

	Xres, Yres  uint32
	Bpp, Pitch  uint32
	DispEnabled uint8

	CursorX, CursorY int16
	CursorSize       uint8
	CursorEnabled    uint8

	AcquireActive uint8
}

// snapChannel mirrors one channel. The streamed upload buffer rides
// behind the fixed block as an explicit word count.
type snapChannel struct {
	SubrReturn uint32
	SubrActive uint8

	DmaMthd, DmaSubc, DmaMcnt uint32
	DmaNi                     uint8

	Objects   [SubchannelCount]uint32
	Engines   [SubchannelCount]uint8
	Notifiers [SubchannelCount]uint32

	NotifyPending uint8
	NotifyType    uint32

	S2DImgSrc, S2DImgDst uint32
	S2DColorFmt          uint32
	S2DColorBytes        uint32
	S2DPitch             uint32
	S2DOfsSrc, S2DOfsDst uint32

	IfcColorKeyEnable uint8
	IfcOperation      uint32
	IfcColorFmt       uint32
	IfcColorBytes     uint32
	IfcYX, IfcDHW     uint32
	IfcSHW            uint32
	IfcState          uint32
	IfcPtr, IfcLeft   uint32
	IfcFastOfs        uint32

	BlitColorKeyEnable uint8
	BlitOperation      uint32
	BlitSYX, BlitDYX   uint32
	BlitHW             uint32

	M2MFSrc, M2MFDst           uint32
	M2MFSrcOfs, M2MFDstOfs     uint32
	M2MFSrcPitch, M2MFDstPitch uint32
	M2MFLineLength             uint32
	M2MFLineCount              uint32
	M2MFFormat                 uint32
	M2MFBufNotify              uint32

	D3DAObj, D3DBObj         uint32
	D3DColorObj, D3DZetaObj  uint32
	D3DClipH, D3DClipV       uint32
	D3DSurfaceFmt            uint32
	D3DColorBytes            uint32
	D3DDepthBytes            uint32
	D3DPitchA                uint32
	D3DColorOfs, D3DZetaOfs  uint32
	D3DZStencilClear         uint32
	D3DColorClear            uint32
	D3DClearSurface          uint32
	D3DVertexIdx             uint32
	D3DAttribIdx, D3DCompIdx uint32
	D3DVertexData            [4][16][4]float32

	Rop           uint8
	PattShape     uint32
	PattType      uint32
	PattBgColor   uint32
	PattFgColor   uint32
	PattDataMono  [64]uint8
	PattDataColor [64]uint32

	ClipYX, ClipHW uint32

	GdiOperation            uint32
	GdiColorFmt, GdiMonoFmt uint32
	GdiClipYX0, GdiClipYX1  uint32
	GdiRectColor            uint32
	GdiRectXY, GdiRectWH    uint32
	GdiRectYX0, GdiRectYX1  uint32
}

func b2u(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

func (g *GPU) snapshotRegs() snapRegs {
	return snapRegs{
		CardType:  g.cardType,
		ClassMask: g.classMask,

		McIntrEn: g.mcIntrEn, McEnable: g.mcEnable,
		BusIntr: g.busIntr, BusIntrEn: g.busIntrEn,
		FifoIntr: g.fifoIntr, FifoIntrEn: g.fifoIntrEn,
		GraphIntr:        g.graphIntr,
		GraphIntrEn:      g.graphIntrEn,
		GraphNSource:     g.graphNSource,
		GraphNotify:      g.graphNotify,
		GraphCtxSwitch1:  g.graphCtxSwitch1,
		GraphCtxSwitch2:  g.graphCtxSwitch2,
		GraphCtxSwitch4:  g.graphCtxSwitch4,
		GraphStatus:      g.graphStatus,
		GraphTrappedAddr: g.graphTrappedAddr,
		GraphTrappedData: g.graphTrappedData,
		CrtcIntr:         g.crtcIntr, CrtcIntrEn: g.crtcIntrEn,

		FifoRAMHT: g.fifoRAMHT, FifoRAMFC: g.fifoRAMFC,
		FifoRAMRO: g.fifoRAMRO, FifoMode: g.fifoMode,
		Cache1Push1:       g.cache1Push1,
		Cache1Put:         g.cache1Put,
		Cache1Get:         g.cache1Get,
		Cache1DMAPush:     g.cache1DMAPush,
		Cache1DMAInstance: g.cache1DMAInstance,
		Cache1DMAPut:      g.cache1DMAPut,
		Cache1DMAGet:      g.cache1DMAGet,
		Cache1RefCnt:      g.cache1RefCnt,
		Cache1Pull0:       g.cache1Pull0,
		Cache1Semaphore:   g.cache1Semaphore,
		GrctxInstance:     g.grctxInstance,
		Cache1Method:      g.cache1Method,
		Cache1Data:        g.cache1Data,

		TimerIntr: g.timerIntr, TimerIntrEn: g.timerIntrEn,
		TimerNum: g.timerNum, TimerDen: g.timerDen,
		TimerInit1: g.timerInit1,
		TimerInit2: g.timerInit2,
		TimerAlarm: g.timerAlarm,

		RamdacCuStartPos: g.ramdacCuStartPos,
		RamdacVPLL:       g.ramdacVPLL,
		RamdacVPLLB:      g.ramdacVPLLB,
		RamdacPLLSelect:  g.ramdacPLLSelect,
		RamdacGeneral:    g.ramdacGeneral,
		CrtcStart:        g.crtcStart,
		CrtcConfig:       g.crtcConfig,

		Straps0: g.straps0,

		Xres: g.xres, Yres: g.yres,
		Bpp: g.bpp, Pitch: g.pitch,
		DispEnabled: b2u(g.dispEnabled),

		CursorX: g.cursorX, CursorY: g.cursorY,
		CursorSize:    g.cursorSize,
		CursorEnabled: b2u(g.cursorEnabled),

		AcquireActive: b2u(g.acquireActive),
	}
}

func (g *GPU) restoreRegs(r *snapRegs) {
	g.mcIntrEn, g.mcEnable = r.McIntrEn, r.McEnable
	g.busIntr, g.busIntrEn = r.BusIntr, r.BusIntrEn
	g.fifoIntr, g.fifoIntrEn = r.FifoIntr, r.FifoIntrEn
	g.graphIntr = r.GraphIntr
	g.graphIntrEn = r.GraphIntrEn
	g.graphNSource = r.GraphNSource
	g.graphNotify = r.GraphNotify
	g.graphCtxSwitch1 = r.GraphCtxSwitch1
	g.graphCtxSwitch2 = r.GraphCtxSwitch2
	g.graphCtxSwitch4 = r.GraphCtxSwitch4
	g.graphStatus = r.GraphStatus
	g.graphTrappedAddr = r.GraphTrappedAddr
	g.graphTrappedData = r.GraphTrappedData
	g.crtcIntr, g.crtcIntrEn = r.CrtcIntr, r.CrtcIntrEn

	g.fifoRAMHT, g.fifoRAMFC = r.FifoRAMHT, r.FifoRAMFC
	g.fifoRAMRO, g.fifoMode = r.FifoRAMRO, r.FifoMode
	g.cache1Push1 = r.Cache1Push1
	g.cache1Put = r.Cache1Put
	g.cache1Get = r.Cache1Get
	g.cache1DMAPush = r.Cache1DMAPush
	g.cache1DMAInstance = r.Cache1DMAInstance
	g.cache1DMAPut = r.Cache1DMAPut
	g.cache1DMAGet = r.Cache1DMAGet
	g.cache1RefCnt = r.Cache1RefCnt
	g.cache1Pull0 = r.Cache1Pull0
	g.cache1Semaphore = r.Cache1Semaphore
	g.grctxInstance = r.GrctxInstance
	g.cache1Method = r.Cache1Method
	g.cache1Data = r.Cache1Data

	g.timerIntr, g.timerIntrEn = r.TimerIntr, r.TimerIntrEn
	g.timerNum, g.timerDen = r.TimerNum, r.TimerDen
	g.timerInit1 = r.TimerInit1
	g.timerInit2 = r.TimerInit2
	g.timerAlarm = r.TimerAlarm

	g.ramdacCuStartPos = r.RamdacCuStartPos
	g.ramdacVPLL = r.RamdacVPLL
	g.ramdacVPLLB = r.RamdacVPLLB
	g.ramdacPLLSelect = r.RamdacPLLSelect
	g.ramdacGeneral = r.RamdacGeneral
	g.crtcStart = r.CrtcStart
	g.crtcConfig = r.CrtcConfig

	g.straps0 = r.Straps0

	g.xres, g.yres = r.Xres, r.Yres
	g.bpp, g.pitch = r.Bpp, r.Pitch
	g.dispEnabled = r.DispEnabled != 0

	g.cursorX, g.cursorY = r.CursorX, r.CursorY
	g.cursorSize = r.CursorSize
	g.cursorEnabled = r.CursorEnabled != 0

	g.acquireActive = r.AcquireActive != 0
}

func snapshotChannel(ch *Channel) snapChannel {
	sc := snapChannel{
		SubrReturn: ch.subrReturn,
		SubrActive: b2u(ch.subrActive),

		DmaMthd: ch.dma.mthd, DmaSubc: ch.dma.subc, DmaMcnt: ch.dma.mcnt,
		DmaNi: b2u(ch.dma.ni),

		NotifyPending: b2u(ch.notifyPending),
		NotifyType:    ch.notifyType,

		S2DImgSrc: ch.s2dImgSrc, S2DImgDst: ch.s2dImgDst,
		S2DColorFmt:   ch.s2dColorFmt,
		S2DColorBytes: ch.s2dColorBytes,
		S2DPitch:      ch.s2dPitch,
		S2DOfsSrc:     ch.s2dOfsSrc, S2DOfsDst: ch.s2dOfsDst,

		IfcColorKeyEnable: b2u(ch.ifc.colorKeyEnable),
		IfcOperation:      ch.ifc.operation,
		IfcColorFmt:       ch.ifc.colorFmt,
		IfcColorBytes:     ch.ifc.colorBytes,
		IfcYX:             ch.ifc.yx, IfcDHW: ch.ifc.dhw,
		IfcSHW:   ch.ifc.shw,
		IfcState: uint32(ch.ifc.state),
		IfcPtr:   ch.ifc.ptr, IfcLeft: ch.ifc.left,
		IfcFastOfs: ch.ifc.fastOfs,

		BlitColorKeyEnable: b2u(ch.blitColorKeyEnable),
		BlitOperation:      ch.blitOperation,
		BlitSYX:            ch.blitSYX, BlitDYX: ch.blitDYX,
		BlitHW: ch.blitHW,

		M2MFSrc: ch.m2mfSrc, M2MFDst: ch.m2mfDst,
		M2MFSrcOfs: ch.m2mfSrcOfs, M2MFDstOfs: ch.m2mfDstOfs,
		M2MFSrcPitch: ch.m2mfSrcPitch, M2MFDstPitch: ch.m2mfDstPitch,
		M2MFLineLength: ch.m2mfLineLength,
		M2MFLineCount:  ch.m2mfLineCount,
		M2MFFormat:     ch.m2mfFormat,
		M2MFBufNotify:  ch.m2mfBufNotify,

		D3DAObj: ch.d3dAObj, D3DBObj: ch.d3dBObj,
		D3DColorObj: ch.d3dColorObj, D3DZetaObj: ch.d3dZetaObj,
		D3DClipH: ch.d3dClipH, D3DClipV: ch.d3dClipV,
		D3DSurfaceFmt: ch.d3dSurfaceFmt,
		D3DColorBytes: ch.d3dColorBytes,
		D3DDepthBytes: ch.d3dDepthBytes,
		D3DPitchA:     ch.d3dPitchA,
		D3DColorOfs:   ch.d3dColorOfs, D3DZetaOfs: ch.d3dZetaOfs,
		D3DZStencilClear: ch.d3dZStencilClear,
		D3DColorClear:    ch.d3dColorClear,
		D3DClearSurface:  ch.d3dClearSurface,
		D3DVertexIdx:     ch.d3dVertexIdx,
		D3DAttribIdx:     ch.d3dAttribIdx, D3DCompIdx: ch.d3dCompIdx,
		D3DVertexData: ch.d3dVertexData,

		Rop:           ch.rop,
		PattShape:     ch.pattShape,
		PattType:      ch.pattType,
		PattBgColor:   ch.pattBgColor,
		PattFgColor:   ch.pattFgColor,
		PattDataColor: ch.pattDataColor,

		ClipYX: ch.clipYX, ClipHW: ch.clipHW,

		GdiOperation: ch.gdiOperation,
		GdiColorFmt:  ch.gdiColorFmt, GdiMonoFmt: ch.gdiMonoFmt,
		GdiClipYX0: ch.gdiClipYX0, GdiClipYX1: ch.gdiClipYX1,
		GdiRectColor: ch.gdiRectColor,
		GdiRectXY:    ch.gdiRectXY, GdiRectWH: ch.gdiRectWH,
		GdiRectYX0: ch.gdiRectYX0, GdiRectYX1: ch.gdiRectYX1,
	}
	for i := range ch.schs {
		sc.Objects[i] = ch.schs[i].object
		sc.Engines[i] = ch.schs[i].engine
		sc.Notifiers[i] = ch.schs[i].notifier
	}
	for i, m := range ch.pattDataMono {
		sc.PattDataMono[i] = b2u(m)
	}
	return sc
}

func restoreChannel(ch *Channel, sc *snapChannel, words []uint32) {
	*ch = Channel{
		subrReturn: sc.SubrReturn,
		subrActive: sc.SubrActive != 0,

		dma: methodState{
			mthd: sc.DmaMthd, subc: sc.DmaSubc, mcnt: sc.DmaMcnt,
			ni: sc.DmaNi != 0,
		},

		notifyPending: sc.NotifyPending != 0,
		notifyType:    sc.NotifyType,

		s2dImgSrc: sc.S2DImgSrc, s2dImgDst: sc.S2DImgDst,
		s2dColorFmt:   sc.S2DColorFmt,
		s2dColorBytes: sc.S2DColorBytes,
		s2dPitch:      sc.S2DPitch,
		s2dOfsSrc:     sc.S2DOfsSrc, s2dOfsDst: sc.S2DOfsDst,

		ifc: ifcState{
			colorKeyEnable: sc.IfcColorKeyEnable != 0,
			operation:      sc.IfcOperation,
			colorFmt:       sc.IfcColorFmt,
			colorBytes:     sc.IfcColorBytes,
			yx:             sc.IfcYX, dhw: sc.IfcDHW, shw: sc.IfcSHW,
			state:   uploadState(sc.IfcState),
			words:   words,
			ptr:     sc.IfcPtr,
			left:    sc.IfcLeft,
			fastOfs: sc.IfcFastOfs,
		},

		blitColorKeyEnable: sc.BlitColorKeyEnable != 0,
		blitOperation:      sc.BlitOperation,
		blitSYX:            sc.BlitSYX, blitDYX: sc.BlitDYX,
		blitHW: sc.BlitHW,

		m2mfSrc: sc.M2MFSrc, m2mfDst: sc.M2MFDst,
		m2mfSrcOfs: sc.M2MFSrcOfs, m2mfDstOfs: sc.M2MFDstOfs,
		m2mfSrcPitch: sc.M2MFSrcPitch, m2mfDstPitch: sc.M2MFDstPitch,
		m2mfLineLength: sc.M2MFLineLength,
		m2mfLineCount:  sc.M2MFLineCount,
		m2mfFormat:     sc.M2MFFormat,
		m2mfBufNotify:  sc.M2MFBufNotify,

		d3dAObj: sc.D3DAObj, d3dBObj: sc.D3DBObj,
		d3dColorObj: sc.D3DColorObj, d3dZetaObj: sc.D3DZetaObj,
		d3dClipH: sc.D3DClipH, d3dClipV: sc.D3DClipV,
		d3dSurfaceFmt: sc.D3DSurfaceFmt,
		d3dColorBytes: sc.D3DColorBytes,
		d3dDepthBytes: sc.D3DDepthBytes,
		d3dPitchA:     sc.D3DPitchA,
		d3dColorOfs:   sc.D3DColorOfs, d3dZetaOfs: sc.D3DZetaOfs,
		d3dZStencilClear: sc.D3DZStencilClear,
		d3dColorClear:    sc.D3DColorClear,
		d3dClearSurface:  sc.D3DClearSurface,
		d3dVertexIdx:     sc.D3DVertexIdx,
		d3dAttribIdx:     sc.D3DAttribIdx, d3dCompIdx: sc.D3DCompIdx,
		d3dVertexData: sc.D3DVertexData,

		rop:           sc.Rop,
		pattShape:     sc.PattShape,
		pattType:      sc.PattType,
		pattBgColor:   sc.PattBgColor,
		pattFgColor:   sc.PattFgColor,
		pattDataColor: sc.PattDataColor,

		clipYX: sc.ClipYX, clipHW: sc.ClipHW,

		gdiOperation: sc.GdiOperation,
		gdiColorFmt:  sc.GdiColorFmt, gdiMonoFmt: sc.GdiMonoFmt,
		gdiClipYX0: sc.GdiClipYX0, gdiClipYX1: sc.GdiClipYX1,
		gdiRectColor: sc.GdiRectColor,
		gdiRectXY:    sc.GdiRectXY, gdiRectWH: sc.GdiRectWH,
		gdiRectYX0: sc.GdiRectYX0, gdiRectYX1: sc.GdiRectYX1,
	}
	for i := range ch.schs {
		ch.schs[i].object = sc.Objects[i]
		ch.schs[i].engine = sc.Engines[i]
		ch.schs[i].notifier = sc.Notifiers[i]
	}
	for i := range ch.pattDataMono {
		ch.pattDataMono[i] = sc.PattDataMono[i] != 0
	}
}

// SaveState writes the full device state, including device memory,
// to w. Memory is gzip compressed.
func (g *GPU) SaveState(w io.Writer) error {
	if _, err := io.WriteString(w, snapshotMagic); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(snapshotVersion)); err != nil {
		return err
	}
	regs := g.snapshotRegs()
	if err := binary.Write(w, binary.LittleEndian, &regs); err != nil {
		return err
	}
	for i := range g.channels {
		ch := &g.channels[i]
		sc := snapshotChannel(ch)
		if err := binary.Write(w, binary.LittleEndian, &sc); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, uint32(len(ch.ifc.words))); err != nil {
			return err
		}
		if len(ch.ifc.words) > 0 {
			if err := binary.Write(w, binary.LittleEndian, ch.ifc.words); err != nil {
				return err
			}
		}
	}

	mem := g.mem.Bytes()
	if err := binary.Write(w, binary.LittleEndian, uint32(len(mem))); err != nil {
		return err
	}
	var compressed bytes.Buffer
	gz := gzip.NewWriter(&compressed)
	if _, err := gz.Write(mem); err != nil {
		return fmt.Errorf("compressing device memory: %w", err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("closing gzip: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(compressed.Len())); err != nil {
		return err
	}
	_, err := w.Write(compressed.Bytes())
	return err
}

// LoadState restores a state previously written by SaveState. The
// snapshot must come from the same card model.
func (g *GPU) LoadState(r io.Reader) error {
	magic := make([]byte, 4)
	if _, err := io.ReadFull(r, magic); err != nil {
		return fmt.Errorf("reading snapshot magic: %w", err)
	}
	if string(magic) != snapshotMagic {
		return fmt.Errorf("invalid snapshot magic %q", string(magic))
	}
	var version uint32
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return err
	}
	if version != snapshotVersion {
		return fmt.Errorf("unsupported snapshot version %d", version)
	}
	var regs snapRegs
	if err := binary.Read(r, binary.LittleEndian, &regs); err != nil {
		return err
	}
	if regs.CardType != g.cardType {
		return fmt.Errorf("snapshot is for card type 0x%02X, this card is 0x%02X",
			regs.CardType, g.cardType)
	}
	g.restoreRegs(&regs)

	for i := range g.channels {
		var sc snapChannel
		if err := binary.Read(r, binary.LittleEndian, &sc); err != nil {
			return err
		}
		var count uint32
		if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
			return err
		}
		// No legal streaming buffer outgrows device memory.
		if count > g.mem.Size()/4 {
			return fmt.Errorf("snapshot upload buffer of %d words is corrupt", count)
		}
		var words []uint32
		if count > 0 {
			words = make([]uint32, count)
			if err := binary.Read(r, binary.LittleEndian, words); err != nil {
				return err
			}
		}
		restoreChannel(&g.channels[i], &sc, words)
	}

	var memLen, compLen uint32
	if err := binary.Read(r, binary.LittleEndian, &memLen); err != nil {
		return err
	}
	if memLen != g.mem.Size() {
		return fmt.Errorf("snapshot memory is %d bytes, this card has %d",
			memLen, g.mem.Size())
	}
	if err := binary.Read(r, binary.LittleEndian, &compLen); err != nil {
		return err
	}
	gz, err := gzip.NewReader(io.LimitReader(r, int64(compLen)))
	if err != nil {
		return fmt.Errorf("opening compressed device memory: %w", err)
	}
	defer gz.Close()
	if _, err := io.ReadFull(gz, g.mem.Bytes()); err != nil {
		return fmt.Errorf("decompressing device memory: %w", err)
	}
	return nil
}
