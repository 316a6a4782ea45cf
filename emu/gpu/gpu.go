package gpu

/*
 * geforce - GPU device core.
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
	"time"

	"github.com/gpuemu/geforce/emu/vram"
)

const (
	ChannelCount    = 32 // Number of DMA channels
	SubchannelCount = 8  // Subchannels per channel
	cache1Size      = 64 // Entries in the deferred method queue

	// MMIOSize is the span of the register aperture.
	MMIOSize = 0x1000000
)

// Card models. The model selects memory size, the instance memory flip
// and which of the two context encodings the card uses.
type Model int

const (
	GeForce3 Model = iota
	GeForceFX5900
	GeForce6800
)

// SystemBus gives DMA objects access to guest physical memory.
type SystemBus interface {
	Read8(addr uint32) uint8
	Read16(addr uint32) uint16
	Read32(addr uint32) uint32
	Write8(addr uint32, val uint8)
	Write16(addr uint32, val uint16)
	Write32(addr uint32, val uint32)
	Write64(addr uint32, val uint64)
}

// Display receives the rectangles touched by graphics operations.
type Display interface {
	MarkDirty(x, y, width, height int)
}

// IRQLine is the card's single interrupt output.
type IRQLine interface {
	Set(level bool)
}

// Clock provides monotonic nanoseconds for PTIMER and notifiers.
type Clock interface {
	Now() int64
}

// Config selects the card model and connects the external collaborators.
// Nil collaborators are replaced with inert defaults.
type Config struct {
	Model   Model
	Sys     SystemBus
	Display Display
	IRQ     IRQLine
	Clock   Clock
}

// GPU is the command-submission and execution engine of one card.
// All methods must be called from a single goroutine; the run loop
// serializes register access and timer ticks.
type GPU struct {
	model     Model
	cardType  uint32
	classMask uint32
	mem       *vram.Memory
	sys       SystemBus
	disp      Display
	irq       IRQLine
	clock     Clock
	layout    layout

	// Interrupt state.
	mcIntrEn, mcEnable   uint32
	busIntr, busIntrEn   uint32
	fifoIntr, fifoIntrEn uint32
	graphIntr            uint32
	graphIntrEn          uint32
	graphNSource         uint32
	graphNotify          uint32
	graphCtxSwitch1      uint32
	graphCtxSwitch2      uint32
	graphCtxSwitch4      uint32
	graphStatus          uint32
	graphTrappedAddr     uint32
	graphTrappedData     uint32
	crtcIntr, crtcIntrEn uint32

	// FIFO state.
	fifoRAMHT, fifoRAMFC uint32
	fifoRAMRO, fifoMode  uint32
	cache1Push1          uint32
	cache1Put            uint32
	cache1Get            uint32
	cache1DMAPush        uint32
	cache1DMAInstance    uint32
	cache1DMAPut         uint32
	cache1DMAGet         uint32
	cache1RefCnt         uint32
	cache1Pull0          uint32
	cache1Semaphore      uint32
	grctxInstance        uint32
	cache1Method         [cache1Size]uint32
	cache1Data           [cache1Size]uint32

	// Timer state.
	timerIntr, timerIntrEn uint32
	timerNum, timerDen     uint32
	timerInit1             uint64
	timerInit2             int64
	timerAlarm             uint32

	// RAMDAC and CRTC property registers.
	ramdacCuStartPos uint32
	ramdacVPLL       uint32
	ramdacVPLLB      uint32
	ramdacPLLSelect  uint32
	ramdacGeneral    uint32
	crtcStart        uint32
	crtcConfig       uint32

	// Straps.
	straps0     uint32
	straps0Orig uint32

	// Display mode.
	xres, yres  uint32
	bpp, pitch  uint32
	dispEnabled bool

	// Hardware cursor.
	cursorX, cursorY int16
	cursorSize       uint8
	cursorEnabled    bool

	channels      [ChannelCount]Channel
	acquireActive bool
}

// Create a card of the given model.
func New(cfg Config) *GPU {
	g := &GPU{
		model: cfg.Model,
		sys:   cfg.Sys,
		disp:  cfg.Display,
		irq:   cfg.IRQ,
		clock: cfg.Clock,
	}
	if g.sys == nil {
		g.sys = noSystemBus{}
	}
	if g.disp == nil {
		g.disp = noDisplay{}
	}
	if g.irq == nil {
		g.irq = noIRQLine{}
	}
	if g.clock == nil {
		g.clock = hostClock{}
	}

	var memsize uint32
	switch cfg.Model {
	case GeForce3:
		g.cardType = 0x20
		memsize = 64 << 20
	case GeForceFX5900:
		g.cardType = 0x35
		memsize = 128 << 20
	default:
		g.cardType = 0x40
		memsize = 256 << 20
	}
	if g.cardType < 0x40 {
		g.layout = nv20Layout{}
		g.classMask = 0x00000FFF
		g.straps0Orig = 0x7FF86C6B | 0x00000180
	} else {
		g.layout = nv40Layout{}
		g.classMask = 0x0000FFFF
		g.straps0Orig = 0x7FF86C4B | 0x00000180
	}

	g.mem = vram.New(memsize)
	g.mem.SetFlip(memsize - 64)
	g.Reset()
	return g
}

// Reset returns the card to power-on state. All channel and interrupt
// state is cleared; device memory contents are left alone.
func (g *GPU) Reset() {
	for i := range g.channels {
		g.channels[i] = Channel{}
	}
	g.mcIntrEn = 0
	g.busIntr, g.busIntrEn = 0, 0
	g.fifoIntr, g.fifoIntrEn = 0, 0
	g.graphIntr, g.graphIntrEn = 0, 0
	g.crtcIntr, g.crtcIntrEn = 0, 0
	g.cache1Put, g.cache1Get = 0, 0
	g.cache1DMAPut, g.cache1DMAGet = 0, 0
	g.acquireActive = false
	g.straps0 = g.straps0Orig
	g.dispEnabled = false

	g.cursorX, g.cursorY = 0, 0
	g.cursorSize = 32
	g.cursorEnabled = false

	g.xres = 1024
	g.yres = 768
	g.bpp = 32
	g.pitch = g.xres * (g.bpp >> 3)
}

// AttachDisplay connects the dirty-rectangle sink after construction,
// for displays that need the card to exist first.
func (g *GPU) AttachDisplay(d Display) {
	if d == nil {
		d = noDisplay{}
	}
	g.disp = d
}

// Memory exposes device memory for the scanout path and apertures.
func (g *GPU) Memory() *vram.Memory {
	return g.mem
}

// Model returns the configured card model.
func (g *GPU) Model() Model {
	return g.model
}

// DisplayMode reports the current scanout geometry.
func (g *GPU) DisplayMode() (width, height, bpp, pitch uint32) {
	return g.xres, g.yres, g.bpp, g.pitch
}

// ScanoutBase is the byte offset of the visible frame in device memory.
func (g *GPU) ScanoutBase() uint32 {
	return g.crtcStart
}

// Cursor reports the hardware cursor position and size.
func (g *GPU) Cursor() (x, y int, size int, enabled bool) {
	return int(g.cursorX), int(g.cursorY), int(g.cursorSize), g.cursorEnabled
}

func (m Model) String() string {
	switch m {
	case GeForce3:
		return "GeForce3 Ti 500"
	case GeForceFX5900:
		return "GeForce FX 5900"
	case GeForce6800:
		return "GeForce 6800 GT"
	}
	return "unknown"
}

// Inert defaults for unconnected collaborators. DMA to system memory
// falls back to the same silent policy device memory has.

type noSystemBus struct{}

func (noSystemBus) Read8(uint32) uint8     { return 0 }
func (noSystemBus) Read16(uint32) uint16   { return 0 }
func (noSystemBus) Read32(uint32) uint32   { return 0 }
func (noSystemBus) Write8(uint32, uint8)   {}
func (noSystemBus) Write16(uint32, uint16) {}
func (noSystemBus) Write32(uint32, uint32) {}
func (noSystemBus) Write64(uint32, uint64) {}

type noDisplay struct{}

func (noDisplay) MarkDirty(x, y, width, height int) {}

type noIRQLine struct{}

func (noIRQLine) Set(bool) {}

type hostClock struct{}

var clockBase = time.Now()

func (hostClock) Now() int64 {
	return time.Since(clockBase).Nanoseconds()
}
