/*
 * geforce - Scanout conversion and dirty tracking.
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

package display

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/gpuemu/geforce/emu/gpu"
)

// Screen converts device memory scanout into RGBA frames. It keeps a
// bounding box of touched pixels between retraces so an idle screen
// costs nothing. MarkDirty and Refresh are called from the device run
// loop goroutine; overlay toggles may come from anywhere.
type Screen struct {
	g   *gpu.GPU
	out VideoOutput

	frame *image.RGBA
	dirty image.Rectangle
	any   bool

	mu      sync.Mutex
	overlay bool
}

func NewScreen(g *gpu.GPU, out VideoOutput) *Screen {
	width, height, _, _ := g.DisplayMode()
	s := &Screen{
		g:     g,
		out:   out,
		frame: image.NewRGBA(image.Rect(0, 0, int(width), int(height))),
	}
	// First refresh paints everything.
	s.MarkDirty(0, 0, int(width), int(height))
	return s
}

// MarkDirty widens the pending repaint box.
func (s *Screen) MarkDirty(x, y, width, height int) {
	r := image.Rect(x, y, x+width, y+height)
	if s.any {
		s.dirty = s.dirty.Union(r)
	} else {
		s.dirty = r
		s.any = true
	}
}

// SetOverlay turns the status line on or off.
func (s *Screen) SetOverlay(on bool) {
	s.mu.Lock()
	s.overlay = on
	s.mu.Unlock()
	s.MarkDirty(0, 0, s.frame.Bounds().Dx(), s.frame.Bounds().Dy())
}

// Refresh repaints the dirty area from device memory and hands the
// frame to the backend. Called once per retrace.
func (s *Screen) Refresh() {
	if !s.any {
		return
	}
	width, height, _, _ := s.g.DisplayMode()
	if s.frame.Bounds().Dx() != int(width) || s.frame.Bounds().Dy() != int(height) {
		s.frame = image.NewRGBA(image.Rect(0, 0, int(width), int(height)))
		s.dirty = s.frame.Bounds()
	}

	area := s.dirty.Intersect(s.frame.Bounds())
	if !area.Empty() {
		s.convert(area)
	}
	s.any = false

	s.mu.Lock()
	overlay := s.overlay
	s.mu.Unlock()
	if overlay {
		s.drawOverlay()
	}

	// Hand the backend its own copy so the next repaint cannot race
	// the window goroutine.
	out := image.NewRGBA(s.frame.Bounds())
	copy(out.Pix, s.frame.Pix)
	s.out.UpdateFrame(out, int(width), int(height))
}

// convert reads the given rectangle out of device memory into the
// frame, expanding the scanout pixel format to RGBA.
func (s *Screen) convert(area image.Rectangle) {
	_, _, bpp, pitch := s.g.DisplayMode()
	mem := s.g.Memory().Bytes()
	base := s.g.ScanoutBase()

	for y := area.Min.Y; y < area.Max.Y; y++ {
		row := base + uint32(y)*pitch
		for x := area.Min.X; x < area.Max.X; x++ {
			var r, gg, b uint8
			switch bpp {
			case 32:
				o := row + uint32(x)*4
				if o+3 < uint32(len(mem)) {
					b, gg, r = mem[o], mem[o+1], mem[o+2]
				}
			case 16:
				o := row + uint32(x)*2
				if o+1 < uint32(len(mem)) {
					v := uint16(mem[o]) | uint16(mem[o+1])<<8
					r = uint8(v>>11) << 3
					gg = uint8(v>>5&0x3F) << 2
					b = uint8(v&0x1F) << 3
				}
			default:
				o := row + uint32(x)
				if o < uint32(len(mem)) {
					r, gg, b = mem[o], mem[o], mem[o]
				}
			}
			s.frame.SetRGBA(x, y, color.RGBA{R: r, G: gg, B: b, A: 0xFF})
		}
	}
}

// drawOverlay paints the status line in the top left corner.
func (s *Screen) drawOverlay() {
	width, height, bpp, _ := s.g.DisplayMode()
	text := fmt.Sprintf("%s  %dx%dx%d  frame %d",
		s.g.Model(), width, height, bpp, s.out.FrameCount())

	d := font.Drawer{
		Dst:  s.frame,
		Src:  image.White,
		Face: basicfont.Face7x13,
		Dot:  fixed.P(4, 14),
	}
	// Shadow first so the text reads on light backgrounds.
	shadow := d
	shadow.Src = image.Black
	shadow.Dot = fixed.P(5, 15)
	shadow.DrawString(text)
	d.DrawString(text)
}
