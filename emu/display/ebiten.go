/*
 * geforce - Ebitengine window backend.
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
	"errors"
	"image"
	"sync"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
)

// EbitenOutput shows frames in a window. The run loop pushes frames
// with UpdateFrame; the window goroutine uploads them on its own tick.
type EbitenOutput struct {
	mu      sync.Mutex
	title   string
	pending *image.RGBA
	width   int
	height  int
	img     *ebiten.Image
	frames  uint64
	stop    atomic.Bool
}

func NewEbiten(title string) *EbitenOutput {
	return &EbitenOutput{title: title, width: 1024, height: 768}
}

// Run opens the window. Must be called from the main goroutine.
func (e *EbitenOutput) Run() error {
	e.mu.Lock()
	w, h := e.width, e.height
	e.mu.Unlock()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(e.title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetRunnableOnUnfocused(true)
	err := ebiten.RunGame(e)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

func (e *EbitenOutput) Stop() {
	e.stop.Store(true)
}

func (e *EbitenOutput) UpdateFrame(frame *image.RGBA, width, height int) {
	e.mu.Lock()
	e.pending = frame
	e.width, e.height = width, height
	e.mu.Unlock()
	atomic.AddUint64(&e.frames, 1)
}

func (e *EbitenOutput) FrameCount() uint64 {
	return atomic.LoadUint64(&e.frames)
}

func (e *EbitenOutput) Update() error {
	if e.stop.Load() || ebiten.IsWindowBeingClosed() {
		return ebiten.Termination
	}
	e.mu.Lock()
	frame := e.pending
	w, h := e.width, e.height
	e.pending = nil
	e.mu.Unlock()
	if frame == nil {
		return nil
	}
	if e.img == nil || e.img.Bounds().Dx() != w || e.img.Bounds().Dy() != h {
		e.img = ebiten.NewImage(w, h)
	}
	e.img.WritePixels(frame.Pix)
	return nil
}

func (e *EbitenOutput) Draw(screen *ebiten.Image) {
	if e.img != nil {
		screen.DrawImage(e.img, nil)
	}
}

func (e *EbitenOutput) Layout(outsideWidth, outsideHeight int) (int, int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.width, e.height
}
