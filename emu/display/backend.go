/*
 * geforce - Video output backends.
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
	"image"
	"sync"
	"sync/atomic"
)

// VideoOutput is the sink completed frames go to. Run blocks the
// calling goroutine until Stop is called or the window is closed;
// UpdateFrame may be called from any goroutine.
type VideoOutput interface {
	Run() error
	Stop()
	UpdateFrame(frame *image.RGBA, width, height int)
	FrameCount() uint64
}

// HeadlessOutput counts frames and discards them. Used for tests and
// when running without a window.
type HeadlessOutput struct {
	mu     sync.Mutex
	done   chan struct{}
	once   sync.Once
	frames uint64
	last   *image.RGBA
	width  int
	height int
}

func NewHeadless() *HeadlessOutput {
	return &HeadlessOutput{done: make(chan struct{})}
}

func (h *HeadlessOutput) Run() error {
	<-h.done
	return nil
}

func (h *HeadlessOutput) Stop() {
	h.once.Do(func() { close(h.done) })
}

func (h *HeadlessOutput) UpdateFrame(frame *image.RGBA, width, height int) {
	h.mu.Lock()
	h.last = frame
	h.width, h.height = width, height
	h.mu.Unlock()
	atomic.AddUint64(&h.frames, 1)
}

func (h *HeadlessOutput) FrameCount() uint64 {
	return atomic.LoadUint64(&h.frames)
}

// LastFrame returns the most recent frame and its size.
func (h *HeadlessOutput) LastFrame() (*image.RGBA, int, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.last, h.width, h.height
}
