package gpu

/*
 * geforce - Per-channel graphics state.
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

// Subchannel binds a resolved object to one of the eight per-channel slots.
type Subchannel struct {
	object   uint32 // Object address in instance memory
	engine   uint8  // Engine servicing the object
	notifier uint32 // Notifier object address
}

// methodState tracks the parser between a method header and its parameters.
type methodState struct {
	mthd uint32 // Current method number
	subc uint32 // Subchannel of the run
	mcnt uint32 // Parameters still expected
	ni   bool   // Do not advance method between parameters
}

// Image-upload sub-states. Reconfiguring the transfer size always moves
// the machine out of streaming and releases the buffer.
type uploadState int

const (
	uploadConfig uploadState = iota // Accepting configuration methods
	uploadStream                    // Buffering words until the image fills
	uploadFast                      // Words go straight to the surface
)

// ifcState is the CPU image-upload sub-protocol.
type ifcState struct {
	colorKeyEnable bool
	operation      uint32
	colorFmt       uint32
	colorBytes     uint32
	yx, dhw, shw   uint32

	state   uploadState
	words   []uint32 // Streaming buffer, nil unless streaming
	ptr     uint32   // Next free slot in words
	left    uint32   // Words still expected
	fastOfs uint32   // Precomputed surface offset for the fast path
}

// release drops any partial streaming buffer.
func (u *ifcState) release() {
	u.state = uploadConfig
	u.words = nil
	u.ptr = 0
	u.left = 0
}

// Channel is one of the 32 independent command-submission contexts.
type Channel struct {
	subrReturn uint32 // Saved cursor for the one-level call stack
	subrActive bool

	dma  methodState
	schs [SubchannelCount]Subchannel

	notifyPending bool
	notifyType    uint32

	// 2D surface pair.
	s2dImgSrc, s2dImgDst uint32
	s2dColorFmt          uint32
	s2dColorBytes        uint32
	s2dPitch             uint32
	s2dOfsSrc, s2dOfsDst uint32

	ifc ifcState

	// Screen blit.
	blitColorKeyEnable bool
	blitOperation      uint32
	blitSYX, blitDYX   uint32
	blitHW             uint32

	// Memory to memory format.
	m2mfSrc, m2mfDst           uint32
	m2mfSrcOfs, m2mfDstOfs     uint32
	m2mfSrcPitch, m2mfDstPitch uint32
	m2mfLineLength             uint32
	m2mfLineCount              uint32
	m2mfFormat                 uint32
	m2mfBufNotify              uint32

	// 3D surface state, enough for a clear.
	d3dAObj, d3dBObj         uint32
	d3dColorObj, d3dZetaObj  uint32
	d3dClipH, d3dClipV       uint32
	d3dSurfaceFmt            uint32
	d3dColorBytes            uint32
	d3dDepthBytes            uint32
	d3dPitchA                uint32
	d3dColorOfs, d3dZetaOfs  uint32
	d3dZStencilClear         uint32
	d3dColorClear            uint32
	d3dClearSurface          uint32
	d3dVertexIdx             uint32
	d3dAttribIdx, d3dCompIdx uint32
	d3dVertexData            [4][16][4]float32

	// Raster op and pattern.
	rop           uint8
	pattShape     uint32
	pattType      uint32
	pattBgColor   uint32
	pattFgColor   uint32
	pattDataMono  [64]bool
	pattDataColor [64]uint32

	// Clip rectangle object.
	clipYX, clipHW uint32

	// GDI rectangles.
	gdiOperation            uint32
	gdiColorFmt, gdiMonoFmt uint32
	gdiClipYX0, gdiClipYX1  uint32
	gdiRectColor            uint32
	gdiRectXY, gdiRectWH    uint32
	gdiRectYX0, gdiRectYX1  uint32
}
