/*
 * geforce - Messages passed to the device run loop.
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

package master

// Message codes carried on the master channel. The run loop owns all
// device state; everything else talks to it through these.
const (
	VBlank int = 1 + iota // Retrace tick from the timer
	RegRead               // Read a device register
	RegWrite              // Write a device register
	MemRead               // Read device memory
	MemWrite              // Write device memory
	SaveState             // Write a snapshot to Path
	LoadState             // Restore a snapshot from Path
	Reset                 // Return the device to power-on state
	Start                 // Resume retrace processing
	Stop                  // Suspend retrace processing
)

// Packet is one request to the run loop. Requests that produce a
// result carry a reply channel.
type Packet struct {
	Msg   int
	Addr  uint32
	Value uint64
	Size  uint32
	Path  string
	Reply chan Reply
}

// Reply carries the outcome of a request back to the sender.
type Reply struct {
	Value uint64
	Err   error
}
