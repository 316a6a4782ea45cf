package vram

/*
 * geforce - GPU device memory.
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
	"encoding/binary"
)

// Memory is the card's local memory. Accesses outside the configured size
// read as zero and drop writes, matching real hardware decode behavior.
type Memory struct {
	data []byte
	flip uint32 // XOR applied to instance memory addresses
}

// Create device memory of the given size in bytes.
func New(size uint32) *Memory {
	return &Memory{data: make([]byte, size)}
}

// Return size of memory in bytes.
func (m *Memory) Size() uint32 {
	return uint32(len(m.data))
}

// Set address flip for the instance memory window.
func (m *Memory) SetFlip(flip uint32) {
	m.flip = flip
}

// Direct access to the backing store, for display scanout.
func (m *Memory) Bytes() []byte {
	return m.data
}

func (m *Memory) Read8(addr uint32) uint8 {
	if addr < uint32(len(m.data)) {
		return m.data[addr]
	}
	return 0
}

func (m *Memory) Read16(addr uint32) uint16 {
	if addr < m.Size() && m.Size()-addr >= 2 {
		return binary.LittleEndian.Uint16(m.data[addr:])
	}
	return 0
}

func (m *Memory) Read32(addr uint32) uint32 {
	if addr < m.Size() && m.Size()-addr >= 4 {
		return binary.LittleEndian.Uint32(m.data[addr:])
	}
	return 0
}

func (m *Memory) Write8(addr uint32, val uint8) {
	if addr < uint32(len(m.data)) {
		m.data[addr] = val
	}
}

func (m *Memory) Write16(addr uint32, val uint16) {
	if addr < m.Size() && m.Size()-addr >= 2 {
		binary.LittleEndian.PutUint16(m.data[addr:], val)
	}
}

func (m *Memory) Write32(addr uint32, val uint32) {
	if addr < m.Size() && m.Size()-addr >= 4 {
		binary.LittleEndian.PutUint32(m.data[addr:], val)
	}
}

func (m *Memory) Write64(addr uint32, val uint64) {
	if addr < m.Size() && m.Size()-addr >= 8 {
		binary.LittleEndian.PutUint64(m.data[addr:], val)
	}
}

// Instance memory holds the hash table, context save area and object
// descriptors. It is a flipped view of the top of device memory.

func (m *Memory) InstRead8(addr uint32) uint8 {
	return m.Read8(addr ^ m.flip)
}

func (m *Memory) InstRead32(addr uint32) uint32 {
	return m.Read32(addr ^ m.flip)
}

func (m *Memory) InstWrite8(addr uint32, val uint8) {
	m.Write8(addr^m.flip, val)
}

func (m *Memory) InstWrite32(addr uint32, val uint32) {
	m.Write32(addr^m.flip, val)
}
