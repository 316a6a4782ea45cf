package gpu

/*
 * geforce - Generation-dependent instance memory encodings.
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

// The hash table context word, the notifier link in an object's second
// word and the context save area changed layout at the NV40 generation.
// One of the two encodings is picked at construction, never per access.
type layout interface {
	// Hash table context word fields.
	ContextChannel(ctx uint32) uint32
	ContextObject(ctx uint32) uint32
	ContextEngine(ctx uint32) uint8

	// Notifier address embedded in an object's second word.
	ObjectNotifier(word1 uint32) uint32
	LinkNotifier(word1, notifier uint32) uint32

	// Context save area geometry.
	SaveAreaBase(reg uint32) uint32
	SaveAreaStride() uint32
	SemaphoreSlot() uint32
}

// Pre-NV40 cards: 5-bit channel at 24, 16-bit object, 8-bit engine,
// notifier in the top half of word 1, 0x40-byte save slots.
type nv20Layout struct{}

func (nv20Layout) ContextChannel(ctx uint32) uint32 {
	return (ctx >> 24) & 0x1F
}

func (nv20Layout) ContextObject(ctx uint32) uint32 {
	return (ctx & 0xFFFF) << 4
}

func (nv20Layout) ContextEngine(ctx uint32) uint8 {
	return uint8((ctx >> 16) & 0xFF)
}

func (nv20Layout) ObjectNotifier(word1 uint32) uint32 {
	return word1 >> 16 << 4
}

func (nv20Layout) LinkNotifier(word1, notifier uint32) uint32 {
	return (word1 & 0x0000FFFF) | (notifier >> 4 << 16)
}

func (nv20Layout) SaveAreaBase(reg uint32) uint32 {
	return (reg & 0xFFF) << 8
}

func (nv20Layout) SaveAreaStride() uint32 {
	return 0x40
}

func (nv20Layout) SemaphoreSlot() uint32 {
	return 0x2C
}

// NV40 and later: 5-bit channel at 23, 20-bit object, 3-bit engine,
// notifier in the low 20 bits of word 1, 0x80-byte save slots.
type nv40Layout struct{}

func (nv40Layout) ContextChannel(ctx uint32) uint32 {
	return (ctx >> 23) & 0x1F
}

func (nv40Layout) ContextObject(ctx uint32) uint32 {
	return (ctx & 0xFFFFF) << 4
}

func (nv40Layout) ContextEngine(ctx uint32) uint8 {
	return uint8((ctx >> 20) & 0x7)
}

func (nv40Layout) ObjectNotifier(word1 uint32) uint32 {
	return (word1 & 0xFFFFF) << 4
}

func (nv40Layout) LinkNotifier(word1, notifier uint32) uint32 {
	return (word1 & 0xFFF00000) | (notifier >> 4)
}

func (nv40Layout) SaveAreaBase(reg uint32) uint32 {
	return (reg & 0xFFF) << 16
}

func (nv40Layout) SaveAreaStride() uint32 {
	return 0x80
}

func (nv40Layout) SemaphoreSlot() uint32 {
	return 0x30
}
