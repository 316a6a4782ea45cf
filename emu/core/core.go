/*
 * geforce - Device run loop.
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

package core

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/gpuemu/geforce/emu/display"
	"github.com/gpuemu/geforce/emu/gpu"
	"github.com/gpuemu/geforce/emu/master"
)

// Core owns the GPU and serializes all access to it. Registers, memory
// peeks, snapshots and retrace ticks all arrive as packets on the
// master channel and are handled one at a time.
type Core struct {
	wg      sync.WaitGroup
	done    chan struct{}
	running bool // Retrace ticks are honored only while running.
	Master  chan master.Packet

	gpu    *gpu.GPU
	screen *display.Screen
}

// Create the run loop around a GPU and its screen.
func NewCore(masterChannel chan master.Packet, g *gpu.GPU, screen *display.Screen) *Core {
	return &Core{
		Master: masterChannel,
		done:   make(chan struct{}),
		gpu:    g,
		screen: screen,
	}
}

// Start processing packets. Runs until Stop.
func (core *Core) Start() {
	core.wg.Add(1)
	defer core.wg.Done()
	for {
		select {
		case <-core.done:
			return
		case packet := <-core.Master:
			core.processPacket(packet)
		}
	}
}

// Stop a running device.
func (core *Core) Stop() {
	slog.Info("Shutting down device")
	close(core.done)
	done := make(chan struct{})
	go func() {
		core.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return
	case <-time.After(time.Second):
		slog.Warn("Timed out waiting for device to finish.")
		return
	}
}

// Resume retrace processing.
func (core *Core) SendStart() {
	core.Master <- master.Packet{Msg: master.Start}
}

// Suspend retrace processing.
func (core *Core) SendStop() {
	core.Master <- master.Packet{Msg: master.Stop}
}

// ReadReg reads a device register from another goroutine.
func (core *Core) ReadReg(addr uint32, size uint32) (uint64, error) {
	return core.roundTrip(master.Packet{Msg: master.RegRead, Addr: addr, Size: size})
}

// WriteReg writes a device register from another goroutine.
func (core *Core) WriteReg(addr uint32, value uint64, size uint32) error {
	_, err := core.roundTrip(master.Packet{Msg: master.RegWrite, Addr: addr, Value: value, Size: size})
	return err
}

// ReadMem reads one byte of device memory.
func (core *Core) ReadMem(addr uint32) (uint8, error) {
	v, err := core.roundTrip(master.Packet{Msg: master.MemRead, Addr: addr})
	return uint8(v), err
}

// WriteMem writes one byte of device memory.
func (core *Core) WriteMem(addr uint32, value uint8) error {
	_, err := core.roundTrip(master.Packet{Msg: master.MemWrite, Addr: addr, Value: uint64(value)})
	return err
}

// SaveState writes a device snapshot to the given file.
func (core *Core) SaveState(path string) error {
	_, err := core.roundTrip(master.Packet{Msg: master.SaveState, Path: path})
	return err
}

// LoadState restores a device snapshot from the given file.
func (core *Core) LoadState(path string) error {
	_, err := core.roundTrip(master.Packet{Msg: master.LoadState, Path: path})
	return err
}

// Reset puts the device back in power-on state.
func (core *Core) Reset() error {
	_, err := core.roundTrip(master.Packet{Msg: master.Reset})
	return err
}

// Screen gives the console access to overlay toggles.
func (core *Core) Screen() *display.Screen {
	return core.screen
}

func (core *Core) roundTrip(packet master.Packet) (uint64, error) {
	packet.Reply = make(chan master.Reply, 1)
	select {
	case core.Master <- packet:
	case <-core.done:
		return 0, fmt.Errorf("device is shut down")
	}
	reply := <-packet.Reply
	return reply.Value, reply.Err
}

// Process a packet sent to the device.
func (core *Core) processPacket(packet master.Packet) {
	var reply master.Reply

	switch packet.Msg {
	case master.VBlank:
		if core.running {
			core.gpu.VBlank()
			if core.screen != nil {
				core.screen.Refresh()
			}
		}
		return
	case master.RegRead:
		reply.Value = core.gpu.MMIORead(packet.Addr, packet.Size)
	case master.RegWrite:
		core.gpu.MMIOWrite(packet.Addr, packet.Value, packet.Size)
	case master.MemRead:
		reply.Value = uint64(core.gpu.Memory().Read8(packet.Addr))
	case master.MemWrite:
		core.gpu.Memory().Write8(packet.Addr, uint8(packet.Value))
	case master.SaveState:
		reply.Err = core.saveState(packet.Path)
	case master.LoadState:
		reply.Err = core.loadState(packet.Path)
	case master.Reset:
		core.gpu.Reset()
	case master.Start:
		core.running = true
		return
	case master.Stop:
		core.running = false
		return
	}

	if packet.Reply != nil {
		packet.Reply <- reply
	}
}

func (core *Core) saveState(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := core.gpu.SaveState(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func (core *Core) loadState(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return core.gpu.LoadState(file)
}
