/*
 * geforce - Monitor command executer.
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

package parser

import (
	"errors"
	"fmt"

	core "github.com/gpuemu/geforce/emu/core"
)

var cmdList = []cmd{
	{Name: "examine", Min: 2, Process: examine},
	{Name: "deposit", Min: 2, Process: deposit},
	{Name: "dump", Min: 2, Process: dump},
	{Name: "save", Min: 3, Process: save},
	{Name: "restore", Min: 3, Process: restore},
	{Name: "reset", Min: 5, Process: reset},
	{Name: "start", Min: 3, Process: start},
	{Name: "stop", Min: 3, Process: stop},
	{Name: "continue", Min: 1, Process: cont},
	{Name: "overlay", Min: 2, Process: overlay},
	{Name: "quit", Min: 4, Process: quit},
	{Name: "help", Min: 1, Process: help},
}

// Pick register or memory space. Register is the default.
func getSpace(line *cmdLine) bool {
	switch word := line.getWord(true); word {
	case "reg", "":
		return true
	case "mem":
		return false
	default:
		// Not a space word, back up and treat as address.
		line.pos -= len(word)
		return true
	}
}

// examine [reg|mem] addr - display a register or memory byte.
func examine(line *cmdLine, core *core.Core) (bool, error) {
	isReg := getSpace(line)
	addr, err := line.getNumber()
	if err != nil {
		return false, err
	}
	if isReg {
		value, err := core.ReadReg(uint32(addr), 4)
		if err != nil {
			return false, err
		}
		fmt.Printf("%06x: %08x\n", addr, uint32(value))
	} else {
		value, err := core.ReadMem(uint32(addr))
		if err != nil {
			return false, err
		}
		fmt.Printf("%08x: %02x\n", addr, value)
	}
	return false, nil
}

// deposit [reg|mem] addr value - set a register or memory byte.
func deposit(line *cmdLine, core *core.Core) (bool, error) {
	isReg := getSpace(line)
	addr, err := line.getNumber()
	if err != nil {
		return false, err
	}
	value, err := line.getNumber()
	if err != nil {
		return false, err
	}
	if isReg {
		return false, core.WriteReg(uint32(addr), value, 4)
	}
	return false, core.WriteMem(uint32(addr), uint8(value))
}

// dump addr [length] - hex dump of device memory.
func dump(line *cmdLine, core *core.Core) (bool, error) {
	addr, err := line.getNumber()
	if err != nil {
		return false, err
	}
	length, err := line.getNumber()
	if err != nil {
		length = 0x100
	}

	for row := uint64(0); row < length; row += 16 {
		fmt.Printf("%08x:", addr+row)
		ascii := make([]byte, 0, 16)
		for i := uint64(0); i < 16 && row+i < length; i++ {
			value, err := core.ReadMem(uint32(addr + row + i))
			if err != nil {
				return false, err
			}
			fmt.Printf(" %02x", value)
			if value < 0x20 || value > 0x7E {
				value = '.'
			}
			ascii = append(ascii, value)
		}
		fmt.Printf("  %s\n", ascii)
	}
	return false, nil
}

// save path - write a snapshot of the device.
func save(line *cmdLine, core *core.Core) (bool, error) {
	path := line.getWord(false)
	if path == "" {
		return false, errors.New("missing snapshot file name")
	}
	err := core.SaveState(path)
	if err == nil {
		fmt.Println("State saved to " + path)
	}
	return false, err
}

// restore path - load a snapshot of the device.
func restore(line *cmdLine, core *core.Core) (bool, error) {
	path := line.getWord(false)
	if path == "" {
		return false, errors.New("missing snapshot file name")
	}
	err := core.LoadState(path)
	if err == nil {
		fmt.Println("State restored from " + path)
	}
	return false, err
}

// reset - return device to power-on state.
func reset(line *cmdLine, core *core.Core) (bool, error) {
	return false, core.Reset()
}

// start - resume retrace processing.
func start(line *cmdLine, core *core.Core) (bool, error) {
	core.SendStart()
	return false, nil
}

// stop - suspend retrace processing.
func stop(line *cmdLine, core *core.Core) (bool, error) {
	core.SendStop()
	return false, nil
}

// continue - same as start.
func cont(line *cmdLine, core *core.Core) (bool, error) {
	core.SendStart()
	return false, nil
}

// overlay on|off - toggle the status line.
func overlay(line *cmdLine, core *core.Core) (bool, error) {
	switch line.getWord(true) {
	case "on":
		core.Screen().SetOverlay(true)
	case "off":
		core.Screen().SetOverlay(false)
	default:
		return false, errors.New("overlay on or off")
	}
	return false, nil
}

// quit - shut the emulator down.
func quit(line *cmdLine, core *core.Core) (bool, error) {
	return true, nil
}

// help - list commands.
func help(line *cmdLine, core *core.Core) (bool, error) {
	fmt.Println("examine [reg|mem] addr      display register or memory")
	fmt.Println("deposit [reg|mem] addr val  set register or memory")
	fmt.Println("dump addr [len]             hex dump device memory")
	fmt.Println("save file                   write snapshot")
	fmt.Println("restore file                read snapshot")
	fmt.Println("reset                       power-on reset")
	fmt.Println("start | stop | continue     control retrace processing")
	fmt.Println("overlay on|off              status line")
	fmt.Println("quit                        exit")
	return false, nil
}
