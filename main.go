/*
 * geforce - Main process.
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

package main

import (
	"log/slog"
	"os"
	"strings"

	getopt "github.com/pborman/getopt/v2"

	reader "github.com/gpuemu/geforce/command/reader"
	core "github.com/gpuemu/geforce/emu/core"
	display "github.com/gpuemu/geforce/emu/display"
	gpu "github.com/gpuemu/geforce/emu/gpu"
	master "github.com/gpuemu/geforce/emu/master"
	timer "github.com/gpuemu/geforce/emu/timer"
	logger "github.com/gpuemu/geforce/util/logger"
)

func main() {
	optModel := getopt.StringLong("model", 'm', "geforce3", "Card model: geforce3, fx5900, 6800")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optDebug := getopt.BoolLong("debug", 'd', "Log debug to console")
	optHeadless := getopt.BoolLong("headless", 'n', "Run without a window")
	optSnapshot := getopt.StringLong("snapshot", 's', "", "Restore snapshot at startup")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	var file *os.File
	if *optLogFile != "" {
		file, _ = os.Create(*optLogFile)
	}
	programLevel := new(slog.LevelVar)
	programLevel.Set(slog.LevelDebug)
	logr := slog.New(logger.NewHandler(file, &slog.HandlerOptions{Level: programLevel, AddSource: false}, optDebug))
	slog.SetDefault(logr)

	var model gpu.Model
	switch strings.ToLower(*optModel) {
	case "geforce3", "nv20":
		model = gpu.GeForce3
	case "fx5900", "nv35":
		model = gpu.GeForceFX5900
	case "6800", "nv40":
		model = gpu.GeForce6800
	default:
		logr.Error("Unknown card model " + *optModel)
		os.Exit(1)
	}

	var out display.VideoOutput
	if *optHeadless {
		out = display.NewHeadless()
	} else {
		out = display.NewEbiten("geforce " + model.String())
	}

	card := gpu.New(gpu.Config{Model: model})
	screen := display.NewScreen(card, out)
	card.AttachDisplay(screen)

	logr.Info("geforce started", "model", model.String())

	masterChannel := make(chan master.Packet)
	device := core.NewCore(masterChannel, card, screen)

	go device.Start()

	if *optSnapshot != "" {
		// Restore before retrace ticks begin.
		if err := device.LoadState(*optSnapshot); err != nil {
			logr.Error(err.Error())
			os.Exit(1)
		}
	}

	retrace := timer.NewTimer(masterChannel)
	retrace.Start()
	device.SendStart()

	msg := make(chan string, 1)
	go func() {
		reader.ConsoleReader(device)
		msg <- ""
	}()

	if *optHeadless {
		<-msg
	} else {
		// The window must own the main goroutine.
		go func() {
			<-msg
			out.Stop()
		}()
		if err := out.Run(); err != nil {
			logr.Error(err.Error())
		}
	}

	retrace.Shutdown()
	device.Stop()
	logr.Info("geforce stopped.")
}
