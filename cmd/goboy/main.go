// Command goboy runs a cartridge headlessly for a number of frames,
// optionally saving a screenshot and the emulator state afterwards.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/thelolagemann/dmgcore/internal/cartridge"
	"github.com/thelolagemann/dmgcore/internal/cpu"
	"github.com/thelolagemann/dmgcore/internal/gameboy"
	"github.com/thelolagemann/dmgcore/internal/ppu/palette"
	"github.com/thelolagemann/dmgcore/internal/serial"
	"github.com/thelolagemann/dmgcore/pkg/log"
	"github.com/thelolagemann/dmgcore/pkg/utils"
)

func main() {
	romFile := flag.String("rom", "", "The rom file to load (.gb, optionally .gz, .zip, .7z, .xz, .zst or .lz4)")
	frames := flag.Int("frames", 60, "The number of frames to run")
	mode := flag.String("mode", "strict", "How invalid opcodes are handled. Can be strict, diagnostic or silent")
	trace := flag.Bool("trace", false, "Log every executed instruction")
	screenshot := flag.String("screenshot", "", "Save the last frame as a PNG to this file")
	scale := flag.Int("scale", 1, "The scale of the screenshot")
	paletteName := flag.String("palette", "greyscale", "The palette of the screenshot. Can be greyscale, green, red or yellow")
	stateIn := flag.String("state-in", "", "The state file to restore before running")
	stateOut := flag.String("state-out", "", "The file to save the state to after running")
	printSerial := flag.Bool("serial", false, "Print bytes transmitted over the serial port to stdout")
	flag.Parse()

	logger := log.New()
	if *trace {
		logger = log.NewDebug()
	}

	if err := run(logger, options{
		rom:        *romFile,
		frames:     *frames,
		mode:       *mode,
		trace:      *trace,
		screenshot: *screenshot,
		scale:      *scale,
		palette:    *paletteName,
		stateIn:    *stateIn,
		stateOut:   *stateOut,
		serial:     *printSerial,
	}); err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
}

type options struct {
	rom        string
	frames     int
	mode       string
	trace      bool
	screenshot string
	scale      int
	palette    string
	stateIn    string
	stateOut   string
	serial     bool
}

func run(logger log.Logger, o options) error {
	rom := cartridge.Empty()
	if o.rom != "" {
		var err error
		if rom, err = cartridge.Load(o.rom); err != nil {
			return err
		}
	}

	errorMode, err := cpu.ParseErrorMode(o.mode)
	if err != nil {
		return err
	}
	pal, err := palette.ByName(o.palette)
	if err != nil {
		return err
	}

	opts := []gameboy.Opt{
		gameboy.WithLogger(logger),
		gameboy.WithErrorMode(errorMode),
		gameboy.WithPalette(pal),
	}
	if o.trace {
		opts = append(opts, gameboy.Trace())
	}
	if o.serial {
		opts = append(opts, gameboy.WithSerialSink(serial.SinkFunc(func(b byte) {
			os.Stdout.Write([]byte{b})
		})))
	}

	var gb *gameboy.GameBoy
	if o.stateIn != "" {
		state, err := utils.LoadFile(o.stateIn, 1<<20)
		if err != nil {
			return err
		}
		if gb, err = gameboy.Restore(rom, state, opts...); err != nil {
			return err
		}
	} else {
		gb = gameboy.NewGameBoy(rom, opts...)
	}

	runErr := gb.Run(o.frames)
	if runErr != nil {
		logger.Errorf("stopped after %d frames: %v", gb.Frames(), runErr)
		logger.Infof("registers: %s flags: %s", gb.CPU.Registers, gb.CPU.FlagsString())
		logger.Infof("last opcodes: %s", formatOpcodes(gb.CPU.LastOpcodes()))
	}
	if err := gb.CPU.Diagnostics(); err != nil {
		logger.Warnf("%v", err)
	}

	frame := gb.Frame()
	logger.Infof("ran %d frames, cpu %s, frame digest %016x", gb.Frames(), gb.CPU.Mode(), frame.Digest())

	if o.screenshot != "" {
		if err := utils.SavePNG(o.screenshot, gb.Image(o.scale)); err != nil {
			return err
		}
	}
	if o.stateOut != "" {
		state, err := gb.Save()
		if err != nil {
			return err
		}
		if err := os.WriteFile(o.stateOut, state, 0o644); err != nil {
			return err
		}
	}

	return runErr
}

func formatOpcodes(opcodes []uint16) string {
	s := ""
	for i, op := range opcodes {
		if i > 0 {
			s += " "
		}
		if op > 0xFF {
			s += fmt.Sprintf("%04X", op)
		} else {
			s += fmt.Sprintf("%02X", op)
		}
	}
	return s
}
