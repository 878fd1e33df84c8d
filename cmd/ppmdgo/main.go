// SPDX-FileCopyrightText: © 2014 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

// Command ppmdgo compresses and decompresses files with the PPMd
// algorithm. The command line interface follows gzip.
package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ogier/pflag"

	"github.com/ulikunitz/ppmd"
	"github.com/ulikunitz/ppmd/arena"
	"github.com/ulikunitz/ppmd/internal/xlog"
	"github.com/ulikunitz/ppmd/ppm"
)

const (
	usageStr = `Usage: ppmdgo [OPTION]... [FILE]...
Compress or uncompress FILEs in the .ppm format (by default, compress FILES
in place).

  -c, --stdout       write to standard output and don't delete input files
  -d, --decompress   force decompression
  -f, --force        force overwrite of output file and terminal output
  -h, --help         give this help
  -k, --keep         keep (don't delete) input files
  -m, --memory=MB    memory for the model in megabytes (1..256)
  -N, --name         restore the original file name on decompression
  -o, --order=N      model order (2..16)
  -q, --quiet        suppress all warnings
  -v, --verbose      verbose mode
      --debug        write debug messages
  -z, --compress     force compression
  -1 ... -9          compression preset; default is 6

Options -o and -m override the preset. With no file, or when FILE is -,
read standard input.
`
)

// Preset stores the preset selected by the digit options.
type Preset int

const defaultPreset Preset = 6

// filterArg removes the digits from a group of short options and stores
// the last one as preset. The digits following an option that requires a
// value are kept.
func (p *Preset) filterArg(arg string) string {
	if len(arg) < 2 || arg[0] != '-' || arg[1] == '-' {
		return arg
	}
	buf := new(bytes.Buffer)
	buf.Grow(len(arg))
	for i, c := range arg {
		if c == 'o' || c == 'm' {
			buf.WriteString(arg[i:])
			break
		}
		if '0' <= c && c <= '9' {
			*p = Preset(c - '0')
			continue
		}
		buf.WriteRune(c)
	}
	return buf.String()
}

// filter processes the arguments. A lonely dash stays as standard input
// file.
func (p *Preset) filter(osArgs []string) []string {
	args := make([]string, 1, len(osArgs))
	args[0] = osArgs[0]
	for i, arg := range osArgs[1:] {
		if arg == "--" {
			args = append(args, osArgs[1+i:]...)
			break
		}
		if arg == "-" {
			args = append(args, arg)
			continue
		}
		arg = p.filterArg(arg)
		if arg != "-" {
			args = append(args, arg)
		}
	}
	return args
}

func usage(w io.Writer) {
	fmt.Fprint(w, usageStr)
}

// clamp limits x to the range [lo,hi] and warns if the value has been
// changed.
func clamp(name string, x, lo, hi int) int {
	switch {
	case x < lo:
		xlog.Warnf("%s %d too small; using %d", name, x, lo)
		return lo
	case x > hi:
		xlog.Warnf("%s %d too large; using %d", name, x, hi)
		return hi
	}
	return x
}

// options contains the settings for processing a file.
type options struct {
	decompress bool
	force      bool
	keep       bool
	stdout     bool
	name       bool
	verbose    bool
	cfg        ppmd.WriterConfig
}

// writerConfig computes the configuration from the preset and the order
// and memory flags. Zero flag values select the preset values.
func writerConfig(preset Preset, order, memoryMB int) ppmd.WriterConfig {
	if preset == 0 {
		xlog.Warnf("preset 0 not supported; using 1")
		preset = 1
	}
	cfg := ppmd.Preset(int(preset))
	if order != 0 {
		cfg.Order = clamp("order", order, ppm.MinOrder, ppm.MaxOrder)
	}
	if memoryMB != 0 {
		cfg.MemoryMB = clamp("memory", memoryMB,
			arena.MinBudgetMB, arena.MaxBudgetMB)
	}
	return cfg
}

func main() {
	// setup logger
	cmdName := filepath.Base(os.Args[0])
	xlog.SetPrefix(fmt.Sprintf("%s: ", cmdName))

	// initialize flags
	pflag.CommandLine = pflag.NewFlagSet(cmdName, pflag.ExitOnError)
	pflag.SetInterspersed(true)
	pflag.Usage = func() { usage(os.Stderr); os.Exit(1) }
	var (
		help       = pflag.BoolP("help", "h", false, "")
		stdout     = pflag.BoolP("stdout", "c", false, "")
		decompress = pflag.BoolP("decompress", "d", false, "")
		compress   = pflag.BoolP("compress", "z", false, "")
		force      = pflag.BoolP("force", "f", false, "")
		keep       = pflag.BoolP("keep", "k", false, "")
		name       = pflag.BoolP("name", "N", false, "")
		order      = pflag.IntP("order", "o", 0, "")
		memory     = pflag.IntP("memory", "m", 0, "")
		quiet      = pflag.BoolP("quiet", "q", false, "")
		verbose    = pflag.BoolP("verbose", "v", false, "")
		debug      = pflag.Bool("debug", false, "")
		preset     = defaultPreset
	)

	// process arguments
	os.Args = preset.filter(os.Args)
	pflag.Parse()

	if *help {
		usage(os.Stdout)
		os.Exit(0)
	}
	switch {
	case *debug:
		xlog.SetLevel(xlog.DebugLevel)
	case *quiet:
		xlog.SetLevel(xlog.ErrorLevel)
	case *verbose:
		xlog.SetLevel(xlog.InfoLevel)
	}
	xlog.Debugf("filtered args %v", os.Args)
	if *compress && *decompress {
		xlog.Fatal("options -z and -d exclude each other")
	}

	opts := &options{
		decompress: *decompress,
		force:      *force,
		keep:       *keep,
		stdout:     *stdout,
		name:       *name,
		verbose:    *verbose || *debug,
		cfg:        writerConfig(preset, *order, *memory),
	}
	opts.cfg.Logger = xlog.Logger()
	xlog.Debugf("order %d memory %d MB", opts.cfg.Order, opts.cfg.MemoryMB)

	args := pflag.Args()
	if len(args) == 0 {
		args = []string{"-"}
	}
	failed := false
	for _, path := range args {
		if !processFile(path, opts) {
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}
