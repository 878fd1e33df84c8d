// SPDX-FileCopyrightText: © 2014 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/ulikunitz/ppmd"
	"github.com/ulikunitz/ppmd/internal/term"
	"github.com/ulikunitz/ppmd/internal/xlog"
	"github.com/ulikunitz/ppmd/xio"
)

// result describes the outcome of packing a single file.
type result struct {
	stats ppmd.Stats
	// name is the file name stored in the compressed stream
	name string
	// digest is the xxhash of the uncompressed data
	digest uint64
}

type packer interface {
	outputPaths(path string) (outputPath, tmpPath string, err error)
	pack(w io.WriteCloser, r io.Reader, path string, opts *options) (res result, err error)
}

const ppmSuffix = ".ppm"

type ppmdPacker struct{}

func (p ppmdPacker) outputPaths(path string) (out, tmp string, err error) {
	if path == "-" {
		return "-", "-", nil
	}
	if path == "" {
		err = errors.New("path is empty")
		return
	}
	if strings.HasSuffix(path, ppmSuffix) {
		err = fmt.Errorf("path %s has suffix %s -- ignored",
			path, ppmSuffix)
		return
	}
	out = path + ppmSuffix
	tmp = out + ".pack"
	return
}

// pack compresses r into w. The stack closes the writer only if the
// compression has been successful.
func (p ppmdPacker) pack(w io.WriteCloser, r io.Reader, path string, opts *options) (res result, err error) {
	if w == nil {
		panic("writer w is nil")
	}
	if r == nil {
		panic("reader r is nil")
	}
	cfg := opts.cfg
	if path != "-" {
		cfg.Name = filepath.Base(path)
	}
	stack := xio.NewWriteCloserStack()
	stack.Push(w)
	zw, err := ppmd.NewWriterConfig(w, cfg)
	if err != nil {
		stack.Abort()
		return res, err
	}
	stack.Push(zw)
	h := xxhash.New()
	if _, err = io.Copy(stack, io.TeeReader(bufio.NewReader(r), h)); err != nil {
		stack.Abort()
		return res, err
	}
	if err = stack.Close(); err != nil {
		return res, err
	}
	res = result{stats: zw.Stats(), name: cfg.Name, digest: h.Sum64()}
	return res, nil
}

type ppmdUnpacker struct{}

func (u ppmdUnpacker) outputPaths(path string) (out, tmp string, err error) {
	if path == "-" {
		return "-", "-", nil
	}
	if !strings.HasSuffix(path, ppmSuffix) {
		err = fmt.Errorf("path %s has no suffix %s",
			path, ppmSuffix)
		return
	}
	base := filepath.Base(path)
	if base == ppmSuffix {
		err = fmt.Errorf(
			"path %s has only suffix %s as filename",
			path, ppmSuffix)
		return
	}
	out = path[:len(path)-len(ppmSuffix)]
	tmp = out + ".unpack"
	return
}

func (u ppmdUnpacker) pack(w io.WriteCloser, r io.Reader, path string, opts *options) (res result, err error) {
	if w == nil {
		panic("writer w is nil")
	}
	if r == nil {
		panic("reader r is nil")
	}
	// pack actually unpacks
	zr, err := ppmd.NewReaderConfig(bufio.NewReader(r),
		ppmd.ReaderConfig{Logger: opts.cfg.Logger})
	if err != nil {
		w.Close()
		return res, err
	}
	h := xxhash.New()
	bw := bufio.NewWriter(w)
	if _, err = io.Copy(io.MultiWriter(bw, h), zr); err != nil {
		zr.Discard()
		w.Close()
		return res, err
	}
	if err = bw.Flush(); err != nil {
		w.Close()
		return res, err
	}
	if err = w.Close(); err != nil {
		return res, err
	}
	res = result{stats: zr.Stats(), name: zr.Name(), digest: h.Sum64()}
	return res, nil
}

func signalHandler(tmpPath string) chan<- struct{} {
	quit := make(chan struct{})
	sigch := make(chan os.Signal, 1)
	signal.Notify(sigch, termsigs...)
	go func() {
		select {
		case <-quit:
			signal.Stop(sigch)
			return
		case <-sigch:
			if tmpPath != "-" {
				os.Remove(tmpPath)
			}
			os.Exit(7)
		}
	}()
	return quit
}

// nopCloser protects standard output from being closed.
type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

func packFile(pck packer, path, tmpPath string, opts *options) (res result, err error) {
	// open reader
	var r *os.File
	if path == "-" {
		if opts.decompress && !opts.force && term.IsTerminal(os.Stdin.Fd()) {
			return res, errors.New(
				"compressed data not read from a terminal")
		}
		r = os.Stdin
	} else {
		fi, err := os.Lstat(path)
		if err != nil {
			return res, err
		}
		if !fi.Mode().IsRegular() {
			return res, fmt.Errorf("%s is not a regular file", path)
		}
		r, err = os.Open(path)
		if err != nil {
			return res, err
		}
		defer r.Close()
		fi, err = r.Stat()
		if err != nil {
			return res, err
		}
		if !fi.Mode().IsRegular() {
			return res, fmt.Errorf("%s is not a regular file", path)
		}
	}

	// open writer
	var w io.WriteCloser
	if tmpPath == "-" {
		if !opts.decompress && !opts.force && term.IsTerminal(os.Stdout.Fd()) {
			return res, errors.New(
				"compressed data not written to a terminal")
		}
		w = nopCloser{os.Stdout}
	} else {
		if opts.force {
			os.Remove(tmpPath)
		}
		f, err := os.OpenFile(tmpPath,
			os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0666)
		if err != nil {
			return res, err
		}
		fi, err := f.Stat()
		if err != nil {
			f.Close()
			return res, err
		}
		if !fi.Mode().IsRegular() {
			f.Close()
			return res, fmt.Errorf("%s is not a regular file", tmpPath)
		}
		w = f
	}

	return pck.pack(w, r, path, opts)
}

// userPathError represents a path error presentable to a user. In
// difference to os.PathError it removes the information of the
// operation returning the error.
type userPathError struct {
	Path string
	Err  error
}

// Error provides the error string for the path error.
func (e *userPathError) Error() string {
	return e.Path + ": " + e.Err.Error()
}

// userError converts path error to an error message that is
// acceptable for ppmdgo users. PathError provides information about the
// command that has created an error. For instance Lstat informs that
// lstat detected that a file didn't exist this information is not
// relevant for users of the ppmdgo program. This function converts a
// path error into a generic error removing the operation information.
func userError(err error) error {
	var pe *os.PathError
	if !errors.As(err, &pe) {
		return err
	}
	return &userPathError{Path: pe.Path, Err: pe.Err}
}

// restoredPath returns the output path using the name stored in the
// header. Directories of the stored name are ignored.
func restoredPath(path, name string) string {
	name = filepath.Base(name)
	if name == "" || name == "." || name == ".." || name == string(filepath.Separator) {
		return ""
	}
	return filepath.Join(filepath.Dir(path), name)
}

func report(path string, res result, opts *options) {
	if !opts.verbose {
		return
	}
	s := res.stats
	mb, tenths := s.Memory()
	r := s.Ratio()
	if opts.decompress {
		r = s.RatioUncompressed()
	}
	xlog.Printf("%s: %d -> %d bytes, %.1f%% saved, memory %d.%d MB,"+
		" %d restarts, xxhash %016x",
		path, s.In, s.Out, r, mb, tenths, s.Restarts, res.digest)
}

// processFile compresses or decompresses a single file. It returns false
// if the file couldn't be processed.
func processFile(path string, opts *options) bool {
	var pck packer
	if opts.decompress {
		pck = ppmdUnpacker{}
	} else {
		pck = ppmdPacker{}
	}
	outputPath, tmpPath, err := pck.outputPaths(path)
	if err != nil {
		xlog.Warn(userError(err))
		return false
	}
	if opts.stdout {
		outputPath, tmpPath = "-", "-"
	}
	if outputPath != "-" {
		_, err = os.Lstat(outputPath)
		// with -N the output path is known after decompression
		restore := opts.decompress && opts.name
		if err == nil && !opts.force && !restore {
			xlog.Warnf("file %s exists", outputPath)
			return false
		}
	}
	defer func() {
		if tmpPath != "-" {
			os.Remove(tmpPath)
		}
	}()
	quit := signalHandler(tmpPath)
	defer close(quit)

	res, err := packFile(pck, path, tmpPath, opts)
	if err != nil {
		xlog.Warn(userError(err))
		return false
	}
	if opts.decompress && opts.name && outputPath != "-" {
		if p := restoredPath(path, res.name); p != "" {
			outputPath = p
		}
		if _, err = os.Lstat(outputPath); err == nil && !opts.force {
			xlog.Warnf("file %s exists", outputPath)
			return false
		}
	}
	if tmpPath != "-" && outputPath != "-" {
		if err = os.Rename(tmpPath, outputPath); err != nil {
			xlog.Warn(userError(err))
			return false
		}
	}
	report(path, res, opts)
	if !opts.keep && !opts.stdout && path != "-" {
		if err = os.Remove(path); err != nil {
			xlog.Warn(userError(err))
			return false
		}
	}
	return true
}
