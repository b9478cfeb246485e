package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/jcorbin/treeforth/internal/logio"
)

func main() {
	var logger logio.Logger
	logger.SetOutput(os.Stderr)
	logger.ErrorIf(run(context.Background(), &logger))
	os.Exit(logger.ExitCode())
}

func run(ctx context.Context, logger *logio.Logger) error {
	var (
		configPath string
		timeout    time.Duration
		trace      bool
		dump       bool
		maxDepth   int
		heapLimit  uint
		loadImage  string
		saveImage  string
	)
	flag.StringVar(&configPath, "config", "", "read settings from a TOML file")
	flag.DurationVar(&timeout, "timeout", 0, "specify a time limit")
	flag.BoolVar(&trace, "trace", false, "enable trace logging")
	flag.BoolVar(&dump, "dump", false, "dump VM state after running")
	flag.IntVar(&maxDepth, "max-depth", 0, "limit user word call depth")
	flag.UintVar(&heapLimit, "heap-limit", 0, "limit the number of heap variables")
	flag.StringVar(&loadImage, "load-image", "", "restore a session image before running")
	flag.StringVar(&saveImage, "save-image", "", "save a session image after running")
	flag.Parse()

	cfg := DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = LoadConfig(configPath); err != nil {
			return err
		}
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "timeout":
			cfg.Interp.Timeout.Duration = timeout
		case "trace":
			cfg.Interp.Trace = trace
		case "dump":
			cfg.Interp.Dump = dump
		case "max-depth":
			cfg.Interp.MaxDepth = maxDepth
		case "heap-limit":
			cfg.Interp.HeapLimit = heapLimit
		case "load-image":
			cfg.Image.Load = loadImage
		case "save-image":
			cfg.Image.Save = saveImage
		}
	})

	opts := append([]VMOption{WithOutput(os.Stdout)}, cfg.Options()...)
	if cfg.Interp.Trace {
		opts = append(opts,
			WithLogf(logger.Leveledf("TRACE")),
			WithTee(&logio.Writer{Logf: logger.Leveledf("OUT")}),
		)
	}
	if cfg.Image.Load != "" {
		img, err := readImageFile(cfg.Image.Load)
		if err != nil {
			return err
		}
		opts = append(opts, WithImage(img))
	}
	if args := flag.Args(); len(args) > 0 {
		files, err := openInputs(args)
		if err != nil {
			return err
		}
		for _, f := range files {
			opts = append(opts, WithInput(f))
		}
	} else {
		opts = append(opts, WithInput(os.Stdin))
	}

	vm := New(opts...)
	defer vm.Close()

	if cfg.Interp.Timeout.Duration != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Interp.Timeout.Duration)
		defer cancel()
	}

	err := vm.Run(ctx)
	if cfg.Interp.Dump {
		vmDumper{vm: vm, out: os.Stderr}.dump()
	}
	if cfg.Image.Save != "" {
		if serr := writeImageFile(cfg.Image.Save, vm.Snapshot()); err == nil {
			err = serr
		}
	}
	if cerr := vm.Close(); err == nil {
		err = cerr
	}
	return err
}

var openFile = os.Open

// openInputs opens every named file, closing those already open if any
// later one fails.
func openInputs(paths []string) (files []*os.File, err error) {
	defer func() {
		if err != nil {
			for _, f := range files {
				f.Close()
			}
			files = nil
		}
	}()
	for _, path := range paths {
		f, err := openFile(path)
		if err != nil {
			return files, err
		}
		files = append(files, f)
	}
	return files, nil
}

func readImageFile(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadImage(f)
}

func writeImageFile(path string, img *Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := img.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
