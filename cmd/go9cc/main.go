package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/goccy/go-json"
	"github.com/jessevdk/go-flags"
	"github.com/karupanerura/go9cc/internal/compiler"
	"github.com/karupanerura/go9cc/internal/config"
	"github.com/karupanerura/go9cc/internal/server"
	"github.com/karupanerura/go9cc/internal/types"
	"github.com/mattn/go-isatty"
)

type Option struct {
	Config    string `short:"c" long:"config" description:"[OPTIONAL] Config file (YAML or JSON)" required:"false"`
	Listen    string `short:"l" long:"listen" description:"[OPTIONAL] Listen host and port to serve the compile API" required:"false"`
	JSONError bool   `long:"json-error" description:"[OPTIONAL] Dump errors as JSON after the diagnostic" required:"false"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var opt Option
	parser := flags.NewParser(&opt, flags.HelpFlag|flags.PassDoubleDash)
	parser.Usage = "[OPTIONS] EXPRESSION"
	rest, err := parser.ParseArgs(args)
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			parser.WriteHelp(stdout)
			return 0
		} else {
			fmt.Fprintln(stderr, err)
			parser.WriteHelp(stderr)
			return 1
		}
	}

	// server mode
	if opt.Listen != "" {
		err = serveCompiler(opt.Listen, func() (*config.Config, error) {
			return config.Load(opt.Config)
		})
		if err != nil {
			log.Printf("failed to serve compiler: %v", err)
			return 1
		}
		return 0
	}

	if len(rest) != 1 {
		return reportError(stderr, &types.Error{
			Tag: types.ArgumentCountErrorTag,
			Err: fmt.Errorf("invalid number of arguments: expected 1 but got %d", len(rest)),
		}, opt.JSONError)
	}

	conf, err := config.Load(opt.Config)
	if err != nil {
		log.Printf("failed to load config: %v", err)
		return 1
	}

	p, err := compiler.Compile(rest[0])
	if err != nil {
		return reportError(stderr, err, opt.JSONError)
	}

	if err = conf.Emitter().Emit(stdout, p); err != nil {
		log.Printf("failed to emit assembly: %v", err)
		return 1
	}
	return 0
}

func reportError(w io.Writer, err error, dump bool) int {
	var typedErr *types.Error
	if !errors.As(err, &typedErr) {
		log.Printf("failed to compile: %v", err)
		return 1
	}

	if _, err = fmt.Fprintln(w, typedErr.Diagnostic()); err != nil {
		log.Printf("failed to dump diagnostic: %v", err)
	}
	if dump {
		if err = dumpJSON(w, typedErr.Exception()); err != nil {
			log.Printf("failed to dump error as JSON: %v", err)
		}
	}
	return 1
}

func serveCompiler(listen string, loader func() (*config.Config, error)) error {
	handler, err := server.NewHTTPHandler(loader)
	if err != nil {
		return err
	}

	srv := http.Server{
		Handler: handler,
		Addr:    listen,
	}

	log.Printf("Listen HTTP on %s", listen)
	if err := srv.ListenAndServe(); errors.Is(err, http.ErrServerClosed) {
		return nil
	} else if err != nil {
		return err
	}
	return nil
}

func dumpJSON(w io.Writer, v any) error {
	opts := []json.EncodeOptionFunc{json.DisableHTMLEscape()}
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		if isatty.IsTerminal(f.Fd()) {
			opts = append(opts, json.Colorize(json.DefaultColorScheme))
		}
	}

	b, err := json.MarshalIndentWithOption(v, "", "\t", opts...)
	if err != nil {
		return fmt.Errorf("json.MarshalIndentWithOption: %w", err)
	}

	if _, err = w.Write(b); err != nil {
		return fmt.Errorf("w.Write: %w", err)
	}
	if _, err = io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("io.WriteString: %w", err)
	}
	return nil
}
