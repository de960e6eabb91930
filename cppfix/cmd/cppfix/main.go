package main

import (
	"context"
	"fmt"
	"io"
	"os"

	flags "github.com/jessevdk/go-flags"

	"github.com/viant/rcheck-toolbox/cppfix/service"
)

// Options defines the CLI surface: a single optional positional path.
type Options struct {
	Args struct {
		Path string `positional-arg-name:"path" description:"C++ source to patch (default src/GeodesicLine3.cpp)"`
	} `positional-args:"yes"`
}

func main() {
	var opts Options
	if _, err := flags.NewParser(&opts, flags.Default).Parse(); err != nil {
		if flags.WroteHelp(err) {
			os.Exit(0)
		}
		os.Exit(2)
	}
	if err := run(context.Background(), opts.Args.Path, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "%+v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, path string, stdout io.Writer) error {
	svc := service.NewService(&service.Config{SkipGitStatus: true})
	out, err := svc.Patch(ctx, &service.PatchInput{Path: path})
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Fixed %s\n", out.Path)
	return nil
}
