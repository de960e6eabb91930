package main

import (
	"context"
	"log"
	"os"
	"strings"

	flags "github.com/jessevdk/go-flags"
	"github.com/viant/mcp-protocol/schema"
	mcpsrv "github.com/viant/mcp/server"
	"go-simpler.org/env"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	cppmcp "github.com/viant/rcheck-toolbox/cppfix/mcp"
	"github.com/viant/rcheck-toolbox/cppfix/service"
)

// Options defines CLI flags for the cppfix MCP server.
type Options struct {
	HTTPAddr     string `short:"a" long:"addr" description:"HTTP listen address (falls back to CPPFIX_ADDR, then 127.0.0.1:7790)"`
	ConfigURL    string `short:"c" long:"config" description:"YAML config URL (afs: path, mem://, gs://...); falls back to CPPFIX_CONFIG"`
	Oauth2Config string `short:"o" long:"oauth2config" description:"Path to JSON OAuth2 configuration file (scy EncodedResource)"`
	UseIdToken   bool   `short:"i" long:"use-id-token" description:"Use ID token (instead of access token) for identity scoping"`
	Root         string `short:"r" long:"root" description:"Directory targets must resolve inside (default: config root, then working directory)"`
	Verbose      bool   `short:"v" long:"verbose" description:"Debug logging"`
}

// Env carries environment fallbacks for unset flags.
type Env struct {
	Addr   string `env:"CPPFIX_ADDR" default:"127.0.0.1:7790" usage:"HTTP listen address"`
	Config string `env:"CPPFIX_CONFIG" usage:"YAML config URL"`
}

func main() {
	var opts Options
	if _, err := flags.NewParser(&opts, flags.Default).Parse(); err != nil {
		os.Exit(2)
	}
	var e Env
	if err := env.Load(&e, &env.Options{}); err != nil {
		log.Fatalf("invalid environment: %v", err)
	}
	if opts.HTTPAddr == "" {
		opts.HTTPAddr = e.Addr
	}
	if opts.ConfigURL == "" {
		opts.ConfigURL = e.Config
	}

	zapConfig := zap.NewProductionConfig()
	if opts.Verbose {
		zapConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := zapConfig.Build()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	cfg := &service.Config{}
	if v := strings.TrimSpace(opts.ConfigURL); v != "" {
		if cfg, err = service.LoadConfig(ctx, os.ExpandEnv(v)); err != nil {
			logger.Fatal("failed to load config", zap.Error(err))
		}
	}
	if opts.Root != "" {
		cfg.Root = opts.Root
	}
	if cfg.Root == "" {
		if cfg.Root, err = os.Getwd(); err != nil {
			logger.Fatal("failed to resolve working directory", zap.Error(err))
		}
	}
	cfg.Logger = logger
	svc := service.NewService(cfg)

	options := []mcpsrv.Option{
		mcpsrv.WithImplementation(schema.Implementation{Name: "cppfix-mcp", Version: "0.1.0"}),
		mcpsrv.WithNewHandler(cppmcp.NewHandler(svc)),
		mcpsrv.WithEndpointAddress(opts.HTTPAddr),
		mcpsrv.WithRootRedirect(true),
		mcpsrv.WithStreamableURI("/mcp"),
	}

	if v := strings.TrimSpace(opts.Oauth2Config); v != "" {
		authOptions, err := oauth2Options(ctx, v, opts.UseIdToken)
		if err != nil {
			logger.Fatal("failed to enable oauth2", zap.Error(err))
		}
		options = append(options, authOptions...)
	}

	server, err := mcpsrv.New(options...)
	if err != nil {
		logger.Fatal("failed to create server", zap.Error(err))
	}
	server.UseStreamableHTTP(true)
	logger.Info("serving", zap.String("addr", opts.HTTPAddr), zap.String("root", cfg.Root), zap.String("defaultPath", svc.DefaultPath()))
	if err := server.HTTP(ctx, opts.HTTPAddr).ListenAndServe(); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
