package main

import (
	"flag"
	"runtime"

	"glres/internal/config"
	"glres/internal/gldevice"
	"glres/internal/resource"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/xlab/closer"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	defer closer.Close()

	configPath := flag.String("config", "", "path to a TOML settings file")
	frames := flag.Int("frames", 0, "exit after this many frames (0 runs until the window closes)")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			panic(err)
		}
	}
	config.Set(cfg)
	cfg = config.Get()

	log := newLogger(cfg.LogLevel)
	resource.SetLogger(log.Named("resource"))
	closer.Bind(func() {
		_ = log.Sync()
	})

	if err := glfw.Init(); err != nil {
		log.Error("glfw init failed", zap.Error(err))
		closer.Exit(1)
	}
	defer glfw.Terminate()

	d, err := newDemo(cfg, gldevice.New(log), log)
	if err != nil {
		log.Error("demo setup failed", zap.Error(err))
		closer.Exit(1)
	}
	d.run(*frames)
	d.close()
}

func newLogger(level string) *zap.Logger {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	zcfg := zap.NewDevelopmentConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	log, err := zcfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return log
}
