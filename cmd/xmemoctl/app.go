package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/omeyang/xmemo/pkg/config/xconf"
	"github.com/omeyang/xmemo/pkg/observability/xlog"
	"github.com/omeyang/xmemo/pkg/util/xlru"
)

// usageError 表示参数或配置错误，对应退出码 2。
type usageError struct {
	msg string
	err error
}

func (e *usageError) Error() string {
	if e.err != nil {
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

func (e *usageError) Unwrap() error { return e.err }

// logConfig 对应配置文件的 log 段。
type logConfig struct {
	Level      xlog.Level `koanf:"level"`
	Format     string     `koanf:"format"`
	File       string     `koanf:"file"`
	MaxSizeMB  int        `koanf:"max_size_mb"`
	MaxBackups int        `koanf:"max_backups"`
}

// appConfig 是 xmemoctl 的完整配置。
type appConfig struct {
	Log   logConfig   `koanf:"log"`
	Cache xlru.Config `koanf:"cache"`
}

func defaultAppConfig() appConfig {
	return appConfig{
		Log: logConfig{
			Level:  xlog.LevelInfo,
			Format: "text",
		},
		Cache: xlru.DefaultConfig(),
	}
}

// app 持有子命令共享的运行环境：Before 中构建，close 时释放。
type app struct {
	out     io.Writer
	cfg     appConfig
	logger  *slog.Logger
	cleanup func() error
}

func newApp(out io.Writer) *app {
	return &app{
		out:    out,
		cfg:    defaultAppConfig(),
		logger: slog.Default(),
	}
}

// close 释放日志文件等资源，可重复调用。
func (a *app) close() error {
	if a.cleanup == nil {
		return nil
	}
	return a.cleanup()
}

func (a *app) command() *cli.Command {
	return &cli.Command{
		Name:    "xmemoctl",
		Usage:   "xlru / xmemo 演示与压测工具",
		Version: fmt.Sprintf("%s (commit: %s)", Version, GitCommit),
		Writer:  a.out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "配置文件路径（.yaml/.yml/.json）",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "日志级别 (debug/info/warn/error)",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "日志格式 (text/json)",
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "日志文件路径，设置后按大小轮转",
			},
		},
		Before: a.setup,
		Commands: []*cli.Command{
			a.demoCommand(),
			a.soakCommand(),
		},
	}
}

// setup 加载配置、应用命令行覆盖并构建 Logger。
func (a *app) setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	cfg, err := loadConfig(cmd.String("config"))
	if err != nil {
		return ctx, err
	}

	b := xlog.New().SetLevel(cfg.Log.Level).SetFormat(cfg.Log.Format)
	if cmd.IsSet("log-level") {
		b.SetLevelString(cmd.String("log-level"))
	}
	if cmd.IsSet("log-format") {
		b.SetFormat(cmd.String("log-format"))
	}
	file := cfg.Log.File
	if cmd.IsSet("log-file") {
		file = cmd.String("log-file")
	}
	if file != "" {
		b.SetRotation(file, cfg.Log.MaxSizeMB, cfg.Log.MaxBackups)
	}

	logger, cleanup, err := b.Build()
	if err != nil {
		return ctx, &usageError{msg: "invalid log settings", err: err}
	}
	logger.Debug("xmemoctl configured",
		slog.String("config", cmd.String("config")),
		slog.Int("cache.max_size", cfg.Cache.MaxSize),
		slog.Duration("cache.ttl", cfg.Cache.TTL),
	)

	a.cfg = cfg
	a.logger = logger
	a.cleanup = cleanup
	return ctx, nil
}

// loadConfig 在默认配置之上叠加配置文件，path 为空时返回默认配置。
func loadConfig(path string) (appConfig, error) {
	cfg := defaultAppConfig()
	if path == "" {
		return cfg, nil
	}

	c, err := xconf.New(path, xconf.WithStrict(true))
	if err != nil {
		return cfg, &usageError{msg: "load config", err: err}
	}
	if err := c.Unmarshal("", &cfg); err != nil {
		return cfg, &usageError{msg: "parse config", err: err}
	}
	return cfg, nil
}
