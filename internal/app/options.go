package app

import (
	"os"
	"time"

	"github.com/elkdev72/ecommerce-prj/internal/config"
	"github.com/elkdev72/ecommerce-prj/internal/logger"

	"go.uber.org/zap"
)

const (
	ModeWorker = "worker"

	defaultShutdownTimeout = 10 * time.Second
)

// Options 应用启动选项
type Options struct {
	Config          *config.Config
	Logger          *zap.SugaredLogger
	Signals         []os.Signal
	ShutdownTimeout time.Duration
	Mode            string
}

// normalizeOptions 补齐默认参数
func normalizeOptions(opts Options) Options {
	if opts.Logger == nil {
		opts.Logger = logger.S()
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = defaultShutdownTimeout
	}
	if opts.Mode == "" {
		opts.Mode = ModeWorker
	}
	return opts
}
