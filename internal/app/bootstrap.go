package app

import (
	"context"
	"errors"
	"fmt"
	"os/signal"

	"github.com/elkdev72/ecommerce-prj/internal/provider"
	"github.com/elkdev72/ecommerce-prj/internal/worker"
)

// BuildRunner 按启动模式组装服务
func BuildRunner(container *provider.Container, opts Options) (*Runner, error) {
	opts = normalizeOptions(opts)
	if opts.Config == nil {
		return nil, errors.New("config is nil")
	}
	if container == nil {
		return nil, errors.New("container is nil")
	}

	var services []Service
	switch opts.Mode {
	case ModeWorker:
		consumer := worker.NewConsumer(container)
		workerService, err := worker.NewService(&opts.Config.Queue, consumer)
		if err != nil {
			return nil, err
		}
		services = append(services, workerService)
	default:
		return nil, fmt.Errorf("unknown mode %q", opts.Mode)
	}

	return NewRunner(opts.Logger, opts.ShutdownTimeout, services...), nil
}

// Run 应用启动入口：构建容器与服务，收到退出信号后优雅停止
func Run(opts Options) error {
	opts = normalizeOptions(opts)
	if opts.Config == nil {
		return errors.New("config is nil")
	}

	container := provider.NewContainer(opts.Config)
	defer container.Close()

	runner, err := BuildRunner(container, opts)
	if err != nil {
		return err
	}

	ctx := context.Background()
	if len(opts.Signals) > 0 {
		var stop context.CancelFunc
		ctx, stop = signal.NotifyContext(ctx, opts.Signals...)
		defer stop()
	}

	opts.Logger.Infow("app_start", "name", opts.Config.App.Name, "mode", opts.Mode)
	return runner.Run(ctx)
}
