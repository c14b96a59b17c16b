package worker

import (
	"context"
	"errors"
	"fmt"

	"github.com/elkdev72/ecommerce-prj/internal/logger"
	"github.com/elkdev72/ecommerce-prj/internal/provider"
	"github.com/elkdev72/ecommerce-prj/internal/queue"
	"github.com/elkdev72/ecommerce-prj/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderStatusSync, c.handleOrderStatusSync)
}

func (c *Consumer) handleOrderStatusSync(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil || c.Container == nil || c.OrderService == nil {
		logger.Debugw("worker_order_status_sync_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	payload, err := queue.ParseOrderStatusSyncPayload(task)
	if err != nil {
		logger.Warnw("worker_order_status_sync_unmarshal_failed", "error", err)
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_status_sync_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	status, err := c.OrderService.SyncOrderStatus(payload.OrderID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			logger.Debugw("worker_order_status_sync_skip_order_not_found", "order_id", payload.OrderID)
			return nil
		default:
			logger.Warnw("worker_order_status_sync_failed", "order_id", payload.OrderID, "error", err)
			return err
		}
	}
	logger.Debugw("worker_order_status_sync_done", "order_id", payload.OrderID, "order_status", status)
	return nil
}
