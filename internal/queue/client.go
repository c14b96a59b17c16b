package queue

import (
	"context"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/elkdev72/ecommerce-prj/internal/config"
	"github.com/elkdev72/ecommerce-prj/internal/constants"
	"github.com/elkdev72/ecommerce-prj/internal/logger"

	"github.com/hibiken/asynq"
)

const (
	// DefaultQueue 默认队列名称
	DefaultQueue = constants.QueueDefault

	defaultConcurrency = 10

	// 汇总任务幂等，可放心重试
	orderStatusSyncMaxRetry = 5
	orderStatusSyncTimeout  = 30 * time.Second
)

// Client 队列客户端；未启用时所有投递都是空操作
type Client struct {
	inner *asynq.Client
	queue string
}

// NewClient 创建队列客户端
func NewClient(cfg *config.QueueConfig) (*Client, error) {
	if cfg == nil || !cfg.Enabled {
		return &Client{queue: DefaultQueue}, nil
	}
	return &Client{inner: asynq.NewClient(redisOpt(cfg)), queue: DefaultQueue}, nil
}

// Enabled 判断是否启用
func (c *Client) Enabled() bool {
	return c != nil && c.inner != nil
}

// Close 关闭客户端
func (c *Client) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.inner.Close()
}

// EnqueueOrderStatusSync 投递订单状态汇总任务，调用方传入的选项覆盖默认值
func (c *Client) EnqueueOrderStatusSync(payload OrderStatusSyncPayload, opts ...asynq.Option) error {
	if !c.Enabled() {
		return nil
	}
	task, err := NewOrderStatusSyncTask(payload)
	if err != nil {
		return err
	}
	return c.enqueue(task, orderStatusSyncOptions(c.queue), opts)
}

func (c *Client) enqueue(task *asynq.Task, defaults, overrides []asynq.Option) error {
	info, err := c.inner.Enqueue(task, append(defaults, overrides...)...)
	if err != nil {
		return err
	}
	logger.Debugw("queue_task_enqueued", "type", task.Type(), "task_id", info.ID, "queue", info.Queue)
	return nil
}

func orderStatusSyncOptions(queue string) []asynq.Option {
	return []asynq.Option{
		asynq.Queue(queue),
		asynq.MaxRetry(orderStatusSyncMaxRetry),
		asynq.Timeout(orderStatusSyncTimeout),
	}
}

// BuildServerConfig 构建 asynq 服务端配置，任务最终失败时写入日志
func BuildServerConfig(cfg *config.QueueConfig) (asynq.RedisClientOpt, asynq.Config) {
	serverCfg := asynq.Config{
		Concurrency:  defaultConcurrency,
		Queues:       map[string]int{DefaultQueue: 1},
		ErrorHandler: asynq.ErrorHandlerFunc(logTaskError),
	}
	if cfg != nil && cfg.Concurrency > 0 {
		serverCfg.Concurrency = cfg.Concurrency
	}
	if cfg != nil && len(cfg.Queues) > 0 {
		serverCfg.Queues = cfg.Queues
	}
	return redisOpt(cfg), serverCfg
}

func logTaskError(ctx context.Context, task *asynq.Task, err error) {
	retried, _ := asynq.GetRetryCount(ctx)
	maxRetry, _ := asynq.GetMaxRetry(ctx)
	logger.Warnw("queue_task_failed",
		"type", task.Type(),
		"retried", retried,
		"max_retry", maxRetry,
		"error", err,
	)
}

func redisOpt(cfg *config.QueueConfig) asynq.RedisClientOpt {
	host, port := "127.0.0.1", 6379
	opt := asynq.RedisClientOpt{}
	if cfg != nil {
		if h := strings.TrimSpace(cfg.Host); h != "" {
			host = h
		}
		if cfg.Port > 0 {
			port = cfg.Port
		}
		opt.Password = cfg.Password
		opt.DB = cfg.DB
	}
	opt.Addr = net.JoinHostPort(host, strconv.Itoa(port))
	return opt
}
