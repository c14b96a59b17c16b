package queue

import (
	"encoding/json"

	"github.com/elkdev72/ecommerce-prj/internal/constants"

	"github.com/hibiken/asynq"
)

// TaskOrderStatusSync 订单状态汇总任务
const TaskOrderStatusSync = constants.TaskOrderStatusSync

// OrderStatusSyncPayload 订单状态汇总任务载荷
type OrderStatusSyncPayload struct {
	OrderID uint `json:"order_id"`
}

// NewOrderStatusSyncTask 创建订单状态汇总任务
func NewOrderStatusSyncTask(payload OrderStatusSyncPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderStatusSync, body), nil
}

// ParseOrderStatusSyncPayload 解析订单状态汇总任务载荷
func ParseOrderStatusSyncPayload(task *asynq.Task) (OrderStatusSyncPayload, error) {
	var payload OrderStatusSyncPayload
	if task == nil {
		return payload, nil
	}
	err := json.Unmarshal(task.Payload(), &payload)
	return payload, err
}
