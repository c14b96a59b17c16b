package service

import (
	"strings"

	"github.com/elkdev72/ecommerce-prj/internal/constants"
	"github.com/elkdev72/ecommerce-prj/internal/logger"
	"github.com/elkdev72/ecommerce-prj/internal/models"
	"github.com/elkdev72/ecommerce-prj/internal/queue"
	"github.com/elkdev72/ecommerce-prj/internal/repository"
)

// syncOrderStatus 根据订单项状态汇总订单状态并写入，已取消的订单保持不变
func syncOrderStatus(orderRepo repository.OrderRepository, orderID uint) (string, error) {
	if orderID == 0 {
		return "", nil
	}
	order, err := orderRepo.GetByID(orderID)
	if err != nil {
		return "", err
	}
	if order == nil {
		return "", ErrOrderNotFound
	}
	if order.OrderStatus == constants.OrderStatusCancelled {
		return order.OrderStatus, nil
	}
	newStatus := calcOrderStatus(order.Items, order.OrderStatus)
	if newStatus == "" || newStatus == order.OrderStatus {
		return order.OrderStatus, nil
	}
	if err := orderRepo.UpdateStatus(order.ID, newStatus, nil); err != nil {
		return "", err
	}
	logger.Infow("order_status_synced",
		"order_id", order.ID,
		"order_number", order.OrderID,
		"from", order.OrderStatus,
		"to", newStatus,
	)
	return newStatus, nil
}

func calcOrderStatus(items []models.OrderItem, currentStatus string) string {
	if len(items) == 0 {
		return currentStatus
	}
	var cancelledCount int
	var fulfilledCount int
	var shippedCount int
	var processingCount int
	for _, item := range items {
		switch strings.TrimSpace(item.OrderStatus) {
		case constants.OrderStatusCancelled:
			cancelledCount++
		case constants.OrderStatusFulfilled:
			fulfilledCount++
		case constants.OrderStatusShipped:
			shippedCount++
		case constants.OrderStatusProcessing:
			processingCount++
		}
	}
	if cancelledCount == len(items) {
		return constants.OrderStatusCancelled
	}
	if fulfilledCount > 0 && fulfilledCount+cancelledCount == len(items) {
		return constants.OrderStatusFulfilled
	}
	if shippedCount+fulfilledCount > 0 {
		return constants.OrderStatusShipped
	}
	if processingCount > 0 {
		return constants.OrderStatusProcessing
	}
	return currentStatus
}

// dispatchOrderStatusSync 队列可用时异步汇总，否则同步执行；入队失败回退为同步执行
func dispatchOrderStatusSync(orderRepo repository.OrderRepository, queueClient *queue.Client, orderID uint) error {
	if queueClient.Enabled() {
		err := queueClient.EnqueueOrderStatusSync(queue.OrderStatusSyncPayload{OrderID: orderID})
		if err == nil {
			return nil
		}
		logger.Warnw("order_status_sync_enqueue_failed", "order_id", orderID, "error", err)
	}
	_, err := syncOrderStatus(orderRepo, orderID)
	return err
}
