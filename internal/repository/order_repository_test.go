package repository

import (
	"testing"
	"time"

	"github.com/elkdev72/ecommerce-prj/internal/constants"
	"github.com/elkdev72/ecommerce-prj/internal/models"
)

func TestOrderCreateDefaults(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewOrderRepository(db)

	order := &models.Order{}
	if err := repo.Create(order, nil); err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	got, err := repo.GetByID(order.ID)
	if err != nil || got == nil {
		t.Fatalf("get order failed: %v", err)
	}
	if got.OrderStatus != constants.OrderStatusPending {
		t.Fatalf("order status want Pending got %s", got.OrderStatus)
	}
	if got.PaymentMethod != nil {
		t.Fatalf("payment method should default to nil")
	}
	byNumber, err := repo.GetByOrderNumber(got.OrderID)
	if err != nil || byNumber == nil || byNumber.ID != order.ID {
		t.Fatalf("get by order number failed: %v", err)
	}
}

func TestOrderListItemsNewestFirst(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewOrderRepository(db)
	product := createTestProduct(t, db, "Red Shoes", nil)
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	order := &models.Order{}
	items := []models.OrderItem{
		{ProductID: product.ID, Qty: 1, Date: base},
		{ProductID: product.ID, Qty: 2, Date: base.Add(2 * time.Hour)},
		{ProductID: product.ID, Qty: 3, Date: base.Add(time.Hour)},
	}
	if err := repo.Create(order, items); err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	other := &models.Order{}
	if err := repo.Create(other, []models.OrderItem{{ProductID: product.ID, Qty: 9, Date: base.Add(3 * time.Hour)}}); err != nil {
		t.Fatalf("create other order failed: %v", err)
	}

	got, err := repo.ListItems(order.ID)
	if err != nil {
		t.Fatalf("list items failed: %v", err)
	}
	wantQty := []int{2, 3, 1}
	if len(got) != len(wantQty) {
		t.Fatalf("items want %d got %d", len(wantQty), len(got))
	}
	for i, qty := range wantQty {
		if got[i].OrderID != order.ID {
			t.Fatalf("item %d belongs to order %d", got[i].ID, got[i].OrderID)
		}
		if got[i].Qty != qty {
			t.Fatalf("items[%d] qty want %d got %d", i, qty, got[i].Qty)
		}
	}

	loaded, err := repo.GetByID(order.ID)
	if err != nil || loaded == nil {
		t.Fatalf("get order failed: %v", err)
	}
	if len(loaded.Items) != 3 || loaded.Items[0].Qty != 2 {
		t.Fatalf("preloaded items should be newest first, got %+v", loaded.Items)
	}
}

func TestOrderListByCustomerAndVendor(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewOrderRepository(db)
	buyer := createTestUser(t, db, "buyer")
	vendor := createTestUser(t, db, "vendor")

	mine := &models.Order{CustomerID: &buyer.ID}
	if err := repo.Create(mine, nil); err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if err := repo.Create(&models.Order{}, nil); err != nil {
		t.Fatalf("create anonymous order failed: %v", err)
	}
	if err := repo.AttachVendors(mine.ID, []uint{vendor.ID}); err != nil {
		t.Fatalf("attach vendor failed: %v", err)
	}

	rows, total, err := repo.List(OrderListFilter{CustomerID: &buyer.ID})
	if err != nil {
		t.Fatalf("list by customer failed: %v", err)
	}
	if total != 1 || rows[0].ID != mine.ID {
		t.Fatalf("customer filter want order %d got total=%d", mine.ID, total)
	}
	rows, total, err = repo.List(OrderListFilter{VendorID: &vendor.ID})
	if err != nil {
		t.Fatalf("list by vendor failed: %v", err)
	}
	if total != 1 || rows[0].ID != mine.ID {
		t.Fatalf("vendor filter want order %d got total=%d", mine.ID, total)
	}
}

func TestOrderUpdateStatusAndItem(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewOrderRepository(db)
	product := createTestProduct(t, db, "Red Shoes", nil)
	order := &models.Order{}
	items := []models.OrderItem{{ProductID: product.ID, Qty: 1}}
	if err := repo.Create(order, items); err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	if err := repo.UpdateStatus(order.ID, constants.OrderStatusProcessing, map[string]interface{}{"payment_id": "pay_123"}); err != nil {
		t.Fatalf("update status failed: %v", err)
	}
	item, err := repo.GetItem(items[0].ID)
	if err != nil || item == nil {
		t.Fatalf("get item failed: %v", err)
	}
	if item.OrderNumber() != order.OrderID {
		t.Fatalf("order number want %s got %s", order.OrderID, item.OrderNumber())
	}
	item.OrderStatus = constants.OrderStatusShipped
	item.ShippingService = strPtr(constants.ShippingServiceDHL)
	item.TrackingID = strPtr("TRK-1")
	if err := repo.UpdateItem(item); err != nil {
		t.Fatalf("update item failed: %v", err)
	}

	loaded, err := repo.GetByID(order.ID)
	if err != nil || loaded == nil {
		t.Fatalf("get order failed: %v", err)
	}
	if loaded.OrderStatus != constants.OrderStatusProcessing {
		t.Fatalf("order status want Processing got %s", loaded.OrderStatus)
	}
	if loaded.PaymentID == nil || *loaded.PaymentID != "pay_123" {
		t.Fatalf("payment id not updated")
	}
	if loaded.Items[0].OrderStatus != constants.OrderStatusShipped || *loaded.Items[0].TrackingID != "TRK-1" {
		t.Fatalf("item shipping not updated: %+v", loaded.Items[0])
	}
}

func TestOrderDeleteCascades(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewOrderRepository(db)
	vendor := createTestUser(t, db, "vendor")
	product := createTestProduct(t, db, "Red Shoes", nil)
	coupon := models.NewCoupon(&vendor.ID, "SAVE10")
	if err := NewCouponRepository(db).Create(&coupon); err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}

	order := &models.Order{}
	items := []models.OrderItem{{ProductID: product.ID, Qty: 1, VendorID: &vendor.ID}}
	if err := repo.Create(order, items); err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if err := repo.AttachCoupons(order.ID, []uint{coupon.ID}); err != nil {
		t.Fatalf("attach coupon failed: %v", err)
	}
	if err := repo.AttachItemCoupons(items[0].ID, []uint{coupon.ID}); err != nil {
		t.Fatalf("attach item coupon failed: %v", err)
	}
	if err := repo.AttachVendors(order.ID, []uint{vendor.ID}); err != nil {
		t.Fatalf("attach vendor failed: %v", err)
	}

	if err := repo.Delete(order.ID); err != nil {
		t.Fatalf("delete order failed: %v", err)
	}
	if n := countRows(t, db, &models.OrderItem{}, "order_id = ?", order.ID); n != 0 {
		t.Fatalf("order items should be deleted, got %d", n)
	}
	for _, table := range []string{"order_coupons", "order_vendors"} {
		if n := countJoinRows(t, db, table, "order_id = ?", order.ID); n != 0 {
			t.Fatalf("%s rows should be deleted, got %d", table, n)
		}
	}
	if n := countJoinRows(t, db, "order_item_coupons", "order_item_id = ?", items[0].ID); n != 0 {
		t.Fatalf("order item coupon rows should be deleted, got %d", n)
	}
	if n := countRows(t, db, &models.Coupon{}, "id = ?", coupon.ID); n != 1 {
		t.Fatalf("coupon should survive order delete")
	}
}

func TestOrderListItemsByVendorLoadsOrder(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewOrderRepository(db)
	vendor := createTestUser(t, db, "vendor")
	product := createTestProduct(t, db, "Red Shoes", nil)

	first := &models.Order{}
	second := &models.Order{}
	for _, order := range []*models.Order{first, second} {
		items := []models.OrderItem{{ProductID: product.ID, Qty: 1, VendorID: &vendor.ID}}
		if err := repo.Create(order, items); err != nil {
			t.Fatalf("create order failed: %v", err)
		}
	}
	if err := repo.Create(&models.Order{}, []models.OrderItem{{ProductID: product.ID, Qty: 1}}); err != nil {
		t.Fatalf("create order without vendor failed: %v", err)
	}

	items, err := repo.ListItemsByVendor(vendor.ID)
	if err != nil {
		t.Fatalf("list vendor items failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("want 2 vendor items got %d", len(items))
	}
	want := map[uint]string{first.ID: first.OrderID, second.ID: second.OrderID}
	for _, item := range items {
		if item.Order == nil || item.OrderNumber() != want[item.OrderID] {
			t.Fatalf("item %d order number want %s got %s", item.ID, want[item.OrderID], item.OrderNumber())
		}
		if item.Product == nil || item.Product.ID != product.ID {
			t.Fatalf("item %d product not preloaded", item.ID)
		}
	}
}
