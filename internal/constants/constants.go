package constants

// 商品发布状态（沿用支付状态取值集合）
const (
	StatusPaid       = "Paid"
	StatusProcessing = "Processing"
	StatusFailed     = "Failed"
)

// 支付方式常量
const (
	PaymentMethodPayPal      = "PayPal"
	PaymentMethodStripe      = "Stripe"
	PaymentMethodFlutterwave = "Flutterwave"
	PaymentMethodPaystack    = "Paystack"
	PaymentMethodRazorPay    = "RazorPay"
)

// 订单履约状态常量
const (
	OrderStatusPending    = "Pending"
	OrderStatusProcessing = "Processing"
	OrderStatusShipped    = "Shipped"
	OrderStatusFulfilled  = "Fulfilled"
	OrderStatusCancelled  = "Cancelled"
)

// 物流服务商常量
const (
	ShippingServiceDHL          = "DHL"
	ShippingServiceFedEx        = "FedEx"
	ShippingServiceUPS          = "UPS"
	ShippingServiceGIGLogistics = "GIG Logistics"
)

// 评分范围
const (
	RatingMin = 1
	RatingMax = 5
)

// 订单支付状态默认值。
// 注意：原始数据结构中 payment_status 复用了支付方式集合，而默认值 Processing 并不在该集合内，
// 这里保留默认值且不做集合校验。
const PaymentStatusDefault = "Processing"

// 默认文件路径
const (
	ProductImageDefault = "product.jpg"
	GalleryImageDefault = "gallery.jpg"
)

// 标识符生成参数
const (
	SKUPrefix             = "SKU"
	SKUDigits             = 5
	ShortIDDigits         = 6
	ProductSlugSuffixLen  = 2
	CouponDiscountDefault = 1
)

// 队列与任务常量
const (
	QueueDefault        = "default"
	TaskOrderStatusSync = "order:status_sync"
)

// Statuses 商品状态集合
var Statuses = []string{StatusPaid, StatusProcessing, StatusFailed}

// PaymentMethods 支付方式集合
var PaymentMethods = []string{
	PaymentMethodPayPal,
	PaymentMethodStripe,
	PaymentMethodFlutterwave,
	PaymentMethodPaystack,
	PaymentMethodRazorPay,
}

// OrderStatuses 订单状态集合
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusFulfilled,
	OrderStatusCancelled,
}

// ShippingServices 物流服务商集合
var ShippingServices = []string{
	ShippingServiceDHL,
	ShippingServiceFedEx,
	ShippingServiceUPS,
	ShippingServiceGIGLogistics,
}

var ratingLabels = map[int]string{
	1: "★☆☆☆☆",
	2: "★★☆☆☆",
	3: "★★★☆☆",
	4: "★★★★☆",
	5: "★★★★★",
}

// ValidStatus 判断商品状态是否合法
func ValidStatus(value string) bool {
	return contains(Statuses, value)
}

// ValidPaymentMethod 判断支付方式是否合法
func ValidPaymentMethod(value string) bool {
	return contains(PaymentMethods, value)
}

// ValidOrderStatus 判断订单状态是否合法
func ValidOrderStatus(value string) bool {
	return contains(OrderStatuses, value)
}

// ValidShippingService 判断物流服务商是否合法
func ValidShippingService(value string) bool {
	return contains(ShippingServices, value)
}

// ValidRating 判断评分是否在 1-5 之间
func ValidRating(value int) bool {
	return value >= RatingMin && value <= RatingMax
}

// RatingLabel 返回评分对应的星级文案，非法评分返回空字符串
func RatingLabel(value int) string {
	return ratingLabels[value]
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
