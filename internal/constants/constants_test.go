package constants

import "testing"

func TestChoiceSets(t *testing.T) {
	if !ValidStatus(StatusProcessing) || ValidStatus("Published") {
		t.Fatalf("unexpected status validation")
	}
	if !ValidPaymentMethod(PaymentMethodRazorPay) || ValidPaymentMethod("Processing") {
		t.Fatalf("unexpected payment method validation")
	}
	if !ValidShippingService(ShippingServiceGIGLogistics) || ValidShippingService("gig logistics") {
		t.Fatalf("shipping service labels must match exactly")
	}
	for _, status := range OrderStatuses {
		if !ValidOrderStatus(status) {
			t.Fatalf("order status %s should be valid", status)
		}
	}
	if ValidOrderStatus("") {
		t.Fatalf("empty order status should be invalid")
	}
}

func TestRatingLabel(t *testing.T) {
	cases := map[int]string{
		0: "",
		1: "★☆☆☆☆",
		5: "★★★★★",
		6: "",
	}
	for rating, want := range cases {
		if got := RatingLabel(rating); got != want {
			t.Fatalf("rating %d: want %q got %q", rating, want, got)
		}
		if ValidRating(rating) != (want != "") {
			t.Fatalf("rating %d validity mismatch", rating)
		}
	}
}
