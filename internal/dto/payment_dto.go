package dto

type PaymentRequest struct {
	BookingUID    string `json:"booking_uid"`
	Amount        int64  `json:"amount"`
	PaymentMethod string `json:"payment_method"`
	Contact       string `json:"contact,omitempty"`
	// AttemptID identifies one logical payment attempt. Clients retrying after
	// a network failure should resend the same value to avoid a duplicate
	// gateway order; when omitted the server generates one and returns it.
	AttemptID string `json:"attempt_id,omitempty"`
}

type PaymentResponse struct {
	Token         string `json:"token"`
	Message       string `json:"message"`
	AttemptID     string `json:"attempt_id"`
	PaymentID     string `json:"payment_id"`
	PaymentStatus string `json:"payment_status"`
}

// RazorpayWebhook is the subset of the gateway's webhook envelope this service
// consumes.
type RazorpayWebhook struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity RazorpayWebhookPayment `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

type RazorpayWebhookPayment struct {
	ID      string            `json:"id"`
	OrderID string            `json:"order_id"`
	Status  string            `json:"status"`
	Notes   map[string]string `json:"notes"`
}
