package domain

// BillingAddress is the billing block of the checkout form.
type BillingAddress struct {
	Name     string `json:"name"`
	Address1 string `json:"address1"`
	Address2 string `json:"address2,omitempty"`
	City     string `json:"city"`
	State    string `json:"state"`
	Zip      string `json:"zip"`
	Country  string `json:"country"`
}

// CheckoutForm is everything the customer fills in before submission.
type CheckoutForm struct {
	CustomerEmail     string         `json:"customer_email"`
	CustomerFirstName string         `json:"customer_first_name"`
	CustomerLastName  string         `json:"customer_last_name"`
	CustomerPhone     string         `json:"customer_phone"`
	BillingAddress    BillingAddress `json:"billing_address"`
	CustomerNotes     string         `json:"customer_notes"`
}

// CheckoutSessionRequest is the form plus the return URLs the payment page
// redirects back to.
type CheckoutSessionRequest struct {
	CheckoutForm
	SuccessURL string `json:"success_url"`
	CancelURL  string `json:"cancel_url"`
}

type CheckoutSessionResponse struct {
	URL       string `json:"url"`
	SessionID string `json:"session_id"`
}

// OrderConfirmation is the payload returned once a completed payment session
// is confirmed.
type OrderConfirmation struct {
	OrderID       string  `json:"order_id"`
	Status        string  `json:"status"`
	TotalAmount   float64 `json:"total_amount"`
	CustomerEmail string  `json:"customer_email"`
}
