package stripe

// Wire shapes for the two Stripe endpoints this service calls. Only the
// fields the application reads are declared.

type sessionResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type chargeResponse struct {
	ID             string `json:"id"`
	Amount         int64  `json:"amount"`
	AmountCaptured int64  `json:"amount_captured"`
	Status         string `json:"status"`
	Paid           bool   `json:"paid"`
	Refunded       bool   `json:"refunded"`
	BillingDetails struct {
		Email string `json:"email"`
	} `json:"billing_details"`
}

type chargeSearchResponse struct {
	Data    []chargeResponse `json:"data"`
	HasMore bool             `json:"has_more"`
}

type errorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
