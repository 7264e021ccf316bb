package utmify

// MapStatus translates the payment provider's status vocabulary into the
// tracking API's enum. Total: unrecognized input falls back to
// waiting_payment, so only valid enum values ever reach the wire.
func MapStatus(status string) OrderStatus {
	switch status {
	case "waiting_payment", "pending":
		return StatusWaitingPayment
	case "approved", "paid":
		return StatusPaid
	case "refused", "cancelled":
		return StatusRefused
	case "refunded":
		return StatusRefunded
	case "chargeback":
		return StatusChargedback
	default:
		return StatusWaitingPayment
	}
}
