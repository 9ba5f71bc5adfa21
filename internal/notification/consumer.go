// Package notification consumes donation events and delivers receipt
// emails off the request path.
package notification

import (
	"log"

	"github.com/sdpjss/community-registry-backend/utils"
)

// Start wires the donation-completed topic to the receipt mailer. Delivery
// is best effort: a bounced email never affects the recorded donation.
func Start() {
	utils.StartDonationConsumer(func(ev utils.DonationEvent) {
		if ev.DonorEmail == "" {
			return
		}
		if err := utils.SendDonationReceiptEmail(ev.DonorEmail, ev.DonorName, ev.ReceiptNo, ev.Amount); err != nil {
			log.Printf("⚠️ receipt email for %s failed: %v", ev.ReceiptNo, err)
		}
	})
}
