// Package mail sends account-verification messages. Delivery is best effort:
// the caller dispatches asynchronously, logs failures, and never retries.
package mail

import "context"

// Mailer delivers a verification link to a new account's address.
type Mailer interface {
	SendVerification(ctx context.Context, to, link string) error
}
