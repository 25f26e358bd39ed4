// Package mail provides the outbound email transports and the named
// template registry used by the notification gateway.
package mail

import "context"

// Transport delivers one multipart message. One attempt per call, no
// retries or queuing.
type Transport interface {
	Deliver(ctx context.Context, to, subject, htmlBody, textBody string) error
}
