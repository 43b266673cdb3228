// Package translate calls a remote language-model API to obtain a
// translation and an example sentence for each word. Remote failures are
// classified into a small error taxonomy; rate-limited requests are
// retried with bounded exponential backoff, everything else fails the
// single word immediately. A circuit breaker stops hammering a service
// that keeps failing outright.
package translate
