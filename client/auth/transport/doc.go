// Package transport implements the authenticated HTTP gateway: a
// RoundTripper that decorates every outbound request with the current access
// token and a renewal coordinator guaranteeing exactly one renewal exchange
// per expiry event. Requests faulting while an exchange is in flight are
// parked and replayed, in submission order, with the renewed credential; if
// the exchange itself is rejected, local credentials are cleared and every
// parked request fails with a distinct session-expired error.
package transport
