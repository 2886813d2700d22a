// Package store holds the current credential pair: the access token that
// authorizes requests and the refresh token that authorizes renewal. The pair
// is replaced wholesale on renewal and cleared on sign-out.
package store
