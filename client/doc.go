// Package client is the typed HTTP gateway to the LiftLog service. Every
// call flows through one http.Client so the authenticated transport covers
// all endpoints, and every failure is classified once, at this boundary,
// into the apierror taxonomy.
package client
