// Package cli is the reference consumer of the session contract: a small
// command line client exercising sign-in, sign-up, profile and avatar
// updates and the exercise catalog against a LiftLog service.
package cli
