// Package session holds the signed-in identity across the process lifetime:
// the current user, the authentication status and the credential pair backing
// them. Screens drive it through SignIn, SignUp, SignOut, UpdateProfile and
// UpdateAvatar, and react to it through Subscribe. Mutations are committed
// only after server confirmation, and a failed credential renewal degrades
// to an explicit sign-out visible to every subscriber.
package session
