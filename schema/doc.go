// Package schema defines the wire types exchanged with the LiftLog service:
// credentials, user profile, catalog entities and request/response payloads.
package schema
