// Package googleapi provides thin REST clients for the Google Sheets, Docs,
// and Drive APIs. The client takes a bearer access token and decodes API
// payloads into the internal sheet and document models. Credential
// acquisition and token refresh are the caller's problem.
package googleapi
