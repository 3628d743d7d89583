// Package tracker provides an HTTP client for the Book Tracker API.
//
// # Overview
//
// This package defines the API client for the booktrack backend: signup and
// login, the books CRUD endpoints, aggregate reading statistics, and
// AI-generated recommendations. It handles HTTP communication, JSON
// serialization, bearer-token injection, and type-safe representation of the
// API schema.
//
// # Client Usage
//
// Create a client using the API base URL from configuration:
//
//	client, err := tracker.NewClient("http://127.0.0.1:8000")
//	if err != nil {
//		log.Fatalf("failed to create client: %v", err)
//	}
//
//	resp, err := client.Login(ctx, tracker.Credentials{Email: email, Password: password})
//	if err != nil {
//		// *tracker.APIError carries the backend's detail message.
//	}
//	client.SetToken(resp.AccessToken)
//
//	books, err := client.ListBooks(ctx, tracker.StatusReading)
//
// # Request Handling
//
// All requests flow through a single chokepoint that:
//   - Uses context for cancellation control
//   - Sets Content-Type and Accept to application/json
//   - Attaches Authorization: Bearer <token> when a token is stored
//   - Performs exactly one round trip per call (no retries)
//
// # Error Handling
//
// Non-2xx responses are parsed as JSON and returned as *APIError carrying the
// backend's detail field when present, otherwise a generic status message.
// HTTP 204 yields no body and a nil error. Transport and decode failures are
// wrapped with descriptive context using fmt.Errorf.
//
// # Thread Safety
//
// The Client is safe for concurrent use; the token is guarded by a mutex
// because Bubble Tea commands run the client from separate goroutines.
package tracker
