// Package app provides the orchestration layer for the booktrack application.
//
// It is the composition root: configuration, stored session, theme
// preferences, the API client, and the shared state store are initialized
// here and handed to the UI.
//
//  1. Load backend configuration from ~/.config/booktrack/config.toml
//  2. Initialize the HTTP client for the reading tracker API
//  3. Restore the saved session, if any, so a returning user lands on the
//     dashboard without signing in again
//  4. Load theme preferences
//  5. Start the TUI and block until the user exits or the context cancels
package app
