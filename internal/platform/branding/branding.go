// Package branding holds the product name shown to clients.
package branding

// AppName is the product name.
const AppName = "Oripheon"
