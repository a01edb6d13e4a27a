// Package darwin provides the macOS accessibility and event backends using
// the AXUIElement and CoreGraphics APIs. Importing it registers the provider
// with internal/platform.
//
// All functionality requires CGo (Objective-C frameworks). On other systems,
// or when CGo is disabled, the package compiles as a no-op stub.
package darwin
