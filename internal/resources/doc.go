// Package resources addresses the read-only resource store: static variant
// trees with their GUI script templates, native runtime trees and launcher
// stubs per OS, platform templates, and shared icons. The directory layout
// is fixed for compatibility with existing resource bundles.
package resources
