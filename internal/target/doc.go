// Package target describes the supported packaging targets: the six OS
// identifiers, the layout family each belongs to, the rule deciding whether
// the embedded runtime runs desktop-native, and the window Resolution type.
package target
