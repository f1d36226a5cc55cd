// Package config defines packager settings and provides helpers to load,
// validate and save them in YAML format.
//
// The Config type holds the resource store root, the serve-mode listen
// address and the request limits.
package config
