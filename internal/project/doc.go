// Package project reads the declared name out of a project XML document
// with a single forward token scan that short-circuits at the first match.
package project
