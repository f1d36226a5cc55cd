// Package packerrors defines the error taxonomy shared by the packaging
// pipeline: validation, XML parsing, missing project name, resource reads,
// unsupported OS and archive stream failures.
//
// Errors carry a Kind with a stable string code so transports can report a
// machine-readable classification while the wrapped cause stays available
// through errors.Is and errors.As.
package packerrors
