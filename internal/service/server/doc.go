// Package server exposes the packaging pipeline over HTTP: POST /package
// accepts the project document as the request body with filename, os,
// resolution and useCompleteSnap as query parameters, and streams back the
// finished archive. Failures come back as structured JSON with a stable
// error code.
package server
