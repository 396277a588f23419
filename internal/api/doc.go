// Package api exposes diagram extraction over HTTP.
//
// Routes:
//
//	GET    /health
//	POST   /api/v1/extract                   multipart: file, debug, config
//	GET    /api/v1/files/{session}/{name}    ?keep=true keeps the file
//	GET    /api/v1/sessions/{session}
//	DELETE /api/v1/sessions/{session}
//
// Errors are returned as
//
//	{"success": false, "error": {"code": "...", "message": "...", "details": "..."}, "timestamp": "..."}
//
// Every extraction lives in its own session directory (see package session)
// and downloaded files are deleted unless keep=true is passed.
package api
