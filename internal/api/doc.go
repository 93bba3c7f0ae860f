// Package api handles incoming HTTP requests, routing, request validation,
// and response formatting. It adapts HTTP concerns onto the auth and
// content services: handlers decode and validate payloads, call into the
// service layer, and map the resulting errors to safe client responses.
package api
