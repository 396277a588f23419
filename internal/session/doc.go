// Package session stores the results of HTTP extractions.
//
// Every extraction gets a directory named by a random UUID below
// <temp_dir>/sessions holding the uploaded page, the diagram PNGs and
// manifest.json. Sessions expire after a TTL and the oldest are dropped
// when more than the configured number exist.
package session
