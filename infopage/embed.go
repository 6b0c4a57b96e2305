// Package infopage provides the embedded help page served at the root path.
//
// This package uses Go's embed directive to include the static HTML at
// compile time, so the simulator ships as a single binary with no external
// asset files.
//
// The page describes the stream endpoint, the event cadence and the event
// type vocabulary. It is served by the server package at "/".
package infopage

import "embed"

// Assets is an embedded filesystem containing the info page.
//
// The filesystem structure is:
//
//	assets/
//	  index.html    - Static help page with inline CSS
//
//go:embed assets/*
var Assets embed.FS
