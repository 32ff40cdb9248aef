package platform

// Package platform contains OS/platform integration: reading image folders,
// media type detection, default save locations, and OS open/reveal.
