package model

// Package model defines domain data structures used across the app: image
// inputs, conversion parameters, run state and the published conversion job.
// Structures are designed for direct binding in the UI and explicit state
// transitions.
