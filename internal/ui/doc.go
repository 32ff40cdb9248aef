package ui

// Package ui contains the Fyne-based desktop user interface for the application.
// It wires the folder picker and parameter controls to the selection manager,
// runs conversions on the converter service and renders progress and the
// finished video. All UI strings are localized via Localization.
