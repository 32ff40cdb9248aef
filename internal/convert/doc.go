package convert

// Package convert runs the image-to-video conversion: it stages the selected
// images into a fresh engine workspace, writes the concat manifest, invokes
// the engine once with a fixed command line and publishes the produced video.
// One conversion runs at a time.
