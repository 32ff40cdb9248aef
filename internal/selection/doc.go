package selection

// Package selection holds the user's image selection and conversion
// parameters. It performs no I/O: callers hand in files already read from
// disk and read back immutable snapshots.
