package weft

// Version is the library version, surfaced by the bundled commands.
const Version = "0.1.0"
