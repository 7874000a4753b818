// Package mdx implements a decoder and encoder for the binary MDX model
// format, version 800.
//
// The easiest way to decode and encode files is through the functions
// Deserialize and Serialize. These decode and encode directly between byte
// slices and Model structures. Decoder and Encoder additionally report
// non-fatal problems as warnings, and can trace their progress to a logger.
//
// Decoding is strict: the first malformed field aborts with an error that
// wraps one of the Err values of this package, and no partial model is
// returned. Encoding recomputes every size field from content, so a model
// may be edited freely before it is serialized.
package mdx

// FormatVersion is the version of the format implemented by this package.
const FormatVersion = 800

// MagicSize is the size of the magic number at the start of a file.
const MagicSize = 4
