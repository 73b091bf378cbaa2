// Package logtail reads the tail of indexdeck's own log file for the activity
// view.
//
// # Reading Log Files
//
// Read extracts the last maxLines from a file with a ring buffer, so memory
// stays O(maxLines) regardless of file size:
//
//  1. Allocate ring buffer of size maxLines
//  2. For each line in file:
//     - Store line at current index
//     - Increment index (wrapping at maxLines)
//     - Track total lines seen
//  3. Return the buffer starting from the oldest line
//
// A non-positive maxLines returns the whole file. A missing file yields no
// lines and no error, since the logger creates it lazily.
//
// # Decoding
//
// The logger writes zap JSON lines. Parse turns one into an Entry with its
// level, message, timestamp and remaining structured fields. Lines that are
// not JSON (a panic trace, for instance) are kept verbatim as info entries
// rather than dropped. Filter narrows entries to a minimum level.
package logtail
