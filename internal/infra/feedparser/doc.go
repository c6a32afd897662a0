// Package feedparser extracts feed entries from raw RSS markup.
//
// Parsing is deliberately tolerant: it scans for <item> blocks with regular
// expressions instead of decoding XML, so malformed or truncated documents
// degrade to fewer entries rather than failing. Tag lookup goes through the
// TextExtractor capability so the matching strategy can be swapped and tested
// independently of the item scanner.
package feedparser
