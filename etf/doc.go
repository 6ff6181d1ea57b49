// Package etf converts between the Erlang External Term Format, JSON
// text and a dynamic value tree.
//
// Only the subset of the format used by JSON-shaped gateway payloads is
// supported: maps, proper lists, atoms, binaries, char lists, integers
// up to 64 bits and floats. Every encoded term starts with the version
// byte 131; a term may also be wrapped in a zlib envelope (tag 80).
//
// # Decoding
//
// DecodeToJSON streams a term straight to JSON text without building a
// tree:
//
//	json, err := etf.DecodeToJSON(payload)
//
// Unmarshal builds a *Value instead. Both reject inputs that run past
// the end of the buffer, carry unknown tags, or nest deeper than
// DecodeOptions.MaxDepth.
//
// # Text rule
//
// Atoms and binaries spelling true, false, nil or null become the JSON
// literals true, false and null. Other text is quoted; the two-byte
// sequences \b \f \n \r \t collapse to their control characters.
// Char lists (STRING_EXT) are written as the decimal digits of each
// byte, and SMALL_BIG_EXT integers as quoted decimal strings.
//
// # Encoding
//
// Marshal writes a *Value using the smallest integer form that holds
// it. Objects become maps keyed by binaries, arrays become proper
// lists, strings become binaries, and booleans and null become the
// atoms true, false and nil.
//
//	v := etf.Object()
//	_ = v.Put("op", etf.Uint(2))
//	b, err := etf.Marshal(v)
//
// # Scanning
//
// Measure and Skip walk one value with the decoder's checks but
// without producing output, so callers can step over members they do
// not care about.
package etf
