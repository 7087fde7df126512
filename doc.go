// Package twic implements Twic (Tiny Writable Inline Config), a minimal
// writable inline syntax for configuration snippets.
//
// A Value is a tagged union over six kinds: null, bool, number, string,
// vector, and map. The package models the tree, equality over it, and
// path-based indexing into it. Decoding from and encoding to Twic source
// text live in the sibling twic/decode and twic/encode packages.
package twic
