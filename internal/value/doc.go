// Package value provides the dynamic value model produced by shape
// generators.
//
// Values are rendered with MarshalCanonical, a canonical JSON form: object
// keys sorted by UTF-16 code units, strings NFC normalized, no HTML escaping,
// no floats. Two values are equal exactly when their canonical forms are
// byte-identical, which is what ID hashes.
package value
