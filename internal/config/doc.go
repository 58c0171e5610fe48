// Package config defines the format-agnostic model of the optional settings
// file and the interfaces that format-specific loaders implement. Values in
// the model are pointers so a loader can tell "not set" apart from a zero
// value; unset values keep their built-in defaults.
package config
