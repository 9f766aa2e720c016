// Package abi provides low-level helpers shared by the codec: overflow-safe
// arithmetic, buffer growth and type naming for error messages.
//
// This package is internal to plainwire.
package abi
