// Package githubapi encodes resolved gitrepo objects into GitHub-API-shaped
// JSON response bodies. Each encoder is a pure function: no I/O, no
// resolution logic, just object -> wire shape. Field layouts reuse
// google/go-github/v68/github's pointer-field structs (and its
// github.String/github.Int/github.Bool helpers) wherever they model the
// endpoint exactly, so the emitted JSON keys and nesting match upstream
// GitHub byte-for-byte; a handful of local types fill in shapes go-github
// doesn't model as a producer (the contents endpoint's "_links" object, the
// top-level tree envelope).
package githubapi
