// Package formats provides parsers for 3D model interchange formats.
package formats

// Note: 3MF reading is implemented in tmf.go, tmf_objects.go and tmf_resolve.go
// Note: binary STL writing is implemented in stl.go
