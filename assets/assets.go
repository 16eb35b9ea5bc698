// Package assets holds the reference lists bundled with the binary.
package assets

import _ "embed"

// Categories is a JSON array of category labels offered when writing a review.
//
//go:embed categories.json
var Categories []byte

// Colleges is a JSON array of college objects used to seed the remote
// "colleges" collection.
//
//go:embed colleges.json
var Colleges []byte
