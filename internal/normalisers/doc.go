// Package normalisers turns downloaded documents into plain text.
// Subpackages implement driven.TextExtractor for one file format each.
package normalisers
