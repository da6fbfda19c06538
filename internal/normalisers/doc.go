// Package normalisers adapts raw input into the shapes the core understands.
//
// The extraction normaliser is the only one: it reads the output of an
// external entity/relation extractor, tolerating the usual damage such
// output picks up on its way (code fences, response envelopes, trailing
// commas, double encoding), and produces a domain.ExtractionResult.
package normalisers
