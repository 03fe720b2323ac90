// Package askdocs provides a retrieval-augmented chat service over crawled
// documentation sites. It crawls a documentation domain into a text corpus,
// indexes fixed-size chunks for semantic search, and answers natural
// language questions by combining vector retrieval with live page scraping
// before delegating to a hosted language model.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, gemini/).
package askdocs
