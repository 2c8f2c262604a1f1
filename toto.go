// Package toto extracts lottery draw summaries from rendered pages or
// arbitrary JSON payloads and formats them into short HTML messages for
// delivery through a chat bot.
//
// This package contains domain types, interfaces and the extraction core
// following Ben Johnson's Standard Package Layout. Implementations of the
// I/O boundaries live in subdirectories named after their primary
// dependency (e.g., rod/, goquery/, telegram/, sqlite/).
package toto
