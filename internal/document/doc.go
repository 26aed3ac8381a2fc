// Package document parses rich-text editorial documents into named sections
// and option lists.
//
// Three document shapes are handled: the free-form story ("redaction")
// document, and the headlines and cutlines documents, which group
// "identifier: text" entries under category marker lines and may be split
// across named tabs. Human-authored markers vary, so all parsers are
// heuristic: a malformed line is skipped, never fatal, and an empty document
// yields an empty result.
package document
