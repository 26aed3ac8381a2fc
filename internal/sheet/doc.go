// Package sheet models the editorial spreadsheet grid and implements the
// eligibility scan that turns marked-up rows into post candidates.
//
// A cell can reference a URL three ways: a link attached to a formatted text
// run, a link attached to the whole cell, or a bare URL inside the displayed
// text. Extraction tries them in that order and the first hit wins.
package sheet
