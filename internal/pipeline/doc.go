// Package pipeline drives the per-row publishing flow: fetch the story
// document, pick a headline and body start, resolve authors and categories,
// upload the featured image, and create the post after an operator
// keystroke. Rows are processed one at a time; a failure in one row is
// recorded and the next row proceeds, while an exit request stops the batch
// with prior work intact.
package pipeline
