package pipeline

import (
	"context"

	"autopost/internal/document"
	"autopost/internal/media"
	"autopost/internal/post"
	"autopost/internal/sheet"
)

// Action is the operator's disposition for an assembled post.
type Action int

const (
	// ActionPublish creates the post live and flips the Online checkbox.
	ActionPublish Action = iota
	// ActionDraft creates the post as a draft and leaves the sheet alone.
	ActionDraft
	// ActionSkip records the row as skipped without creating anything.
	ActionSkip
	// ActionExit stops the batch; rows already processed keep their results.
	ActionExit
)

// Decisions is everything the flow asks a human for. The interactive
// terminal implements it; tests use a scripted provider.
type Decisions interface {
	// RedactionStart picks the 1-based line where the story body begins.
	// The preview holds the truncated opening lines; the answer must be
	// within [1, lineCount].
	RedactionStart(ctx context.Context, preview []string, defaultLine, lineCount int) (int, error)

	// ChooseHeadline picks the post title. Options may be empty, and the
	// operator may answer with free text instead of an option.
	ChooseHeadline(ctx context.Context, candidate sheet.Candidate, contextPreview string, options []document.HeadlineOption) (string, error)

	// ChooseCutline picks the featured image caption. A zero option means
	// no caption.
	ChooseCutline(ctx context.Context, candidate sheet.Candidate, options []document.CutlineOption) (document.CutlineOption, error)

	// ConfirmPost shows the assembled row and returns the disposition.
	ConfirmPost(ctx context.Context, status *post.RowStatus) (Action, error)

	// ImageFallback handles a failed image upload.
	ImageFallback(ctx context.Context, reason string) (media.FallbackChoice, string, error)
}
