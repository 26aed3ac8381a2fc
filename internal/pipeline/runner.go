package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"autopost/internal/config"
	"autopost/internal/document"
	"autopost/internal/googleapi"
	"autopost/internal/logging"
	"autopost/internal/post"
	"autopost/internal/services"
	"autopost/internal/sheet"
	"autopost/internal/wordpress"
)

// DocumentSource fetches Google Docs by ID.
type DocumentSource interface {
	FetchDocument(ctx context.Context, documentID string) (*document.Document, error)
}

// SheetUpdater flips the Online checkbox for a published row.
type SheetUpdater interface {
	MarkOnline(ctx context.Context, spreadsheetID string, row, col int) error
}

// Publisher creates posts and reads them back.
type Publisher interface {
	CreatePost(ctx context.Context, post wordpress.NewPost) (*wordpress.Post, error)
	GetPost(ctx context.Context, id int) (*wordpress.Post, error)
}

// AuthorResolver maps requested author names to site users.
type AuthorResolver interface {
	ResolveAuthor(ctx context.Context, name string) (*wordpress.User, error)
}

// CategoryResolver maps requested category labels to category IDs.
type CategoryResolver interface {
	Resolve(names []string) []int
}

// ImageProcessor uploads featured images.
type ImageProcessor interface {
	ProcessImage(ctx context.Context, imageURL, caption string) (*wordpress.Media, error)
}

// Deps bundles the collaborators a Runner needs.
type Deps struct {
	Documents  DocumentSource
	Sheet      SheetUpdater
	Publisher  Publisher
	Authors    AuthorResolver
	Categories CategoryResolver
	Images     ImageProcessor
	Decisions  Decisions
	Logger     *slog.Logger
}

// Runner processes eligible rows one at a time.
type Runner struct {
	deps   Deps
	logger *slog.Logger

	spreadsheetID    string
	onlineColumn     int
	defaultStartLine int
	previewLines     int

	headlineCache map[string][]document.HeadlineOption
	cutlineCache  map[string][]document.CutlineOption
}

// New creates a Runner for one spreadsheet.
func New(cfg *config.Config, spreadsheetID string, deps Deps) *Runner {
	return &Runner{
		deps:             deps,
		logger:           logging.NewComponentLogger(deps.Logger, "pipeline"),
		spreadsheetID:    spreadsheetID,
		onlineColumn:     cfg.Sheet.Columns.Online,
		defaultStartLine: cfg.Redaction.DefaultStartLine,
		previewLines:     cfg.Redaction.PreviewLines,
		headlineCache:    make(map[string][]document.HeadlineOption),
		cutlineCache:     make(map[string][]document.CutlineOption),
	}
}

// Run processes every candidate in order. A row failure is recorded in that
// row's status and the batch continues; an exit request stops the batch and
// returns the results collected so far.
func (r *Runner) Run(ctx context.Context, candidates []sheet.Candidate) ([]post.RowStatus, error) {
	var results []post.RowStatus
	for _, candidate := range candidates {
		status, err := r.processRow(ctx, candidate)
		if err != nil {
			if errors.Is(err, services.ErrExit) {
				r.logger.Info("exit requested; stopping batch", logging.Int(logging.FieldRow, candidate.Row))
				return results, nil
			}
			r.logger.Error("row failed",
				logging.Int(logging.FieldRow, candidate.Row),
				logging.Error(err))
			status.Fail(err.Error())
		}
		results = append(results, *status)
	}
	return results, nil
}

// processRow runs the full flow for one candidate. The returned status is
// always usable, even when err is non-nil.
func (r *Runner) processRow(ctx context.Context, candidate sheet.Candidate) (*post.RowStatus, error) {
	status := &post.RowStatus{Row: candidate.Row, Section: candidate.Section}
	ctx = services.WithRow(ctx, candidate.Row)

	docID, err := googleapi.DocumentID(candidate.StoryURL)
	if err != nil {
		return status, services.Wrap(services.ErrValidation, "pipeline", "fetch story", "story url is not a document link", err)
	}
	doc, err := r.deps.Documents.FetchDocument(ctx, docID)
	if err != nil {
		return status, services.Wrap(services.ErrExternal, "pipeline", "fetch story", "story document fetch failed", err)
	}
	lines := doc.BodyLines()
	if len(lines) == 0 {
		return status, services.Wrap(services.ErrValidation, "pipeline", "fetch story", "story document has no content", nil)
	}

	title, err := r.chooseTitle(ctx, candidate, lines)
	if err != nil {
		return status, err
	}
	status.Title = title

	body, err := r.chooseBody(ctx, lines)
	if err != nil {
		return status, err
	}

	primaryAuthor := r.resolveAuthors(ctx, candidate, status)
	r.resolveCategories(candidate, status)

	if err := r.processImage(ctx, candidate, status); err != nil {
		return status, err
	}

	action, err := r.deps.Decisions.ConfirmPost(ctx, status)
	if err != nil {
		return status, err
	}
	switch action {
	case ActionExit:
		return status, services.ErrExit
	case ActionSkip:
		status.Outcome = post.OutcomeSkipped
		return status, nil
	}

	return status, r.createPost(ctx, candidate, status, wordpress.NewPost{
		Title:         title,
		Content:       body,
		Status:        postStatus(action),
		Author:        primaryAuthor,
		FeaturedMedia: status.Image.MediaID,
		Categories:    status.Categories.Applied,
	}, action)
}

func (r *Runner) chooseTitle(ctx context.Context, candidate sheet.Candidate, lines []string) (string, error) {
	options := r.headlineOptions(ctx, candidate.HeadlinesURL)
	title, err := r.deps.Decisions.ChooseHeadline(ctx, candidate, contextPreview(lines), options)
	if err != nil {
		return "", err
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return "", services.Wrap(services.ErrValidation, "pipeline", "choose headline", "no headline chosen", nil)
	}
	return title, nil
}

// chooseBody asks for the body start line and renders everything from there
// on as paragraphs.
func (r *Runner) chooseBody(ctx context.Context, lines []string) (string, error) {
	defaultLine := r.defaultStartLine
	if defaultLine < 1 || defaultLine > len(lines) {
		defaultLine = 1
	}
	start, err := r.deps.Decisions.RedactionStart(ctx, redactionPreview(lines, r.previewLines), defaultLine, len(lines))
	if err != nil {
		return "", err
	}
	if start < 1 || start > len(lines) {
		return "", services.Wrap(services.ErrValidation, "pipeline", "select body start",
			fmt.Sprintf("line %d outside 1..%d", start, len(lines)), nil)
	}
	return post.RenderBody(lines[start-1:]), nil
}

// resolveAuthors resolves every requested author. The first resolved user
// becomes the post author; the rest are reported for manual addition.
// Resolution failures do not fail the row.
func (r *Runner) resolveAuthors(ctx context.Context, candidate sheet.Candidate, status *post.RowStatus) int {
	ctx = services.WithStage(ctx, "resolve authors")
	status.Authors.Requested = candidate.Authors
	if len(candidate.Authors) == 0 {
		status.Authors.Status = "none requested"
		return 0
	}
	for _, name := range candidate.Authors {
		user, err := r.deps.Authors.ResolveAuthor(ctx, name)
		if err != nil {
			r.logger.WarnContext(ctx, "author not resolved",
				logging.String("author", name),
				logging.Error(err))
			continue
		}
		status.Authors.Applied = append(status.Authors.Applied, user.Name)
		if status.Authors.PrimaryAuthorID == 0 {
			status.Authors.PrimaryAuthorID = user.ID
		}
	}
	switch {
	case len(status.Authors.Applied) == 0:
		status.Authors.Status = "unresolved; site default applies"
	case len(status.Authors.Applied) < len(candidate.Authors):
		status.Authors.Status = fmt.Sprintf("%d of %d resolved", len(status.Authors.Applied), len(candidate.Authors))
	case len(status.Authors.Applied) > 1:
		status.Authors.Status = "primary set; add co-authors manually"
	default:
		status.Authors.Status = "resolved"
	}
	return status.Authors.PrimaryAuthorID
}

func (r *Runner) resolveCategories(candidate sheet.Candidate, status *post.RowStatus) {
	status.Categories.Requested = candidate.Categories
	status.Categories.Applied = r.deps.Categories.Resolve(candidate.Categories)
	status.Categories.Status = fmt.Sprintf("%d of %d matched", len(status.Categories.Applied), len(candidate.Categories))
}

// processImage uploads the featured image when the row has one, asking for
// a caption first. A cutline is only offered for rows with an image.
func (r *Runner) processImage(ctx context.Context, candidate sheet.Candidate, status *post.RowStatus) error {
	ctx = services.WithStage(ctx, "process image")
	if candidate.ImageURL == "" {
		status.Image.Status = "no image"
		return nil
	}
	status.Image.HasImage = true

	options := r.cutlineOptions(ctx, candidate.CutlinesURL)
	cutline, err := r.deps.Decisions.ChooseCutline(ctx, candidate, options)
	if err != nil {
		return err
	}
	caption := cutline.Cutline
	if cutline.PhotoCredit != "" {
		caption = strings.TrimSpace(caption + " Photo credit: " + cutline.PhotoCredit)
	}

	media, err := r.deps.Images.ProcessImage(ctx, candidate.ImageURL, caption)
	if err != nil {
		return err
	}
	if media == nil {
		status.Image.Status = "skipped"
		return nil
	}
	status.Image.MediaID = media.ID
	status.Image.Status = "uploaded"
	return nil
}

// createPost creates the post, verifies what the site stored, and updates
// the sheet for published rows.
func (r *Runner) createPost(ctx context.Context, candidate sheet.Candidate, status *post.RowStatus, payload wordpress.NewPost, action Action) error {
	ctx = services.WithStage(ctx, "create post")
	created, err := r.deps.Publisher.CreatePost(ctx, payload)
	if err != nil {
		return services.Wrap(services.ErrExternal, "pipeline", "create post", "post creation failed", err)
	}
	status.PostID = created.ID
	status.PostLink = created.Link

	if r.verifyPost(ctx, created.ID, status) {
		if status.Image.MediaID != 0 {
			status.Image.Status += " and verified"
		}
		if len(status.Categories.Applied) > 0 {
			status.Categories.Status += " and verified"
		}
	} else {
		if status.Image.MediaID != 0 {
			status.Image.Status += " but verification failed"
		}
		if len(status.Categories.Applied) > 0 {
			status.Categories.Status += " but verification failed"
		}
	}

	if action == ActionDraft {
		status.Outcome = post.OutcomeDraft
		status.SheetUpdate = "Not updated (draft)"
		return nil
	}

	status.Outcome = post.OutcomePublished
	if err := r.deps.Sheet.MarkOnline(ctx, r.spreadsheetID, candidate.Row, r.onlineColumn); err != nil {
		r.logger.WarnContext(ctx, "online checkbox not updated", logging.Error(err))
		status.SheetUpdate = "Update failed; set manually"
		return nil
	}
	status.SheetUpdate = "Online checkbox set"
	return nil
}

// verifyPost reads the created post back and checks that the featured media
// and categories persisted.
func (r *Runner) verifyPost(ctx context.Context, postID int, status *post.RowStatus) bool {
	stored, err := r.deps.Publisher.GetPost(ctx, postID)
	if err != nil {
		r.logger.WarnContext(ctx, "post verification fetch failed", logging.Error(err))
		return false
	}
	if status.Image.MediaID != 0 && stored.FeaturedMedia != status.Image.MediaID {
		return false
	}
	if len(stored.Categories) < len(status.Categories.Applied) {
		return false
	}
	return true
}

func (r *Runner) headlineOptions(ctx context.Context, url string) []document.HeadlineOption {
	if url == "" {
		return nil
	}
	if options, ok := r.headlineCache[url]; ok {
		return options
	}
	options := parseLinkedDoc(ctx, r, url, func(doc *document.Document) []document.HeadlineOption {
		return document.ParseHeadlines(doc, r.logger)
	})
	r.headlineCache[url] = options
	return options
}

func (r *Runner) cutlineOptions(ctx context.Context, url string) []document.CutlineOption {
	if url == "" {
		return nil
	}
	if options, ok := r.cutlineCache[url]; ok {
		return options
	}
	options := parseLinkedDoc(ctx, r, url, func(doc *document.Document) []document.CutlineOption {
		return document.ParseCutlines(doc, r.logger)
	})
	r.cutlineCache[url] = options
	return options
}

// parseLinkedDoc fetches and parses an options document, treating any
// failure as an empty option list so the operator can still type a custom
// value.
func parseLinkedDoc[T any](ctx context.Context, r *Runner, url string, parse func(*document.Document) []T) []T {
	docID, err := googleapi.DocumentID(url)
	if err != nil {
		r.logger.WarnContext(ctx, "options url is not a document link", logging.String("url", url))
		return nil
	}
	doc, err := r.deps.Documents.FetchDocument(ctx, docID)
	if err != nil {
		r.logger.WarnContext(ctx, "options document fetch failed",
			logging.String("url", url),
			logging.Error(err))
		return nil
	}
	return parse(doc)
}

func postStatus(action Action) string {
	if action == ActionDraft {
		return wordpress.StatusDraft
	}
	return wordpress.StatusPublish
}
