package pipeline_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"autopost/internal/document"
	"autopost/internal/logging"
	"autopost/internal/pipeline"
	"autopost/internal/post"
	"autopost/internal/sheet"
	"autopost/internal/testsupport"
	"autopost/internal/wordpress"
)

type fakeDocs struct {
	docs    map[string]*document.Document
	fetches []string
}

func (f *fakeDocs) FetchDocument(_ context.Context, documentID string) (*document.Document, error) {
	f.fetches = append(f.fetches, documentID)
	doc, ok := f.docs[documentID]
	if !ok {
		return nil, errors.New("document not found")
	}
	return doc, nil
}

type fakeSheet struct {
	marked [][2]int
	err    error
}

func (f *fakeSheet) MarkOnline(_ context.Context, _ string, row, col int) error {
	if f.err != nil {
		return f.err
	}
	f.marked = append(f.marked, [2]int{row, col})
	return nil
}

type fakePublisher struct {
	created   []wordpress.NewPost
	nextID    int
	createErr error
	getErr    error
	// stored overrides what GetPost reports, when set.
	stored *wordpress.Post
}

func (f *fakePublisher) CreatePost(_ context.Context, payload wordpress.NewPost) (*wordpress.Post, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, payload)
	f.nextID++
	return &wordpress.Post{
		ID:            f.nextID + 90,
		Status:        payload.Status,
		Link:          "https://wp.test/?p=99",
		FeaturedMedia: payload.FeaturedMedia,
		Categories:    payload.Categories,
	}, nil
}

func (f *fakePublisher) GetPost(_ context.Context, id int) (*wordpress.Post, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.stored != nil {
		return f.stored, nil
	}
	last := f.created[len(f.created)-1]
	return &wordpress.Post{ID: id, FeaturedMedia: last.FeaturedMedia, Categories: last.Categories}, nil
}

type fakeAuthors struct {
	users map[string]*wordpress.User
}

func (f *fakeAuthors) ResolveAuthor(_ context.Context, name string) (*wordpress.User, error) {
	name = strings.TrimSpace(strings.SplitN(name, ",", 2)[0])
	if user, ok := f.users[name]; ok {
		return user, nil
	}
	return nil, errors.New("cannot resolve")
}

type fakeCategories struct{ ids map[string]int }

func (f *fakeCategories) Resolve(names []string) []int {
	var out []int
	for _, name := range names {
		if id, ok := f.ids[name]; ok {
			out = append(out, id)
		}
	}
	return out
}

type fakeImages struct {
	media    *wordpress.Media
	err      error
	captions []string
}

func (f *fakeImages) ProcessImage(_ context.Context, _, caption string) (*wordpress.Media, error) {
	f.captions = append(f.captions, caption)
	return f.media, f.err
}

func storyDoc(lines ...string) *document.Document {
	tab := document.Tab{}
	for _, line := range lines {
		tab.Paragraphs = append(tab.Paragraphs, document.Paragraph{Runs: []string{line}})
	}
	return &document.Document{Tabs: []document.Tab{tab}}
}

func headlinesDoc() *document.Document {
	tab := document.Tab{}
	for _, line := range []string{"Headlines", "Sports:", "jdoe: Team wins title game"} {
		tab.Paragraphs = append(tab.Paragraphs, document.Paragraph{Runs: []string{line}})
	}
	return &document.Document{Tabs: []document.Tab{tab}}
}

func cutlinesDoc() *document.Document {
	tab := document.Tab{}
	for _, line := range []string{"Cutlines", "*jdoe: Player smiles PHOTO CREDIT: J. Smith"} {
		tab.Paragraphs = append(tab.Paragraphs, document.Paragraph{Runs: []string{line}})
	}
	return &document.Document{Tabs: []document.Tab{tab}}
}

type fixture struct {
	docs       *fakeDocs
	sheet      *fakeSheet
	publisher  *fakePublisher
	images     *fakeImages
	decisions  *testsupport.ScriptedDecisions
	runner     *pipeline.Runner
	categories *fakeCategories
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		docs: &fakeDocs{docs: map[string]*document.Document{
			"story1": storyDoc("Headline: Team wins", "By Jane Doe", "", "First paragraph.", "Second paragraph."),
			"heads1": headlinesDoc(),
			"cuts1":  cutlinesDoc(),
		}},
		sheet:      &fakeSheet{},
		publisher:  &fakePublisher{},
		images:     &fakeImages{media: &wordpress.Media{ID: 55}},
		decisions:  &testsupport.ScriptedDecisions{},
		categories: &fakeCategories{ids: map[string]int{"Sports": 2, "News": 1}},
	}
	cfg := testsupport.NewConfig(t)
	f.runner = pipeline.New(cfg, "sheet1", pipeline.Deps{
		Documents:  f.docs,
		Sheet:      f.sheet,
		Publisher:  f.publisher,
		Authors:    &fakeAuthors{users: map[string]*wordpress.User{"Jane Doe": {ID: 7, Name: "Jane Doe"}}},
		Categories: f.categories,
		Images:     f.images,
		Decisions:  f.decisions,
		Logger:     logging.NewNop(),
	})
	return f
}

func candidate(row int) sheet.Candidate {
	return sheet.Candidate{
		Row:          row,
		Section:      "Sports",
		StoryURL:     "https://docs.google.com/document/d/story1/edit",
		ImageURL:     "https://drive.google.com/file/d/img1/view",
		Authors:      []string{"Jane Doe"},
		Categories:   []string{"Sports"},
		HeadlinesURL: "https://docs.google.com/document/d/heads1/edit",
		CutlinesURL:  "https://docs.google.com/document/d/cuts1/edit",
	}
}

func TestRunPublishHappyPath(t *testing.T) {
	f := newFixture(t)

	results, err := f.runner.Run(context.Background(), []sheet.Candidate{candidate(8)})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	status := results[0]
	if status.Outcome != post.OutcomePublished {
		t.Fatalf("outcome = %q (%s)", status.Outcome, status.ErrorDetail)
	}
	if status.Title != "Team wins title game" {
		t.Fatalf("title = %q", status.Title)
	}
	if status.Image.MediaID != 55 || status.Image.Status != "uploaded and verified" {
		t.Fatalf("image = %+v", status.Image)
	}
	if status.Authors.PrimaryAuthorID != 7 {
		t.Fatalf("authors = %+v", status.Authors)
	}
	if len(status.Categories.Applied) != 1 || status.Categories.Applied[0] != 2 {
		t.Fatalf("categories = %+v", status.Categories)
	}
	if status.SheetUpdate != "Online checkbox set" {
		t.Fatalf("sheet update = %q", status.SheetUpdate)
	}
	if len(f.sheet.marked) != 1 || f.sheet.marked[0][0] != 8 {
		t.Fatalf("marked = %v", f.sheet.marked)
	}

	created := f.publisher.created[0]
	if created.Status != wordpress.StatusPublish || created.Author != 7 || created.FeaturedMedia != 55 {
		t.Fatalf("payload = %+v", created)
	}
	// Default start line 4: body begins at "First paragraph."
	if !strings.HasPrefix(created.Content, "<p>First paragraph.</p>") {
		t.Fatalf("content = %q", created.Content)
	}
	// Cutline and credit feed the image caption.
	if len(f.images.captions) != 1 || !strings.Contains(f.images.captions[0], "Player smiles") {
		t.Fatalf("captions = %v", f.images.captions)
	}
	if !strings.Contains(f.images.captions[0], "J. Smith") {
		t.Fatalf("caption missing credit: %q", f.images.captions[0])
	}
}

func TestRunDraftLeavesSheetAlone(t *testing.T) {
	f := newFixture(t)
	f.decisions.Actions = []pipeline.Action{pipeline.ActionDraft}

	results, err := f.runner.Run(context.Background(), []sheet.Candidate{candidate(8)})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	status := results[0]
	if status.Outcome != post.OutcomeDraft {
		t.Fatalf("outcome = %q", status.Outcome)
	}
	if status.SheetUpdate != "Not updated (draft)" {
		t.Fatalf("sheet update = %q", status.SheetUpdate)
	}
	if len(f.sheet.marked) != 0 {
		t.Fatalf("marked = %v, want none", f.sheet.marked)
	}
	if f.publisher.created[0].Status != wordpress.StatusDraft {
		t.Fatalf("payload status = %q", f.publisher.created[0].Status)
	}
}

func TestRunSkipCreatesNothing(t *testing.T) {
	f := newFixture(t)
	f.decisions.Actions = []pipeline.Action{pipeline.ActionSkip}

	results, err := f.runner.Run(context.Background(), []sheet.Candidate{candidate(8)})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if results[0].Outcome != post.OutcomeSkipped {
		t.Fatalf("outcome = %q", results[0].Outcome)
	}
	if len(f.publisher.created) != 0 {
		t.Fatalf("created = %+v, want none", f.publisher.created)
	}
}

func TestRunExitStopsBatch(t *testing.T) {
	f := newFixture(t)
	f.decisions.Actions = []pipeline.Action{pipeline.ActionPublish, pipeline.ActionExit}

	results, err := f.runner.Run(context.Background(), []sheet.Candidate{candidate(8), candidate(9), candidate(10)})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1 (first row only)", len(results))
	}
	if results[0].Outcome != post.OutcomePublished {
		t.Fatalf("outcome = %q", results[0].Outcome)
	}
	if len(f.publisher.created) != 1 {
		t.Fatalf("created = %d posts, want 1", len(f.publisher.created))
	}
}

func TestRunRowFailureContinuesBatch(t *testing.T) {
	f := newFixture(t)
	broken := candidate(8)
	broken.StoryURL = "https://docs.google.com/document/d/missing/edit"

	results, err := f.runner.Run(context.Background(), []sheet.Candidate{broken, candidate(9)})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Outcome != post.OutcomeFailed || results[0].ErrorDetail == "" {
		t.Fatalf("first result = %+v", results[0])
	}
	if results[1].Outcome != post.OutcomePublished {
		t.Fatalf("second result = %+v", results[1])
	}
}

func TestRunNoImageSkipsCutline(t *testing.T) {
	f := newFixture(t)
	noImage := candidate(8)
	noImage.ImageURL = ""

	results, err := f.runner.Run(context.Background(), []sheet.Candidate{noImage})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	status := results[0]
	if status.Image.HasImage || status.Image.Status != "no image" {
		t.Fatalf("image = %+v", status.Image)
	}
	if len(f.images.captions) != 0 {
		t.Fatalf("image processor called: %v", f.images.captions)
	}
	if f.publisher.created[0].FeaturedMedia != 0 {
		t.Fatalf("payload = %+v", f.publisher.created[0])
	}
}

func TestRunOptionsDocumentsFetchedOnce(t *testing.T) {
	f := newFixture(t)

	_, err := f.runner.Run(context.Background(), []sheet.Candidate{candidate(8), candidate(9)})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	var headlineFetches int
	for _, id := range f.docs.fetches {
		if id == "heads1" {
			headlineFetches++
		}
	}
	if headlineFetches != 1 {
		t.Fatalf("headlines fetched %d times, want 1", headlineFetches)
	}
}

func TestRunVerificationFailureReflectedInStatus(t *testing.T) {
	f := newFixture(t)
	f.publisher.stored = &wordpress.Post{ID: 91, FeaturedMedia: 0, Categories: nil}

	results, err := f.runner.Run(context.Background(), []sheet.Candidate{candidate(8)})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	status := results[0]
	if status.Outcome != post.OutcomePublished {
		t.Fatalf("outcome = %q", status.Outcome)
	}
	if !strings.HasSuffix(status.Image.Status, "but verification failed") {
		t.Fatalf("image status = %q", status.Image.Status)
	}
}

func TestRunMarkOnlineFailureIsNonFatal(t *testing.T) {
	f := newFixture(t)
	f.sheet.err = errors.New("sheet locked")

	results, err := f.runner.Run(context.Background(), []sheet.Candidate{candidate(8)})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	status := results[0]
	if status.Outcome != post.OutcomePublished {
		t.Fatalf("outcome = %q", status.Outcome)
	}
	if status.SheetUpdate != "Update failed; set manually" {
		t.Fatalf("sheet update = %q", status.SheetUpdate)
	}
}
