package post

// Outcome is the final disposition of one spreadsheet row.
type Outcome string

const (
	OutcomePublished Outcome = "published"
	OutcomeDraft     Outcome = "draft"
	OutcomeSkipped   Outcome = "skipped"
	OutcomeFailed    Outcome = "failed"
)

// ImageStatus records what happened to the row's featured image.
type ImageStatus struct {
	HasImage bool
	MediaID  int
	Status   string
}

// AuthorStatus records author resolution for the row. Requested holds the
// names from the spreadsheet; Applied holds the account names actually used.
type AuthorStatus struct {
	Requested       []string
	Applied         []string
	PrimaryAuthorID int
	Status          string
}

// CategoryStatus records category matching for the row.
type CategoryStatus struct {
	Requested []string
	Applied   []int
	Status    string
}

// RowStatus accumulates everything that happened while processing one row.
// Fields fill in additively as the row moves through the flow.
type RowStatus struct {
	Row      int
	Section  string
	Title    string
	PostID   int
	PostLink string

	Image      ImageStatus
	Authors    AuthorStatus
	Categories CategoryStatus

	// SheetUpdate describes whether the online checkbox was flipped.
	SheetUpdate string

	Outcome     Outcome
	ErrorDetail string
}

// Fail marks the row failed with the given detail, keeping whatever
// partial status was already recorded.
func (s *RowStatus) Fail(detail string) {
	s.Outcome = OutcomeFailed
	s.ErrorDetail = detail
}
