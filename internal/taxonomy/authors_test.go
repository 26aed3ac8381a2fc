package taxonomy

import (
	"context"
	"errors"
	"strings"
	"testing"

	"autopost/internal/logging"
	"autopost/internal/services"
	"autopost/internal/wordpress"
)

type fakeDirectory struct {
	users     []wordpress.User
	searchErr error
	created   []wordpress.NewUser
	createErr error
	nextID    int
}

func (f *fakeDirectory) SearchUsers(_ context.Context, query string) ([]wordpress.User, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	// WordPress search matches on individual terms, not the whole phrase.
	var matches []wordpress.User
	for _, user := range f.users {
		name := strings.ToLower(user.Name)
		for _, token := range strings.Fields(strings.ToLower(query)) {
			if strings.Contains(name, strings.Trim(token, ".")) {
				matches = append(matches, user)
				break
			}
		}
	}
	return matches, nil
}

func (f *fakeDirectory) CreateUser(_ context.Context, user wordpress.NewUser) (*wordpress.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, user)
	f.nextID++
	return &wordpress.User{ID: f.nextID + 100, Name: user.Name, Slug: user.Username}, nil
}

func newResolver(directory UserDirectory) *Resolver {
	return NewResolver(directory, "author", []string{"example.com"}, logging.NewNop())
}

func TestResolveAuthorExactMatch(t *testing.T) {
	directory := &fakeDirectory{users: []wordpress.User{
		{ID: 3, Name: "Jane Doelittle"},
		{ID: 7, Name: "jane doe"},
	}}

	user, err := newResolver(directory).ResolveAuthor(context.Background(), "Jane Doe")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if user.ID != 7 {
		t.Fatalf("user = %+v, want exact match id 7", user)
	}
	if len(directory.created) != 0 {
		t.Fatal("no account should be created")
	}
}

func TestResolveAuthorDropsTitleAfterComma(t *testing.T) {
	directory := &fakeDirectory{users: []wordpress.User{{ID: 7, Name: "Jane Doe"}}}

	user, err := newResolver(directory).ResolveAuthor(context.Background(), "Jane Doe, Sports Editor")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if user.ID != 7 {
		t.Fatalf("user = %+v", user)
	}
}

func TestResolveAuthorFuzzyMatch(t *testing.T) {
	directory := &fakeDirectory{users: []wordpress.User{{ID: 9, Name: "Jane A. Doe"}}}

	// The site name differs from the request; the first search hit is used.
	user, err := newResolver(directory).ResolveAuthor(context.Background(), "Jane A. Doe Jr.")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if user.ID != 9 {
		t.Fatalf("user = %+v", user)
	}
}

func TestResolveAuthorFirstHitBeatsCreating(t *testing.T) {
	directory := &fakeDirectory{users: []wordpress.User{{ID: 42, Name: "J. Doe-Smith"}}}

	user, err := newResolver(directory).ResolveAuthor(context.Background(), "Jane Doe")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if user.ID != 42 {
		t.Fatalf("user = %+v, want first search hit id 42", user)
	}
	if len(directory.created) != 0 {
		t.Fatal("no account should be created")
	}
}

func TestResolveAuthorCreatesAccount(t *testing.T) {
	directory := &fakeDirectory{}

	user, err := newResolver(directory).ResolveAuthor(context.Background(), "Jane Doe")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("created user has no id")
	}
	if len(directory.created) != 1 {
		t.Fatalf("created = %+v", directory.created)
	}
	created := directory.created[0]
	if created.Username != "jane.doe" {
		t.Fatalf("username = %q", created.Username)
	}
	if !strings.HasPrefix(created.Email, "jane.doe@") || !strings.HasSuffix(created.Email, "example.com") {
		t.Fatalf("email = %q", created.Email)
	}
	if len(created.Password) != passwordLength {
		t.Fatalf("password length = %d", len(created.Password))
	}
	if len(created.Roles) != 1 || created.Roles[0] != "author" {
		t.Fatalf("roles = %+v", created.Roles)
	}
}

func TestResolveAuthorUsernameJoinsRemainingTokens(t *testing.T) {
	directory := &fakeDirectory{}

	if _, err := newResolver(directory).ResolveAuthor(context.Background(), "Mary Jo van Dyke"); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got := directory.created[0].Username; got != "mary.jovandyke" {
		t.Fatalf("username = %q", got)
	}
}

func TestResolveAuthorRejectsSingleToken(t *testing.T) {
	directory := &fakeDirectory{}

	_, err := newResolver(directory).ResolveAuthor(context.Background(), "Madonna")
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("err = %v, want validation error", err)
	}
	if len(directory.created) != 0 {
		t.Fatal("no account should be created")
	}
}

func TestResolveAuthorSearchFailure(t *testing.T) {
	directory := &fakeDirectory{searchErr: errors.New("boom")}

	_, err := newResolver(directory).ResolveAuthor(context.Background(), "Jane Doe")
	if !errors.Is(err, services.ErrExternal) {
		t.Fatalf("err = %v, want external error", err)
	}
}
