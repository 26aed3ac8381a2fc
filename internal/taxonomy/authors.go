package taxonomy

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"strings"

	"golang.org/x/text/cases"

	"autopost/internal/logging"
	"autopost/internal/services"
	"autopost/internal/wordpress"
)

const passwordLength = 20

const passwordCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*"

// UserDirectory is the slice of the WordPress API the resolver needs.
type UserDirectory interface {
	SearchUsers(ctx context.Context, query string) ([]wordpress.User, error)
	CreateUser(ctx context.Context, user wordpress.NewUser) (*wordpress.User, error)
}

// Resolver finds or creates WordPress users for requested author names.
type Resolver struct {
	directory    UserDirectory
	role         string
	emailDomains []string
	logger       *slog.Logger
	fold         cases.Caser
}

// NewResolver creates an author resolver. New accounts get the supplied role
// and an email address under one of the allowed domains.
func NewResolver(directory UserDirectory, role string, emailDomains []string, logger *slog.Logger) *Resolver {
	return &Resolver{
		directory:    directory,
		role:         role,
		emailDomains: emailDomains,
		logger:       logging.NewComponentLogger(logger, "taxonomy"),
		fold:         cases.Fold(),
	}
}

// ResolveAuthor returns the user account for a requested author name,
// creating one when no existing account matches. Titles after a comma
// ("Jane Doe, Sports Editor") are ignored. The name must carry at least a
// first and second token so a username can be formed.
func (r *Resolver) ResolveAuthor(ctx context.Context, requested string) (*wordpress.User, error) {
	name := strings.TrimSpace(strings.SplitN(requested, ",", 2)[0])
	if name == "" {
		return nil, services.Wrap(services.ErrValidation, "taxonomy", "resolve author", "author name is empty", nil)
	}

	users, err := r.directory.SearchUsers(ctx, name)
	if err != nil {
		return nil, services.Wrap(services.ErrExternal, "taxonomy", "resolve author", "user search failed", err)
	}

	folded := r.fold.String(name)
	for _, user := range users {
		if r.fold.String(strings.TrimSpace(user.Name)) == folded {
			return &user, nil
		}
	}
	// No exact match; the first search hit is the closest the site has.
	if len(users) > 0 {
		r.logger.Info("using closest author match",
			logging.String("requested", name),
			logging.String("matched", users[0].Name))
		return &users[0], nil
	}

	return r.createAuthor(ctx, name)
}

func (r *Resolver) createAuthor(ctx context.Context, name string) (*wordpress.User, error) {
	tokens := strings.Fields(name)
	if len(tokens) < 2 {
		return nil, services.Wrap(services.ErrValidation, "taxonomy", "create author",
			fmt.Sprintf("cannot form username from %q", name), nil)
	}

	username := strings.ToLower(tokens[0] + "." + strings.Join(tokens[1:], ""))
	domain, err := r.pickDomain()
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "taxonomy", "create author", "no email domain available", err)
	}
	password, err := randomPassword(passwordLength)
	if err != nil {
		return nil, services.Wrap(services.ErrExternal, "taxonomy", "create author", "password generation failed", err)
	}

	created, err := r.directory.CreateUser(ctx, wordpress.NewUser{
		Username: username,
		Name:     name,
		Email:    username + "@" + domain,
		Password: password,
		Roles:    []string{r.role},
	})
	if err != nil {
		return nil, services.Wrap(services.ErrExternal, "taxonomy", "create author",
			fmt.Sprintf("creating user %q failed", username), err)
	}
	r.logger.Info("created author account",
		logging.String("name", name),
		logging.String("username", username),
		logging.Int("id", created.ID))
	return created, nil
}

func (r *Resolver) pickDomain() (string, error) {
	if len(r.emailDomains) == 0 {
		return "", fmt.Errorf("email domain list is empty")
	}
	idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(r.emailDomains))))
	if err != nil {
		return "", err
	}
	return r.emailDomains[idx.Int64()], nil
}

func randomPassword(length int) (string, error) {
	var builder strings.Builder
	max := big.NewInt(int64(len(passwordCharset)))
	for i := 0; i < length; i++ {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		builder.WriteByte(passwordCharset[idx.Int64()])
	}
	return builder.String(), nil
}
