package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matks/traces/internal/config"
	"github.com/matks/traces/internal/domain"
	"github.com/matks/traces/internal/gateway"
	"github.com/matks/traces/internal/progress"
)

// Aggregator merges per-repository contributor lists into a deduplicated,
// profile-enriched user table.
type Aggregator struct {
	fetcher  gateway.Fetcher
	cfg      config.Config
	reporter progress.Reporter
	logger   *log.Logger
}

// NewAggregator creates a new Aggregator instance.
func NewAggregator(fetcher gateway.Fetcher, cfg config.Config, reporter progress.Reporter, logger *log.Logger) *Aggregator {
	return &Aggregator{
		fetcher:  fetcher,
		cfg:      cfg,
		reporter: reporter,
		logger:   logger,
	}
}

// Aggregate processes the repositories in input order and returns the user
// table. Each distinct login costs exactly one profile lookup, on first
// sighting. The progress bar ticks once per repository.
func (a *Aggregator) Aggregate(ctx context.Context, repositories []string) (*domain.Table, error) {
	table := domain.NewTable()
	a.reporter.Start("repositories", len(repositories))

	for _, fullName := range repositories {
		contributors, err := a.fetcher.FetchContributors(ctx, fullName)
		if err != nil {
			return nil, fmt.Errorf("fetch contributors of %s: %w", fullName, err)
		}

		for _, contributor := range contributors {
			excluded := a.cfg.IsExcluded(contributor.Login)
			if excluded && !a.cfg.KeepExcludedUsers {
				a.logger.Debug("dropping excluded contributor", "login", contributor.Login)
				continue
			}

			user, ok := table.Get(contributor.Login)
			if !ok {
				user, err = a.newUser(ctx, contributor.Login, excluded)
				if err != nil {
					return nil, err
				}
				table.Add(user)
			}
			user.Contributions += contributor.Contributions
			user.Repositories[fullName] = contributor.Contributions
		}

		a.reporter.Advance()
		a.logger.Debug("aggregated repository", "repository", fullName, "contributors", len(contributors))
	}

	a.reporter.Finish()
	return table, nil
}

// newUser looks up the login's profile and builds a fresh table entry with
// counters at zero.
func (a *Aggregator) newUser(ctx context.Context, login string, excluded bool) (*domain.User, error) {
	profile, err := a.fetcher.FetchUser(ctx, login)
	if err != nil {
		return nil, fmt.Errorf("lookup profile of %s: %w", login, err)
	}

	user := &domain.User{
		Login:        login,
		Profile:      make(map[string]any, len(profile)),
		Repositories: make(map[string]int),
	}
	for name, value := range profile {
		if a.cfg.AllowsField(name) {
			user.Profile[name] = value
		}
	}
	if a.cfg.ExtractEmailDomain {
		d := emailDomain(profile["email"])
		user.EmailDomain = &d
	}
	if a.cfg.KeepExcludedUsers {
		e := excluded
		user.Excluded = &e
	}
	return user, nil
}

// emailDomain returns the part of a profile email after "@", or "" when the
// profile carries no usable email.
func emailDomain(value any) string {
	email, _ := value.(string)
	if i := strings.Index(email, "@"); i >= 0 {
		return email[i+1:]
	}
	return ""
}
