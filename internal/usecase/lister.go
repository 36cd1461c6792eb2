// Package usecase contains the business logic of the application.
package usecase

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/matks/traces/internal/config"
	"github.com/matks/traces/internal/gateway"
	"github.com/matks/traces/internal/progress"
)

// Lister enumerates the repositories of an organization that are eligible
// for contributor aggregation.
type Lister struct {
	fetcher  gateway.Fetcher
	cfg      config.Config
	reporter progress.Reporter
	logger   *log.Logger
}

// NewLister creates a new Lister instance.
func NewLister(fetcher gateway.Fetcher, cfg config.Config, reporter progress.Reporter, logger *log.Logger) *Lister {
	return &Lister{
		fetcher:  fetcher,
		cfg:      cfg,
		reporter: reporter,
		logger:   logger,
	}
}

// List returns the full names of the organization's repositories, dropping
// archived, private and forked ones as well as configured exclusions.
// The hosting service's return order is preserved. The progress bar ticks
// once per fetched page.
func (l *Lister) List(ctx context.Context, organization string) ([]string, error) {
	l.reporter.Statusf("Listing repositories of %s", organization)

	started := false
	repositories, err := l.fetcher.FetchOrganizationRepositories(ctx, organization, func(page, total int) {
		if !started {
			l.reporter.Start("repository pages", total)
			started = true
		}
		l.reporter.Advance()
	})
	if err != nil {
		return nil, err
	}
	if started {
		l.reporter.Finish()
	}

	names := make([]string, 0, len(repositories))
	for _, repository := range repositories {
		if repository.Archived || repository.Private || repository.Fork {
			l.logger.Debug("skipping repository", "repository", repository.FullName,
				"archived", repository.Archived, "private", repository.Private, "fork", repository.Fork)
			continue
		}
		if l.cfg.IsRepositoryExcluded(repository.FullName) {
			l.logger.Debug("repository excluded by configuration", "repository", repository.FullName)
			continue
		}
		names = append(names, repository.FullName)
	}
	return names, nil
}
