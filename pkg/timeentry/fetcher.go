package timeentry

import (
	"context"
	"fmt"

	"github.com/klokku/harvest-reminder/pkg/harvest"
	"github.com/klokku/harvest-reminder/pkg/period"
	"github.com/klokku/harvest-reminder/pkg/upstream"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type Fetcher interface {
	FetchAll(ctx context.Context, p period.Period) ([]harvest.TimeEntry, error)
}

type FetcherImpl struct {
	client harvest.Client
}

func NewFetcherImpl(client harvest.Client) *FetcherImpl {
	return &FetcherImpl{client: client}
}

// FetchAll reads the first page to learn total_pages, then requests the
// remaining pages concurrently and concatenates every page's entries.
func (f *FetcherImpl) FetchAll(ctx context.Context, p period.Period) ([]harvest.TimeEntry, error) {
	first, err := f.fetchPage(ctx, p, 1)
	if err != nil {
		return nil, err
	}
	if first.TotalPages <= 1 {
		return first.TimeEntries, nil
	}
	log.Debugf("Fetching %d more pages of time entries", first.TotalPages-1)

	// pages[i] holds page i+2; every goroutine owns exactly one slot.
	pages := make([][]harvest.TimeEntry, first.TotalPages-1)
	g, gctx := errgroup.WithContext(ctx)
	for page := 2; page <= first.TotalPages; page++ {
		g.Go(func() error {
			result, err := f.fetchPage(gctx, p, page)
			if err != nil {
				return err
			}
			pages[page-2] = result.TimeEntries
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	entries := first.TimeEntries
	for _, pageEntries := range pages {
		entries = append(entries, pageEntries...)
	}
	return entries, nil
}

func (f *FetcherImpl) fetchPage(ctx context.Context, p period.Period, page int) (harvest.TimeEntriesPage, error) {
	source := fmt.Sprintf("harvest time entries page %d", page)

	result, err := f.client.GetTimeEntries(ctx, p.From(), p.To(), page)
	if err != nil {
		log.Errorf("Failed to fetch time entries page %d: %v", page, err)
		if upstream.IsDataError(err) {
			return harvest.TimeEntriesPage{}, err
		}
		return harvest.TimeEntriesPage{}, upstream.WrapDataError(source, err)
	}
	if result.ErrorDescription != "" {
		err := upstream.NewDataError(source, result.ErrorDescription)
		log.Error(err)
		return harvest.TimeEntriesPage{}, err
	}
	if result.TimeEntries == nil {
		err := upstream.NewDataError(source, "response has no time_entries list")
		log.Error(err)
		return harvest.TimeEntriesPage{}, err
	}
	return result, nil
}
