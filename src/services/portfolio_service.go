package services

import (
	"context"
	"fmt"
	"time"

	"estate/src/clients/sheets"
	"estate/src/schemas"
	"estate/src/utils"

	"github.com/sourcegraph/conc/pool"
)

type PortfolioServiceI interface {
	FetchSnapshot(ctx context.Context) (*schemas.RawSnapshot, error)
	GetPortfolio(ctx context.Context) (*schemas.PortfolioData, error)
}

// PortfolioService reads a consistent snapshot of every entity range and
// normalizes it.
type PortfolioService struct {
	SheetsClient sheets.SheetsServiceClientI
	Layout       *schemas.Layout
	Normalizer   NormalizerI
	Location     *time.Location
	Now          func() time.Time
}

func NewPortfolioService(client sheets.SheetsServiceClientI, layout *schemas.Layout, normalizer NormalizerI, location *time.Location) *PortfolioService {
	if location == nil {
		location = time.UTC
	}
	return &PortfolioService{
		SheetsClient: client,
		Layout:       layout,
		Normalizer:   normalizer,
		Location:     location,
		Now:          time.Now,
	}
}

type rangeRead struct {
	rng  string
	dest *[][]string
}

// FetchSnapshot reads all ranges concurrently. The first failed read cancels
// the others and the whole snapshot is reported as unavailable.
func (ps *PortfolioService) FetchSnapshot(ctx context.Context) (*schemas.RawSnapshot, error) {
	logger := utils.LoggerFromContext(ctx)
	raw := &schemas.RawSnapshot{}

	reads := []rangeRead{
		{ps.Layout.Assets.ReadRange(), &raw.Assets},
		{ps.Layout.Leases.ReadRange(), &raw.Leases},
		{ps.Layout.OpEx.ReadRange(), &raw.OpEx},
		{ps.Layout.Mortgages.ReadRange(), &raw.Mortgages},
	}
	if ps.Layout.Pipeline != nil {
		reads = append(reads, rangeRead{ps.Layout.Pipeline.ReadRange(), &raw.Pipeline})
	}
	if ps.Layout.Config != nil {
		reads = append(reads, rangeRead{ps.Layout.Config.ReadRange(), &raw.Config})
	}

	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	for _, read := range reads {
		read := read
		p.Go(func(ctx context.Context) error {
			rows, err := ps.SheetsClient.GetRange(ctx, read.rng)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", read.rng, err)
			}
			*read.dest = rows
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		logger.Errorf("snapshot fetch failed: %v", err)
		return nil, fmt.Errorf("%w: %w", utils.ErrReportDataUnavailable, err)
	}

	logger.Debugf("fetched snapshot: %d asset rows, %d lease rows, %d opex rows, %d mortgage rows",
		len(raw.Assets), len(raw.Leases), len(raw.OpEx), len(raw.Mortgages))
	return raw, nil
}

func (ps *PortfolioService) GetPortfolio(ctx context.Context) (*schemas.PortfolioData, error) {
	raw, err := ps.FetchSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	return ps.Normalizer.Normalize(raw, ps.Now().In(ps.Location)), nil
}
