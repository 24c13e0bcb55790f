package sheets

import (
	"context"
	"time"

	"estate/src/utils"
	redis_utils "estate/src/utils/redis"
)

type refreshKey struct{}

// WithRefresh makes cached clients skip the cache for reads done with ctx.
func WithRefresh(ctx context.Context) context.Context {
	return context.WithValue(ctx, refreshKey{}, true)
}

func refreshRequested(ctx context.Context) bool {
	v, _ := ctx.Value(refreshKey{}).(bool)
	return v
}

// CachedClient keeps range reads in Redis for a short TTL. Any write to a
// sheet drops every cached range of that sheet.
type CachedClient struct {
	Next         SheetsServiceClientI
	CacheHandler redis_utils.CacheHandlerI
	TTL          time.Duration
}

func NewCachedClient(next SheetsServiceClientI, cacheHandler redis_utils.CacheHandlerI, ttl time.Duration) *CachedClient {
	return &CachedClient{Next: next, CacheHandler: cacheHandler, TTL: ttl}
}

func (c *CachedClient) GetRange(ctx context.Context, rng string) ([][]string, error) {
	logger := utils.LoggerFromContext(ctx)
	key := redis_utils.GenerateUUID("range", rng)

	if !refreshRequested(ctx) {
		var cached [][]string
		if err := c.CacheHandler.Get(ctx, key, &cached); err == nil {
			return cached, nil
		}
	}

	rows, err := c.Next.GetRange(ctx, rng)
	if err != nil {
		return nil, err
	}

	if err := c.CacheHandler.Set(ctx, key, rows, c.TTL); err != nil {
		logger.Warnf("could not cache range %s: %v", rng, err)
		return rows, nil
	}
	if err := c.CacheHandler.AddToSet(ctx, sheetKeysSet(SheetOf(rng)), key); err != nil {
		logger.Warnf("could not index cached range %s: %v", rng, err)
	}
	return rows, nil
}

func (c *CachedClient) AppendRow(ctx context.Context, rng string, row []interface{}) error {
	if err := c.Next.AppendRow(ctx, rng, row); err != nil {
		return err
	}
	c.invalidate(ctx, SheetOf(rng))
	return nil
}

func (c *CachedClient) UpdateRange(ctx context.Context, rng string, values [][]interface{}) error {
	if err := c.Next.UpdateRange(ctx, rng, values); err != nil {
		return err
	}
	c.invalidate(ctx, SheetOf(rng))
	return nil
}

func (c *CachedClient) invalidate(ctx context.Context, sheet string) {
	logger := utils.LoggerFromContext(ctx)
	set := sheetKeysSet(sheet)
	keys, err := c.CacheHandler.SetMembers(ctx, set)
	if err != nil {
		logger.Warnf("could not list cached ranges of %s: %v", sheet, err)
		return
	}
	if err := c.CacheHandler.Delete(ctx, append(keys, set)...); err != nil {
		logger.Warnf("could not drop cached ranges of %s: %v", sheet, err)
	}
}

func sheetKeysSet(sheet string) string {
	return "sheet-ranges:" + sheet
}
