package controllers

import (
	"context"

	"estate/src/schemas"
)

func (c *Controller) ApplyUpdate(ctx context.Context, req *schemas.UpdateRequest) (*schemas.UpdateResponse, error) {
	return c.WritebackService.Apply(ctx, req)
}
