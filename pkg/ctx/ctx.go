package ctx

import (
	"context"

	"go.uber.org/zap"
)

/**
 * @file: ctx.go
 * @description: Global application context
 */

type Context struct {
	Ctx context.Context
	Log *zap.SugaredLogger
}

func NewContext(ctx context.Context, log *zap.SugaredLogger) *Context {
	return &Context{
		Ctx: ctx,
		Log: log,
	}
}

// ContextIns 返回底层 context.Context
func (c *Context) ContextIns() context.Context {
	return c.Ctx
}

func (c *Context) GetLog() *zap.SugaredLogger {
	return c.Log
}
