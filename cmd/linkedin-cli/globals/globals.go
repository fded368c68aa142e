package globals

import (
	"context"
	"linkedin-dashboard/internal/dashboard"
	"linkedin-dashboard/lib/keystore"
)

type keyType struct{}

var key keyType

type Value struct {
	Config    Config
	Store     *keystore.Store
	Dashboard *dashboard.Dashboard
}

func Set(ctx context.Context, value *Value) context.Context {
	return context.WithValue(ctx, key, value)
}

func Get(ctx context.Context) *Value {
	return ctx.Value(key).(*Value)
}
