package ports

import "context"

// TxManager runs fn atomically; repositories pick the transaction up from ctx.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
