package sqlconverter

import (
	"github.com/AntonStoeckl/utctimestamp-go/utctime/sqlconverter/internal/adapters"
)

// NewExecutorFromAdapter runs an Executor on any adapter, e.g. an in-memory one in tests.
func NewExecutorFromAdapter(db adapters.DBAdapter, options ...Option) (*Executor, error) {
	return newExecutor(db, options...)
}
