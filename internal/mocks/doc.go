// Package mocks provides in-memory implementations of the store interfaces
// and the service transactor for unit tests.
//
// Each store fake keeps its data in a map seeded through its constructor and
// exposes one function field per method; setting the field replaces the
// default behaviour for that method:
//
//	products := mocks.NewMockProductStore(p1, p2)
//	products.GetByIDFn = func(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
//	    return nil, errors.New("connection reset")
//	}
//
// The fakes ignore WithTx, so MockTransactor simply calls the transaction
// function with a nil *sql.Tx.
package mocks
