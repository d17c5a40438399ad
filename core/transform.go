package core

// Transformer rewrites a freshly fetched snapshot in place, before it is
// delivered to the store.
type Transformer interface {
	Transform(s Snapshot) error
}

// Chain applies transformers in order, stopping at the first error.
func Chain(s Snapshot, transformers ...Transformer) error {
	for _, tr := range transformers {
		if err := tr.Transform(s); err != nil {
			return err
		}
	}
	return nil
}
