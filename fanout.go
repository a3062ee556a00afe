package kadmin

import (
	"context"
	"sync"
)

// Call is one request to dispatch to a specific broker.
type Call struct {
	NodeID  int32 // -1 selects the client's current least-loaded broker
	Request ProtocolBody
}

// Result is one dispatched call's outcome, carried at the same index as its
// originating Call so callers can correlate input to output without extra
// bookkeeping.
type Result struct {
	Response ProtocolBody
	Err      error
}

// Dispatch runs every call concurrently, submitting all of them before
// polling any of them, per SPEC_FULL.md §4.4 (C7): submit-all-then-poll-all
// keeps one slow broker from serializing the rest. Results preserve calls'
// input order. The first error encountered (in input order) is also
// returned directly so callers that only care about all-or-nothing success
// can check it without scanning the slice.
func Dispatch(ctx context.Context, client BrokerClient, calls []Call) ([]Result, error) {
	results := make([]Result, len(calls))
	futures := make([]Future, len(calls))

	for i, c := range calls {
		node := c.NodeID
		if node < 0 {
			node = client.LeastLoadedNode()
		}
		if node < 0 {
			results[i].Err = ErrNoBrokersAvailable
			continue
		}
		if err := client.AwaitReady(ctx, node); err != nil {
			results[i].Err = err
			continue
		}
		f, err := client.Send(ctx, node, c.Request)
		if err != nil {
			results[i].Err = err
			continue
		}
		futures[i] = f
	}

	var wg sync.WaitGroup
	for i, f := range futures {
		if f == nil {
			continue
		}
		wg.Add(1)
		go func(i int, f Future) {
			defer wg.Done()
			if err := client.Poll(ctx, f); err != nil {
				results[i].Err = err
				return
			}
			resp, err := f.Result()
			results[i].Response = resp
			results[i].Err = err
		}(i, f)
	}
	wg.Wait()

	for _, r := range results {
		if r.Err != nil {
			return results, r.Err
		}
	}
	return results, nil
}
