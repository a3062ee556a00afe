package kadmin

import (
	"context"
	"fmt"
	"sync"
)

// coordinatorCache maps consumer group id to the broker currently acting as
// its coordinator, per SPEC_FULL.md §4.2/§6 (C6). Unlike the controller
// cache, a NotCoordinator response only evicts the entry — it never
// triggers an automatic resend, matching
// original_source/kafka/admin/client.py's behavior of surfacing the error
// to the caller instead of retrying transparently.
type coordinatorCache struct {
	mu     sync.Mutex
	byGroup map[string]int32
	client BrokerClient
	neg    *Negotiator
}

func newCoordinatorCache(client BrokerClient) *coordinatorCache {
	return &coordinatorCache{byGroup: make(map[string]int32), client: client, neg: NewNegotiator(client)}
}

// Lookup returns the cached coordinator for group, if present.
func (c *coordinatorCache) Lookup(group string) (int32, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id, ok := c.byGroup[group]
	return id, ok
}

// Evict drops group's cached coordinator, e.g. after a NotCoordinator error.
func (c *coordinatorCache) Evict(group string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.byGroup, group)
}

// Resolve fills the cache for every group in groups that is not already
// cached, fanning the FindCoordinator lookups out in parallel — grounded on
// original_source/kafka/admin/client.py's _find_coordinator_ids, which
// issues one lookup per group and zips the results back by index, except
// here each lookup runs on its own goroutine instead of sequentially.
func (c *coordinatorCache) Resolve(ctx context.Context, groups []string) error {
	missing := make([]string, 0, len(groups))
	c.mu.Lock()
	for _, g := range groups {
		if _, ok := c.byGroup[g]; !ok {
			missing = append(missing, g)
		}
	}
	c.mu.Unlock()
	if len(missing) == 0 {
		return nil
	}

	type outcome struct {
		group string
		id    int32
		err   error
	}
	results := make(chan outcome, len(missing))
	var wg sync.WaitGroup
	for _, g := range missing {
		wg.Add(1)
		go func(group string) {
			defer wg.Done()
			id, err := c.resolveOne(ctx, group)
			results <- outcome{group: group, id: id, err: err}
		}(g)
	}
	wg.Wait()
	close(results)

	var errs []error
	c.mu.Lock()
	for r := range results {
		if r.err != nil {
			if code, ok := r.err.(KError); ok {
				errs = append(errs, &GroupError{Group: r.group, Err: code})
			} else {
				errs = append(errs, fmt.Errorf("kadmin: resolving coordinator for group %q: %w", r.group, r.err))
			}
			continue
		}
		c.byGroup[r.group] = r.id
	}
	c.mu.Unlock()
	return multiError(errs...)
}

func (c *coordinatorCache) resolveOne(ctx context.Context, group string) (int32, error) {
	node := c.client.LeastLoadedNode()
	if node < 0 {
		return -1, ErrNoBrokersAvailable
	}
	if err := c.client.AwaitReady(ctx, node); err != nil {
		return -1, err
	}
	version, err := c.neg.Negotiate(node, APIFindCoordinator)
	if err != nil {
		return -1, err
	}
	req := &FindCoordinatorRequest{Key: group, KeyType: 0}
	req.setVersion(version)
	future, err := c.client.Send(ctx, node, req)
	if err != nil {
		return -1, err
	}
	if err := c.client.Poll(ctx, future); err != nil {
		return -1, err
	}
	body, err := future.Result()
	if err != nil {
		return -1, err
	}
	resp, ok := body.(*FindCoordinatorResponse)
	if !ok {
		return -1, &ProtocolDecodeError{Info: "unexpected response type for FindCoordinator"}
	}
	if resp.ErrorCode != ErrNoError {
		return -1, resp.ErrorCode
	}
	return resp.NodeID, nil
}
