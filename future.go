package kadmin

import "sync/atomic"

// channelFuture is the concrete Future used by the in-tree fake
// BrokerClient (see faketest_test.go) and available to any real
// BrokerClient implementation that wants it. It follows SPEC_FULL.md §9's
// design note: express futures with the target language's native
// concurrency primitive, here a buffered channel guarded by an atomic
// "already delivered" flag so Done never blocks.
type channelFuture struct {
	ch        chan futureResult
	delivered int32
	result    futureResult
}

type futureResult struct {
	resp ProtocolBody
	err  error
}

// newChannelFuture returns a Future and the function its producer calls
// exactly once to resolve it.
func newChannelFuture() (*channelFuture, func(ProtocolBody, error)) {
	f := &channelFuture{ch: make(chan futureResult, 1)}
	complete := func(resp ProtocolBody, err error) {
		f.ch <- futureResult{resp: resp, err: err}
	}
	return f, complete
}

func (f *channelFuture) Done() bool {
	if atomic.LoadInt32(&f.delivered) == 1 {
		return true
	}
	select {
	case r := <-f.ch:
		f.result = r
		atomic.StoreInt32(&f.delivered, 1)
		return true
	default:
		return false
	}
}

// Await blocks until the channel delivers, used by a BrokerClient.Poll
// implementation that wants to wait rather than spin on Done.
func (f *channelFuture) Await() {
	if atomic.LoadInt32(&f.delivered) == 1 {
		return
	}
	r := <-f.ch
	f.result = r
	atomic.StoreInt32(&f.delivered, 1)
}

func (f *channelFuture) Result() (ProtocolBody, error) {
	return f.result.resp, f.result.err
}
