package window

import "sync"

// FrameCallback is invoked once per display refresh with the seconds elapsed since the previous refresh.
type FrameCallback func(deltaTime float32)

// FrameHandle identifies a pending frame request.
type FrameHandle uint64

type frameRequest struct {
	handle   FrameHandle
	callback FrameCallback
}

// frameScheduler queues one-shot frame callbacks.
// Callbacks requested while a flush is running are deferred to the next flush.
type frameScheduler struct {
	mu      sync.Mutex
	next    FrameHandle
	pending []frameRequest
	live    map[FrameHandle]struct{}
}

func newFrameScheduler() *frameScheduler {
	return &frameScheduler{live: make(map[FrameHandle]struct{})}
}

func (f *frameScheduler) request(callback FrameCallback) FrameHandle {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.next++
	f.pending = append(f.pending, frameRequest{handle: f.next, callback: callback})
	f.live[f.next] = struct{}{}
	return f.next
}

func (f *frameScheduler) cancel(handle FrameHandle) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.live, handle)
}

// pendingCount returns the number of requests that will fire on the next flush.
func (f *frameScheduler) pendingCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.live)
}

// flush fires every request queued before the call and returns how many fired.
func (f *frameScheduler) flush(deltaTime float32) int {
	f.mu.Lock()
	batch := f.pending
	f.pending = nil
	f.mu.Unlock()

	fired := 0
	for _, req := range batch {
		f.mu.Lock()
		_, ok := f.live[req.handle]
		delete(f.live, req.handle)
		f.mu.Unlock()

		if !ok || req.callback == nil {
			continue
		}
		req.callback(deltaTime)
		fired++
	}
	return fired
}
