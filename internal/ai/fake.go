package ai

import (
	"context"
	"fmt"
	"sync"
)

// FakeImageClient is a deterministic ImageClient for tests and offline
// development. It never touches the network.
type FakeImageClient struct {
	mu       sync.Mutex
	err      error
	requests []ImageRequest
}

func NewFakeImageClient() *FakeImageClient {
	return &FakeImageClient{}
}

// FailWith makes every following call return err. nil restores success.
func (f *FakeImageClient) FailWith(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func (f *FakeImageClient) CreateImage(_ context.Context, req ImageRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.requests = append(f.requests, req)
	if f.err != nil {
		return "", f.err
	}
	return fmt.Sprintf("https://images.invalid/fake/%d-%s.png", len(f.requests), req.Size), nil
}

// Requests returns a copy of every request received so far.
func (f *FakeImageClient) Requests() []ImageRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]ImageRequest, len(f.requests))
	copy(out, f.requests)
	return out
}
