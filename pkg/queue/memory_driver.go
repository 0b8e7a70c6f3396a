package queue

import (
	"context"
)

// MemoryDriver is an in-process, channel-backed driver. Jobs are lost on
// restart.
type MemoryDriver struct {
	ch chan []byte
}

// NewMemoryDriver buffers up to size jobs (1000 when size <= 0).
func NewMemoryDriver(size int) *MemoryDriver {
	if size <= 0 {
		size = 1000
	}
	return &MemoryDriver{ch: make(chan []byte, size)}
}

// Push never blocks; a full buffer yields ErrQueueFull.
func (d *MemoryDriver) Push(ctx context.Context, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case d.ch <- payload:
		return nil
	default:
		return ErrQueueFull
	}
}

func (d *MemoryDriver) Pop(ctx context.Context) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case payload := <-d.ch:
		return payload, nil
	}
}
