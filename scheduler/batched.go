package scheduler

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"opiniondynamics/agent"
	"opiniondynamics/dialogue"
	"opiniondynamics/reduce"
	"opiniondynamics/simerr"
	"opiniondynamics/topology"
	"opiniondynamics/transition"
)

// Batched partitions a tick's pair list into contiguous chunks of size
// Chunk and evaluates them across a bounded worker pool. Each worker writes
// only into the disjoint slice region its chunk owns, so no merge step or
// lock is needed: the output slice is byte-for-byte what a single-threaded
// pass over pairs would have produced, regardless of completion order or
// worker count.
type Batched struct {
	// Chunk is the number of pairs per dispatched unit of work. Must be >= 1.
	Chunk int
	// Concurrency bounds the number of chunks evaluated at once. Zero means
	// twice the number of logical CPUs, a common default worker count.
	Concurrency int
}

// NewBatched returns a Batched scheduler with the given chunk size and the
// default concurrency (2x NumCPU).
func NewBatched(chunk int) *Batched {
	return &Batched{Chunk: chunk}
}

func (b *Batched) concurrency() int {
	if b.Concurrency > 0 {
		return b.Concurrency
	}
	return 2 * runtime.NumCPU()
}

// Compute evaluates the dialogue kernel for every pair, in parallel chunks,
// and returns the outcomes aligned to pairs. Workers never touch the
// shared RNG and read only the snapshot passed in.
func (b *Batched) Compute(ctx context.Context, agents []agent.State, pairs []topology.Pair) ([]reduce.PairOutcome, error) {
	if b.Chunk < 1 {
		return nil, simerr.InvalidArgument(simerr.ErrNonPositiveChunk, fmt.Sprintf("chunk=%d", b.Chunk))
	}

	outcomes := make([]reduce.PairOutcome, len(pairs))
	if len(pairs) == 0 {
		return outcomes, nil
	}

	group, groupCtx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, b.concurrency())

dispatch:
	for start := 0; start < len(pairs); start += b.Chunk {
		end := start + b.Chunk
		if end > len(pairs) {
			end = len(pairs)
		}
		chunkStart, chunkEnd := start, end

		select {
		case sem <- struct{}{}:
		case <-groupCtx.Done():
			break dispatch
		}

		group.Go(func() (err error) {
			defer func() { <-sem }()
			defer func() {
				if r := recover(); r != nil {
					err = simerr.WorkerFailure(fmt.Errorf("panic evaluating chunk [%d,%d): %v", chunkStart, chunkEnd, r))
				}
			}()

			for k := chunkStart; k < chunkEnd; k++ {
				p := pairs[k]
				alice, bob := agents[p.I], agents[p.J]
				m := transition.Build(alice, bob)
				mi, mj := dialogue.Run(alice, bob, m)
				outcomes[k] = reduce.PairOutcome{I: p.I, J: p.J, MI: mi, MJ: mj}
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}
