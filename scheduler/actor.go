package scheduler

import (
	"context"
	"fmt"

	channerics "github.com/niceyeti/channerics/channels"
	"golang.org/x/sync/errgroup"

	"opiniondynamics/agent"
	"opiniondynamics/dialogue"
	"opiniondynamics/reduce"
	"opiniondynamics/simerr"
	"opiniondynamics/topology"
	"opiniondynamics/transition"
)

// tickStart is broadcast by the coordinator to a worker at the start of a
// tick: the read-only snapshot of all agents and the list of pairs this
// worker owns (those where pairs[idx].I == the worker's own index).
type tickStart struct {
	agents      []agent.State
	assignments []assignment
}

type assignment struct {
	pairIndex int
	partner   int
}

// report is one pair's computed outcome, tagged with its position in the
// tick's pair list so the coordinator can place it without a merge step.
type report struct {
	pairIndex int
	outcome   reduce.PairOutcome
}

// Actor implements the one-goroutine-per-agent orchestration: a coordinator
// plus n persistent workers, each iterating only the pairs its own agent
// owns, synchronized by a barrier every tick. The fan-in of worker reports
// uses channerics.Merge.
type Actor struct {
	n       int
	starts  []chan tickStart
	reports chan report
	group   *errgroup.Group
	cancel  context.CancelFunc
}

// NewActor spawns n persistent worker goroutines supervised by an errgroup
// derived from ctx. Call Close when the run is finished to release them.
func NewActor(ctx context.Context, n int) *Actor {
	workerCtx, cancel := context.WithCancel(ctx)
	group, groupCtx := errgroup.WithContext(workerCtx)

	a := &Actor{
		n:      n,
		starts: make([]chan tickStart, n),
		cancel: cancel,
		group:  group,
	}

	reportChans := make([]<-chan report, n)
	for i := 0; i < n; i++ {
		a.starts[i] = make(chan tickStart)
		out := make(chan report)
		reportChans[i] = out

		worker := i
		startCh := a.starts[i]
		group.Go(func() error {
			return runWorker(groupCtx, worker, startCh, out)
		})
	}
	a.reports = mergeReports(groupCtx.Done(), reportChans...)

	return a
}

// runWorker implements one worker's state machine: Idle (awaiting
// tick-start) -> Computing (one Dialogue per assigned pair) -> Reported
// (each outcome sent) -> Idle. Workers have no "Updating" phase of their
// own: the coordinator owns the next population and simply sends a fresh
// snapshot at the next tick-start.
func runWorker(ctx context.Context, self int, start <-chan tickStart, out chan<- report) error {
	defer close(out)
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-start:
			if !ok {
				return nil
			}
			for _, asg := range msg.assignments {
				alice, bob := msg.agents[self], msg.agents[asg.partner]
				m := transition.Build(alice, bob)
				mi, mj := dialogue.Run(alice, bob, m)
				r := report{
					pairIndex: asg.pairIndex,
					outcome:   reduce.PairOutcome{I: self, J: asg.partner, MI: mi, MJ: mj},
				}
				select {
				case out <- r:
				case <-ctx.Done():
					return nil
				}
			}
		}
	}
}

func mergeReports(done <-chan struct{}, chans ...<-chan report) chan report {
	return channerics.Merge(done, chans...)
}

// Compute dispatches one tick to the persistent workers and blocks until
// every pair has been reported: no worker begins the next tick before this
// call returns.
func (a *Actor) Compute(ctx context.Context, agents []agent.State, pairs []topology.Pair) ([]reduce.PairOutcome, error) {
	outcomes := make([]reduce.PairOutcome, len(pairs))
	if len(pairs) == 0 {
		return outcomes, nil
	}

	byWorker := make([][]assignment, a.n)
	for idx, p := range pairs {
		byWorker[p.I] = append(byWorker[p.I], assignment{pairIndex: idx, partner: p.J})
	}

	for i := 0; i < a.n; i++ {
		if len(byWorker[i]) == 0 {
			continue
		}
		msg := tickStart{agents: agents, assignments: byWorker[i]}
		select {
		case a.starts[i] <- msg:
		case <-ctx.Done():
			return nil, simerr.WorkerFailure(fmt.Errorf("dispatch to worker %d: %w", i, ctx.Err()))
		}
	}

	received := 0
	for received < len(pairs) {
		select {
		case r, ok := <-a.reports:
			if !ok {
				return nil, simerr.WorkerFailure(fmt.Errorf("worker pool closed after %d/%d reports", received, len(pairs)))
			}
			outcomes[r.pairIndex] = r.outcome
			received++
		case <-ctx.Done():
			return nil, simerr.WorkerFailure(fmt.Errorf("awaiting reports: %w", ctx.Err()))
		}
	}

	return outcomes, nil
}

// Close signals every worker to stop and waits for them to exit, surfacing
// any worker error encountered during the run's lifetime.
func (a *Actor) Close() error {
	a.cancel()
	for _, ch := range a.starts {
		close(ch)
	}
	if err := a.group.Wait(); err != nil {
		return simerr.WorkerFailure(err)
	}
	return nil
}
