package app

import (
	"context"
	"sync"
)

type envelope struct {
	msg     Msg
	epoch   uint64
	stamped bool
}

// Dispatcher owns the canonical State. Messages are applied one at a
// time in arrival order; the resulting state is committed and published
// to subscribers before any of the batch's effects start. Effects run as
// independent goroutines and may complete in any order; their follow-up
// messages are stamped with the epoch of the commit that produced them
// and discarded if the epoch has moved on (logout, account switch).
type Dispatcher struct {
	update Transition
	interp *Interpreter

	ctx    context.Context
	cancel context.CancelFunc

	msgs chan envelope
	done chan struct{}
	once sync.Once

	mu      sync.Mutex
	state   State
	subs    map[int]chan State
	nextSub int
}

func NewDispatcher(update Transition, interp *Interpreter) *Dispatcher {
	ctx, cancel := context.WithCancel(context.Background())
	d := &Dispatcher{
		update: update,
		interp: interp,
		ctx:    ctx,
		cancel: cancel,
		msgs:   make(chan envelope, 64),
		done:   make(chan struct{}),
		subs:   make(map[int]chan State),
	}

	state, boot := NewState()
	d.state = state

	go d.loop()
	d.launch(boot, state.Epoch)
	return d
}

// Dispatch enqueues a UI-originated message. Safe from any goroutine.
func (d *Dispatcher) Dispatch(m Msg) {
	select {
	case d.msgs <- envelope{msg: m}:
	case <-d.done:
	}
}

func (d *Dispatcher) dispatchStamped(m Msg, epoch uint64) {
	select {
	case d.msgs <- envelope{msg: m, epoch: epoch, stamped: true}:
	case <-d.done:
	}
}

// State returns the last committed snapshot.
func (d *Dispatcher) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Subscribe returns a channel of committed snapshots and an unsubscribe
// func. The current state is delivered immediately. Slow subscribers see
// a coalesced stream, never a stale terminal value.
func (d *Dispatcher) Subscribe() (<-chan State, func()) {
	ch := make(chan State, 8)

	d.mu.Lock()
	id := d.nextSub
	d.nextSub++
	d.subs[id] = ch
	ch <- d.state
	d.mu.Unlock()

	unsubscribe := func() {
		d.mu.Lock()
		if sub, ok := d.subs[id]; ok {
			delete(d.subs, id)
			close(sub)
		}
		d.mu.Unlock()
	}
	return ch, unsubscribe
}

// Close stops the loop, cancels running effects and closes all
// subscriptions. Idempotent.
func (d *Dispatcher) Close() {
	d.once.Do(func() {
		d.cancel()
		close(d.done)

		d.mu.Lock()
		for id, sub := range d.subs {
			delete(d.subs, id)
			close(sub)
		}
		d.mu.Unlock()
	})
}

func (d *Dispatcher) loop() {
	for {
		select {
		case <-d.done:
			return
		case env := <-d.msgs:
			d.mu.Lock()
			current := d.state
			d.mu.Unlock()

			if env.stamped && env.epoch != current.Epoch {
				// A fenced result of a superseded session.
				continue
			}

			next, effects := d.update.Update(current, env.msg)
			d.commit(next)
			d.launch(effects, next.Epoch)
		}
	}
}

func (d *Dispatcher) commit(next State) {
	d.mu.Lock()
	d.state = next
	for _, sub := range d.subs {
		select {
		case sub <- next:
		default:
			// Full buffer: drop the oldest snapshot, keep the newest.
			select {
			case <-sub:
			default:
			}
			select {
			case sub <- next:
			default:
			}
		}
	}
	d.mu.Unlock()
}

func (d *Dispatcher) launch(effects []Effect, epoch uint64) {
	for _, eff := range effects {
		eff := eff
		go func() {
			for _, m := range d.interp.Run(d.ctx, eff) {
				d.dispatchStamped(m, epoch)
			}
		}()
	}
}
