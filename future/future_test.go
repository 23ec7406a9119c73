package future

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFulfill(t *testing.T) {
	p := NewPromise[int]()

	require.True(t, p.Fulfill(42))

	v, err := p.Future().Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestFail(t *testing.T) {
	p := NewPromise[int]()
	cause := errors.New("boom")

	require.True(t, p.Fail(cause))

	v, err := p.Future().Get(context.Background())
	assert.Zero(t, v)
	assert.Same(t, cause, err, "error identity must be preserved")
}

func TestDoubleResolutionIsNoOp(t *testing.T) {
	p := NewPromise[string]()

	require.True(t, p.Fulfill("first"))
	assert.False(t, p.Fulfill("second"))
	assert.False(t, p.Fail(errors.New("late")))

	v, err := p.Future().Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "first", v)
}

func TestReadyChannel(t *testing.T) {
	p := NewPromise[int]()
	f := p.Future()

	select {
	case <-f.Ready():
		t.Fatal("future must not be ready before resolution")
	default:
	}

	p.Fulfill(1)

	select {
	case <-f.Ready():
	case <-time.After(time.Second):
		t.Fatal("future must be ready after resolution")
	}
}

func TestGetBlocksUntilResolved(t *testing.T) {
	p := NewPromise[int]()

	go func() {
		time.Sleep(10 * time.Millisecond)
		p.Fulfill(7)
	}()

	v, err := p.Future().Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestGetHonorsContext(t *testing.T) {
	p := NewPromise[int]()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := p.Future().Get(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestGetPrefersOutcomeOverDoneContext(t *testing.T) {
	f := Fulfilled(9)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	v, err := f.Get(ctx)
	require.NoError(t, err, "a resolved future returns its outcome even under a canceled context")
	assert.Equal(t, 9, v)
}

func TestOnCompleteRunsInRegistrationOrder(t *testing.T) {
	p := NewPromise[int]()
	f := p.Future()

	var order []int
	for i := range 5 {
		f.OnComplete(func(v int, err error) {
			order = append(order, i)
		})
	}

	p.Fulfill(1)

	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestOnCompleteAfterResolutionFiresImmediately(t *testing.T) {
	f := Failed[int](errors.New("late party"))

	fired := false
	f.OnComplete(func(v int, err error) {
		fired = true
		assert.Error(t, err)
	})

	assert.True(t, fired, "late registration must still fire, synchronously")
}

func TestOnCompleteReceivesOutcome(t *testing.T) {
	p := NewPromise[string]()
	cause := errors.New("nope")

	var gotErr error
	p.Future().OnComplete(func(v string, err error) {
		gotErr = err
	})

	p.Fail(cause)

	assert.Same(t, cause, gotErr)
}

func TestOnCompleteFiresExactlyOnce(t *testing.T) {
	p := NewPromise[int]()

	calls := 0
	p.Future().OnComplete(func(int, error) { calls++ })

	p.Fulfill(1)
	p.Fulfill(2)
	p.Fail(errors.New("ignored"))

	assert.Equal(t, 1, calls)
}

func TestErr(t *testing.T) {
	p := NewPromise[int]()
	assert.NoError(t, p.Future().Err())

	cause := errors.New("bad")
	p.Fail(cause)
	assert.Same(t, cause, p.Future().Err())

	assert.NoError(t, Fulfilled(1).Err())
}

func TestFulfilledConstructor(t *testing.T) {
	f := Fulfilled("done")

	select {
	case <-f.Ready():
	default:
		t.Fatal("Fulfilled must return a ready future")
	}

	v, err := f.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "done", v)
}

func TestFailedConstructor(t *testing.T) {
	cause := errors.New("immediate")
	f := Failed[struct{}](cause)

	select {
	case <-f.Ready():
	default:
		t.Fatal("Failed must return a ready future")
	}

	_, err := f.Get(context.Background())
	assert.Same(t, cause, err)
}

func TestConcurrentGetters(t *testing.T) {
	p := NewPromise[int]()

	var wg sync.WaitGroup
	results := make([]int, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := p.Future().Get(context.Background())
			assert.NoError(t, err)
			results[i] = v
		}()
	}

	p.Fulfill(99)
	wg.Wait()

	for _, v := range results {
		assert.Equal(t, 99, v)
	}
}

func TestConcurrentResolvers(t *testing.T) {
	p := NewPromise[int]()

	var wg sync.WaitGroup
	wins := make([]bool, 16)
	for i := range wins {
		wg.Add(1)
		go func() {
			defer wg.Done()
			wins[i] = p.Fulfill(i)
		}()
	}
	wg.Wait()

	winners := 0
	for _, won := range wins {
		if won {
			winners++
		}
	}
	assert.Equal(t, 1, winners, "exactly one resolution must win")
}
