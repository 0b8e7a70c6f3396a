package queue_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/storefront/config"
	"github.com/shashiranjanraj/storefront/pkg/queue"
	"github.com/shashiranjanraj/storefront/pkg/testkit"
)

var (
	echoRuns atomic.Int32
	failRuns atomic.Int32
)

type echoJob struct {
	Val string `json:"val"`
}

func (echoJob) JobName() string { return "echo" }

func (j *echoJob) Handle(context.Context) error {
	if j.Val == "" {
		return errors.New("empty payload")
	}
	echoRuns.Add(1)
	return nil
}

type failJob struct{}

func (failJob) JobName() string  { return "fail" }
func (failJob) MaxAttempts() int { return 2 }

func (*failJob) Handle(context.Context) error {
	failRuns.Add(1)
	return errors.New("always fails")
}

func newManager(t *testing.T, driver queue.Driver, opts queue.Options) *queue.Manager {
	t.Helper()
	opts.Backoff = func(int) time.Duration { return time.Millisecond }
	m := queue.New(driver, opts)
	m.Register("echo", func() queue.Job { return &echoJob{} })
	m.Register("fail", func() queue.Job { return &failJob{} })
	return m
}

func TestDispatchAndProcess(t *testing.T) {
	m := newManager(t, queue.NewMemoryDriver(10), queue.Options{Workers: 2})
	m.Start(context.Background())

	before := echoRuns.Load()
	for i := 0; i < 5; i++ {
		require.NoError(t, m.Dispatch(context.Background(), &echoJob{Val: "hi"}))
	}

	require.Eventually(t, func() bool { return echoRuns.Load()-before == 5 }, 2*time.Second, 10*time.Millisecond)
	m.Stop()
}

func TestFailedJobPersisted(t *testing.T) {
	db := testkit.NewDB(t, &queue.FailedJobRecord{})
	m := newManager(t, queue.NewMemoryDriver(10), queue.Options{DB: db})
	m.Start(context.Background())

	before := failRuns.Load()
	require.NoError(t, m.Dispatch(context.Background(), &failJob{}))

	var failed []queue.FailedJobRecord
	require.Eventually(t, func() bool {
		var err error
		failed, err = m.FailedJobs(context.Background())
		return err == nil && len(failed) == 1
	}, 2*time.Second, 10*time.Millisecond)
	m.Stop()

	assert.Equal(t, "fail", failed[0].JobType)
	assert.Equal(t, 2, failed[0].Attempts)
	assert.Equal(t, "always fails", failed[0].Error)
	assert.EqualValues(t, 2, failRuns.Load()-before)
}

func TestUnregisteredJobKeptInMemory(t *testing.T) {
	m := queue.New(queue.NewMemoryDriver(10), queue.Options{})
	m.Start(context.Background())
	require.NoError(t, m.Dispatch(context.Background(), &echoJob{Val: "x"}))

	require.Eventually(t, func() bool {
		failed, _ := m.FailedJobs(context.Background())
		return len(failed) == 1 && failed[0].Error == "unregistered job type"
	}, 2*time.Second, 10*time.Millisecond)
	m.Stop()
}

func TestMemoryDriverFull(t *testing.T) {
	m := queue.New(queue.NewMemoryDriver(1), queue.Options{})

	require.NoError(t, m.Dispatch(context.Background(), &echoJob{Val: "a"}))
	assert.ErrorIs(t, m.Dispatch(context.Background(), &echoJob{Val: "b"}), queue.ErrQueueFull)
}

func TestStopWithoutStart(t *testing.T) {
	m := queue.New(queue.NewMemoryDriver(1), queue.Options{})
	assert.NotPanics(t, m.Stop)
}

func TestRedisDriver(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	driver, err := queue.NewDriver(config.Queue{Driver: "redis", Key: "test:jobs"}, rdb)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, driver.Push(ctx, []byte("first")))
	require.NoError(t, driver.Push(ctx, []byte("second")))

	got, err := driver.Pop(ctx)
	require.NoError(t, err)
	assert.Equal(t, "first", string(got))

	n, err := rdb.LLen(ctx, "test:jobs").Result()
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestNewDriver(t *testing.T) {
	d, err := queue.NewDriver(config.Queue{Driver: "memory", Buffer: 4}, nil)
	require.NoError(t, err)
	assert.IsType(t, &queue.MemoryDriver{}, d)

	_, err = queue.NewDriver(config.Queue{Driver: "redis"}, nil)
	assert.Error(t, err)

	_, err = queue.NewDriver(config.Queue{Driver: "kafka"}, nil)
	assert.Error(t, err)
}
