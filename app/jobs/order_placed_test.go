package jobs_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/storefront/app/jobs"
	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/notifications"
	"github.com/shashiranjanraj/storefront/pkg/notification"
	"github.com/shashiranjanraj/storefront/pkg/queue"
	"github.com/shashiranjanraj/storefront/pkg/testkit"
)

type fakeNotifier struct {
	mu    sync.Mutex
	sent  []notification.Notification
	to    []string
	fails bool
}

func (f *fakeNotifier) Send(_ context.Context, address string, n notification.Notification) []error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, n)
	f.to = append(f.to, address)
	if f.fails {
		return []error{errors.New("smtp down")}
	}
	return nil
}

func (f *fakeNotifier) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

type fakeOrders struct{}

func (fakeOrders) FindWithProduct(_ context.Context, id uint) (*models.Order, error) {
	return &models.Order{ProductID: 3, Product: &models.Product{Name: "Kemeja Batik"}}, nil
}

func startQueue(t *testing.T, n jobs.Notifier) *queue.Manager {
	t.Helper()
	q := queue.New(queue.NewMemoryDriver(10), queue.Options{Workers: 1, DB: testkit.NewDB(t, &queue.FailedJobRecord{})})
	jobs.Register(q, n, fakeOrders{})
	q.Start(context.Background())
	t.Cleanup(q.Stop)
	return q
}

func TestOrderPlacedSendsNotification(t *testing.T) {
	n := &fakeNotifier{}
	q := startQueue(t, n)

	require.NoError(t, q.Dispatch(context.Background(), &jobs.OrderPlaced{OrderID: 7, ProductID: 3, Email: "budi@example.com", Name: "Budi"}))
	require.Eventually(t, func() bool { return n.count() == 1 }, 2*time.Second, 10*time.Millisecond)

	n.mu.Lock()
	defer n.mu.Unlock()
	assert.Equal(t, "budi@example.com", n.to[0])
	msg := n.sent[0].(*notifications.OrderPlaced)
	assert.Equal(t, uint(7), msg.OrderID)
	assert.Equal(t, "Kemeja Batik", msg.ProductName)
	assert.Contains(t, msg.ToMail().Body, "Kemeja Batik")
}

func TestOrderPlacedFailureIsRecordedOnce(t *testing.T) {
	n := &fakeNotifier{fails: true}
	q := startQueue(t, n)

	require.NoError(t, q.Dispatch(context.Background(), &jobs.OrderPlaced{OrderID: 8, Email: "budi@example.com"}))

	var failed []queue.FailedJobRecord
	require.Eventually(t, func() bool {
		var err error
		failed, err = q.FailedJobs(context.Background())
		return err == nil && len(failed) == 1
	}, 2*time.Second, 10*time.Millisecond)

	assert.Equal(t, jobs.OrderPlacedName, failed[0].JobType)
	assert.Equal(t, 1, failed[0].Attempts)
	assert.Contains(t, failed[0].Error, "smtp down")
	assert.Equal(t, 1, n.count())
}

func TestOrderPlacedWithoutNotifier(t *testing.T) {
	err := (&jobs.OrderPlaced{OrderID: 1}).Handle(context.Background())
	assert.Error(t, err)
}
