package vault

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestService(t *testing.T, ttl time.Duration) (*Service, *fakeExecutor) {
	t.Helper()
	fe := newFakeExecutor()
	entity := customerEntity()
	stockHubQueries(t, fe, &entity)

	engine := NewEngine(fe, zap.NewNop(), Options{})
	return NewService(engine, []EntityConfig{entity}, ttl, zap.NewNop()), fe
}

func TestService_Run_CachesWithinTTL(t *testing.T) {
	svc, fe := newTestService(t, time.Minute)

	first, err := svc.Run(context.Background(), "test", false)
	assert.NoError(t, err)
	queries := fe.queryCount()
	assert.Greater(t, queries, 0)

	second, err := svc.Run(context.Background(), "test", false)
	assert.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, queries, fe.queryCount())
}

func TestService_Run_ForceBypassesCache(t *testing.T) {
	svc, fe := newTestService(t, time.Minute)

	first, err := svc.Run(context.Background(), "test", false)
	assert.NoError(t, err)
	queries := fe.queryCount()

	second, err := svc.Run(context.Background(), "test", true)
	assert.NoError(t, err)
	assert.NotEqual(t, first.RunID, second.RunID)
	assert.Greater(t, fe.queryCount(), queries)
}

func TestService_Run_ZeroTTLDisablesCache(t *testing.T) {
	svc, fe := newTestService(t, 0)

	_, err := svc.Run(context.Background(), "test", false)
	assert.NoError(t, err)
	queries := fe.queryCount()

	_, err = svc.Run(context.Background(), "test", false)
	assert.NoError(t, err)
	assert.Greater(t, fe.queryCount(), queries)
}

func TestService_Latest(t *testing.T) {
	svc, _ := newTestService(t, time.Minute)
	assert.Nil(t, svc.Latest())

	report, err := svc.Run(context.Background(), "test", false)
	assert.NoError(t, err)
	assert.Same(t, report, svc.Latest())
}

func TestService_OnComplete(t *testing.T) {
	svc, _ := newTestService(t, time.Minute)

	done := make(chan *Report, 1)
	svc.OnComplete = func(r *Report) { done <- r }

	report, err := svc.Run(context.Background(), "test", false)
	assert.NoError(t, err)

	select {
	case got := <-done:
		assert.Equal(t, report.RunID, got.RunID)
	case <-time.After(2 * time.Second):
		t.Fatal("OnComplete was never called")
	}
}
