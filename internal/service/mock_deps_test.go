package service

import (
	"context"
	"sync"
	"time"

	"github.com/berba-q/hospitality-scheduler-sub001/internal/model"
	"github.com/berba-q/hospitality-scheduler-sub001/internal/rosterclient"
	"github.com/berba-q/hospitality-scheduler-sub001/internal/workflow"
)

// ── Mock RosterGateway ──

type mockRosterGateway struct {
	mu        sync.Mutex
	raws      []rosterclient.RawSwapRequest
	timeline  []rosterclient.TimelineEvent
	listErr   error
	execErr   error
	listCalls int
	executed  []*workflow.Call
}

func newMockRosterGateway() *mockRosterGateway {
	return &mockRosterGateway{}
}

func (m *mockRosterGateway) ListSwapRequests(_ context.Context, _ string) ([]rosterclient.RawSwapRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listCalls++
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.raws, nil
}

func (m *mockRosterGateway) GetTimeline(_ context.Context, _ string) ([]rosterclient.TimelineEvent, error) {
	return m.timeline, nil
}

func (m *mockRosterGateway) Execute(_ context.Context, call *workflow.Call) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.executed = append(m.executed, call)
	return m.execErr
}

// ── Mock SnapshotCache ──

type mockSnapshotCache struct {
	mu        sync.Mutex
	snapshots map[string]string
}

func newMockSnapshotCache() *mockSnapshotCache {
	return &mockSnapshotCache{snapshots: make(map[string]string)}
}

func (m *mockSnapshotCache) GetSnapshot(_ context.Context, userID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshots[userID], nil
}

func (m *mockSnapshotCache) SetSnapshot(_ context.Context, userID, payload string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshots[userID] = payload
	return nil
}

func (m *mockSnapshotCache) InvalidateSnapshot(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.snapshots, userID)
	return nil
}

// ── Mock DispatchLogRepository ──

type mockDispatchLogRepo struct {
	mu   sync.Mutex
	logs []model.DispatchLog
}

func newMockDispatchLogRepo() *mockDispatchLogRepo {
	return &mockDispatchLogRepo{}
}

func (m *mockDispatchLogRepo) Create(_ context.Context, log *model.DispatchLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs = append(m.logs, *log)
	return nil
}

func (m *mockDispatchLogRepo) ListBySwapRequest(_ context.Context, swapRequestID string) ([]model.DispatchLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.DispatchLog
	for _, l := range m.logs {
		if l.SwapRequestID == swapRequestID {
			result = append(result, l)
		}
	}
	return result, nil
}

func (m *mockDispatchLogRepo) ListByActor(_ context.Context, actorID string, limit int) ([]model.DispatchLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.DispatchLog
	for _, l := range m.logs {
		if l.ActorID == actorID {
			result = append(result, l)
		}
	}
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}
