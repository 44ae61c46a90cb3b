package maintenanceservice

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/GlebRadaev/gamehost/internal/clock"
	"github.com/GlebRadaev/gamehost/internal/config"
	"github.com/GlebRadaev/gamehost/internal/domain"
	"github.com/GlebRadaev/gamehost/internal/panel"
	"github.com/GlebRadaev/gamehost/internal/scheduler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

type progress struct {
	mu        sync.Mutex
	total     int
	processed int
	failed    int
	logs      []string
}

func (p *progress) AddTotal(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.total += n
}

func (p *progress) Processed() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.processed++
}

func (p *progress) Failed() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failed++
}

func (p *progress) Infof(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.logs = append(p.logs, fmt.Sprintf(format, args...))
}

func (p *progress) Warnf(format string, args ...any) {
	p.Infof(format, args...)
}

type mocks struct {
	servers   *MockServerRepo
	panel     *MockPanel
	installer *MockInstaller
	clock     *clock.FakeClock
}

func newService(t *testing.T) (*Service, mocks) {
	ctrl := gomock.NewController(t)
	m := mocks{
		servers:   NewMockServerRepo(ctrl),
		panel:     NewMockPanel(ctrl),
		installer: NewMockInstaller(ctrl),
		clock:     clock.NewFakeClock(testNow),
	}
	cfg := config.Maintenance{
		PageSize:     100,
		DeleteGrace:  7 * 24 * time.Hour,
		FreeDuration: 72 * time.Hour,
		FreeCooldown: 24 * time.Hour,
	}
	return New(cfg, m.servers, m.panel, m.installer, m.clock), m
}

func provisioned(id int) domain.Server {
	ptID := fmt.Sprintf("pt-%d", id)
	adminID := 1000 + id
	return domain.Server{ID: id, UserID: 1, PtServerID: &ptID, PtAdminID: &adminID}
}

func (m mocks) nothingToDelete() {
	m.servers.EXPECT().CountDeletable(gomock.Any(), testNow.Add(-7*24*time.Hour)).Return(0, nil)
}

func (m mocks) nothingInstalling() {
	m.servers.EXPECT().FindInstalling(gomock.Any(), 0, 100).Return(nil, nil)
}

func TestRunMaintenanceSweep_Expiry(t *testing.T) {
	service, m := newService(t)
	first, second := provisioned(1), provisioned(2)
	third := domain.Server{ID: 3, Suspended: true}

	gomock.InOrder(
		m.servers.EXPECT().CountExpired(gomock.Any(), testNow).Return(3, nil),
		m.servers.EXPECT().FindExpired(gomock.Any(), testNow, 100).Return([]domain.Server{first, second, third}, nil),
		m.servers.EXPECT().FindExpired(gomock.Any(), testNow, 100).Return(nil, nil),
	)
	m.panel.EXPECT().Suspend(gomock.Any(), "pt-1", 1001).Return(nil)
	m.panel.EXPECT().Suspend(gomock.Any(), "pt-2", 1002).Return(panel.ErrUnavailable)
	m.servers.EXPECT().MarkExpired(gomock.Any(), 1, true, testNow).Return(true, nil)
	m.servers.EXPECT().MarkExpired(gomock.Any(), 2, false, testNow).Return(true, nil)
	m.servers.EXPECT().MarkExpired(gomock.Any(), 3, true, testNow).Return(true, nil)
	m.nothingToDelete()
	m.nothingInstalling()

	p := &progress{}
	require.NoError(t, service.RunMaintenanceSweep(context.Background(), p))
	assert.Equal(t, 3, p.total)
	assert.Equal(t, 3, p.processed)
	assert.Equal(t, 1, p.failed)
}

func TestRunMaintenanceSweep_SecondRunIsEmpty(t *testing.T) {
	service, m := newService(t)
	m.servers.EXPECT().CountExpired(gomock.Any(), testNow).Return(0, nil).Times(2)
	m.servers.EXPECT().CountDeletable(gomock.Any(), gomock.Any()).Return(0, nil).Times(2)
	m.servers.EXPECT().FindInstalling(gomock.Any(), 0, 100).Return(nil, nil).Times(2)

	for i := 0; i < 2; i++ {
		p := &progress{}
		require.NoError(t, service.RunMaintenanceSweep(context.Background(), p))
		assert.Equal(t, 0, p.total)
		assert.Equal(t, 0, p.processed)
		assert.Equal(t, 0, p.failed)
	}
}

func TestRunMaintenanceSweep_StopsWhenPageMakesNoProgress(t *testing.T) {
	service, m := newService(t)
	raced := provisioned(4)
	raced.Suspended = true

	m.servers.EXPECT().CountExpired(gomock.Any(), testNow).Return(1, nil)
	m.servers.EXPECT().FindExpired(gomock.Any(), testNow, 100).Return([]domain.Server{raced}, nil).Times(1)
	m.servers.EXPECT().MarkExpired(gomock.Any(), 4, true, testNow).Return(false, nil)
	m.nothingToDelete()
	m.nothingInstalling()

	p := &progress{}
	require.NoError(t, service.RunMaintenanceSweep(context.Background(), p))
	assert.Equal(t, 1, p.processed)
}

func TestRunMaintenanceSweep_Deletion(t *testing.T) {
	service, m := newService(t)
	before := testNow.Add(-7 * 24 * time.Hour)
	gone, missing, stuck, local := provisioned(3), provisioned(4), provisioned(5), domain.Server{ID: 6}

	m.servers.EXPECT().CountExpired(gomock.Any(), testNow).Return(0, nil)
	gomock.InOrder(
		m.servers.EXPECT().CountDeletable(gomock.Any(), before).Return(4, nil),
		m.servers.EXPECT().FindDeletable(gomock.Any(), before, 0, 100).
			Return([]domain.Server{gone, missing, stuck, local}, nil),
		m.servers.EXPECT().FindDeletable(gomock.Any(), before, 6, 100).Return(nil, nil),
	)
	m.panel.EXPECT().DeleteServer(gomock.Any(), 1003).Return(nil)
	m.panel.EXPECT().DeleteServer(gomock.Any(), 1004).
		Return(&panel.StatusError{Method: "DELETE", Path: "/api/application/servers/1004", Code: 404})
	m.panel.EXPECT().DeleteServer(gomock.Any(), 1005).Return(panel.ErrUnavailable)
	m.servers.EXPECT().MarkDeleted(gomock.Any(), 3).Return(true, nil)
	m.servers.EXPECT().MarkDeleted(gomock.Any(), 4).Return(true, nil)
	m.servers.EXPECT().MarkDeleted(gomock.Any(), 6).Return(true, nil)
	m.nothingInstalling()

	p := &progress{}
	require.NoError(t, service.RunMaintenanceSweep(context.Background(), p))
	assert.Equal(t, 4, p.total)
	assert.Equal(t, 4, p.processed)
	assert.Equal(t, 1, p.failed)
}

func TestRunMaintenanceSweep_InstallPass(t *testing.T) {
	service, m := newService(t)
	done, pending, broken := provisioned(7), provisioned(8), provisioned(9)

	m.servers.EXPECT().CountExpired(gomock.Any(), testNow).Return(0, nil)
	m.nothingToDelete()
	gomock.InOrder(
		m.servers.EXPECT().FindInstalling(gomock.Any(), 0, 100).Return([]domain.Server{done, pending, broken}, nil),
		m.servers.EXPECT().FindInstalling(gomock.Any(), 9, 100).Return(nil, nil),
	)
	m.installer.EXPECT().CheckInstall(gomock.Any(), done).Return(true, nil)
	m.installer.EXPECT().CheckInstall(gomock.Any(), pending).Return(false, nil)
	m.installer.EXPECT().CheckInstall(gomock.Any(), broken).Return(false, panel.ErrUnavailable)

	p := &progress{}
	require.NoError(t, service.RunMaintenanceSweep(context.Background(), p))
	assert.Equal(t, 1, p.total)
	assert.Equal(t, 1, p.processed)
	assert.Equal(t, 0, p.failed)
}

func TestRunMaintenanceSweep_StoreErrorAborts(t *testing.T) {
	service, m := newService(t)
	dbErr := errors.New("connection reset")

	m.servers.EXPECT().CountExpired(gomock.Any(), testNow).Return(1, nil)
	m.servers.EXPECT().FindExpired(gomock.Any(), testNow, 100).Return([]domain.Server{{ID: 1, Suspended: true}}, nil)
	m.servers.EXPECT().MarkExpired(gomock.Any(), 1, true, testNow).Return(false, dbErr)

	err := service.RunMaintenanceSweep(context.Background(), &progress{})
	assert.ErrorIs(t, err, dbErr)
	assert.Contains(t, err.Error(), "expiry pass")
}

func TestRunMaintenanceSweep_Guard(t *testing.T) {
	service, m := newService(t)
	entered := make(chan struct{})
	release := make(chan struct{})

	m.servers.EXPECT().CountExpired(gomock.Any(), testNow).DoAndReturn(func(context.Context, time.Time) (int, error) {
		close(entered)
		<-release
		return 0, nil
	})
	m.nothingToDelete()
	m.nothingInstalling()

	done := make(chan error, 1)
	go func() { done <- service.RunMaintenanceSweep(context.Background(), &progress{}) }()
	<-entered

	err := service.RunMaintenanceSweep(context.Background(), &progress{})
	assert.ErrorIs(t, err, ErrSweepRunning)
	assert.ErrorIs(t, err, scheduler.ErrSkipped)

	close(release)
	require.NoError(t, <-done)
}

func TestExtendFreeServer(t *testing.T) {
	lastExtended := testNow.Add(-30 * time.Hour)

	free := func(status domain.ServerStatus) *domain.Server {
		s := provisioned(10)
		s.Status = status
		s.FreeServer = true
		s.LastExtended = &lastExtended
		return &s
	}

	tests := []struct {
		name        string
		userID      int
		prepareMock func(m mocks)
		check       func(t *testing.T, server *domain.Server)
		expectedErr error
	}{
		{
			name:   "not found",
			userID: 1,
			prepareMock: func(m mocks) {
				m.servers.EXPECT().FindByID(gomock.Any(), 10).Return(nil, nil)
			},
			expectedErr: ErrServerNotFound,
		},
		{
			name:   "another user",
			userID: 2,
			prepareMock: func(m mocks) {
				m.servers.EXPECT().FindByID(gomock.Any(), 10).Return(free(domain.ServerStatusActive), nil)
			},
			expectedErr: ErrNotOwner,
		},
		{
			name:   "paid server",
			userID: 1,
			prepareMock: func(m mocks) {
				s := free(domain.ServerStatusActive)
				s.FreeServer = false
				m.servers.EXPECT().FindByID(gomock.Any(), 10).Return(s, nil)
			},
			expectedErr: ErrNotFreeServer,
		},
		{
			name:   "deleted",
			userID: 1,
			prepareMock: func(m mocks) {
				m.servers.EXPECT().FindByID(gomock.Any(), 10).Return(free(domain.ServerStatusDeleted), nil)
			},
			expectedErr: domain.ErrTerminalStatus,
		},
		{
			name:   "still installing",
			userID: 1,
			prepareMock: func(m mocks) {
				m.servers.EXPECT().FindByID(gomock.Any(), 10).Return(free(domain.ServerStatusNone), nil)
			},
			expectedErr: ErrNotExtendable,
		},
		{
			name:   "active server renewed",
			userID: 1,
			prepareMock: func(m mocks) {
				m.servers.EXPECT().FindByID(gomock.Any(), 10).Return(free(domain.ServerStatusActive), nil)
				m.servers.EXPECT().Extend(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			check: func(t *testing.T, server *domain.Server) {
				assert.Equal(t, domain.ServerStatusActive, server.Status)
				assert.Equal(t, testNow.Add(72*time.Hour), server.Expires)
				require.NotNil(t, server.LastExtended)
				assert.Equal(t, testNow, *server.LastExtended)
			},
		},
		{
			name:   "expired server unsuspended",
			userID: 1,
			prepareMock: func(m mocks) {
				s := free(domain.ServerStatusExpired)
				s.Suspended = true
				m.servers.EXPECT().FindByID(gomock.Any(), 10).Return(s, nil)
				m.panel.EXPECT().Unsuspend(gomock.Any(), 1010).Return(nil)
				m.servers.EXPECT().Extend(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, server *domain.Server) (bool, error) {
						assert.False(t, server.Suspended)
						assert.Equal(t, domain.ServerStatusActive, server.Status)
						return true, nil
					})
			},
			check: func(t *testing.T, server *domain.Server) {
				assert.False(t, server.Suspended)
			},
		},
		{
			name:   "unsuspend failure keeps the flag",
			userID: 1,
			prepareMock: func(m mocks) {
				s := free(domain.ServerStatusExpired)
				s.Suspended = true
				m.servers.EXPECT().FindByID(gomock.Any(), 10).Return(s, nil)
				m.panel.EXPECT().Unsuspend(gomock.Any(), 1010).Return(panel.ErrUnavailable)
				m.servers.EXPECT().Extend(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			check: func(t *testing.T, server *domain.Server) {
				assert.True(t, server.Suspended)
				assert.Equal(t, domain.ServerStatusActive, server.Status)
			},
		},
		{
			name:   "row changed underneath",
			userID: 1,
			prepareMock: func(m mocks) {
				m.servers.EXPECT().FindByID(gomock.Any(), 10).Return(free(domain.ServerStatusActive), nil)
				m.servers.EXPECT().Extend(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			expectedErr: ErrNotExtendable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := newService(t)
			tt.prepareMock(m)

			server, err := service.ExtendFreeServer(context.Background(), tt.userID, 10)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, server)
				return
			}
			require.NoError(t, err)
			tt.check(t, server)
		})
	}
}

func TestExtendFreeServer_Cooldown(t *testing.T) {
	service, m := newService(t)
	lastExtended := testNow.Add(-6 * time.Hour)
	server := provisioned(11)
	server.Status = domain.ServerStatusActive
	server.FreeServer = true
	server.LastExtended = &lastExtended

	m.servers.EXPECT().FindByID(gomock.Any(), 11).DoAndReturn(func(context.Context, int) (*domain.Server, error) {
		s := server
		return &s, nil
	}).Times(2)

	_, err := service.ExtendFreeServer(context.Background(), 1, 11)
	var cooldown *CooldownError
	require.ErrorAs(t, err, &cooldown)
	assert.Equal(t, lastExtended.Add(24*time.Hour), cooldown.CanExtendAt)
	assert.Equal(t, 18*time.Hour, cooldown.Remaining)

	m.clock.Advance(time.Hour)
	_, err = service.ExtendFreeServer(context.Background(), 1, 11)
	var again *CooldownError
	require.ErrorAs(t, err, &again)
	assert.Equal(t, cooldown.CanExtendAt, again.CanExtendAt)
	assert.Equal(t, 17*time.Hour, again.Remaining)
}
