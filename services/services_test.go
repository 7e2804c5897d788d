package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"gym-management-api/apperrors"
	"gym-management-api/config"
	"gym-management-api/events"
	"gym-management-api/models"
	"gym-management-api/sessions"
	"gym-management-api/store"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const testCode = "1234"

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recordingPublisher) types() []events.Type {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]events.Type, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type
	}
	return out
}

type recordingMailer struct {
	mu   sync.Mutex
	sent map[string]string
}

func (m *recordingMailer) SendVerificationCode(_ context.Context, to, _, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sent == nil {
		m.sent = map[string]string{}
	}
	m.sent[to] = code
	return nil
}

type testEnv struct {
	svc      *Services
	store    *store.GormStore
	db       *gorm.DB
	sessions *sessions.Manager
	events   *recordingPublisher
	mailer   *recordingMailer
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormlogger.Discard})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, store.Migrate(db))
	require.NoError(t, store.Seed(db, config.AdminConfig{Name: "Admin", Email: "admin@gym.com", Password: "admin123"}))
	return db
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := setupTestDB(t)
	env := &testEnv{
		store:    store.New(db),
		db:       db,
		sessions: sessions.NewManager(time.Hour),
		events:   &recordingPublisher{},
		mailer:   &recordingMailer{},
	}
	env.svc = New(Deps{
		Store:            env.store,
		Sessions:         env.sessions,
		Events:           env.events,
		Mailer:           env.mailer,
		VerificationCode: testCode,
	})
	return env
}

// withStore rebuilds the services over a different store, sharing everything else.
func (env *testEnv) withStore(s store.Store) *Services {
	return New(Deps{Store: s, Sessions: env.sessions, Events: env.events, Mailer: env.mailer, VerificationCode: testCode})
}

func (env *testEnv) register(t *testing.T, name, email string, role models.UserRole) *models.User {
	t.Helper()
	user, err := env.svc.Auth.Register(context.Background(), RegisterInput{
		Name: name, Email: email, Password: "secret1", Role: role, Specialization: "Yoga",
	})
	require.NoError(t, err)
	require.NoError(t, env.svc.Auth.Verify(context.Background(), email, testCode))
	return user
}

func (env *testEnv) login(t *testing.T, email, password string) *LoginResult {
	t.Helper()
	res, err := env.svc.Auth.Login(context.Background(), email, password)
	require.NoError(t, err)
	return res
}

func (env *testEnv) admin(t *testing.T) *sessions.Session {
	t.Helper()
	res := env.login(t, "admin@gym.com", "admin123")
	require.Equal(t, DestAdminPanel, res.Destination)
	return res.Session
}

// failingStore fails the plan commit and delegates everything else.
type failingStore struct {
	store.Store
}

func (failingStore) UpdateMemberPlan(context.Context, uint, uint, string) error {
	return apperrors.PersistenceFailure(fmt.Errorf("disk full"), "member")
}
