package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simslyfe/server/internal/domain/life"
	"github.com/simslyfe/server/internal/events"
)

func testRepos(t *testing.T) (*SQLiteSaveRepository, *SQLiteEventRepository) {
	t.Helper()
	db, err := InitSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewSQLiteSaveRepository(db), NewSQLiteEventRepository(db)
}

func sampleState() life.State {
	s := life.NewState()
	s.Age = 12
	s.Money = 740
	s.GameDate = time.Date(2036, 1, 1, 0, 0, 0, 0, time.UTC)
	s.EducationStatus = life.StatusPrimary
	grants := life.StatusSecondary
	s.SetEnrollment(&life.Enrollment{
		ID: "au_secondary_public", Name: "Public Secondary School",
		Stage: life.StageSecondary, Duration: 6, TimeRemaining: 6,
		GrantsStatus: &grants, CurrentGPA: 3.2,
	})
	s.EventLog = []string{"1/1/2036: Turned 12."}
	return *s
}

func TestSaveUpsertGetRoundTrip(t *testing.T) {
	saves, _ := testRepos(t)
	ctx := context.Background()
	slot := uuid.NewString()

	require.NoError(t, saves.Upsert(ctx, slot, "First life", sampleState()))

	got, err := saves.Get(ctx, slot)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 12, got.Age)
	assert.Equal(t, 740, got.Money)
	assert.Equal(t, life.StatusPrimary, got.EducationStatus)
	require.NotNil(t, got.CurrentEnrollment)
	assert.Equal(t, "au_secondary_public", got.CurrentEnrollment.ID)
	assert.True(t, got.IsCurrentlyEnrolled)
	assert.Equal(t, []string{"1/1/2036: Turned 12."}, got.EventLog)
}

func TestSaveGetMissingSlotReturnsNil(t *testing.T) {
	saves, _ := testRepos(t)

	got, err := saves.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSaveUpsertOverwrites(t *testing.T) {
	saves, _ := testRepos(t)
	ctx := context.Background()
	slot := uuid.NewString()

	first := sampleState()
	require.NoError(t, saves.Upsert(ctx, slot, "slot", first))

	second := sampleState()
	second.Age = 30
	require.NoError(t, saves.Upsert(ctx, slot, "slot", second))

	got, err := saves.Get(ctx, slot)
	require.NoError(t, err)
	assert.Equal(t, 30, got.Age)

	slots, err := saves.List(ctx)
	require.NoError(t, err)
	assert.Len(t, slots, 1)
}

func TestSaveListCarriesAgeAndName(t *testing.T) {
	saves, _ := testRepos(t)
	ctx := context.Background()

	require.NoError(t, saves.Upsert(ctx, "a", "Life A", sampleState()))
	older := sampleState()
	older.Age = 55
	require.NoError(t, saves.Upsert(ctx, "b", "Life B", older))

	slots, err := saves.List(ctx)
	require.NoError(t, err)
	require.Len(t, slots, 2)

	byID := map[string]SaveSummary{}
	for _, s := range slots {
		byID[s.SlotID] = s
	}
	assert.Equal(t, "Life A", byID["a"].Name)
	assert.Equal(t, 12, byID["a"].Age)
	assert.Equal(t, 55, byID["b"].Age)
}

func TestSaveDeleteRemovesSlotAndEvents(t *testing.T) {
	saves, eventsRepo := testRepos(t)
	ctx := context.Background()

	require.NoError(t, saves.Upsert(ctx, "a", "Life A", sampleState()))
	entry := events.NewEntry(events.KindYearAdvanced, time.Now(), 1, "Turned 1.")
	require.NoError(t, eventsRepo.Append(ctx, "a", entry))

	require.NoError(t, saves.Delete(ctx, "a"))

	got, err := saves.Get(ctx, "a")
	require.NoError(t, err)
	assert.Nil(t, got)

	rows, err := eventsRepo.ListBySlot(ctx, "a")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestEventAppendAndList(t *testing.T) {
	_, eventsRepo := testRepos(t)
	ctx := context.Background()
	gameDate := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	e1 := events.NewEntry(events.KindYearAdvanced, gameDate, 6, "Turned 6.")
	e2 := events.NewEntry(events.KindEnrollment, gameDate, 6, "Enrolled in Elementary School.")
	require.NoError(t, eventsRepo.Append(ctx, "slot", e1))
	require.NoError(t, eventsRepo.Append(ctx, "slot", e2))

	all, err := eventsRepo.ListBySlot(ctx, "slot")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, e1.ID, all[0].ID)
	assert.Equal(t, "Turned 6.", all[0].Message)
	assert.Equal(t, events.KindYearAdvanced, all[0].Kind)
	assert.Equal(t, 6, all[0].Age)

	enrollments, err := eventsRepo.ListByKind(ctx, "slot", events.KindEnrollment)
	require.NoError(t, err)
	require.Len(t, enrollments, 1)
	assert.Equal(t, e2.ID, enrollments[0].ID)
}
