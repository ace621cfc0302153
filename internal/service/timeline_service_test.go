package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Dinesh1441/carstreet-sub002/internal/models"
	"github.com/Dinesh1441/carstreet-sub002/internal/repository"
)

func setupTimelineTest(t *testing.T) (repository.ActivityRepository, ActivityWriter, TimelineService) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.ActivityEvent{}))

	repo := repository.NewActivityRepository(db)
	writer := NewActivityWriter(repo, nil, testLogger())
	reader := NewTimelineService(repo, nil, time.Minute, testLogger())
	return repo, writer, reader
}

func TestTimelineEmptyStateIsNotAnError(t *testing.T) {
	_, _, reader := setupTimelineTest(t)

	result, err := reader.GetTimeline(context.Background(), 42, map[string]string{})
	require.NoError(t, err)
	require.Empty(t, result.Items)
	require.Equal(t, int64(0), result.Pagination.TotalItems)
	require.Equal(t, 0, result.Pagination.TotalPages)
	require.Equal(t, 1, result.Pagination.CurrentPage)
	require.False(t, result.Pagination.HasNextPage)
	require.False(t, result.Pagination.HasPrevPage)
}

func TestTimelineInvalidLeadYieldsEmptyPage(t *testing.T) {
	_, _, reader := setupTimelineTest(t)

	result, err := reader.GetTimeline(context.Background(), 0, map[string]string{})
	require.NoError(t, err)
	require.Empty(t, result.Items)
	require.Equal(t, int64(0), result.Pagination.TotalItems)
}

func TestTimelineCreateThenList(t *testing.T) {
	_, writer, reader := setupTimelineTest(t)

	_, err := writer.Record(context.Background(), ActivityEntry{
		EventType: "document_uploaded",
		Summary:   "Document RC Copy was uploaded",
		SubjectID: 9,
		LeadID:    ptrUint(1),
		Metadata:  map[string]interface{}{"title": "RC Copy", "fileSize": 1024},
	})
	require.NoError(t, err)

	result, err := reader.GetTimeline(context.Background(), 1, map[string]string{})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	require.Equal(t, "document_uploaded", result.Items[0].EventType)
	require.Equal(t, "RC Copy", result.Items[0].Metadata["title"])
	require.EqualValues(t, 1024, result.Items[0].Metadata["fileSize"])
	require.Equal(t, int64(1), result.Pagination.TotalItems)
	require.Equal(t, 1, result.Pagination.TotalPages)
}

func TestTimelineLeadScoping(t *testing.T) {
	_, writer, reader := setupTimelineTest(t)

	_, err := writer.Record(context.Background(), ActivityEntry{
		EventType: "lead_created", Summary: "Lead one", SubjectID: 1, LeadID: ptrUint(1),
	})
	require.NoError(t, err)
	_, err = writer.Record(context.Background(), ActivityEntry{
		EventType: "lead_created", Summary: "Lead two", SubjectID: 2, LeadID: ptrUint(2),
	})
	require.NoError(t, err)

	result, err := reader.GetTimeline(context.Background(), 1, map[string]string{})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	require.Equal(t, "Lead one", result.Items[0].Summary)
}

func TestTimelineReadIsIdempotent(t *testing.T) {
	_, writer, reader := setupTimelineTest(t)

	for i := 0; i < 4; i++ {
		_, err := writer.Record(context.Background(), ActivityEntry{
			EventType: "note_added",
			Summary:   fmt.Sprintf("note %d", i),
			SubjectID: uint(i + 1),
			LeadID:    ptrUint(1),
		})
		require.NoError(t, err)
	}

	first, err := reader.GetTimeline(context.Background(), 1, map[string]string{"limit": "2", "page": "2"})
	require.NoError(t, err)
	second, err := reader.GetTimeline(context.Background(), 1, map[string]string{"limit": "2", "page": "2"})
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestTimelineDefaultPaginationMatchesExplicit(t *testing.T) {
	_, writer, reader := setupTimelineTest(t)

	for i := 0; i < 15; i++ {
		_, err := writer.Record(context.Background(), ActivityEntry{
			EventType: "note_added",
			Summary:   fmt.Sprintf("note %d", i),
			SubjectID: uint(i + 1),
			LeadID:    ptrUint(1),
		})
		require.NoError(t, err)
	}

	implicit, err := reader.GetTimeline(context.Background(), 1, map[string]string{})
	require.NoError(t, err)
	explicit, err := reader.GetTimeline(context.Background(), 1, map[string]string{"page": "1", "limit": "10"})
	require.NoError(t, err)

	require.Equal(t, implicit, explicit)
	require.Len(t, implicit.Items, 10)
	require.Equal(t, 2, implicit.Pagination.TotalPages)
	require.True(t, implicit.Pagination.HasNextPage)
	require.False(t, implicit.Pagination.HasPrevPage)
}

func TestTimelineNewestFirst(t *testing.T) {
	_, writer, reader := setupTimelineTest(t)

	for i := 0; i < 3; i++ {
		_, err := writer.Record(context.Background(), ActivityEntry{
			EventType: "note_added",
			Summary:   fmt.Sprintf("note %d", i),
			SubjectID: uint(i + 1),
			LeadID:    ptrUint(1),
		})
		require.NoError(t, err)
	}

	result, err := reader.GetTimeline(context.Background(), 1, map[string]string{})
	require.NoError(t, err)
	require.Len(t, result.Items, 3)
	require.Equal(t, "note 2", result.Items[0].Summary)
	require.Equal(t, "note 0", result.Items[2].Summary)
}

func TestTimelineCacheHitAndInvalidation(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = cache.Close() })

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.ActivityEvent{}))

	repo := repository.NewActivityRepository(db)
	writer := NewActivityWriter(repo, cache, testLogger())
	reader := NewTimelineService(repo, cache, time.Minute, testLogger())

	_, err = writer.Record(context.Background(), ActivityEntry{
		EventType: "lead_created", Summary: "Lead created", SubjectID: 1, LeadID: ptrUint(1),
	})
	require.NoError(t, err)

	first, err := reader.GetTimeline(context.Background(), 1, map[string]string{})
	require.NoError(t, err)
	require.Len(t, first.Items, 1)

	// served from cache, identical payload
	cached, err := reader.GetTimeline(context.Background(), 1, map[string]string{})
	require.NoError(t, err)
	require.Equal(t, first.Pagination, cached.Pagination)
	require.Len(t, cached.Items, 1)
	require.Equal(t, first.Items[0].ID, cached.Items[0].ID)
	require.Equal(t, first.Items[0].Summary, cached.Items[0].Summary)

	// a new write bumps the version so the next read sees fresh data
	_, err = writer.Record(context.Background(), ActivityEntry{
		EventType: "note_added", Summary: "Follow-up call", SubjectID: 1, LeadID: ptrUint(1),
	})
	require.NoError(t, err)

	fresh, err := reader.GetTimeline(context.Background(), 1, map[string]string{})
	require.NoError(t, err)
	require.Len(t, fresh.Items, 2)
	require.Equal(t, "Follow-up call", fresh.Items[0].Summary)
}
