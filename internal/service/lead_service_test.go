package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Dinesh1441/carstreet-sub002/internal/dto"
	"github.com/Dinesh1441/carstreet-sub002/internal/models"
	"github.com/Dinesh1441/carstreet-sub002/internal/repository"
)

func setupLeadTest(t *testing.T) (LeadService, *memoryActivityRepo) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Lead{}))

	activityRepo := &memoryActivityRepo{}
	writer := NewActivityWriter(activityRepo, nil, testLogger())
	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewLeadService(repository.NewLeadRepository(db), writer, validate, testLogger())
	return svc, activityRepo
}

func TestLeadCreateRecordsActivity(t *testing.T) {
	svc, activityRepo := setupLeadTest(t)

	lead, err := svc.Create(context.Background(), ptrUint(5), dto.LeadCreateRequest{
		Name:   "Ravi Kumar",
		Phone:  "9876543210",
		Source: "walk_in",
	})
	require.NoError(t, err)
	require.Equal(t, models.LeadStageNew, lead.Stage)

	require.Len(t, activityRepo.events, 1)
	event := activityRepo.events[0]
	require.Equal(t, "lead_created", event.EventType)
	require.Equal(t, lead.ID, event.SubjectID)
	require.NotNil(t, event.LeadID)
	require.Equal(t, lead.ID, *event.LeadID)
	require.NotNil(t, event.ActorID)
	require.Equal(t, uint(5), *event.ActorID)
	require.Equal(t, "walk_in", event.Metadata["source"])
}

func TestLeadCreateActorFallsBackToOwner(t *testing.T) {
	svc, activityRepo := setupLeadTest(t)

	_, err := svc.Create(context.Background(), nil, dto.LeadCreateRequest{
		Name:    "Meena",
		OwnerID: ptrUint(11),
	})
	require.NoError(t, err)

	require.Len(t, activityRepo.events, 1)
	require.NotNil(t, activityRepo.events[0].ActorID)
	require.Equal(t, uint(11), *activityRepo.events[0].ActorID)
}

func TestLeadCreateWithoutActorOrOwnerIsSystemEvent(t *testing.T) {
	svc, activityRepo := setupLeadTest(t)

	_, err := svc.Create(context.Background(), nil, dto.LeadCreateRequest{Name: "Anon"})
	require.NoError(t, err)

	require.Len(t, activityRepo.events, 1)
	require.Nil(t, activityRepo.events[0].ActorID)
}

func TestLeadStageUpdateRecordsTransition(t *testing.T) {
	svc, activityRepo := setupLeadTest(t)

	lead, err := svc.Create(context.Background(), ptrUint(2), dto.LeadCreateRequest{Name: "Sunil"})
	require.NoError(t, err)

	updated, err := svc.UpdateStage(context.Background(), ptrUint(2), lead.ID, dto.LeadStageUpdateRequest{Stage: models.LeadStageQualified})
	require.NoError(t, err)
	require.Equal(t, models.LeadStageQualified, updated.Stage)

	require.Len(t, activityRepo.events, 2)
	event := activityRepo.events[1]
	require.Equal(t, "lead_stage_updated", event.EventType)
	require.Equal(t, models.LeadStageNew, event.Metadata["oldStage"])
	require.Equal(t, models.LeadStageQualified, event.Metadata["newStage"])
}

func TestLeadStageUpdateRejectsUnknownStage(t *testing.T) {
	svc, activityRepo := setupLeadTest(t)

	lead, err := svc.Create(context.Background(), nil, dto.LeadCreateRequest{Name: "Sunil"})
	require.NoError(t, err)

	_, err = svc.UpdateStage(context.Background(), nil, lead.ID, dto.LeadStageUpdateRequest{Stage: "teleported"})
	require.Error(t, err)
	require.Len(t, activityRepo.events, 1, "rejected mutation must not produce an audit entry")
}

func TestLeadMutationSucceedsWhenAuditWriteFails(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Lead{}))

	activityRepo := &memoryActivityRepo{failed: true}
	writer := NewActivityWriter(activityRepo, nil, testLogger())
	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewLeadService(repository.NewLeadRepository(db), writer, validate, testLogger())

	// audit persistence is down, the primary mutation must still succeed
	lead, err := svc.Create(context.Background(), ptrUint(1), dto.LeadCreateRequest{Name: "Resilient"})
	require.NoError(t, err)
	require.NotZero(t, lead.ID)
	require.Empty(t, activityRepo.events)
}

func TestLeadNoteIsSanitized(t *testing.T) {
	svc, activityRepo := setupLeadTest(t)

	lead, err := svc.Create(context.Background(), ptrUint(1), dto.LeadCreateRequest{Name: "Nita"})
	require.NoError(t, err)

	_, err = svc.AddNote(context.Background(), ptrUint(1), lead.ID, dto.LeadNoteRequest{
		Note: `Interested in <b>sedan</b><script>alert(1)</script>`,
	})
	require.NoError(t, err)

	require.Len(t, activityRepo.events, 2)
	require.Equal(t, "Interested in sedan", activityRepo.events[1].Metadata["note"])
}
