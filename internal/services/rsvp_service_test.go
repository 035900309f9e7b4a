package services

import (
	"strings"
	"testing"
	"time"

	"inviteme_backend/internal/models"
	"inviteme_backend/internal/repositories"
	"inviteme_backend/internal/services/dto"
	"inviteme_backend/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRSVPRepo struct {
	byID map[string]*models.RSVP
}

func newFakeRSVPRepo() *fakeRSVPRepo {
	return &fakeRSVPRepo{byID: make(map[string]*models.RSVP)}
}

func (r *fakeRSVPRepo) Create(db *gorm.DB, rsvp *models.RSVP) error {
	if rsvp.ID == "" {
		rsvp.ID = uuid.NewString()
	}
	cp := *rsvp
	r.byID[rsvp.ID] = &cp
	return nil
}

func (r *fakeRSVPRepo) FindByID(db *gorm.DB, id string) (*models.RSVP, error) {
	rsvp, ok := r.byID[id]
	if !ok {
		return nil, repositories.ErrRSVPNotFound
	}
	cp := *rsvp
	return &cp, nil
}

func (r *fakeRSVPRepo) FindByInvitationAndEmail(db *gorm.DB, invitationID, email string) (*models.RSVP, error) {
	for _, rsvp := range r.byID {
		if rsvp.InvitationID == invitationID && rsvp.Email == email {
			cp := *rsvp
			return &cp, nil
		}
	}
	return nil, repositories.ErrRSVPNotFound
}

func (r *fakeRSVPRepo) FindByInvitation(db *gorm.DB, invitationID string) ([]models.RSVP, error) {
	var out []models.RSVP
	for _, rsvp := range r.byID {
		if rsvp.InvitationID == invitationID {
			out = append(out, *rsvp)
		}
	}
	return out, nil
}

func (r *fakeRSVPRepo) Update(db *gorm.DB, rsvp *models.RSVP) error {
	cp := *rsvp
	r.byID[rsvp.ID] = &cp
	return nil
}

func (r *fakeRSVPRepo) Delete(db *gorm.DB, id string) error {
	delete(r.byID, id)
	return nil
}

func (r *fakeRSVPRepo) GetStats(db *gorm.DB, invitationID string) (*repositories.RSVPStats, error) {
	return &repositories.RSVPStats{}, nil
}

func seedPaidInvitation(t *testing.T, invRepo *fakeInvitationRepo) *models.Invitation {
	t.Helper()

	inv := &models.Invitation{
		UserID:  "user-1",
		Slug:    "wedding-2026",
		IsPaid:  true,
		Status:  models.InvitationStatusPublished,
		Content: testContent(),
	}
	require.NoError(t, invRepo.Create(nil, inv))
	return inv
}

func TestRSVPSubmit_SecondSubmitUpdatesInPlace(t *testing.T) {
	invRepo := newFakeInvitationRepo()
	rsvpRepo := newFakeRSVPRepo()
	inv := seedPaidInvitation(t, invRepo)
	svc := NewRSVPService(rsvpRepo, invRepo)

	first, err := svc.Submit(nil, &dto.SubmitRSVPRequest{
		InvitationID:   inv.ID,
		Name:           "Alice",
		Email:          "Alice@Example.com",
		Response:       models.RSVPResponseAttending,
		NumberOfGuests: 2,
	})
	require.NoError(t, err)
	assert.True(t, first.Created)

	stored, err := invRepo.FindByID(nil, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stored.RSVPCount)

	// повторный ответ с тем же email (другой регистр) обновляет прежний
	second, err := svc.Submit(nil, &dto.SubmitRSVPRequest{
		InvitationID:   inv.ID,
		Name:           "Alice Smith",
		Email:          "alice@example.com",
		Response:       models.RSVPResponseNotAttending,
		NumberOfGuests: 1,
		Message:        "So sorry!",
	})
	require.NoError(t, err)
	assert.False(t, second.Created)
	assert.Equal(t, first.RSVP.ID, second.RSVP.ID)
	assert.Equal(t, "Alice Smith", second.RSVP.Name)
	assert.Equal(t, models.RSVPResponseNotAttending, second.RSVP.Response)

	// счетчик растет только на создании
	stored, err = invRepo.FindByID(nil, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stored.RSVPCount)
	assert.Len(t, rsvpRepo.byID, 1)
}

func TestRSVPSubmit_UnpaidInvitationHidden(t *testing.T) {
	invRepo := newFakeInvitationRepo()
	inv := seedPaidInvitation(t, invRepo)
	invRepo.byID[inv.ID].IsPaid = false
	svc := NewRSVPService(newFakeRSVPRepo(), invRepo)

	_, err := svc.Submit(nil, &dto.SubmitRSVPRequest{
		InvitationID: inv.ID,
		Name:         "Alice",
		Email:        "alice@example.com",
	})
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}

func TestBuildRSVPCSV(t *testing.T) {
	t.Parallel()

	created := time.Date(2026, 5, 1, 12, 30, 0, 0, time.UTC)
	rsvps := []models.RSVP{
		{
			Name:           "Alice",
			Email:          "alice@example.com",
			Phone:          "+91 1234567890",
			Response:       models.RSVPResponseAttending,
			NumberOfGuests: 2,
			Message:        `Can't wait, "congrats"!`,
		},
		{
			Name:           "Bob",
			Email:          "bob@example.com",
			Response:       models.RSVPResponseMaybe,
			NumberOfGuests: 1,
		},
	}
	rsvps[0].CreatedAt = created
	rsvps[1].CreatedAt = created.Add(time.Hour)

	csv := BuildRSVPCSV(rsvps)
	lines := strings.Split(csv, "\n")

	assert.Len(t, lines, 3)
	assert.Equal(t, "Name,Email,Phone,Response,Guests,Message,Date", lines[0])
	// кавычки в тексте удваиваются
	assert.Equal(t,
		`"Alice","alice@example.com","+91 1234567890","attending","2","Can't wait, ""congrats""!","2026-05-01T12:30:00Z"`,
		lines[1])
	assert.Equal(t,
		`"Bob","bob@example.com","","maybe","1","","2026-05-01T13:30:00Z"`,
		lines[2])
}

func TestBuildRSVPCSV_Empty(t *testing.T) {
	t.Parallel()

	csv := BuildRSVPCSV(nil)
	assert.Equal(t, "Name,Email,Phone,Response,Guests,Message,Date\n", csv)
}
