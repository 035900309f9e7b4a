package services

import (
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

// In-memory репозитории: сервисный слой получает их интерфейсами,
// так что бизнес-правила проверяются без Postgres.

type fakeInvitationRepo struct {
	byID      map[string]*models.Invitation
	takenSlug string
}

func newFakeInvitationRepo() *fakeInvitationRepo {
	return &fakeInvitationRepo{byID: make(map[string]*models.Invitation)}
}

func (r *fakeInvitationRepo) Create(db *gorm.DB, inv *models.Invitation) error {
	if inv.ID == "" {
		inv.ID = uuid.NewString()
	}
	cp := *inv
	r.byID[inv.ID] = &cp
	return nil
}

func (r *fakeInvitationRepo) FindByID(db *gorm.DB, id string) (*models.Invitation, error) {
	inv, ok := r.byID[id]
	if !ok {
		return nil, repositories.ErrInvitationNotFound
	}
	cp := *inv
	return &cp, nil
}

func (r *fakeInvitationRepo) FindBySlug(db *gorm.DB, slug string) (*models.Invitation, error) {
	for _, inv := range r.byID {
		if inv.Slug == slug {
			cp := *inv
			return &cp, nil
		}
	}
	return nil, repositories.ErrInvitationNotFound
}

func (r *fakeInvitationRepo) FindByUser(db *gorm.DB, userID string, limit, offset int) ([]models.Invitation, int64, error) {
	var out []models.Invitation
	for _, inv := range r.byID {
		if inv.UserID == userID {
			out = append(out, *inv)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeInvitationRepo) Update(db *gorm.DB, inv *models.Invitation) error {
	cp := *inv
	r.byID[inv.ID] = &cp
	return nil
}

func (r *fakeInvitationRepo) Delete(db *gorm.DB, id string) error {
	delete(r.byID, id)
	return nil
}

func (r *fakeInvitationRepo) SlugExists(db *gorm.DB, slug string, excludeID string) (bool, error) {
	return slug == r.takenSlug, nil
}

func (r *fakeInvitationRepo) IncrementViews(db *gorm.DB, id string) error {
	if inv, ok := r.byID[id]; ok {
		inv.Views++
	}
	return nil
}

func (r *fakeInvitationRepo) IncrementRSVPCount(db *gorm.DB, id string) error {
	if inv, ok := r.byID[id]; ok {
		inv.RSVPCount++
	}
	return nil
}

func (r *fakeInvitationRepo) FindExpired(db *gorm.DB, now time.Time, limit int) ([]models.Invitation, error) {
	return nil, nil
}

func (r *fakeInvitationRepo) MarkExpired(db *gorm.DB, ids []string) (int64, error) {
	return 0, nil
}

func (r *fakeInvitationRepo) DeleteExpiredAutoDelete(db *gorm.DB, olderThan time.Time) (int64, error) {
	return 0, nil
}

func (r *fakeInvitationRepo) CountAll(db *gorm.DB) (int64, error) {
	return int64(len(r.byID)), nil
}

func (r *fakeInvitationRepo) CountByStatus(db *gorm.DB, status models.InvitationStatus) (int64, error) {
	var n int64
	for _, inv := range r.byID {
		if inv.Status == status {
			n++
		}
	}
	return n, nil
}

type fakeTemplateRepo struct {
	byID       map[string]*models.Template
	usageCalls int
}

func newFakeTemplateRepo(templates ...*models.Template) *fakeTemplateRepo {
	r := &fakeTemplateRepo{byID: make(map[string]*models.Template)}
	for _, t := range templates {
		r.byID[t.ID] = t
	}
	return r
}

func (r *fakeTemplateRepo) Create(db *gorm.DB, t *models.Template) error {
	r.byID[t.ID] = t
	return nil
}

func (r *fakeTemplateRepo) FindByID(db *gorm.DB, id string) (*models.Template, error) {
	t, ok := r.byID[id]
	if !ok {
		return nil, repositories.ErrTemplateNotFound
	}
	return t, nil
}

func (r *fakeTemplateRepo) Update(db *gorm.DB, t *models.Template) error {
	r.byID[t.ID] = t
	return nil
}

func (r *fakeTemplateRepo) Delete(db *gorm.DB, id string) error {
	delete(r.byID, id)
	return nil
}

func (r *fakeTemplateRepo) FindWithFilter(db *gorm.DB, filter repositories.TemplateFilter) ([]models.Template, int64, error) {
	return nil, 0, nil
}

func (r *fakeTemplateRepo) IncrementUsage(db *gorm.DB, id string) error {
	r.usageCalls++
	return nil
}

func (r *fakeTemplateRepo) CountInvitations(db *gorm.DB, templateID string) (int64, error) {
	return 0, nil
}

type fakeSettingsRepo struct {
	settings models.SystemSettings
}

func (r *fakeSettingsRepo) Get(db *gorm.DB) (*models.SystemSettings, error) {
	cp := r.settings
	return &cp, nil
}

func (r *fakeSettingsRepo) Update(db *gorm.DB, s *models.SystemSettings) error {
	r.settings = *s
	return nil
}

func testContent() models.InvitationContent {
	return models.InvitationContent{
		EventName: "Wedding",
		HostName:  "The Smiths",
		EventDate: time.Date(2026, 10, 1, 18, 0, 0, 0, time.UTC),
		Venue:     "Garden Hall",
	}
}

func newTemplate(premium bool, price float64, active bool) *models.Template {
	t := &models.Template{
		Name:      "Classic",
		IsPremium: premium,
		Price:     price,
		IsActive:  active,
		Design:    models.NewDesign(),
	}
	t.ID = uuid.NewString()
	return t
}

func TestInvitationCreate_FreeTemplate(t *testing.T) {
	invRepo := newFakeInvitationRepo()
	tmpl := newTemplate(false, 0, true)
	tmplRepo := newFakeTemplateRepo(tmpl)
	svc := NewInvitationService(invRepo, tmplRepo, &fakeSettingsRepo{settings: models.DefaultSystemSettings()})

	resp, err := svc.Create(nil, "user-1", &dto.CreateInvitationRequest{
		TemplateID: &tmpl.ID,
		Content:    testContent(),
	})
	require.NoError(t, err)

	// бесплатный шаблон публикуется сразу и не требует оплаты
	assert.True(t, resp.IsPaid)
	assert.Equal(t, float64(0), resp.Price)
	assert.Equal(t, models.InvitationStatusPublished, resp.Status)
	assert.Len(t, resp.Slug, 8)
	assert.Equal(t, 1, tmplRepo.usageCalls)
}

func TestInvitationCreate_PremiumTemplateSnapshotsPrice(t *testing.T) {
	invRepo := newFakeInvitationRepo()
	tmpl := newTemplate(true, 499, true)
	tmplRepo := newFakeTemplateRepo(tmpl)
	svc := NewInvitationService(invRepo, tmplRepo, &fakeSettingsRepo{settings: models.DefaultSystemSettings()})

	resp, err := svc.Create(nil, "user-1", &dto.CreateInvitationRequest{
		TemplateID: &tmpl.ID,
		Content:    testContent(),
	})
	require.NoError(t, err)

	assert.False(t, resp.IsPaid)
	assert.Equal(t, float64(499), resp.Price)
	assert.Equal(t, models.InvitationStatusDraft, resp.Status)

	// последующее подорожание шаблона не меняет снапшот
	tmpl.Price = 999
	stored, err := invRepo.FindByID(nil, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(499), stored.Price)
}

func TestInvitationCreate_InactiveTemplateRejected(t *testing.T) {
	tmpl := newTemplate(false, 0, false)
	svc := NewInvitationService(newFakeInvitationRepo(), newFakeTemplateRepo(tmpl), &fakeSettingsRepo{})

	_, err := svc.Create(nil, "user-1", &dto.CreateInvitationRequest{
		TemplateID: &tmpl.ID,
		Content:    testContent(),
	})
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeInvalidOperation, appErr.Code)
}

func TestInvitationCreate_ScratchUsesGlobalPrice(t *testing.T) {
	design := models.NewDesign()
	svc := NewInvitationService(newFakeInvitationRepo(), newFakeTemplateRepo(), &fakeSettingsRepo{settings: models.DefaultSystemSettings()})

	resp, err := svc.Create(nil, "user-1", &dto.CreateInvitationRequest{
		Design:  &design,
		Content: testContent(),
	})
	require.NoError(t, err)

	assert.False(t, resp.IsPaid)
	assert.Equal(t, models.DefaultScratchDesignPrice, resp.Price)
	assert.Equal(t, models.InvitationStatusDraft, resp.Status)
}

func TestInvitationCreate_RequiresTemplateOrDesign(t *testing.T) {
	svc := NewInvitationService(newFakeInvitationRepo(), newFakeTemplateRepo(), &fakeSettingsRepo{})

	_, err := svc.Create(nil, "user-1", &dto.CreateInvitationRequest{Content: testContent()})
	assert.Error(t, err)
}

func TestInvitationUpdate_Slug(t *testing.T) {
	invRepo := newFakeInvitationRepo()
	tmpl := newTemplate(false, 0, true)
	svc := NewInvitationService(invRepo, newFakeTemplateRepo(tmpl), &fakeSettingsRepo{})

	created, err := svc.Create(nil, "user-1", &dto.CreateInvitationRequest{
		TemplateID: &tmpl.ID,
		Content:    testContent(),
	})
	require.NoError(t, err)

	t.Run("sanitized and applied", func(t *testing.T) {
		slug := "My Cool Wedding!"
		resp, err := svc.Update(nil, "user-1", created.ID, &dto.UpdateInvitationRequest{Slug: &slug})
		require.NoError(t, err)
		assert.Equal(t, "mycoolwedding", resp.Slug)
	})

	t.Run("too short after sanitization", func(t *testing.T) {
		slug := "!!"
		_, err := svc.Update(nil, "user-1", created.ID, &dto.UpdateInvitationRequest{Slug: &slug})
		assert.ErrorIs(t, err, apperrors.ErrInvalidSlug)
	})

	t.Run("taken slug rejected", func(t *testing.T) {
		invRepo.takenSlug = "taken-slug"
		slug := "taken-slug"
		_, err := svc.Update(nil, "user-1", created.ID, &dto.UpdateInvitationRequest{Slug: &slug})
		assert.ErrorIs(t, err, apperrors.ErrSlugTaken)
	})

	t.Run("foreign invitation forbidden", func(t *testing.T) {
		slug := "whatever-slug"
		_, err := svc.Update(nil, "user-2", created.ID, &dto.UpdateInvitationRequest{Slug: &slug})
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.CodeForbidden, appErr.Code)
	})
}

func TestInvitationDelete_PaidPublishedProtected(t *testing.T) {
	invRepo := newFakeInvitationRepo()
	tmpl := newTemplate(false, 0, true)
	svc := NewInvitationService(invRepo, newFakeTemplateRepo(tmpl), &fakeSettingsRepo{})

	created, err := svc.Create(nil, "user-1", &dto.CreateInvitationRequest{
		TemplateID: &tmpl.ID,
		Content:    testContent(),
	})
	require.NoError(t, err)

	// бесплатный шаблон сразу paid+published - удаление заблокировано
	err = svc.Delete(nil, "user-1", created.ID)
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeInvalidOperation, appErr.Code)
}

func TestInvitationGetPublicBySlug(t *testing.T) {
	invRepo := newFakeInvitationRepo()
	tmpl := newTemplate(true, 499, true)
	svc := NewInvitationService(invRepo, newFakeTemplateRepo(tmpl), &fakeSettingsRepo{})

	created, err := svc.Create(nil, "user-1", &dto.CreateInvitationRequest{
		TemplateID: &tmpl.ID,
		Content:    testContent(),
	})
	require.NoError(t, err)

	t.Run("unpaid hidden", func(t *testing.T) {
		_, err := svc.GetPublicBySlug(nil, created.Slug)
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
	})

	t.Run("paid visible, views grow", func(t *testing.T) {
		stored := invRepo.byID[created.ID]
		stored.IsPaid = true
		stored.Status = models.InvitationStatusPublished

		pub, err := svc.GetPublicBySlug(nil, created.Slug)
		require.NoError(t, err)
		assert.Equal(t, int64(1), pub.Views)

		pub, err = svc.GetPublicBySlug(nil, created.Slug)
		require.NoError(t, err)
		assert.Equal(t, int64(2), pub.Views)
	})
}
