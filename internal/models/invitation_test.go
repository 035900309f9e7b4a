package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeSlug(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		in     string
		want   string
		wantOK bool
	}{
		{"lowercase passthrough", "my-wedding", "my-wedding", true},
		{"uppercase folded", "My-Wedding-2026", "my-wedding-2026", true},
		{"spaces and symbols dropped", "anna & raj!", "annaraj", true},
		{"too short after cleanup", "a!", "a", false},
		{"empty", "", "", false},
		{"truncated to max length", strings.Repeat("ab", 40), strings.Repeat("ab", 25), true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := SanitizeSlug(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
			assert.LessOrEqual(t, len(got), SlugMaxLen)
		})
	}
}

func TestNewInvitationSlug(t *testing.T) {
	t.Parallel()

	s := NewInvitationSlug()
	assert.Len(t, s, 8)
	cleaned, ok := SanitizeSlug(s)
	assert.True(t, ok)
	assert.Equal(t, s, cleaned, "дефолтный slug уже в каноничном виде")
}

func TestInvitation_BeforeSave_SetsExpiryOnce(t *testing.T) {
	t.Parallel()

	eventDate := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	inv := Invitation{Content: InvitationContent{EventDate: eventDate}}

	assert.NoError(t, inv.BeforeSave(nil))
	if assert.NotNil(t, inv.ExpiresAt) {
		assert.Equal(t, eventDate.Add(ExpiryAfterEvent), *inv.ExpiresAt)
	}

	// перенос события не двигает уже выставленный срок
	inv.Content.EventDate = eventDate.AddDate(0, 1, 0)
	assert.NoError(t, inv.BeforeSave(nil))
	assert.Equal(t, eventDate.Add(ExpiryAfterEvent), *inv.ExpiresAt)
}

func TestInvitation_BeforeSave_NoEventDate(t *testing.T) {
	t.Parallel()

	var inv Invitation
	assert.NoError(t, inv.BeforeSave(nil))
	assert.Nil(t, inv.ExpiresAt)
}

func TestInvitation_IsExpired(t *testing.T) {
	t.Parallel()

	var inv Invitation
	assert.False(t, inv.IsExpired(), "без срока приглашение не истекает")

	past := time.Now().Add(-time.Hour)
	inv.ExpiresAt = &past
	assert.True(t, inv.IsExpired())

	future := time.Now().Add(time.Hour)
	inv.ExpiresAt = &future
	assert.False(t, inv.IsExpired())
}

func TestTemplate_NormalizePricing(t *testing.T) {
	t.Parallel()

	free := Template{IsPremium: false, Price: 500}
	assert.True(t, free.NormalizePricing())
	assert.Zero(t, free.Price, "не-premium шаблон всегда бесплатен")

	premium := Template{IsPremium: true, Price: 0}
	assert.False(t, premium.NormalizePricing(), "premium без цены невалиден")

	premium.Price = 199
	assert.True(t, premium.NormalizePricing())
	assert.Equal(t, 199.0, premium.Price)
}

func TestCategorySlug(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "wedding", CategorySlug("Wedding"))
	assert.Equal(t, "baby-shower", CategorySlug("Baby Shower"))
	// двойной пробел дает пустой сегмент, как и в проде
	assert.Equal(t, "a--b", CategorySlug("A  B"))
}

func TestCanPublishCategory(t *testing.T) {
	t.Parallel()

	assert.False(t, CanPublishCategory(MinActiveTemplatesToPublish-1))
	assert.True(t, CanPublishCategory(MinActiveTemplatesToPublish))
}
