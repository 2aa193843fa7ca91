package detail

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kami-jami/GraphicRequestSystem-sub001/internal/domain"
	"github.com/kami-jami/GraphicRequestSystem-sub001/internal/mocks"
)

func TestRegistry_RejectsDuplicateKeys(t *testing.T) {
	repo := new(mocks.DetailRepository)
	v := validator.New()

	_, err := NewRegistry(NewNoop(domain.ContentTypeGeneral),
		NewTyped[domain.LabelDetails](domain.ContentTypeLabel, repo, v),
		NewTyped[domain.MiscDetails](domain.ContentTypeLabel, repo, v),
	)
	assert.ErrorIs(t, err, domain.ErrDuplicateStrategy)

	_, err = NewRegistry(NewNoop(domain.ContentTypeGeneral), NewNoop(domain.ContentTypeGeneral))
	assert.ErrorIs(t, err, domain.ErrDuplicateStrategy)
}

func TestRegistry_ResolveFallsBack(t *testing.T) {
	reg, err := NewDefaultRegistry(new(mocks.DetailRepository), validator.New())
	require.NoError(t, err)

	s, ok := reg.Resolve(domain.ContentTypeLabel)
	assert.True(t, ok)
	assert.Equal(t, domain.ContentTypeLabel, s.Key())

	for _, key := range []string{"", "billboard_3d", "LABEL"} {
		s, ok := reg.Resolve(key)
		assert.False(t, ok, key)
		assert.Equal(t, domain.ContentTypeGeneral, s.Key())
	}

	assert.Len(t, reg.Keys(), 10)
}

func TestNoop_PersistsNothing(t *testing.T) {
	repo := new(mocks.DetailRepository)
	s := NewNoop(domain.ContentTypeGeneral)
	req := &domain.Request{ID: uuid.New()}

	assert.NoError(t, s.ProcessCreate(context.Background(), req, json.RawMessage(`{"anything":true}`)))
	assert.NoError(t, s.ProcessUpdate(context.Background(), req, nil))
	repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestTyped_ProcessCreate(t *testing.T) {
	ctx := context.Background()
	req := &domain.Request{ID: uuid.New()}

	t.Run("Success", func(t *testing.T) {
		repo := new(mocks.DetailRepository)
		s := NewTyped[domain.LabelDetails](domain.ContentTypeLabel, repo, validator.New())

		repo.On("Upsert", ctx, mock.MatchedBy(func(d *domain.RequestDetail) bool {
			var got domain.LabelDetails
			_ = json.Unmarshal(d.Payload, &got)
			return d.RequestID == req.ID && d.ContentType == domain.ContentTypeLabel &&
				got.ProductName == "Tea" && got.WidthMM == 40
		})).Return(nil).Once()

		input := json.RawMessage(`{"product_name":"Tea","width_mm":40,"height_mm":60,"unrelated":"ignored"}`)
		require.NoError(t, s.ProcessCreate(ctx, req, input))
		repo.AssertExpectations(t)
	})

	t.Run("Missing Dimensions", func(t *testing.T) {
		repo := new(mocks.DetailRepository)
		s := NewTyped[domain.LabelDetails](domain.ContentTypeLabel, repo, validator.New())

		err := s.ProcessCreate(ctx, req, json.RawMessage(`{"product_name":"Tea"}`))
		assert.ErrorIs(t, err, domain.ErrInvalidDetails)
		repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})

	t.Run("Malformed JSON", func(t *testing.T) {
		repo := new(mocks.DetailRepository)
		s := NewTyped[domain.MiscDetails](domain.ContentTypeMisc, repo, validator.New())

		err := s.ProcessCreate(ctx, req, json.RawMessage(`{"description":`))
		assert.ErrorIs(t, err, domain.ErrInvalidDetails)
	})
}

func TestTyped_ProcessUpdateOverlaysStoredPayload(t *testing.T) {
	ctx := context.Background()
	req := &domain.Request{ID: uuid.New()}
	repo := new(mocks.DetailRepository)
	s := NewTyped[domain.PromoVideoDetails](domain.ContentTypePromoVideo, repo, validator.New())

	repo.On("GetByRequestID", ctx, req.ID).Return(&domain.RequestDetail{
		RequestID:   req.ID,
		ContentType: domain.ContentTypePromoVideo,
		Payload:     json.RawMessage(`{"duration_seconds":30,"aspect_ratio":"9:16","voice_over":true}`),
	}, nil).Once()
	repo.On("Upsert", ctx, mock.MatchedBy(func(d *domain.RequestDetail) bool {
		var got domain.PromoVideoDetails
		_ = json.Unmarshal(d.Payload, &got)
		return got.DurationSeconds == 45 && got.AspectRatio == "9:16" && got.VoiceOver
	})).Return(nil).Once()

	require.NoError(t, s.ProcessUpdate(ctx, req, json.RawMessage(`{"duration_seconds":45}`)))
	repo.AssertExpectations(t)
}

func TestTyped_ProcessUpdateWithoutStoredRow(t *testing.T) {
	ctx := context.Background()
	req := &domain.Request{ID: uuid.New()}
	repo := new(mocks.DetailRepository)
	s := NewTyped[domain.MiscDetails](domain.ContentTypeMisc, repo, validator.New())

	repo.On("GetByRequestID", ctx, req.ID).Return(nil, domain.ErrNotFound).Once()
	repo.On("Upsert", ctx, mock.AnythingOfType("*domain.RequestDetail")).Return(nil).Once()

	require.NoError(t, s.ProcessUpdate(ctx, req, json.RawMessage(`{"description":"new brief"}`)))
	repo.AssertExpectations(t)
}
