package detail

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/kami-jami/GraphicRequestSystem-sub001/internal/domain"
	"github.com/kami-jami/GraphicRequestSystem-sub001/internal/repository"
)

// typed persists one JSON-encoded shape T per request.
type typed[T any] struct {
	key      string
	repo     repository.DetailRepository
	validate *validator.Validate
}

func NewTyped[T any](key string, repo repository.DetailRepository, validate *validator.Validate) Strategy {
	return &typed[T]{key: key, repo: repo, validate: validate}
}

func (s *typed[T]) Key() string { return s.key }

func (s *typed[T]) ProcessCreate(ctx context.Context, req *domain.Request, input json.RawMessage) error {
	var v T
	if err := decodeInto(input, &v); err != nil {
		return err
	}
	return s.save(ctx, req, &v)
}

// ProcessUpdate overlays input on the stored shape, so omitted fields keep their values.
func (s *typed[T]) ProcessUpdate(ctx context.Context, req *domain.Request, input json.RawMessage) error {
	var v T

	existing, err := s.repo.GetByRequestID(ctx, req.ID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
	case err != nil:
		return err
	default:
		if err := json.Unmarshal(existing.Payload, &v); err != nil {
			return fmt.Errorf("failed to decode stored details: %w", err)
		}
	}

	if err := decodeInto(input, &v); err != nil {
		return err
	}
	return s.save(ctx, req, &v)
}

func (s *typed[T]) save(ctx context.Context, req *domain.Request, v *T) error {
	if err := s.validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrInvalidDetails, err.Error())
	}

	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}

	return s.repo.Upsert(ctx, &domain.RequestDetail{
		RequestID:   req.ID,
		ContentType: s.key,
		Payload:     payload,
	})
}

func decodeInto(input json.RawMessage, dst interface{}) error {
	trimmed := bytes.TrimSpace(input)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(trimmed, dst); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrInvalidDetails, err.Error())
	}
	return nil
}

// NewDefaultRegistry registers every known content type with general as the fallback.
func NewDefaultRegistry(repo repository.DetailRepository, validate *validator.Validate) (*Registry, error) {
	return NewRegistry(
		NewNoop(domain.ContentTypeGeneral),
		NewTyped[domain.LabelDetails](domain.ContentTypeLabel, repo, validate),
		NewTyped[domain.SocialPostDetails](domain.ContentTypeSocialPost, repo, validate),
		NewTyped[domain.PromoVideoDetails](domain.ContentTypePromoVideo, repo, validate),
		NewTyped[domain.WebsiteContentDetails](domain.ContentTypeWebsiteContent, repo, validate),
		NewTyped[domain.FileEditDetails](domain.ContentTypeFileEdit, repo, validate),
		NewTyped[domain.PromoItemDetails](domain.ContentTypePromoItem, repo, validate),
		NewTyped[domain.VisualAdDetails](domain.ContentTypeVisualAd, repo, validate),
		NewTyped[domain.EnvironmentalAdDetails](domain.ContentTypeEnvironmentalAd, repo, validate),
		NewTyped[domain.MiscDetails](domain.ContentTypeMisc, repo, validate),
	)
}
