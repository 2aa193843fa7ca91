package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ContentTypeGeneral is the fallback key; it carries no extra fields.
const ContentTypeGeneral = "general"

const (
	ContentTypeLabel           = "label"
	ContentTypeSocialPost      = "social_post"
	ContentTypePromoVideo      = "promo_video"
	ContentTypeWebsiteContent  = "website_content"
	ContentTypeFileEdit        = "file_edit"
	ContentTypePromoItem       = "promo_item"
	ContentTypeVisualAd        = "visual_ad"
	ContentTypeEnvironmentalAd = "environmental_ad"
	ContentTypeMisc            = "misc"
)

// RequestDetail is the type-tagged payload owned 1:1 by a Request.
type RequestDetail struct {
	RequestID   uuid.UUID       `json:"request_id" db:"request_id"`
	ContentType string          `json:"content_type" db:"content_type"`
	Payload     json.RawMessage `json:"payload" db:"payload"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}

type LabelDetails struct {
	ProductName string  `json:"product_name" validate:"required,max=200"`
	WidthMM     float64 `json:"width_mm" validate:"required,gt=0"`
	HeightMM    float64 `json:"height_mm" validate:"required,gt=0"`
	Material    string  `json:"material,omitempty" validate:"max=100"`
	Quantity    int     `json:"quantity,omitempty" validate:"gte=0"`
}

type SocialPostDetails struct {
	Platform string   `json:"platform" validate:"required,oneof=instagram telegram linkedin other"`
	Format   string   `json:"format" validate:"required,oneof=post story reel"`
	Caption  string   `json:"caption,omitempty" validate:"max=2200"`
	Hashtags []string `json:"hashtags,omitempty" validate:"max=30,dive,max=100"`
}

type PromoVideoDetails struct {
	DurationSeconds int    `json:"duration_seconds" validate:"required,min=1,max=3600"`
	AspectRatio     string `json:"aspect_ratio,omitempty" validate:"omitempty,oneof=16:9 9:16 1:1 4:5"`
	Script          string `json:"script,omitempty"`
	VoiceOver       bool   `json:"voice_over"`
}

type WebsiteContentDetails struct {
	PageURL     string `json:"page_url" validate:"required,url"`
	Section     string `json:"section,omitempty" validate:"max=200"`
	ContentText string `json:"content_text,omitempty"`
}

type FileEditDetails struct {
	SourceReference    string `json:"source_reference" validate:"required,max=500"`
	ChangesDescription string `json:"changes_description" validate:"required"`
}

type PromoItemDetails struct {
	ItemType  string `json:"item_type" validate:"required,max=100"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
	PrintArea string `json:"print_area,omitempty" validate:"max=200"`
}

type VisualAdDetails struct {
	Medium   string `json:"medium" validate:"required,oneof=print online billboard tv"`
	Size     string `json:"size,omitempty" validate:"max=100"`
	Headline string `json:"headline,omitempty" validate:"max=300"`
}

type EnvironmentalAdDetails struct {
	Location string  `json:"location" validate:"required,max=300"`
	WidthCM  float64 `json:"width_cm,omitempty" validate:"gte=0"`
	HeightCM float64 `json:"height_cm,omitempty" validate:"gte=0"`
	Material string  `json:"material,omitempty" validate:"max=100"`
}

type MiscDetails struct {
	Description string `json:"description" validate:"required"`
}
