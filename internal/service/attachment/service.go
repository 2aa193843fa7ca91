package attachment

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/sirupsen/logrus"

	"github.com/kami-jami/GraphicRequestSystem-sub001/internal/domain"
	"github.com/kami-jami/GraphicRequestSystem-sub001/internal/repository"
)

const presignExpiry = 15 * time.Minute

// ObjectStore is the subset of *minio.Client the service uses.
type ObjectStore interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
	PresignedGetObject(ctx context.Context, bucketName, objectName string, expires time.Duration, reqParams url.Values) (*url.URL, error)
}

type UploadInput struct {
	FileName string
	FileSize int64
	MimeType string
	Reader   io.Reader
}

type Service interface {
	Upload(ctx context.Context, requestID uuid.UUID, uploader domain.Identity, input UploadInput) (*domain.Attachment, error)
	List(ctx context.Context, requestID uuid.UUID, viewer domain.Identity) ([]domain.Attachment, error)
	Get(ctx context.Context, requestID, attachmentID uuid.UUID, viewer domain.Identity) (*domain.Attachment, error)
}

type service struct {
	attachmentRepo repository.AttachmentRepository
	requestRepo    repository.RequestRepository
	store          ObjectStore
	presigner      ObjectStore
	bucket         string
	log            *logrus.Logger
}

// NewService signs download URLs with presigner, which may point at a public
// endpoint different from the one used for uploads.
func NewService(attachmentRepo repository.AttachmentRepository, requestRepo repository.RequestRepository, store, presigner ObjectStore, bucket string, log *logrus.Logger) Service {
	return &service{
		attachmentRepo: attachmentRepo,
		requestRepo:    requestRepo,
		store:          store,
		presigner:      presigner,
		bucket:         bucket,
		log:            log,
	}
}

func (s *service) Upload(ctx context.Context, requestID uuid.UUID, uploader domain.Identity, input UploadInput) (*domain.Attachment, error) {
	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !canUpload(req, uploader) {
		return nil, domain.ErrNotFound
	}

	name := sanitizeFileName(input.FileName)
	if name == "" {
		return nil, fmt.Errorf("%w: file name is required", domain.ErrInvalidInput)
	}

	att := &domain.Attachment{
		ID:         uuid.New(),
		RequestID:  requestID,
		UploadedBy: uploader.UserID,
		FileName:   name,
		FileSize:   input.FileSize,
		MimeType:   input.MimeType,
	}
	att.StoragePath = ObjectPath(requestID, att.ID, name)

	_, err = s.store.PutObject(ctx, s.bucket, att.StoragePath, input.Reader, input.FileSize, minio.PutObjectOptions{
		ContentType: input.MimeType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to MinIO: %w", err)
	}

	if err := s.attachmentRepo.Create(ctx, att); err != nil {
		_ = s.store.RemoveObject(ctx, s.bucket, att.StoragePath, minio.RemoveObjectOptions{})
		return nil, err
	}

	att.URL = s.presign(ctx, att.StoragePath)
	return att, nil
}

func (s *service) List(ctx context.Context, requestID uuid.UUID, viewer domain.Identity) ([]domain.Attachment, error) {
	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !viewer.CanViewAll() && !req.IsParticipant(viewer.UserID) {
		return nil, domain.ErrNotFound
	}

	list, err := s.attachmentRepo.ListByRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	for i := range list {
		list[i].URL = s.presign(ctx, list[i].StoragePath)
	}
	return list, nil
}

func (s *service) Get(ctx context.Context, requestID, attachmentID uuid.UUID, viewer domain.Identity) (*domain.Attachment, error) {
	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !viewer.CanViewAll() && !req.IsParticipant(viewer.UserID) {
		return nil, domain.ErrNotFound
	}

	att, err := s.attachmentRepo.GetByID(ctx, attachmentID)
	if err != nil {
		return nil, err
	}
	if att.RequestID != requestID {
		return nil, domain.ErrNotFound
	}

	att.URL = s.presign(ctx, att.StoragePath)
	return att, nil
}

func (s *service) presign(ctx context.Context, objectPath string) string {
	u, err := s.presigner.PresignedGetObject(ctx, s.bucket, objectPath, presignExpiry, nil)
	if err != nil {
		s.log.WithError(err).WithField("object", objectPath).Warn("failed to presign attachment url")
		return ""
	}
	return u.String()
}

func canUpload(req *domain.Request, who domain.Identity) bool {
	return req.IsParticipant(who.UserID) || who.HasRole(domain.RoleApprover) || who.HasRole(domain.RoleAdmin)
}

func ObjectPath(requestID, attachmentID uuid.UUID, fileName string) string {
	return fmt.Sprintf("requests/%s/%s/%s", requestID, attachmentID, fileName)
}

func sanitizeFileName(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" {
		return ""
	}
	return strings.TrimSpace(name)
}
