package attachment

import (
	"context"
	"errors"
	"io"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kami-jami/GraphicRequestSystem-sub001/internal/domain"
	"github.com/kami-jami/GraphicRequestSystem-sub001/internal/mocks"
)

type fakeStore struct {
	objects map[string]string
	putErr  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string]string{}}
}

func (f *fakeStore) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	if f.putErr != nil {
		return minio.UploadInfo{}, f.putErr
	}
	body, _ := io.ReadAll(reader)
	f.objects[objectName] = string(body)
	return minio.UploadInfo{Bucket: bucketName, Key: objectName, Size: objectSize}, nil
}

func (f *fakeStore) RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error {
	delete(f.objects, objectName)
	return nil
}

func (f *fakeStore) PresignedGetObject(ctx context.Context, bucketName, objectName string, expires time.Duration, reqParams url.Values) (*url.URL, error) {
	return &url.URL{Scheme: "https", Host: "cdn.example.com", Path: "/" + bucketName + "/" + objectName, RawQuery: "X-Amz-Expires=900"}, nil
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestService_Upload(t *testing.T) {
	ctx := context.Background()
	requester, designer := uuid.New(), uuid.New()
	req := &domain.Request{ID: uuid.New(), RequesterID: requester, AssignedDesignerID: &designer}

	t.Run("Stores Object Under Request Prefix", func(t *testing.T) {
		store := newFakeStore()
		atts := new(mocks.AttachmentRepository)
		reqs := new(mocks.RequestRepository)
		svc := NewService(atts, reqs, store, store, "graphic-requests", quietLogger())

		reqs.On("GetByID", ctx, req.ID).Return(req, nil)
		atts.On("Create", ctx, mock.AnythingOfType("*domain.Attachment")).Return(nil).Once()

		att, err := svc.Upload(ctx, req.ID, domain.Identity{UserID: designer, Roles: []domain.Role{domain.RoleDesigner}}, UploadInput{
			FileName: "../../draft v2.png",
			FileSize: 5,
			MimeType: "image/png",
			Reader:   strings.NewReader("bytes"),
		})

		require.NoError(t, err)
		assert.Equal(t, "draft v2.png", att.FileName)
		assert.Equal(t, ObjectPath(req.ID, att.ID, "draft v2.png"), att.StoragePath)
		assert.Equal(t, "bytes", store.objects[att.StoragePath])
		assert.Contains(t, att.URL, "cdn.example.com")
	})

	t.Run("Outsider Is Refused", func(t *testing.T) {
		store := newFakeStore()
		reqs := new(mocks.RequestRepository)
		svc := NewService(new(mocks.AttachmentRepository), reqs, store, store, "b", quietLogger())
		reqs.On("GetByID", ctx, req.ID).Return(req, nil)

		_, err := svc.Upload(ctx, req.ID, domain.Identity{UserID: uuid.New(), Roles: []domain.Role{domain.RoleDesigner}}, UploadInput{
			FileName: "x.png", Reader: strings.NewReader(""),
		})
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Empty(t, store.objects)
	})

	t.Run("Row Failure Removes Object", func(t *testing.T) {
		store := newFakeStore()
		atts := new(mocks.AttachmentRepository)
		reqs := new(mocks.RequestRepository)
		svc := NewService(atts, reqs, store, store, "b", quietLogger())
		reqs.On("GetByID", ctx, req.ID).Return(req, nil)
		atts.On("Create", ctx, mock.Anything).Return(errors.New("insert failed")).Once()

		_, err := svc.Upload(ctx, req.ID, domain.Identity{UserID: requester, Roles: []domain.Role{domain.RoleRequester}}, UploadInput{
			FileName: "brief.pdf", FileSize: 3, Reader: strings.NewReader("pdf"),
		})
		assert.Error(t, err)
		assert.Empty(t, store.objects)
	})
}

func TestService_ListPresignsEachAttachment(t *testing.T) {
	ctx := context.Background()
	requester := uuid.New()
	req := &domain.Request{ID: uuid.New(), RequesterID: requester}
	store := newFakeStore()
	atts := new(mocks.AttachmentRepository)
	reqs := new(mocks.RequestRepository)
	svc := NewService(atts, reqs, store, store, "b", quietLogger())

	reqs.On("GetByID", ctx, req.ID).Return(req, nil)
	atts.On("ListByRequest", ctx, req.ID).Return([]domain.Attachment{
		{ID: uuid.New(), StoragePath: "requests/a/b/one.png"},
		{ID: uuid.New(), StoragePath: "requests/a/c/two.png"},
	}, nil)

	list, err := svc.List(ctx, req.ID, domain.Identity{UserID: requester, Roles: []domain.Role{domain.RoleRequester}})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Contains(t, list[1].URL, "two.png")

	_, err = svc.List(ctx, req.ID, domain.Identity{UserID: uuid.New(), Roles: []domain.Role{domain.RoleRequester}})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_GetScopesToRequest(t *testing.T) {
	ctx := context.Background()
	requester := uuid.New()
	req := &domain.Request{ID: uuid.New(), RequesterID: requester}
	store := newFakeStore()
	atts := new(mocks.AttachmentRepository)
	reqs := new(mocks.RequestRepository)
	svc := NewService(atts, reqs, store, store, "b", quietLogger())
	viewer := domain.Identity{UserID: requester, Roles: []domain.Role{domain.RoleRequester}}

	own := &domain.Attachment{ID: uuid.New(), RequestID: req.ID, StoragePath: "requests/x/y/brief.pdf"}
	foreign := &domain.Attachment{ID: uuid.New(), RequestID: uuid.New(), StoragePath: "requests/z/w/secret.pdf"}
	reqs.On("GetByID", ctx, req.ID).Return(req, nil)
	atts.On("GetByID", ctx, own.ID).Return(own, nil)
	atts.On("GetByID", ctx, foreign.ID).Return(foreign, nil)

	got, err := svc.Get(ctx, req.ID, own.ID, viewer)
	require.NoError(t, err)
	assert.Contains(t, got.URL, "brief.pdf")

	_, err = svc.Get(ctx, req.ID, foreign.ID, viewer)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
