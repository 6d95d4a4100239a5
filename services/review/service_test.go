package review

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"testing"

	"localconnect/models"
	"localconnect/services/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Create(ctx context.Context, r *models.Review) error {
	return m.Called(ctx, r).Error(0)
}

func (m *mockRepo) List(ctx context.Context) ([]models.Review, error) {
	args := m.Called(ctx)
	r, _ := args.Get(0).([]models.Review)
	return r, args.Error(1)
}

func (m *mockRepo) ListPublished(ctx context.Context) ([]models.Review, error) {
	args := m.Called(ctx)
	r, _ := args.Get(0).([]models.Review)
	return r, args.Error(1)
}

type countingStorage struct {
	uploaded int
}

func (s *countingStorage) UploadImage(ctx context.Context, file io.Reader, filename, folder string) (*storage.UploadedFile, error) {
	s.uploaded++
	return &storage.UploadedFile{PublicID: filename, URL: "https://img.example/" + folder + "/" + filename}, nil
}

func (s *countingStorage) DeleteFile(ctx context.Context, publicID string) error { return nil }

func image(t *testing.T, name, contentType string, size int) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="images"; filename="%s"`, name))
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte{'x'}, size))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	return form.File["images"][0]
}

func validForm() models.ReviewForm {
	return models.ReviewForm{
		WorkerName:       "Ravi",
		Name:             "Meera",
		Email:            "meera@example.com",
		WrittenReview:    "Fixed the wiring in an hour.",
		QualityOfWork:    4,
		Timeliness:       9,
		ConsentToPublish: true,
	}
}

func TestSubmitAppliesDefaults(t *testing.T) {
	repo := &mockRepo{}
	store := &countingStorage{}
	svc := NewReviewService(repo, store, zap.NewNop())

	var saved *models.Review
	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Review")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*models.Review) }).
		Return(nil)

	review, err := svc.Submit(context.Background(), validForm(), []*multipart.FileHeader{
		image(t, "before.jpg", "image/jpeg", 10),
		image(t, "after.png", "image/png", 10),
	})
	require.NoError(t, err)
	assert.Same(t, saved, review)
	assert.Equal(t, 5, review.OverallSatisfaction)
	assert.Equal(t, 4, review.QualityOfWork)
	assert.Equal(t, 5, review.Timeliness)
	assert.Equal(t, "N/A", review.ProductName)
	assert.True(t, review.ConsentToPublish)
	assert.Len(t, review.Images, 2)
	assert.Equal(t, 2, store.uploaded)
}

func TestSubmitValidation(t *testing.T) {
	svc := NewReviewService(&mockRepo{}, &countingStorage{}, zap.NewNop())
	ctx := context.Background()

	form := validForm()
	form.WrittenReview = "  "
	_, err := svc.Submit(ctx, form, nil)
	assert.EqualError(t, err, "written_review is required")

	form = validForm()
	form.Email = "not-an-email"
	_, err = svc.Submit(ctx, form, nil)
	assert.ErrorIs(t, err, ErrInvalidEmail)

	var many []*multipart.FileHeader
	for i := 0; i < MaxImages+1; i++ {
		many = append(many, image(t, fmt.Sprintf("%d.png", i), "image/png", 1))
	}
	_, err = svc.Submit(ctx, validForm(), many)
	assert.ErrorIs(t, err, ErrTooManyImages)
}

func TestSubmitRejectsBadImageBeforeUploading(t *testing.T) {
	store := &countingStorage{}
	svc := NewReviewService(&mockRepo{}, store, zap.NewNop())

	_, err := svc.Submit(context.Background(), validForm(), []*multipart.FileHeader{
		image(t, "ok.png", "image/png", 1),
		image(t, "notes.txt", "text/plain", 1),
	})
	assert.ErrorIs(t, err, storage.ErrNotAnImage)
	assert.Zero(t, store.uploaded)
}

func TestSubmitPropagatesRepoError(t *testing.T) {
	repo := &mockRepo{}
	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("write failed"))
	svc := NewReviewService(repo, nil, zap.NewNop())

	_, err := svc.Submit(context.Background(), validForm(), nil)
	assert.EqualError(t, err, "write failed")
}

func TestListPublished(t *testing.T) {
	repo := &mockRepo{}
	repo.On("ListPublished", mock.Anything).Return([]models.Review{{Name: "Meera"}}, nil)
	svc := NewReviewService(repo, nil, zap.NewNop())

	out, err := svc.ListPublished(context.Background())
	require.NoError(t, err)
	assert.Len(t, out, 1)
	repo.AssertExpectations(t)
}
