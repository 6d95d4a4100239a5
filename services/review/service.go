package review

import (
	"context"
	"mime/multipart"
	"net/mail"
	"strings"

	reviewRepo "localconnect/database/repository/review"
	"localconnect/models"
	"localconnect/services/storage"
	"localconnect/utils"

	"go.uber.org/zap"
)

// MaxImages is the number of photos a review may carry.
const MaxImages = 5

const defaultRating = 5

var (
	ErrTooManyImages = utils.BadRequest("a review may include at most %d images", MaxImages)
	ErrInvalidEmail  = utils.BadRequest("invalid email address")
)

// ReviewService accepts and lists worker reviews.
type ReviewService interface {
	Submit(ctx context.Context, form models.ReviewForm, images []*multipart.FileHeader) (*models.Review, error)
	List(ctx context.Context) ([]models.Review, error)
	ListPublished(ctx context.Context) ([]models.Review, error)
}

// DefaultReviewService implements ReviewService.
type DefaultReviewService struct {
	Repo    reviewRepo.ReviewRepository
	Storage storage.StorageService
	Logger  *zap.Logger
}

func NewReviewService(repo reviewRepo.ReviewRepository, store storage.StorageService, logger *zap.Logger) *DefaultReviewService {
	return &DefaultReviewService{Repo: repo, Storage: store, Logger: logger}
}

// Submit validates a review form, uploads its images and stores it.
func (s *DefaultReviewService) Submit(ctx context.Context, form models.ReviewForm, images []*multipart.FileHeader) (*models.Review, error) {
	if err := validateForm(form); err != nil {
		return nil, err
	}
	if len(images) > MaxImages {
		return nil, ErrTooManyImages
	}
	// Validate every image before uploading any of them.
	for _, img := range images {
		if err := storage.ValidateImage(img); err != nil {
			return nil, err
		}
	}

	review := fromForm(form)
	review.Images = make([]string, 0, len(images))
	for _, img := range images {
		if s.Storage == nil {
			s.Logger.Warn("image storage not configured, dropping review image", zap.String("file", img.Filename))
			continue
		}
		uploaded, err := storage.UploadFormImage(ctx, s.Storage, img, storage.FolderReviews)
		if err != nil {
			return nil, err
		}
		review.Images = append(review.Images, uploaded.URL)
	}

	if err := s.Repo.Create(ctx, review); err != nil {
		return nil, err
	}
	s.Logger.Info("review submitted",
		zap.String("reviewId", review.ID.Hex()),
		zap.String("worker", review.WorkerName),
		zap.Int("images", len(review.Images)))
	return review, nil
}

func (s *DefaultReviewService) List(ctx context.Context) ([]models.Review, error) {
	return s.Repo.List(ctx)
}

func (s *DefaultReviewService) ListPublished(ctx context.Context) ([]models.Review, error) {
	return s.Repo.ListPublished(ctx)
}

func validateForm(form models.ReviewForm) error {
	required := map[string]string{
		"worker_name":    form.WorkerName,
		"name":           form.Name,
		"email":          form.Email,
		"written_review": form.WrittenReview,
	}
	for _, field := range []string{"worker_name", "name", "email", "written_review"} {
		if strings.TrimSpace(required[field]) == "" {
			return utils.BadRequest("%s is required", field)
		}
	}
	if _, err := mail.ParseAddress(form.Email); err != nil {
		return ErrInvalidEmail
	}
	return nil
}

func fromForm(form models.ReviewForm) *models.Review {
	product := strings.TrimSpace(form.ProductName)
	if product == "" {
		product = "N/A"
	}
	return &models.Review{
		WorkerName:          strings.TrimSpace(form.WorkerName),
		Name:                strings.TrimSpace(form.Name),
		Email:               strings.TrimSpace(form.Email),
		WrittenReview:       strings.TrimSpace(form.WrittenReview),
		OverallSatisfaction: rating(form.OverallSatisfaction),
		QualityOfWork:       rating(form.QualityOfWork),
		Timeliness:          rating(form.Timeliness),
		Accuracy:            rating(form.Accuracy),
		CommunicationSkills: rating(form.CommunicationSkills),
		ProductName:         product,
		ConsentToPublish:    form.ConsentToPublish,
		IsAnonymous:         form.IsAnonymous,
	}
}

// rating defaults a missing score to 5 and clamps the rest to 1..5.
func rating(v int) int {
	switch {
	case v == 0:
		return defaultRating
	case v < 1:
		return 1
	case v > 5:
		return 5
	}
	return v
}
