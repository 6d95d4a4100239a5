package listing

import (
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"strings"

	ticketRepo "localconnect/database/repository/ticket"
	workerRepo "localconnect/database/repository/worker"
	"localconnect/models"
	"localconnect/services/storage"
	"localconnect/utils"

	"go.uber.org/zap"
)

var (
	ErrUnknownWorkerType = utils.BadRequest("unknown worker type")
	ErrNoWorkerType      = utils.BadRequest("select at least one worker type")
	ErrUnknownTicketKind = utils.BadRequest("unknown ticket kind")
)

// DefaultListingService implements ListingService.
type DefaultListingService struct {
	Workers workerRepo.WorkerRepository
	Tickets ticketRepo.TicketRepository
	Storage storage.StorageService
	Logger  *zap.Logger
}

// NewListingService wires the listing service. storage may be nil, in which
// case uploads are skipped.
func NewListingService(workers workerRepo.WorkerRepository, tickets ticketRepo.TicketRepository, store storage.StorageService, logger *zap.Logger) *DefaultListingService {
	return &DefaultListingService{Workers: workers, Tickets: tickets, Storage: store, Logger: logger}
}

// CreateWorkerProfile stores a worker form and its profile photo.
func (s *DefaultListingService) CreateWorkerProfile(ctx context.Context, form models.WorkerForm, photo *multipart.FileHeader, accountID string) (*models.WorkerProfile, error) {
	types, err := ParseWorkerTypes(form.WorkerTypes)
	if err != nil {
		return nil, err
	}
	if form.CostPerHour < 0 {
		return nil, utils.BadRequest("costPerHour cannot be negative")
	}

	profile := &models.WorkerProfile{
		FullName:    strings.TrimSpace(form.FullName),
		PhoneNumber: strings.TrimSpace(form.PhoneNumber),
		WorkerTypes: types,
		Address:     form.Address,
		City:        form.City,
		State:       form.State,
		Country:     form.Country,
		Email:       strings.ToLower(strings.TrimSpace(form.Email)),
		Age:         form.Age,
		Gender:      form.Gender,
		CostPerHour: form.CostPerHour,
		AccountID:   accountID,
	}
	var uploaded *storage.UploadedFile
	if photo != nil {
		if uploaded, err = s.upload(ctx, photo, storage.FolderWorkers); err != nil {
			return nil, err
		}
		profile.ProfilePhoto = uploaded.URL
	}
	if err := s.Workers.CreateProfile(ctx, profile); err != nil {
		s.discard(ctx, uploaded)
		return nil, err
	}
	s.Logger.Info("worker profile created", zap.String("profileId", profile.ID.Hex()), zap.String("city", profile.City))
	return profile, nil
}

// ParseWorkerTypes decodes the workerTypes form field. Both a JSON object of
// flags and a comma separated list are accepted.
func ParseWorkerTypes(raw string) (map[string]bool, error) {
	selected := map[string]bool{}
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "{") {
		if err := json.Unmarshal([]byte(raw), &selected); err != nil {
			return nil, utils.BadRequest("invalid workerTypes: %v", err)
		}
	} else {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				selected[t] = true
			}
		}
	}

	out := make(map[string]bool, len(models.WorkerTypes))
	enabled := false
	for t, on := range selected {
		if !isWorkerType(t) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownWorkerType, t)
		}
		out[t] = on
		enabled = enabled || on
	}
	if !enabled {
		return nil, ErrNoWorkerType
	}
	return out, nil
}

func isWorkerType(t string) bool {
	for _, known := range models.WorkerTypes {
		if known == t {
			return true
		}
	}
	return false
}

// ListWorkers returns every worker profile.
func (s *DefaultListingService) ListWorkers(ctx context.Context) ([]models.WorkerProfile, error) {
	return s.Workers.ListProfiles(ctx)
}

// ListWorkersByType returns profiles offering workerType.
func (s *DefaultListingService) ListWorkersByType(ctx context.Context, workerType string) ([]models.WorkerProfile, error) {
	if !isWorkerType(workerType) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownWorkerType, workerType)
	}
	return s.Workers.ListProfilesByType(ctx, workerType)
}

// CreateTicket stores a concert or festival ticket listing.
func (s *DefaultListingService) CreateTicket(ctx context.Context, kind string, form models.TicketForm, image *multipart.FileHeader) (*models.TicketListing, error) {
	if kind != models.TicketKindConcert && kind != models.TicketKindFestival {
		return nil, ErrUnknownTicketKind
	}
	ticket := ticketFromForm(kind, form)
	if ticket.EventName == "" {
		return nil, utils.BadRequest("event name is required")
	}
	if ticket.EventDate == "" {
		return nil, utils.BadRequest("event date is required")
	}
	if ticket.Price < 0 || ticket.Fees < 0 {
		return nil, utils.BadRequest("ticket price and fees cannot be negative")
	}
	if ticket.AvailableTickets < 1 {
		return nil, utils.BadRequest("availableTickets must be at least 1")
	}
	var uploaded *storage.UploadedFile
	if image != nil {
		var err error
		if uploaded, err = s.upload(ctx, image, storage.FolderTickets); err != nil {
			return nil, err
		}
		ticket.TicketImage = uploaded.URL
	}
	if err := s.Tickets.Create(ctx, ticket); err != nil {
		s.discard(ctx, uploaded)
		return nil, err
	}
	return ticket, nil
}

func ticketFromForm(kind string, form models.TicketForm) *models.TicketListing {
	name := firstNonEmpty(form.EventName, form.FestivalName, form.PerformerName)
	return &models.TicketListing{
		Kind:               kind,
		EventName:          strings.TrimSpace(name),
		PerformerName:      strings.TrimSpace(form.PerformerName),
		EventDate:          firstNonEmpty(form.EventDate, form.StartDate),
		EventTime:          firstNonEmpty(form.EventTime, form.StartTime),
		EndDate:            form.EndDate,
		EndTime:            form.EndTime,
		Venue:              strings.TrimSpace(form.Venue),
		SeatNumber:         form.SeatNumber,
		TicketType:         form.TicketType,
		TicketHolderName:   form.TicketHolderName,
		Price:              form.TicketPrice,
		Fees:               form.AdditionalFees,
		AvailableTickets:   form.AvailableTickets,
		AdmissionPolicies:  form.AdmissionPolicies,
		ResaleRestrictions: form.ResaleRestrictions,
		RefundPolicies:     form.RefundPolicies,
	}
}

// ListTickets returns the listings of one kind.
func (s *DefaultListingService) ListTickets(ctx context.Context, kind string) ([]models.TicketListing, error) {
	return s.Tickets.ListByKind(ctx, kind)
}

// GetTicket returns one listing.
func (s *DefaultListingService) GetTicket(ctx context.Context, id string) (*models.TicketListing, error) {
	return s.Tickets.GetByID(ctx, id)
}

// Resolve prices a worker profile or ticket listing as a cart line item.
func (s *DefaultListingService) Resolve(ctx context.Context, kind models.ItemKind, id string) (*models.CartLineItem, error) {
	switch kind {
	case models.KindService:
		p, err := s.Workers.GetProfileByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return &models.CartLineItem{
			ID:           p.ID.Hex(),
			Kind:         models.KindService,
			Price:        p.CostPerHour,
			Quantity:     1,
			ProviderName: p.FullName,
			ServiceType:  p.PrimaryType(),
			ProfileImage: p.ProfilePhoto,
		}, nil
	case models.KindTicket:
		t, err := s.Tickets.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return &models.CartLineItem{
			ID:               t.ID.Hex(),
			Kind:             models.KindTicket,
			Price:            t.Price,
			Fee:              t.Fees,
			Quantity:         1,
			EventName:        t.DisplayName(),
			AvailableTickets: t.AvailableTickets,
			TicketImage:      t.TicketImage,
		}, nil
	}
	return nil, utils.BadRequest("unknown item type %q", kind)
}

// upload stores header in folder. Without storage it returns an empty file.
func (s *DefaultListingService) upload(ctx context.Context, header *multipart.FileHeader, folder string) (*storage.UploadedFile, error) {
	if s.Storage == nil {
		s.Logger.Warn("image storage not configured, skipping upload", zap.String("file", header.Filename))
		return &storage.UploadedFile{}, nil
	}
	return storage.UploadFormImage(ctx, s.Storage, header, folder)
}

// discard removes an image whose listing could not be saved.
func (s *DefaultListingService) discard(ctx context.Context, uploaded *storage.UploadedFile) {
	if uploaded == nil || uploaded.PublicID == "" || s.Storage == nil {
		return
	}
	if err := s.Storage.DeleteFile(ctx, uploaded.PublicID); err != nil {
		s.Logger.Warn("failed to delete orphaned image", zap.String("publicId", uploaded.PublicID), zap.Error(err))
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
