package listing

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"testing"

	"localconnect/database/repository"
	"localconnect/models"
	"localconnect/services/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type fakeWorkers struct {
	profiles map[string]*models.WorkerProfile
}

func (f *fakeWorkers) CreateAccount(ctx context.Context, w *models.Worker) error { return nil }
func (f *fakeWorkers) GetAccountByID(ctx context.Context, id string) (*models.Worker, error) {
	return nil, repository.ErrNotFound
}
func (f *fakeWorkers) GetAccountByIdentifier(ctx context.Context, id string) (*models.Worker, error) {
	return nil, repository.ErrNotFound
}
func (f *fakeWorkers) AddFCMToken(ctx context.Context, accountID, token string) error { return nil }

func (f *fakeWorkers) CreateProfile(ctx context.Context, p *models.WorkerProfile) error {
	p.ID = primitive.NewObjectID()
	f.profiles[p.ID.Hex()] = p
	return nil
}

func (f *fakeWorkers) GetProfileByID(ctx context.Context, id string) (*models.WorkerProfile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

func (f *fakeWorkers) ListProfiles(ctx context.Context) ([]models.WorkerProfile, error) {
	var out []models.WorkerProfile
	for _, p := range f.profiles {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeWorkers) ListProfilesByType(ctx context.Context, t string) ([]models.WorkerProfile, error) {
	var out []models.WorkerProfile
	for _, p := range f.profiles {
		if p.WorkerTypes[t] {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeWorkers) ListProfilesByAccount(ctx context.Context, accountID string) ([]models.WorkerProfile, error) {
	return nil, nil
}

func (f *fakeWorkers) DeviceTokensForProfiles(ctx context.Context, ids []string) ([]string, error) {
	return nil, nil
}

type fakeTickets struct {
	tickets map[string]*models.TicketListing
	err     error
}

func (f *fakeTickets) Create(ctx context.Context, t *models.TicketListing) error {
	if f.err != nil {
		return f.err
	}
	t.ID = primitive.NewObjectID()
	f.tickets[t.ID.Hex()] = t
	return nil
}

func (f *fakeTickets) GetByID(ctx context.Context, id string) (*models.TicketListing, error) {
	t, ok := f.tickets[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return t, nil
}

func (f *fakeTickets) ListByKind(ctx context.Context, kind string) ([]models.TicketListing, error) {
	var out []models.TicketListing
	for _, t := range f.tickets {
		if t.Kind == kind {
			out = append(out, *t)
		}
	}
	return out, nil
}

type fakeStorage struct {
	uploads []string
	deleted []string
}

func (f *fakeStorage) UploadImage(ctx context.Context, file io.Reader, filename, folder string) (*storage.UploadedFile, error) {
	f.uploads = append(f.uploads, folder+"/"+filename)
	return &storage.UploadedFile{PublicID: filename, URL: "https://img.example/" + filename}, nil
}

func (f *fakeStorage) DeleteFile(ctx context.Context, publicID string) error {
	f.deleted = append(f.deleted, publicID)
	return nil
}

func fileHeader(t *testing.T, name, contentType string, data []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, name))
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	return form.File["file"][0]
}

func newTestService() (*DefaultListingService, *fakeStorage) {
	store := &fakeStorage{}
	svc := NewListingService(
		&fakeWorkers{profiles: map[string]*models.WorkerProfile{}},
		&fakeTickets{tickets: map[string]*models.TicketListing{}},
		store,
		zap.NewNop(),
	)
	return svc, store
}

func TestParseWorkerTypes(t *testing.T) {
	types, err := ParseWorkerTypes(`{"plumber":true,"acRepair":false}`)
	require.NoError(t, err)
	assert.True(t, types["plumber"])
	assert.False(t, types["acRepair"])

	types, err = ParseWorkerTypes("plumber, electricalRepair")
	require.NoError(t, err)
	assert.True(t, types["electricalRepair"])

	_, err = ParseWorkerTypes(`{"astronaut":true}`)
	assert.ErrorIs(t, err, ErrUnknownWorkerType)

	_, err = ParseWorkerTypes(`{"plumber":false}`)
	assert.ErrorIs(t, err, ErrNoWorkerType)

	_, err = ParseWorkerTypes(`{"plumber":`)
	assert.Error(t, err)
}

func TestCreateWorkerProfile(t *testing.T) {
	svc, store := newTestService()
	form := models.WorkerForm{
		FullName:    " Asha Rao ",
		PhoneNumber: "9876543210",
		WorkerTypes: `{"plumber":true}`,
		City:        "Pune",
		Email:       "Asha@Example.com",
		CostPerHour: 450,
	}
	photo := fileHeader(t, "asha.png", "image/png", []byte("png"))

	profile, err := svc.CreateWorkerProfile(context.Background(), form, photo, "acct-1")
	require.NoError(t, err)
	assert.Equal(t, "Asha Rao", profile.FullName)
	assert.Equal(t, "asha@example.com", profile.Email)
	assert.Equal(t, "acct-1", profile.AccountID)
	assert.Equal(t, "https://img.example/asha.png", profile.ProfilePhoto)
	assert.Equal(t, []string{storage.FolderWorkers + "/asha.png"}, store.uploads)

	listed, err := svc.ListWorkersByType(context.Background(), "plumber")
	require.NoError(t, err)
	assert.Len(t, listed, 1)

	_, err = svc.ListWorkersByType(context.Background(), "pilot")
	assert.ErrorIs(t, err, ErrUnknownWorkerType)
}

func TestCreateWorkerProfileRejectsNonImage(t *testing.T) {
	svc, store := newTestService()
	form := models.WorkerForm{FullName: "A", WorkerTypes: "plumber", CostPerHour: 10}
	doc := fileHeader(t, "cv.pdf", "application/pdf", []byte("%PDF"))

	_, err := svc.CreateWorkerProfile(context.Background(), form, doc, "")
	assert.ErrorIs(t, err, storage.ErrNotAnImage)
	assert.Empty(t, store.uploads)
}

func TestCreateTicketDiscardsImageWhenSaveFails(t *testing.T) {
	store := &fakeStorage{}
	tickets := &fakeTickets{tickets: map[string]*models.TicketListing{}, err: errors.New("write conflict")}
	svc := NewListingService(&fakeWorkers{profiles: map[string]*models.WorkerProfile{}}, tickets, store, zap.NewNop())

	image := fileHeader(t, "poster.jpg", "image/jpeg", []byte("jpg"))
	_, err := svc.CreateTicket(context.Background(), models.TicketKindConcert, models.TicketForm{
		PerformerName:    "Arijit Singh",
		EventDate:        "2026-11-01",
		Venue:            "NSCI Dome",
		TicketPrice:      1800,
		AvailableTickets: 1,
	}, image)
	require.Error(t, err)
	assert.Len(t, store.uploads, 1)
	assert.Equal(t, []string{"poster.jpg"}, store.deleted)
}

func TestCreateFestivalTicketMapsFields(t *testing.T) {
	svc, _ := newTestService()
	form := models.TicketForm{
		FestivalName:     "Sunburn",
		StartDate:        "2026-12-28",
		StartTime:        "16:00",
		EndDate:          "2026-12-30",
		Venue:            "Goa",
		TicketPrice:      2500,
		AdditionalFees:   150,
		AvailableTickets: 2,
	}

	ticket, err := svc.CreateTicket(context.Background(), models.TicketKindFestival, form, nil)
	require.NoError(t, err)
	assert.Equal(t, "Sunburn", ticket.EventName)
	assert.Equal(t, "2026-12-28", ticket.EventDate)
	assert.Equal(t, "16:00", ticket.EventTime)

	_, err = svc.CreateTicket(context.Background(), "opera", form, nil)
	assert.ErrorIs(t, err, ErrUnknownTicketKind)

	form.AvailableTickets = 0
	_, err = svc.CreateTicket(context.Background(), models.TicketKindFestival, form, nil)
	assert.Error(t, err)
}

func TestResolve(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	profile, err := svc.CreateWorkerProfile(ctx, models.WorkerForm{
		FullName:    "Ravi",
		WorkerTypes: `{"electricalRepair":true}`,
		CostPerHour: 300,
	}, nil, "")
	require.NoError(t, err)

	item, err := svc.Resolve(ctx, models.KindService, profile.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, models.KindService, item.Kind)
	assert.Equal(t, 300.0, item.Price)
	assert.Equal(t, "Ravi", item.ProviderName)
	assert.Equal(t, "electricalRepair", item.ServiceType)

	ticket, err := svc.CreateTicket(ctx, models.TicketKindConcert, models.TicketForm{
		PerformerName:    "Arijit Singh",
		EventDate:        "2026-11-01",
		Venue:            "NSCI Dome",
		TicketPrice:      1800,
		AdditionalFees:   120,
		AvailableTickets: 3,
	}, nil)
	require.NoError(t, err)

	item, err = svc.Resolve(ctx, models.KindTicket, ticket.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "Arijit Singh", item.EventName)
	assert.Equal(t, 120.0, item.Fee)
	assert.Equal(t, 3, item.AvailableTickets)

	_, err = svc.Resolve(ctx, models.KindTicket, primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = svc.Resolve(ctx, "gift", "x")
	assert.Error(t, err)
}
