package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"

	"koon7r-storefront/apperr"
	"koon7r-storefront/compositor"
	"koon7r-storefront/db"
	"koon7r-storefront/models"
	"koon7r-storefront/notify"
	"koon7r-storefront/pricing"
	"koon7r-storefront/utils"
)

// withMockDB swaps db.DB for a sqlmock connection for the duration of the test
func withMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)

	previous := db.DB
	db.DB = conn
	t.Cleanup(func() {
		db.DB = previous
		conn.Close()
	})
	return mock
}

func withoutDB(t *testing.T) {
	t.Helper()
	previous := db.DB
	db.DB = nil
	t.Cleanup(func() { db.DB = previous })
}

func testEngine(t *testing.T) *pricing.Engine {
	t.Helper()
	engine, err := pricing.NewEngine("")
	require.NoError(t, err)
	return engine
}

func solidImage(w, h int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, img, imaging.PNG))
	return buf.Bytes()
}

func pngDataURI(t *testing.T, img image.Image) string {
	t.Helper()
	return utils.EncodeDataURI("image/png", encodePNG(t, img))
}

// fakeLoader serves images by reference
type fakeLoader struct {
	images map[string]image.Image
	fail   map[string]error
}

func (l *fakeLoader) Load(_ context.Context, ref string) (image.Image, error) {
	if err, ok := l.fail[ref]; ok {
		return nil, err
	}
	img, ok := l.images[ref]
	if !ok {
		return nil, fmt.Errorf("no image registered for %s", ref)
	}
	return img, nil
}

func newTestDesignService(loader *fakeLoader) *DesignService {
	if loader.images == nil {
		loader.images = map[string]image.Image{}
	}
	loader.images["front.png"] = solidImage(120, 120, color.White)
	loader.images["back.png"] = solidImage(120, 120, color.Gray{Y: 200})
	c := compositor.New(loader, loader, compositor.NewMockupRegistry("front.png", "back.png"), 100)
	return NewDesignService(c)
}

// recordingNotifier keeps every notification it is asked to send
type recordingNotifier struct {
	channel string
	err     error

	mu   sync.Mutex
	sent []notify.Notification
}

func (n *recordingNotifier) Channel() string { return n.channel }

func (n *recordingNotifier) Notify(_ context.Context, note notify.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, note)
	return n.err
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent)
}

type fakeOrderRepo struct {
	orders map[string]*models.Order
	list   []models.Order
}

func (r *fakeOrderRepo) Create(_ context.Context, order *models.Order) error {
	if r.orders == nil {
		r.orders = map[string]*models.Order{}
	}
	r.orders[order.ID] = order
	return nil
}

func (r *fakeOrderRepo) List(context.Context) ([]models.Order, error) { return r.list, nil }

func (r *fakeOrderRepo) GetByID(_ context.Context, id string) (*models.Order, error) {
	if order, ok := r.orders[id]; ok {
		return order, nil
	}
	return nil, fmt.Errorf("order %s: %w", id, apperr.ErrNotFound)
}

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, id string, status models.OrderStatus) error {
	order, ok := r.orders[id]
	if !ok {
		return fmt.Errorf("order %s: %w", id, apperr.ErrNotFound)
	}
	order.Status = status
	return nil
}

func (r *fakeOrderRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.orders[id]; !ok {
		return fmt.Errorf("order %s: %w", id, apperr.ErrNotFound)
	}
	delete(r.orders, id)
	return nil
}

type fakeDesignRepo struct {
	created []models.CustomDesign
}

func (r *fakeDesignRepo) Create(_ context.Context, design *models.CustomDesign) error {
	r.created = append(r.created, *design)
	return nil
}

func (r *fakeDesignRepo) ListByOrder(_ context.Context, orderID string) ([]models.CustomDesign, error) {
	out := []models.CustomDesign{}
	for _, d := range r.created {
		if d.OrderID == orderID {
			out = append(out, d)
		}
	}
	return out, nil
}

type fakeMessageRepo struct {
	created []models.ContactMessage
	err     error
}

func (r *fakeMessageRepo) Create(_ context.Context, msg *models.ContactMessage) error {
	if r.err != nil {
		return r.err
	}
	r.created = append(r.created, *msg)
	return nil
}

func (r *fakeMessageRepo) List(context.Context) ([]models.ContactMessage, error) {
	return r.created, nil
}

func (r *fakeMessageRepo) MarkRead(_ context.Context, id string) error {
	for i := range r.created {
		if r.created[i].ID == id {
			r.created[i].IsRead = true
			return nil
		}
	}
	return fmt.Errorf("message %s: %w", id, apperr.ErrNotFound)
}

type fakeSettingsRepo struct {
	settings models.Settings
}

func (r *fakeSettingsRepo) GetAll(context.Context) (*models.Settings, error) {
	s := r.settings
	return &s, nil
}

func (r *fakeSettingsRepo) Upsert(_ context.Context, key models.SettingKey, value string) error {
	r.settings.Set(key, value)
	return nil
}

type fakeUserRepo struct {
	upserted []models.User
	err      error
}

func (r *fakeUserRepo) Upsert(_ context.Context, user *models.User) error {
	if r.err != nil {
		return r.err
	}
	r.upserted = append(r.upserted, *user)
	return nil
}
