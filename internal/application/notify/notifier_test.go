package notify

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labomak/dashboard/internal/config"
	"github.com/labomak/dashboard/internal/domain/entity"
	"github.com/labomak/dashboard/internal/domain/enum"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleOffer() entity.Offer {
	items := entity.LineItems{{ProductName: "Pompa", Quantity: 2, UnitPrice: decimal.NewFromInt(100), Currency: enum.CurrencyTRY}}
	return entity.Offer{ID: 1, Number: "TK20250908047", CompanyName: "Test A.Ş.", Items: items, Totals: items.Totals(), Status: enum.OfferStatusDraft}
}

func TestWebhookNotifierPostsJSON(t *testing.T) {
	var gotHeaders http.Header
	var gotBody OfferCreated
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &gotBody)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	err := NewWebhookNotifier(srv.URL, time.Second).NotifyOfferCreated(context.Background(), NewOfferCreated(sampleOffer()))

	require.NoError(t, err)
	assert.Equal(t, "application/json", gotHeaders.Get("Content-Type"))
	assert.Equal(t, "true", gotHeaders.Get("ngrok-skip-browser-warning"))
	assert.Equal(t, EventOfferCreated, gotBody.Event)
	assert.Equal(t, "TK20250908047", gotBody.Offer.Number)
	require.Len(t, gotBody.Offer.Items, 1)
}

func TestWebhookNotifierReportsStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	err := NewWebhookNotifier(srv.URL, time.Second).NotifyOfferCreated(context.Background(), NewOfferCreated(sampleOffer()))
	assert.ErrorContains(t, err, "502")
}

func TestWebhookNotifierTimesOut(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	err := NewWebhookNotifier(srv.URL, 50*time.Millisecond).NotifyOfferCreated(context.Background(), NewOfferCreated(sampleOffer()))
	assert.Error(t, err)
}

type recordingPublisher struct {
	key  string
	body []byte
	err  error
}

func (p *recordingPublisher) Publish(ctx context.Context, routingKey string, body []byte) error {
	p.key, p.body = routingKey, body
	return p.err
}

func TestAMQPNotifier(t *testing.T) {
	pub := &recordingPublisher{}

	err := NewAMQPNotifier(pub, "teklif.olusturuldu").NotifyOfferCreated(context.Background(), NewOfferCreated(sampleOffer()))

	require.NoError(t, err)
	assert.Equal(t, "teklif.olusturuldu", pub.key)
	assert.Contains(t, string(pub.body), `"teklif_no":"TK20250908047"`)
}

type failing struct{ msg string }

func (f failing) NotifyOfferCreated(context.Context, OfferCreated) error { return errors.New(f.msg) }

func TestMultiJoinsErrors(t *testing.T) {
	err := Multi{failing{"a"}, Noop{}, failing{"b"}}.NotifyOfferCreated(context.Background(), OfferCreated{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a")
	assert.Contains(t, err.Error(), "b")

	assert.NoError(t, Multi{Noop{}}.NotifyOfferCreated(context.Background(), OfferCreated{}))
}

func TestNewSelectsDriver(t *testing.T) {
	pub := &recordingPublisher{}
	cfg := config.NotifierConfig{WebhookURL: "http://localhost", WebhookTimeout: time.Second}

	cfg.Driver = "none"
	assert.IsType(t, Noop{}, New(cfg, pub, "q"))

	cfg.Driver = "webhook"
	assert.IsType(t, &WebhookNotifier{}, New(cfg, pub, "q"))

	cfg.Driver = "amqp"
	assert.IsType(t, &AMQPNotifier{}, New(cfg, pub, "q"))
	assert.IsType(t, &WebhookNotifier{}, New(cfg, nil, "q"))

	cfg.Driver = "both"
	assert.IsType(t, Multi{}, New(cfg, pub, "q"))
}
