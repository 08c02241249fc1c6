package bot

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"proptech-analytics/chat"
	"proptech-analytics/models"
	"proptech-analytics/services"
	"proptech-analytics/utils"
)

func newTestResponder(loaded bool) *Responder {
	logger := utils.NewNopLogger()
	app := services.NewApp(services.Options{}, logger)
	if loaded {
		app.Rebuild(
			[]models.RawRecord{{Locality: "Powai", PriceLakh: 120, RateSqft: 16000}, {Locality: "Vile Parle", PriceLakh: 200, RateSqft: 25000}},
			[]models.RawRentRecord{{Locality: "Powai", Rent: 40000}, {Locality: "Vile Parle East", Rent: 60000}},
		)
	}
	return NewResponder(app, chat.NewDispatcher(app, logger))
}

func TestCommands(t *testing.T) {
	r := newTestResponder(true)
	ctx := context.Background()

	assert.Contains(t, r.Command(ctx, "start", ""), "Welcome")
	assert.Contains(t, r.Command(ctx, "help", ""), "/localities")
	assert.Contains(t, r.Command(ctx, "nope", ""), "Unknown command")

	list := r.Command(ctx, "localities", "")
	assert.Contains(t, list, "• Powai")
	assert.Contains(t, list, "• Vile Parle")
}

func TestLocalitiesWithoutData(t *testing.T) {
	assert.Contains(t, newTestResponder(false).Command(context.Background(), "localities", ""), "No locality data")
}

func TestText(t *testing.T) {
	reply := newTestResponder(true).Text(context.Background(), "tell me about powai")
	assert.Contains(t, reply, "Powai")
	assert.Contains(t, reply, "Avg ROI: 4.00%")
}
