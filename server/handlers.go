package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"proptech-analytics/chat"
	"proptech-analytics/services"
	"proptech-analytics/utils"
)

const defaultEMIYears = 20

// Handler serves the analytics API.
type Handler struct {
	app          *services.App
	chat         *chat.Dispatcher
	hasPredictor bool
	logger       *utils.Logger
}

func NewHandler(app *services.App, dispatcher *chat.Dispatcher, hasPredictor bool, logger *utils.Logger) *Handler {
	return &Handler{app: app, chat: dispatcher, hasPredictor: hasPredictor, logger: logger}
}

type localityItem struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

type roiRequest struct {
	Locality string  `json:"locality"`
	Price    float64 `json:"price"`
}

type chatRequest struct {
	Message string `json:"message"`
}

func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("invalid JSON body: %v", err)
	}
	return nil
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	t := h.app.Stats.Table()
	writeOK(w, "healthy", map[string]interface{}{
		"status":               "healthy",
		"timestamp":            time.Now().Unix(),
		"data_available":       !t.IsEmpty(),
		"localities":           len(t.Localities),
		"merged_rows":          len(t.Merged),
		"summary_rows":         len(t.Summaries),
		"predictor_configured": h.hasPredictor,
		"built_at":             t.BuiltAt,
	})
}

func (h *Handler) Localities(w http.ResponseWriter, r *http.Request) {
	keys := h.app.Stats.Localities()
	items := make([]localityItem, len(keys))
	for i, k := range keys {
		items[i] = localityItem{Key: k, Name: services.DisplayName(k)}
	}
	writeOK(w, fmt.Sprintf("%d localities", len(items)), items)
}

func (h *Handler) LocalityStats(w http.ResponseWriter, r *http.Request) {
	rec, err := h.app.Stats.Lookup(mux.Vars(r)["locality"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeOK(w, "Stats for "+services.DisplayName(rec.Locality), rec)
}

func (h *Handler) Investment(w http.ResponseWriter, r *http.Request) {
	req := h.app.Engine.Request("", 0, 0, "medium")
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	if strings.TrimSpace(req.Locality) == "" {
		writeBadRequest(w, "locality is required")
		return
	}

	report, err := h.app.Engine.Analyze(req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeOK(w, "Investment analysis for "+report.Locality, report)
}

func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	loc1, loc2 := strings.TrimSpace(q.Get("loc1")), strings.TrimSpace(q.Get("loc2"))
	if loc1 == "" || loc2 == "" {
		writeBadRequest(w, "loc1 and loc2 are required")
		return
	}

	report := h.app.Comparator.Compare(loc1, loc2)
	if report == nil {
		missing := loc1
		if _, ok := h.app.Stats.GetStats(loc1); ok {
			missing = loc2
		}
		h.writeError(w, r, h.app.Stats.NotFound(missing))
		return
	}
	writeOK(w, report.Loc1.Name+" vs "+report.Loc2.Name, report)
}

func (h *Handler) ROI(w http.ResponseWriter, r *http.Request) {
	var req roiRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	est, err := h.app.ROI.Estimate(r.Context(), req.Locality, req.Price)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeOK(w, "ROI estimate for "+est.Locality, est)
}

func (h *Handler) EMI(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	principal, err := strconv.ParseFloat(q.Get("principal"), 64)
	if err != nil {
		writeBadRequest(w, "principal must be a number of rupees")
		return
	}
	rate := h.app.Engine.Defaults().InterestRatePct
	if s := q.Get("rate"); s != "" {
		if rate, err = strconv.ParseFloat(s, 64); err != nil {
			writeBadRequest(w, "rate must be a number")
			return
		}
	}
	years := defaultEMIYears
	if s := q.Get("years"); s != "" {
		if years, err = strconv.Atoi(s); err != nil {
			writeBadRequest(w, "years must be a whole number")
			return
		}
	}

	schedule, err := services.Schedule(principal, rate, years)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeOK(w, "EMI calculated", schedule)
}

// Rankings returns the ROI heatmap, or the investment ranking when a budget
// is given.
func (h *Handler) Rankings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("budget") == "" {
		writeOK(w, "Localities by average ROI", h.app.Ranker.Heatmap())
		return
	}

	budget, err := strconv.ParseFloat(q.Get("budget"), 64)
	if err != nil {
		writeBadRequest(w, "budget must be a number of lakh")
		return
	}
	horizon := defaultEMIYears
	if s := q.Get("horizon"); s != "" {
		if horizon, err = strconv.Atoi(s); err != nil {
			writeBadRequest(w, "horizon must be a whole number of years")
			return
		}
	}

	ranks, err := h.app.Ranker.RankInvestments(h.app.Engine.Request("", budget, horizon, q.Get("risk_tolerance")))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeOK(w, "Localities by ROI on cash invested", ranks)
}

func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	reply := h.chat.Handle(r.Context(), req.Message)
	writeOK(w, string(reply.Intent), reply)
}
