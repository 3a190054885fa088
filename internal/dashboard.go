package internal

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	stderrors "errors"
	"html/template"
	"log/slog"
	"net/http"
	"profiler-viz/contract"
	"profiler-viz/domain"
	"profiler-viz/domain/event"
	"profiler-viz/errors"
	"profiler-viz/projection"
	"profiler-viz/widget"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/net/html"
)

//go:embed dashboard.html
var templatesFS embed.FS

var validate = validator.New()

const shutdownTimeout = 5 * time.Second

type ClickRequest struct {
	Profile string `json:"profile" validate:"required,excludes=:"`
	Index   *int   `json:"index" validate:"required,min=0"`
}

type RecordRequest struct {
	Profile string `json:"profile" validate:"required,excludes=:"`
	Source  string `json:"source" validate:"required"`
	Content string `json:"content"`
}

type RecordResponse struct {
	Seq uint64 `json:"seq"`
	ID  string `json:"id"`
}

type MessageView struct {
	ID      string    `json:"id"`
	Source  string    `json:"source"`
	Content string    `json:"content"`
	At      time.Time `json:"at"`
}

type timelinePage struct {
	Profile  string
	WidgetID string
	Widget   template.HTML
}

type profilesPage struct {
	Profiles []string
}

// Dashboard serves the timeline widgets of every recorded profile and
// turns browser clicks into MessageClicked events.
type Dashboard struct {
	log        *slog.Logger
	address    string
	repository contract.IMessageRepository
	timeline   *projection.Timeline
	selection  *projection.Selection
	emitter    contract.EventEmitter
	tmpl       *template.Template
}

func NewDashboard(
	log *slog.Logger,
	address string,
	repository contract.IMessageRepository,
	timeline *projection.Timeline,
	selection *projection.Selection,
	emitter contract.EventEmitter,
) *Dashboard {
	return &Dashboard{
		log:        log,
		address:    address,
		repository: repository,
		timeline:   timeline,
		selection:  selection,
		emitter:    emitter,
		tmpl:       template.Must(template.ParseFS(templatesFS, "dashboard.html")),
	}
}

// WidgetID names the timeline widget of a profile.
func WidgetID(profile string) string {
	return "timeline-" + profile
}

// Warm seeds the timeline projection with every stored profile.
func (d *Dashboard) Warm() error {
	profiles, err := d.repository.Profiles()
	if err != nil {
		return err
	}
	for _, profile := range profiles {
		messages, err := d.repository.GetMessages(profile)
		if err != nil {
			return err
		}
		d.timeline.Load(profile, messages)
		d.log.Debug("Profile loaded", "profile", profile, "messages", len(messages))
	}
	return nil
}

func (d *Dashboard) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", d.handleProfiles)
	mux.HandleFunc("GET /timeline", d.handleTimeline)
	mux.HandleFunc("POST /click", d.handleClick)
	mux.HandleFunc("GET /selection", d.handleSelection)
	mux.HandleFunc("POST /messages", d.handleRecord)
	return mux
}

// Run serves until ctx is canceled, then shuts the server down gracefully.
func (d *Dashboard) Run(ctx context.Context) error {
	server := &http.Server{Addr: d.address, Handler: d.Handler()}

	errChan := make(chan error, 1)
	go func() {
		d.log.Info("Starting dashboard", "address", d.address)
		if err := server.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		d.log.Info("Shutting down dashboard")
		return server.Shutdown(shutdownCtx)
	case err, ok := <-errChan:
		if !ok {
			return nil
		}
		return err
	}
}

func (d *Dashboard) handleProfiles(w http.ResponseWriter, _ *http.Request) {
	d.render(w, "profiles", profilesPage{Profiles: d.timeline.Profiles()})
}

func (d *Dashboard) handleTimeline(w http.ResponseWriter, r *http.Request) {
	profile := r.URL.Query().Get("profile")
	messages, err := d.timeline.Messages(profile)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	widgetID := WidgetID(profile)
	var buf bytes.Buffer
	if err := html.Render(&buf, widget.NewTimelineWidget(widgetID, messages, d.emitter).Compose()); err != nil {
		d.log.Error("Failed to render widget", "profile", profile, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	d.render(w, "timeline", timelinePage{
		Profile:  profile,
		WidgetID: widgetID,
		Widget:   template.HTML(buf.String()),
	})
}

func (d *Dashboard) handleClick(w http.ResponseWriter, r *http.Request) {
	var req ClickRequest
	if !decode(w, r, &req) {
		return
	}
	messages, err := d.timeline.Messages(req.Profile)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	timeline := widget.NewTimelineWidget(WidgetID(req.Profile), messages, d.emitter)
	if err := timeline.ClickIndex(*req.Index); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (d *Dashboard) handleSelection(w http.ResponseWriter, r *http.Request) {
	message, err := d.selection.Selected(r.URL.Query().Get("widget"))
	if stderrors.Is(err, errors.ErrNoSelection) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, toView(message))
}

func (d *Dashboard) handleRecord(w http.ResponseWriter, r *http.Request) {
	var req RecordRequest
	if !decode(w, r, &req) {
		return
	}
	message := domain.NewMessage(req.Source, req.Content, time.Now().UTC())
	seq, err := d.repository.StoreMessage(req.Profile, message)
	if err != nil {
		d.log.Error("Failed to store message", "profile", req.Profile, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	recorded := event.MessageRecorded{Profile: req.Profile, Seq: seq, Message: message}
	// Projected in line: Emit may drop events.
	if err := d.timeline.Consume(r.Context(), recorded); err != nil {
		d.log.Error("Failed to project message", "profile", req.Profile, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	d.emitter.Emit(recorded)
	writeJSON(w, http.StatusCreated, RecordResponse{Seq: seq, ID: message.ID.String()})
}

func (d *Dashboard) render(w http.ResponseWriter, name string, data any) {
	var buf bytes.Buffer
	if err := d.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		d.log.Error("Template error", "template", name, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return false
	}
	if err := validate.Struct(v); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func toView(m domain.Message) MessageView {
	return MessageView{
		ID:      m.ID.String(),
		Source:  m.Source,
		Content: m.Content,
		At:      m.At,
	}
}
