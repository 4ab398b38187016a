package calculator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"wordcalc/internal/handlers"
	"wordcalc/internal/observability"
	"wordcalc/internal/words"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// tracer is the calculator's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("calculator")

// Handler serves the calculator HTTP API on top of a SessionStore.
type Handler struct {
	sessions *SessionStore
	speller  words.Speller
}

// NewHandler creates a Handler. A nil speller falls back to words.Converter.
func NewHandler(sessions *SessionStore, speller words.Speller) *Handler {
	if speller == nil {
		speller = words.Converter{}
	}
	return &Handler{sessions: sessions, speller: speller}
}

// ---------------------------------------------------------------------------
// Handlers: session lifecycle
// ---------------------------------------------------------------------------

// CreateSession handles POST /calculator/sessions
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)

	sess := h.sessions.Create()

	var view View
	_ = sess.Do(func(c *Calculator) error {
		view = c.View()
		return nil
	})

	trace.SpanFromContext(ctx).SetAttributes(attribute.String("calculator.session", sess.ID))

	logger.Info("calculator session created",
		zap.String("session_id", sess.ID),
		zap.Int("sessions", h.sessions.Len()),
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
	)

	handlers.WriteJSON(w, http.StatusCreated, SessionResponse{SessionID: sess.ID, View: view})
}

// GetSession handles GET /calculator/sessions/{id}
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	h.handleAction(w, r, "view", nil, func(c *Calculator) (*Evaluation, error) {
		return nil, nil
	})
}

// DeleteSession handles DELETE /calculator/sessions/{id}
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	sessionID := chi.URLParam(r, "id")

	if !h.sessions.Delete(sessionID) {
		handlers.WriteError(w, http.StatusNotFound, "session not found")
		return
	}

	logger.Info("calculator session deleted",
		zap.String("session_id", sessionID),
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
	)
	w.WriteHeader(http.StatusNoContent)
}

// ---------------------------------------------------------------------------
// Handlers: input actions
// ---------------------------------------------------------------------------

// Digit handles POST /calculator/sessions/{id}/digit
func (h *Handler) Digit(w http.ResponseWriter, r *http.Request) {
	var req ValueRequest
	h.handleAction(w, r, "digit", &req, func(c *Calculator) (*Evaluation, error) {
		return nil, c.AppendDigit(req.Value)
	})
}

// Bracket handles POST /calculator/sessions/{id}/bracket
func (h *Handler) Bracket(w http.ResponseWriter, r *http.Request) {
	var req ValueRequest
	h.handleAction(w, r, "bracket", &req, func(c *Calculator) (*Evaluation, error) {
		return nil, c.AppendBracket(req.Value)
	})
}

// Operator handles POST /calculator/sessions/{id}/operator. Replacing a
// pending operator with a right operand typed evaluates first.
func (h *Handler) Operator(w http.ResponseWriter, r *http.Request) {
	var req ValueRequest
	h.handleAction(w, r, "operator", &req, func(c *Calculator) (*Evaluation, error) {
		return c.SetOperator(req.Value)
	})
}

// Backspace handles POST /calculator/sessions/{id}/backspace
func (h *Handler) Backspace(w http.ResponseWriter, r *http.Request) {
	h.handleAction(w, r, "backspace", nil, func(c *Calculator) (*Evaluation, error) {
		c.Backspace()
		return nil, nil
	})
}

// Equals handles POST /calculator/sessions/{id}/equals
func (h *Handler) Equals(w http.ResponseWriter, r *http.Request) {
	h.handleAction(w, r, "equals", nil, func(c *Calculator) (*Evaluation, error) {
		ev, err := c.Evaluate()
		if err != nil {
			return nil, err
		}
		return &ev, nil
	})
}

// Clear handles POST /calculator/sessions/{id}/clear
func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	h.handleAction(w, r, "clear", nil, func(c *Calculator) (*Evaluation, error) {
		c.Clear()
		return nil, nil
	})
}

// handleAction is the shared implementation for every session action: it
// decodes body (when non-nil), runs apply under the session lock, and
// reports the outcome through spans, metrics, logs and the JSON response.
func (h *Handler) handleAction(w http.ResponseWriter, r *http.Request, opName string, body any, apply func(c *Calculator) (*Evaluation, error)) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)
	sessionID := chi.URLParam(r, "id")

	ctx, span := tracer.Start(ctx, fmt.Sprintf("calculator.%s", opName),
		trace.WithAttributes(
			attribute.String("calculator.action", opName),
			attribute.String("calculator.session", sessionID),
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	if body != nil {
		if err := json.NewDecoder(r.Body).Decode(body); err != nil {
			observability.RecordError(ctx, span, logger, errorCounter, opName, handlers.ErrorResponse{Error: "invalid request body"}, err, http.StatusBadRequest, w)
			return
		}
	}

	sess, ok := h.sessions.Get(sessionID)
	if !ok {
		observability.RecordError(ctx, span, logger, errorCounter, opName, handlers.ErrorResponse{Error: "session not found"}, fmt.Errorf("session %q not found", sessionID), http.StatusNotFound, w)
		return
	}

	start := time.Now()
	var (
		ev   *Evaluation
		view View
	)
	err := sess.Do(func(c *Calculator) error {
		var err error
		ev, err = apply(c)
		view = c.View()
		return err
	})
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

	actionDuration.Record(ctx, elapsed, metric.WithAttributes(attribute.String("action", opName)))

	if err != nil {
		recordInputError(ctx, span, logger, opName, err, &view, nil, w)
		return
	}

	recordEvaluation(ctx, span, ev)
	if view.ShowWords {
		wordsCounter.Add(ctx, 1)
	}

	span.SetAttributes(attribute.String("calculator.display", view.Display))
	span.SetStatus(codes.Ok, "")

	logger.Info("calculator action completed",
		zap.String("action", opName),
		zap.String("session_id", sessionID),
		zap.String("display", view.Display),
		zap.String("request_id", requestID),
		zap.Float64("duration_ms", elapsed),
	)

	handlers.WriteJSON(w, http.StatusOK, SessionResponse{
		SessionID:  sessionID,
		View:       view,
		Evaluation: newEvaluationResponse(ev),
	})
}

// ---------------------------------------------------------------------------
// Handler: key replay (one child span per key)
// ---------------------------------------------------------------------------

// Keys handles POST /calculator/sessions/{id}/keys. It presses each key in
// order, creating a child span per key, and stops at the first rejected key.
// Keys before the rejected one stay applied; the error body carries the
// index of the rejected key and the resulting view.
func (h *Handler) Keys(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)
	sessionID := chi.URLParam(r, "id")

	ctx, span := tracer.Start(ctx, "calculator.keys",
		trace.WithAttributes(
			attribute.String("calculator.session", sessionID),
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	var req KeysRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "keys", handlers.ErrorResponse{Error: "invalid request body"}, err, http.StatusBadRequest, w)
		return
	}

	keys := []rune(req.Keys)
	if len(keys) == 0 {
		observability.RecordError(ctx, span, logger, errorCounter, "keys", handlers.ErrorResponse{Error: "no keys provided"}, fmt.Errorf("keys is empty"), http.StatusBadRequest, w)
		return
	}

	sess, ok := h.sessions.Get(sessionID)
	if !ok {
		observability.RecordError(ctx, span, logger, errorCounter, "keys", handlers.ErrorResponse{Error: "session not found"}, fmt.Errorf("session %q not found", sessionID), http.StatusNotFound, w)
		return
	}

	span.SetAttributes(attribute.Int("calculator.keys_count", len(keys)))

	var (
		results = make([]KeyResult, 0, len(keys))
		view    View
		failed  error
		failAt  int
	)

	_ = sess.Do(func(c *Calculator) error {
		for i, k := range keys {
			_, keySpan := tracer.Start(ctx, fmt.Sprintf("calculator.keys.%d", i),
				trace.WithAttributes(
					attribute.Int("calculator.key.index", i),
					attribute.String("calculator.key", string(k)),
					attribute.String("calculator.key.input", c.Display()),
				),
			)

			keyStart := time.Now()
			ev, err := c.Press(k)
			keyElapsed := float64(time.Since(keyStart).Microseconds()) / 1000.0

			if err != nil {
				keySpan.RecordError(err)
				keySpan.SetStatus(codes.Error, err.Error())
				keySpan.End()

				failed, failAt = err, i
				break
			}

			actionDuration.Record(ctx, keyElapsed, metric.WithAttributes(attribute.String("action", "key")))
			recordEvaluation(ctx, keySpan, ev)

			keySpan.SetAttributes(attribute.String("calculator.display", c.Display()))
			keySpan.SetStatus(codes.Ok, "")
			keySpan.End()

			results = append(results, KeyResult{
				Key:        string(k),
				Display:    c.Display(),
				Evaluation: newEvaluationResponse(ev),
			})
		}

		view = c.View()
		return nil
	})

	if failed != nil {
		recordInputError(ctx, span, logger, "keys", failed, &view, &failAt, w)
		return
	}

	span.AddEvent("keys.complete", trace.WithAttributes(
		attribute.String("display", view.Display),
		attribute.Int("total_keys", len(keys)),
	))
	span.SetStatus(codes.Ok, "")

	logger.Info("key replay completed",
		zap.String("session_id", sessionID),
		zap.Int("keys", len(keys)),
		zap.String("display", view.Display),
		zap.String("request_id", requestID),
	)

	handlers.WriteJSON(w, http.StatusOK, KeysResponse{
		SessionID: sessionID,
		Keys:      results,
		View:      view,
	})
}

// ---------------------------------------------------------------------------
// Handlers: stateless
// ---------------------------------------------------------------------------

// Evaluate handles POST /calculator/evaluate: a one-shot evaluation of a
// complete expression that does not touch any session.
func (h *Handler) Evaluate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "calculator.evaluate",
		trace.WithAttributes(
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "evaluate", handlers.ErrorResponse{Error: "invalid request body"}, err, http.StatusBadRequest, w)
		return
	}

	span.SetAttributes(
		attribute.String("calculator.operand.left", req.Left),
		attribute.String("calculator.operator", req.Operator),
		attribute.String("calculator.operand.right", req.Right),
	)

	c, err := newEvaluationCalculator(h.speller, req.Left, req.Operator, req.Right)
	if err != nil {
		recordInputError(ctx, span, logger, "evaluate", err, nil, nil, w)
		return
	}

	start := time.Now()
	ev, err := c.Evaluate()
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0

	if err != nil {
		recordInputError(ctx, span, logger, "evaluate", err, nil, nil, w)
		return
	}

	actionDuration.Record(ctx, elapsed, metric.WithAttributes(attribute.String("action", "evaluate")))
	recordEvaluation(ctx, span, &ev)

	// Results past the Trillion scale are still returned, just without words.
	spelled, _ := c.Words()
	if spelled != "" {
		wordsCounter.Add(ctx, 1)
	}

	span.SetStatus(codes.Ok, "")

	logger.Info("calculator operation completed",
		zap.String("operation", ev.Op.Name()),
		zap.String("step", ev.Expr),
		zap.Float64("result", ev.Result),
		zap.String("request_id", requestID),
		zap.Float64("duration_ms", elapsed),
	)

	handlers.WriteJSON(w, http.StatusOK, EvaluateResponse{
		EvaluationResponse: *newEvaluationResponse(&ev),
		Words:              spelled,
	})
}

// Words handles GET /calculator/words?number=...
func (h *Handler) Words(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)

	ctx, span := tracer.Start(ctx, "calculator.words")
	defer span.End()

	number := r.URL.Query().Get("number")
	if number == "" {
		observability.RecordError(ctx, span, logger, errorCounter, "words", handlers.ErrorResponse{Error: "missing number query parameter"}, fmt.Errorf("number is empty"), http.StatusBadRequest, w)
		return
	}
	span.SetAttributes(attribute.String("calculator.number", number))

	spelled, err := h.speller.Spell(number)
	if errors.Is(err, words.ErrOutOfRange) {
		err = ErrNumberTooLarge
	}
	if err != nil {
		recordInputError(ctx, span, logger, "words", err, nil, nil, w)
		return
	}

	wordsCounter.Add(ctx, 1)
	span.SetStatus(codes.Ok, "")

	handlers.WriteJSON(w, http.StatusOK, WordsResponse{Number: number, Words: spelled})
}

// ---------------------------------------------------------------------------
// Shared reporting
// ---------------------------------------------------------------------------

// recordInputError reports err as 422 with its message and hint when it is a
// calculator *Error, and as 500 otherwise. view and index are optional.
func recordInputError(ctx context.Context, span trace.Span, logger *zap.Logger, opName string, err error, view *View, index *int, w http.ResponseWriter) {
	var ce *Error
	if !errors.As(err, &ce) {
		observability.RecordError(ctx, span, logger, errorCounter, opName, handlers.ErrorResponse{Error: "internal error"}, err, http.StatusInternalServerError, w)
		return
	}

	resp := handlers.ErrorResponse{
		Error:      ce.Message,
		Kind:       string(ce.Kind),
		Suggestion: ce.Suggestion,
		Index:      index,
	}
	if view != nil {
		resp.View = view
	}

	observability.RecordError(ctx, span, logger, errorCounter, opName, resp, err, http.StatusUnprocessableEntity, w)
}

// recordEvaluation records metrics and a span event for a completed
// operation. ev may be nil.
func recordEvaluation(ctx context.Context, span trace.Span, ev *Evaluation) {
	if ev == nil {
		return
	}

	attrs := metric.WithAttributes(attribute.String("operation", ev.Op.Name()))
	opsCounter.Add(ctx, 1, attrs)
	resultGauge.Record(ctx, ev.Result, attrs)

	span.AddEvent("computation.complete", trace.WithAttributes(
		attribute.String("step", ev.Expr),
		attribute.Float64("result", ev.Result),
		attribute.Bool("recorded", ev.Recorded),
	))
}
