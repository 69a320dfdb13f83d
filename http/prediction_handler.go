package http

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"loan-predictor/domain"
	"loan-predictor/service"
)

const (
	unavailableText     = "Model not loaded!"
	tooManyRequestsText = "Error: too many requests"
)

var fieldLabels = map[string]string{
	domain.FieldGender:            "Gender",
	domain.FieldMarried:           "Married",
	domain.FieldDependents:        "Dependents",
	domain.FieldEducation:         "Education",
	domain.FieldSelfEmployed:      "Self Employed",
	domain.FieldApplicantIncome:   "Applicant Income",
	domain.FieldCoapplicantIncome: "Coapplicant Income",
	domain.FieldLoanAmount:        "Loan Amount",
	domain.FieldLoanAmountTerm:    "Loan Amount Term",
	domain.FieldCreditHistory:     "Credit History",
	domain.FieldPropertyArea:      "Property Area",
}

type formField struct {
	Name    string
	Label   string
	Value   string
	Options []string
}

type pageData struct {
	Fields         []formField
	PredictionText string
	Time           int64
}

type PredictionHandler struct {
	service *service.PredictionService
	now     func() time.Time
}

func NewPredictionHandler(service *service.PredictionService) *PredictionHandler {
	return &PredictionHandler{service: service, now: time.Now}
}

// Home renders the empty form.
func (h *PredictionHandler) Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	h.render(w, http.StatusOK, nil, "")
}

// Predict always answers with the rendered page; failures end up in the
// result text, never as an error status.
func (h *PredictionHandler) Predict(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseForm(); err != nil {
		slog.Warn("invalid form submission", "error", err)
		h.render(w, http.StatusOK, nil, "Error: invalid form submission")
		return
	}

	fields := make(map[string]string, len(r.PostForm))
	for name, values := range r.PostForm {
		if len(values) > 0 {
			fields[name] = values[0]
		}
	}

	result, err := h.service.Predict(r.Context(), fields)
	if err != nil {
		logPredictionError(err)
	}

	h.render(w, http.StatusOK, fields, predictionText(result, err))
}

// TooManyRequests renders the page for a throttled submission.
func (h *PredictionHandler) TooManyRequests(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusTooManyRequests, nil, tooManyRequestsText)
}

// predictionText is the single place where outcomes become user-facing text.
func predictionText(result domain.PredictionResult, err error) string {
	if errors.Is(err, domain.ErrModelUnavailable) {
		return unavailableText
	}
	if err != nil {
		return "Error: " + err.Error()
	}

	status := "Not Approved"
	if result.Approved {
		status = "Approved"
	}
	return fmt.Sprintf("Loan Status: %s (Approval Probability: %.2f)", status, result.Probability)
}

func logPredictionError(err error) {
	var infErr *domain.InferenceError
	switch {
	case errors.Is(err, domain.ErrModelUnavailable):
		slog.Debug("prediction requested without a loaded model")
	case errors.As(err, &infErr):
		slog.Error("inference failed", "error", err)
	default:
		slog.Info("rejected prediction input", "error", err)
	}
}

func (h *PredictionHandler) render(w http.ResponseWriter, code int, values map[string]string, text string) {
	data := pageData{
		Fields:         make([]formField, 0, len(domain.FeatureOrder)),
		PredictionText: text,
		Time:           h.now().Unix(),
	}
	for _, name := range domain.FeatureOrder {
		data.Fields = append(data.Fields, formField{
			Name:    name,
			Label:   fieldLabels[name],
			Value:   values[name],
			Options: service.Categories(name),
		})
	}

	// Renderizar primero en buffer para no escribir headers si falla
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		slog.Error("error rendering page", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(code)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("error writing response", "error", err)
	}
}
