package model

import (
	"bytes"
	"encoding/json"
	"io"
)

// DetectionResult is the body returned by POST /detect-disease. Dates are kept
// as the server sends them since it does not always include a zone offset.
type DetectionResult struct {
	DiseaseID      string      `json:"disease_id,omitempty" yaml:"disease_id,omitempty"`
	DiseaseName    string      `json:"disease_name,omitempty" yaml:"disease_name,omitempty"`
	Confidence     float64     `json:"confidence" yaml:"confidence"`
	Severity       string      `json:"severity,omitempty" yaml:"severity,omitempty"`
	AffectedCrop   string      `json:"affected_crop,omitempty" yaml:"affected_crop,omitempty"`
	Treatments     []Treatment `json:"treatments" yaml:"treatments"`
	PreventionTips []string    `json:"prevention_tips" yaml:"prevention_tips"`
	DetectionDate  string      `json:"detection_date,omitempty" yaml:"detection_date,omitempty"`
}

// ImageUpload is a leaf photo to send for detection. MediaType may be left
// empty to guess it from the file name.
type ImageUpload struct {
	Filename  string
	MediaType string
	Body      io.Reader
	CropType  string
}

type Treatment struct {
	TreatmentID string `json:"treatment_id,omitempty" yaml:"treatment_id,omitempty"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Organic     bool   `json:"organic" yaml:"organic"`
}

// TreatmentDetail is one entry of GET /treatments/{disease_id}.
type TreatmentDetail struct {
	TreatmentID       string   `json:"treatment_id" yaml:"treatment_id"`
	Name              string   `json:"name" yaml:"name"`
	Description       string   `json:"description" yaml:"description"`
	ApplicationMethod string   `json:"application_method,omitempty" yaml:"application_method,omitempty"`
	Frequency         string   `json:"frequency,omitempty" yaml:"frequency,omitempty"`
	Precautions       []string `json:"precautions,omitempty" yaml:"precautions,omitempty"`
	Organic           bool     `json:"organic" yaml:"organic"`
	CostEstimate      string   `json:"cost_estimate,omitempty" yaml:"cost_estimate,omitempty"`
}

type TreatmentsResponse struct {
	DiseaseID  string            `json:"disease_id" yaml:"disease_id"`
	Treatments []TreatmentDetail `json:"treatments" yaml:"treatments"`
}

type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
}

type ChatResponse struct {
	Response    string   `json:"response" yaml:"response"`
	Suggestions []string `json:"suggestions,omitempty" yaml:"suggestions,omitempty"`
	Language    string   `json:"language,omitempty" yaml:"language,omitempty"`
}

// DiseaseCounts maps a disease name to the number of detections. A JSON value
// that is not an object decodes to a nil map so the rest of the stats survive.
type DiseaseCounts map[string]int

func (d *DiseaseCounts) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		*d = nil
		return nil
	}
	var raw map[string]float64
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		*d = nil
		return nil
	}
	counts := make(DiseaseCounts, len(raw))
	for name, n := range raw {
		counts[name] = int(n)
	}
	*d = counts
	return nil
}

type DashboardStats struct {
	TotalDetections  int           `json:"total_detections" yaml:"total_detections"`
	ActiveUsers      int           `json:"active_users" yaml:"active_users"`
	DiseasesDetected DiseaseCounts `json:"diseases_detected" yaml:"diseases_detected"`
	SuccessRate      *float64      `json:"success_rate,omitempty" yaml:"success_rate,omitempty"`
}

type CommonDisease struct {
	ID            string   `json:"id,omitempty" yaml:"id,omitempty"`
	Name          string   `json:"name" yaml:"name"`
	Crop          string   `json:"crop,omitempty" yaml:"crop,omitempty"`
	CropsAffected []string `json:"crops_affected,omitempty" yaml:"crops_affected,omitempty"`
	Season        string   `json:"season,omitempty" yaml:"season,omitempty"`
	Frequency     string   `json:"frequency,omitempty" yaml:"frequency,omitempty"`
	Severity      string   `json:"severity,omitempty" yaml:"severity,omitempty"`
}

type CommonDiseasesResponse struct {
	Diseases []CommonDisease `json:"diseases" yaml:"diseases"`
	Total    int             `json:"total,omitempty" yaml:"total,omitempty"`
}

type Health struct {
	Status    string `json:"status" yaml:"status"`
	Version   string `json:"version,omitempty" yaml:"version,omitempty"`
	Timestamp string `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
}

// FeedbackRequest reports whether a detection was right. ActualDisease is only
// meaningful when Correct is false.
type FeedbackRequest struct {
	DetectionID   string `json:"detection_id" yaml:"detection_id"`
	Correct       bool   `json:"correct" yaml:"correct"`
	ActualDisease string `json:"actual_disease,omitempty" yaml:"actual_disease,omitempty"`
}

type FeedbackResponse struct {
	Status     string `json:"status" yaml:"status"`
	Message    string `json:"message,omitempty" yaml:"message,omitempty"`
	FeedbackID string `json:"feedback_id,omitempty" yaml:"feedback_id,omitempty"`
}
