package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/helmcode/agridetect/pkg/model"
)

func decode(raw []byte, v interface{}) error {
	if len(bytes.TrimSpace(raw)) == 0 {
		return fmt.Errorf("empty response body")
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// ParseDetectionResponse decodes a detect-disease body. Missing lists come back
// as empty slices.
func ParseDetectionResponse(raw []byte) (*model.DetectionResult, error) {
	var result model.DetectionResult
	if err := decode(raw, &result); err != nil {
		return nil, err
	}
	if result.Treatments == nil {
		result.Treatments = []model.Treatment{}
	}
	result.PreventionTips = compact(result.PreventionTips)
	return &result, nil
}

// ParseChatResponse decodes a chat body and drops blank suggestions.
func ParseChatResponse(raw []byte) (*model.ChatResponse, error) {
	var resp model.ChatResponse
	if err := decode(raw, &resp); err != nil {
		return nil, err
	}
	resp.Suggestions = compact(resp.Suggestions)
	return &resp, nil
}

func ParseDashboardResponse(raw []byte) (*model.DashboardStats, error) {
	var stats model.DashboardStats
	if err := decode(raw, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func ParseCommonDiseasesResponse(raw []byte) (*model.CommonDiseasesResponse, error) {
	var resp model.CommonDiseasesResponse
	if err := decode(raw, &resp); err != nil {
		return nil, err
	}
	if resp.Diseases == nil {
		resp.Diseases = []model.CommonDisease{}
	}
	return &resp, nil
}

func ParseTreatmentsResponse(raw []byte) (*model.TreatmentsResponse, error) {
	var resp model.TreatmentsResponse
	if err := decode(raw, &resp); err != nil {
		return nil, err
	}
	if resp.Treatments == nil {
		resp.Treatments = []model.TreatmentDetail{}
	}
	return &resp, nil
}

func ParseHealthResponse(raw []byte) (*model.Health, error) {
	var h model.Health
	if err := decode(raw, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

func ParseFeedbackResponse(raw []byte) (*model.FeedbackResponse, error) {
	var resp model.FeedbackResponse
	if err := decode(raw, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// compact trims each entry and removes the empty ones, keeping order.
func compact(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := strings.TrimSpace(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}
