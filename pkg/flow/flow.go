// Package flow drives the user-facing sequences: collect input, make one API
// call, and map the result or a localized error onto view state. Errors from
// the API are logged and never returned to the caller.
package flow

import (
	"context"

	"github.com/helmcode/agridetect/pkg/model"
)

type Detector interface {
	DetectDisease(ctx context.Context, upload model.ImageUpload) (*model.DetectionResult, error)
}

type ChatSender interface {
	Chat(ctx context.Context, req model.ChatRequest) (*model.ChatResponse, error)
}

type StatsSource interface {
	DashboardStats(ctx context.Context) (*model.DashboardStats, error)
	CommonDiseases(ctx context.Context, cropType string) (*model.CommonDiseasesResponse, error)
}
