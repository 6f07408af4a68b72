package flow

import (
	"context"
	"errors"

	"github.com/helmcode/agridetect/pkg/api"
	"github.com/helmcode/agridetect/pkg/model"
)

var errUnreachable = errors.New("dial tcp 127.0.0.1:8000: connect: connection refused")

type detectorMock struct {
	DetectFunc func(ctx context.Context, upload model.ImageUpload) (*model.DetectionResult, error)
}

func (m *detectorMock) DetectDisease(ctx context.Context, upload model.ImageUpload) (*model.DetectionResult, error) {
	return m.DetectFunc(ctx, upload)
}

type chatMock struct {
	ChatFunc func(ctx context.Context, req model.ChatRequest) (*model.ChatResponse, error)
}

func (m *chatMock) Chat(ctx context.Context, req model.ChatRequest) (*model.ChatResponse, error) {
	return m.ChatFunc(ctx, req)
}

type statsMock struct {
	StatsFunc  func(ctx context.Context) (*model.DashboardStats, error)
	CommonFunc func(ctx context.Context, cropType string) (*model.CommonDiseasesResponse, error)
}

func (m *statsMock) DashboardStats(ctx context.Context) (*model.DashboardStats, error) {
	return m.StatsFunc(ctx)
}

func (m *statsMock) CommonDiseases(ctx context.Context, cropType string) (*model.CommonDiseasesResponse, error) {
	return m.CommonFunc(ctx, cropType)
}

func statusErr(code int) error {
	return &api.StatusError{StatusCode: code}
}
