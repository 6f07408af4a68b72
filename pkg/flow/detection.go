package flow

import (
	"bytes"
	"context"

	"github.com/apex/log"
	"github.com/helmcode/agridetect/pkg/i18n"
	"github.com/helmcode/agridetect/pkg/model"
	"github.com/helmcode/agridetect/pkg/view"
)

type DetectionFlow struct {
	api      Detector
	catalog  *i18n.Catalog
	CropType string
	State    *view.UploadState
}

func NewDetectionFlow(api Detector, catalog *i18n.Catalog) *DetectionFlow {
	return &DetectionFlow{
		api:     api,
		catalog: catalog,
		State:   view.NewUploadState(),
	}
}

// Analyze uploads the current selection and leaves either a result or a
// localized error in State. It reports whether a result was produced.
func (f *DetectionFlow) Analyze(ctx context.Context) bool {
	file := f.State.Selection
	if file == nil {
		f.State.Fail(f.catalog.T(i18n.SelectImage))
		return false
	}

	f.State.BeginAnalysis()

	result, err := f.api.DetectDisease(ctx, model.ImageUpload{
		Filename:  file.Name,
		MediaType: file.MediaType,
		Body:      bytes.NewReader(file.Data),
		CropType:  f.CropType,
	})
	if err != nil {
		log.WithError(err).WithField("file", file.Name).Error("disease detection failed")
		f.State.Fail(f.catalog.T(i18n.AnalysisFailed))
		return false
	}

	f.State.Succeed(view.NewDetectionView(result, f.catalog))
	return true
}
