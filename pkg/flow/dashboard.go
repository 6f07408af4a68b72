package flow

import (
	"context"
	"sync"

	"github.com/apex/log"
	"github.com/helmcode/agridetect/pkg/i18n"
	"github.com/helmcode/agridetect/pkg/model"
	"github.com/helmcode/agridetect/pkg/view"
)

type DashboardFlow struct {
	api     StatsSource
	catalog *i18n.Catalog

	// CropType narrows the common disease list. Stats are never filtered.
	CropType string
}

func NewDashboardFlow(api StatsSource, catalog *i18n.Catalog) *DashboardFlow {
	return &DashboardFlow{api: api, catalog: catalog}
}

// Load fetches the stats and the common disease list side by side. A failure
// in one only affects its own section.
func (f *DashboardFlow) Load(ctx context.Context) view.DashboardView {
	var (
		wg        sync.WaitGroup
		stats     *model.DashboardStats
		statsErr  error
		common    *model.CommonDiseasesResponse
		commonErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		stats, statsErr = f.api.DashboardStats(ctx)
	}()
	go func() {
		defer wg.Done()
		common, commonErr = f.api.CommonDiseases(ctx, f.CropType)
	}()
	wg.Wait()

	dash := view.NewDashboardView()

	if statsErr != nil {
		log.WithError(statsErr).Error("loading dashboard stats")
		dash.StatsFailed(f.catalog)
	} else {
		dash.ApplyStats(stats, f.catalog)
	}

	switch {
	case commonErr != nil:
		log.WithError(commonErr).Error("loading common diseases")
		dash.DiseasesFailed(f.catalog)
	case common == nil:
		dash.ApplyDiseases(nil, f.catalog)
	default:
		dash.ApplyDiseases(common.Diseases, f.catalog)
	}

	return dash
}
