package view

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/helmcode/agridetect/pkg/i18n"
	"github.com/helmcode/agridetect/pkg/model"
)

// TopDiseaseLimit is how many bars the chart shows.
const TopDiseaseLimit = 5

type StatsView struct {
	TotalDetections string `json:"total_detections" yaml:"total_detections"`
	ActiveUsers     string `json:"active_users" yaml:"active_users"`
	DiseaseTypes    string `json:"disease_types" yaml:"disease_types"`
	SuccessRate     string `json:"success_rate" yaml:"success_rate"`
}

// FallbackStats is shown when the stats request fails.
func FallbackStats() StatsView {
	return StatsView{
		TotalDetections: "0",
		ActiveUsers:     "0",
		DiseaseTypes:    "0",
		SuccessRate:     "0%",
	}
}

func NewStatsView(s *model.DashboardStats) StatsView {
	v := FallbackStats()
	if s == nil {
		return v
	}
	v.TotalDetections = strconv.Itoa(s.TotalDetections)
	v.ActiveUsers = strconv.Itoa(s.ActiveUsers)
	v.DiseaseTypes = strconv.Itoa(len(s.DiseasesDetected))
	if s.SuccessRate != nil {
		v.SuccessRate = FormatPercent(*s.SuccessRate)
	}
	return v
}

type Bar struct {
	Name    string  `json:"name" yaml:"name"`
	Count   int     `json:"count" yaml:"count"`
	Percent float64 `json:"percent" yaml:"percent"`
	Label   string  `json:"label" yaml:"label"`
}

// ChartView holds either bars or a placeholder message.
type ChartView struct {
	Bars        []Bar  `json:"bars,omitempty" yaml:"bars,omitempty"`
	Placeholder string `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
}

// TopDiseases returns up to limit bars sorted by count descending, names
// ascending on ties. Widths are relative to the largest count.
func TopDiseases(counts map[string]int, limit int, cat *i18n.Catalog) []Bar {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		ci, cj := counts[names[i]], counts[names[j]]
		if ci != cj {
			return ci > cj
		}
		return names[i] < names[j]
	})
	if len(names) > limit {
		names = names[:limit]
	}

	maxCount := 0
	if len(names) > 0 {
		maxCount = counts[names[0]]
	}

	bars := make([]Bar, 0, len(names))
	for _, name := range names {
		count := counts[name]
		var pct float64
		if maxCount > 0 {
			pct = float64(count) / float64(maxCount) * 100
		}
		bars = append(bars, Bar{
			Name:    name,
			Count:   count,
			Percent: pct,
			Label:   fmt.Sprintf("%d %s", count, cat.T(i18n.DetectionsSuffix)),
		})
	}
	return bars
}

func NewChartView(counts map[string]int, cat *i18n.Catalog) ChartView {
	if len(counts) == 0 {
		return ChartView{Placeholder: cat.T(i18n.NoData)}
	}
	return ChartView{Bars: TopDiseases(counts, TopDiseaseLimit, cat)}
}

type CommonDiseaseItem struct {
	Name      string `json:"name" yaml:"name"`
	Crop      string `json:"crop" yaml:"crop"`
	Season    string `json:"season" yaml:"season"`
	Frequency string `json:"frequency" yaml:"frequency"`
}

type DiseaseListView struct {
	Items       []CommonDiseaseItem `json:"items,omitempty" yaml:"items,omitempty"`
	Placeholder string              `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
}

func NewDiseaseListView(diseases []model.CommonDisease, cat *i18n.Catalog) DiseaseListView {
	if len(diseases) == 0 {
		return DiseaseListView{Placeholder: cat.T(i18n.NoDiseases)}
	}

	items := make([]CommonDiseaseItem, 0, len(diseases))
	for _, d := range diseases {
		crop := d.Crop
		if crop == "" {
			crop = strings.Join(d.CropsAffected, ", ")
		}
		items = append(items, CommonDiseaseItem{
			Name:      d.Name,
			Crop:      orDefault(crop, cat.T(i18n.AllCrops)),
			Season:    orDefault(d.Season, cat.T(i18n.AllSeasons)),
			Frequency: orDefault(d.Frequency, cat.T(i18n.FrequencyRare)),
		})
	}
	return DiseaseListView{Items: items}
}

// DashboardView is the whole dashboard page. Stats and Chart come from one
// request, Diseases from another; each side fails on its own.
type DashboardView struct {
	Stats    StatsView       `json:"stats" yaml:"stats"`
	Chart    ChartView       `json:"chart" yaml:"chart"`
	Diseases DiseaseListView `json:"diseases" yaml:"diseases"`
}

func NewDashboardView() DashboardView {
	return DashboardView{Stats: FallbackStats()}
}

func (d *DashboardView) ApplyStats(s *model.DashboardStats, cat *i18n.Catalog) {
	d.Stats = NewStatsView(s)
	if s == nil {
		d.Chart = NewChartView(nil, cat)
		return
	}
	d.Chart = NewChartView(s.DiseasesDetected, cat)
}

func (d *DashboardView) StatsFailed(cat *i18n.Catalog) {
	d.Stats = FallbackStats()
	d.Chart = ChartView{Placeholder: cat.T(i18n.LoadFailed)}
}

func (d *DashboardView) ApplyDiseases(diseases []model.CommonDisease, cat *i18n.Catalog) {
	d.Diseases = NewDiseaseListView(diseases, cat)
}

func (d *DashboardView) DiseasesFailed(cat *i18n.Catalog) {
	d.Diseases = DiseaseListView{Placeholder: cat.T(i18n.LoadFailed)}
}
