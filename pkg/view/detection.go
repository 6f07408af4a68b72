package view

import (
	"fmt"

	"github.com/helmcode/agridetect/pkg/i18n"
	"github.com/helmcode/agridetect/pkg/model"
)

// Tier is the display style for a confidence value.
type Tier string

const (
	TierSuccess Tier = "success"
	TierWarning Tier = "warning"
	TierDanger  Tier = "danger"
)

const (
	successThreshold = 0.8
	warningThreshold = 0.6
)

// ConfidenceTier buckets a confidence in [0,1]. Boundaries belong to the
// higher tier.
func ConfidenceTier(confidence float64) Tier {
	switch {
	case confidence >= successThreshold:
		return TierSuccess
	case confidence >= warningThreshold:
		return TierWarning
	default:
		return TierDanger
	}
}

type TreatmentItem struct {
	Name         string `json:"name" yaml:"name"`
	Description  string `json:"description" yaml:"description"`
	Organic      bool   `json:"organic" yaml:"organic"`
	OrganicLabel string `json:"organic_label,omitempty" yaml:"organic_label,omitempty"`
}

// DetectionView is everything the results section shows. Exactly one of
// Treatments / TreatmentsPlaceholder is set, same for the prevention tips.
type DetectionView struct {
	DiseaseID             string          `json:"disease_id,omitempty" yaml:"disease_id,omitempty"`
	DiseaseName           string          `json:"disease_name" yaml:"disease_name"`
	Confidence            string          `json:"confidence" yaml:"confidence"`
	ConfidenceValue       float64         `json:"confidence_value" yaml:"confidence_value"`
	Tier                  Tier            `json:"tier" yaml:"tier"`
	Severity              string          `json:"severity" yaml:"severity"`
	AffectedCrop          string          `json:"affected_crop" yaml:"affected_crop"`
	Treatments            []TreatmentItem `json:"treatments,omitempty" yaml:"treatments,omitempty"`
	TreatmentsPlaceholder string          `json:"treatments_placeholder,omitempty" yaml:"treatments_placeholder,omitempty"`
	PreventionTips        []string        `json:"prevention_tips,omitempty" yaml:"prevention_tips,omitempty"`
	PreventionPlaceholder string          `json:"prevention_placeholder,omitempty" yaml:"prevention_placeholder,omitempty"`
	DetectedAt            string          `json:"detected_at,omitempty" yaml:"detected_at,omitempty"`
}

func NewDetectionView(r *model.DetectionResult, cat *i18n.Catalog) DetectionView {
	v := DetectionView{
		DiseaseID:       r.DiseaseID,
		DiseaseName:     orDefault(r.DiseaseName, cat.T(i18n.DiseaseUnknown)),
		Confidence:      FormatPercent(r.Confidence),
		ConfidenceValue: r.Confidence,
		Tier:            ConfidenceTier(r.Confidence),
		Severity:        orDefault(r.Severity, cat.T(i18n.SeverityUnknown)),
		AffectedCrop:    orDefault(r.AffectedCrop, cat.T(i18n.CropUnknown)),
		DetectedAt:      r.DetectionDate,
	}

	if len(r.Treatments) == 0 {
		v.TreatmentsPlaceholder = cat.T(i18n.NoTreatments)
	} else {
		v.Treatments = make([]TreatmentItem, 0, len(r.Treatments))
		for _, t := range r.Treatments {
			item := TreatmentItem{Name: t.Name, Description: t.Description, Organic: t.Organic}
			if t.Organic {
				item.OrganicLabel = cat.T(i18n.OrganicTreatment)
			}
			v.Treatments = append(v.Treatments, item)
		}
	}

	if len(r.PreventionTips) == 0 {
		v.PreventionPlaceholder = cat.T(i18n.NoPreventionTips)
	} else {
		v.PreventionTips = append([]string(nil), r.PreventionTips...)
	}

	return v
}

// FormatPercent renders a ratio with one decimal, e.g. 0.875 -> "87.5%".
func FormatPercent(ratio float64) string {
	return fmt.Sprintf("%.1f%%", ratio*100)
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
