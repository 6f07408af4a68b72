package i18n

import (
	"golang.org/x/text/language"
)

// Key identifies a user-facing string.
type Key string

const (
	DiseaseUnknown      Key = "disease_unknown"
	SeverityUnknown     Key = "severity_unknown"
	CropUnknown         Key = "crop_unknown"
	NoTreatments        Key = "no_treatments"
	NoPreventionTips    Key = "no_prevention_tips"
	OrganicTreatment    Key = "organic_treatment"
	SelectImage         Key = "select_image"
	AnalysisFailed      Key = "analysis_failed"
	ChatFailed          Key = "chat_failed"
	NoData              Key = "no_data"
	NoDiseases          Key = "no_diseases"
	LoadFailed          Key = "load_failed"
	AllCrops            Key = "all_crops"
	AllSeasons          Key = "all_seasons"
	FrequencyRare       Key = "frequency_rare"
	DetectionsSuffix    Key = "detections_suffix"
	TotalDetections     Key = "total_detections"
	ActiveUsers         Key = "active_users"
	DiseaseTypes        Key = "disease_types"
	SuccessRate         Key = "success_rate"
	TopDiseases         Key = "top_diseases"
	CommonDiseases      Key = "common_diseases"
	NotAnImage          Key = "not_an_image"
	TreatmentsHeading   Key = "treatments_heading"
	PreventionHeading   Key = "prevention_heading"
	ConfidenceHeading   Key = "confidence_heading"
	SeverityHeading     Key = "severity_heading"
	AffectedCropHeading Key = "affected_crop_heading"
	SuggestionsHeading  Key = "suggestions_heading"
)

var english = map[Key]string{
	DiseaseUnknown:      "Unidentified",
	SeverityUnknown:     "Undetermined",
	CropUnknown:         "Not specified",
	NoTreatments:        "No specific treatment available.",
	NoPreventionTips:    "No prevention advice available.",
	OrganicTreatment:    "Organic treatment",
	SelectImage:         "Please select an image",
	AnalysisFailed:      "Error while analyzing the image. Please try again.",
	ChatFailed:          "Sorry, an error occurred. Please try again.",
	NoData:              "No data available",
	NoDiseases:          "No diseases available",
	LoadFailed:          "Failed to load data",
	AllCrops:            "All crops",
	AllSeasons:          "All season",
	FrequencyRare:       "Rare",
	DetectionsSuffix:    "detections",
	TotalDetections:     "Total detections",
	ActiveUsers:         "Active users",
	DiseaseTypes:        "Disease types",
	SuccessRate:         "Success rate",
	TopDiseases:         "Top diseases",
	CommonDiseases:      "Common diseases",
	NotAnImage:          "File is not an image",
	TreatmentsHeading:   "Treatments",
	PreventionHeading:   "Prevention",
	ConfidenceHeading:   "Confidence",
	SeverityHeading:     "Severity",
	AffectedCropHeading: "Affected crop",
	SuggestionsHeading:  "Suggestions",
}

var french = map[Key]string{
	DiseaseUnknown:      "Non identifiée",
	SeverityUnknown:     "Non déterminée",
	CropUnknown:         "Non spécifié",
	NoTreatments:        "Aucun traitement spécifique disponible.",
	NoPreventionTips:    "Aucun conseil de prévention disponible.",
	OrganicTreatment:    "Traitement biologique",
	SelectImage:         "Veuillez sélectionner une image",
	AnalysisFailed:      "Erreur lors de l'analyse de l'image. Veuillez réessayer.",
	ChatFailed:          "Désolé, une erreur s'est produite. Veuillez réessayer.",
	NoData:              "Aucune donnée disponible",
	NoDiseases:          "Aucune maladie disponible",
	LoadFailed:          "Erreur de chargement des données",
	AllCrops:            "Toutes cultures",
	AllSeasons:          "Toute saison",
	FrequencyRare:       "Rare",
	DetectionsSuffix:    "détections",
	TotalDetections:     "Détections totales",
	ActiveUsers:         "Utilisateurs actifs",
	DiseaseTypes:        "Types de maladies",
	SuccessRate:         "Taux de réussite",
	TopDiseases:         "Maladies les plus fréquentes",
	CommonDiseases:      "Maladies courantes",
	NotAnImage:          "Le fichier n'est pas une image",
	TreatmentsHeading:   "Traitements",
	PreventionHeading:   "Prévention",
	ConfidenceHeading:   "Confiance",
	SeverityHeading:     "Sévérité",
	AffectedCropHeading: "Culture affectée",
	SuggestionsHeading:  "Suggestions",
}

var supported = []language.Tag{language.English, language.French}

var matcher = language.NewMatcher(supported)

// Catalog resolves keys to strings for one locale.
type Catalog struct {
	tag      language.Tag
	messages map[Key]string
}

// New returns the catalog that best matches locale. Unknown or malformed
// locales get English.
func New(locale string) *Catalog {
	_, idx := language.MatchStrings(matcher, locale)
	if supported[idx] == language.French {
		return &Catalog{tag: language.French, messages: french}
	}
	return &Catalog{tag: language.English, messages: english}
}

// Default is the English catalog.
func Default() *Catalog {
	return New("en")
}

func (c *Catalog) Tag() language.Tag {
	return c.tag
}

// T returns the string for key, or the key itself when it is missing.
func (c *Catalog) T(key Key) string {
	if s, ok := c.messages[key]; ok {
		return s
	}
	if s, ok := english[key]; ok {
		return s
	}
	return string(key)
}
