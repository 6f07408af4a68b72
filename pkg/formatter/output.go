package formatter

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/helmcode/agridetect/pkg/i18n"
	"github.com/helmcode/agridetect/pkg/model"
	"github.com/helmcode/agridetect/pkg/view"
	"gopkg.in/yaml.v3"
)

const (
	FormatHuman = "human"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

const (
	lineWidth = 80
	barWidth  = 40
)

// ValidFormat reports whether format is one of human, json or yaml.
func ValidFormat(format string) bool {
	switch format {
	case FormatHuman, FormatJSON, FormatYAML:
		return true
	}
	return false
}

func display(w io.Writer, v interface{}, format string, human func()) error {
	switch format {
	case FormatJSON:
		return displayJSON(w, v)
	case FormatYAML:
		return displayYAML(w, v)
	case FormatHuman:
		fallthrough
	default:
		human()
	}
	return nil
}

func displayJSON(w io.Writer, v interface{}) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(w, string(output))
	return nil
}

func displayYAML(w io.Writer, v interface{}) error {
	output, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	fmt.Fprint(w, string(output))
	return nil
}

// DisplayDetection prints a detection result.
func DisplayDetection(w io.Writer, v *view.DetectionView, cat *i18n.Catalog, format string) error {
	return display(w, v, format, func() { detectionHuman(w, v, cat) })
}

func detectionHuman(w io.Writer, v *view.DetectionView, cat *i18n.Catalog) {
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen, color.Bold)
	cyan := color.New(color.FgCyan, color.Bold)

	fmt.Fprintln(w)
	bold.Fprintf(w, "🌿 %s\n", v.DiseaseName)
	fmt.Fprintf(w, "   %s: %s\n", cat.T(i18n.ConfidenceHeading), TierColor(v.Tier).Sprint(v.Confidence))
	fmt.Fprintf(w, "   %s: %s\n", cat.T(i18n.SeverityHeading), v.Severity)
	fmt.Fprintf(w, "   %s: %s\n\n", cat.T(i18n.AffectedCropHeading), v.AffectedCrop)

	green.Fprintf(w, "💊 %s:\n", strings.ToUpper(cat.T(i18n.TreatmentsHeading)))
	if v.TreatmentsPlaceholder != "" {
		fmt.Fprintf(w, "   %s\n", v.TreatmentsPlaceholder)
	}
	for i, t := range v.Treatments {
		fmt.Fprintf(w, "   %d. %s\n", i+1, t.Name)
		if t.Description != "" {
			fmt.Fprintln(w, wrapText(t.Description, lineWidth, "      "))
		}
		if t.OrganicLabel != "" {
			fmt.Fprintf(w, "      %s\n", color.GreenString("✓ "+t.OrganicLabel))
		}
	}
	fmt.Fprintln(w)

	cyan.Fprintf(w, "🛡️  %s:\n", strings.ToUpper(cat.T(i18n.PreventionHeading)))
	if v.PreventionPlaceholder != "" {
		fmt.Fprintf(w, "   • %s\n", v.PreventionPlaceholder)
	}
	for _, tip := range v.PreventionTips {
		fmt.Fprintf(w, "   • %s\n", tip)
	}
	fmt.Fprintln(w)
}

// TierColor maps a confidence tier to its terminal color.
func TierColor(tier view.Tier) *color.Color {
	switch tier {
	case view.TierSuccess:
		return color.New(color.FgGreen, color.Bold)
	case view.TierWarning:
		return color.New(color.FgYellow, color.Bold)
	case view.TierDanger:
		return color.New(color.FgRed, color.Bold)
	default:
		return color.New(color.FgWhite)
	}
}

// DisplayChatEntry prints one transcript line.
func DisplayChatEntry(w io.Writer, e view.ChatEntry) {
	avatar := "👤"
	c := color.New(color.FgWhite)
	if e.Sender == view.SenderBot {
		avatar = "🤖"
		c = color.New(color.FgGreen)
	}
	fmt.Fprintf(w, "%s %s %s\n", avatar, c.Sprint(e.Text), color.HiBlackString(e.Clock()))
}

// DisplaySuggestions prints the numbered suggestion shortcuts.
func DisplaySuggestions(w io.Writer, suggestions []string, cat *i18n.Catalog) {
	if len(suggestions) == 0 {
		return
	}
	color.New(color.FgCyan).Fprintf(w, "💡 %s:\n", cat.T(i18n.SuggestionsHeading))
	for i, s := range suggestions {
		fmt.Fprintf(w, "   /%d %s\n", i+1, s)
	}
}

// DisplayTranscript prints the whole transcript in the requested format.
func DisplayTranscript(w io.Writer, t *view.Transcript, cat *i18n.Catalog, format string) error {
	payload := struct {
		Entries     []view.ChatEntry `json:"entries" yaml:"entries"`
		Suggestions []string         `json:"suggestions,omitempty" yaml:"suggestions,omitempty"`
	}{t.Entries(), t.Suggestions()}

	return display(w, payload, format, func() {
		for _, e := range payload.Entries {
			DisplayChatEntry(w, e)
		}
		DisplaySuggestions(w, payload.Suggestions, cat)
	})
}

// DisplayDashboard prints the stats, the top diseases chart and the common
// disease list.
func DisplayDashboard(w io.Writer, d *view.DashboardView, cat *i18n.Catalog, format string) error {
	return display(w, d, format, func() { dashboardHuman(w, d, cat) })
}

func dashboardHuman(w io.Writer, d *view.DashboardView, cat *i18n.Catalog) {
	cyan := color.New(color.FgCyan, color.Bold)
	yellow := color.New(color.FgYellow, color.Bold)
	green := color.New(color.FgGreen, color.Bold)

	fmt.Fprintln(w)
	cyan.Fprintln(w, "📊 AgriDetect")
	fmt.Fprintf(w, "   %-22s %s\n", cat.T(i18n.TotalDetections)+":", d.Stats.TotalDetections)
	fmt.Fprintf(w, "   %-22s %s\n", cat.T(i18n.ActiveUsers)+":", d.Stats.ActiveUsers)
	fmt.Fprintf(w, "   %-22s %s\n", cat.T(i18n.DiseaseTypes)+":", d.Stats.DiseaseTypes)
	fmt.Fprintf(w, "   %-22s %s\n\n", cat.T(i18n.SuccessRate)+":", d.Stats.SuccessRate)

	yellow.Fprintf(w, "🔥 %s:\n", strings.ToUpper(cat.T(i18n.TopDiseases)))
	if d.Chart.Placeholder != "" {
		fmt.Fprintf(w, "   %s\n", color.HiBlackString(d.Chart.Placeholder))
	}
	for _, bar := range d.Chart.Bars {
		fmt.Fprintf(w, "   %-20s %s\n", bar.Name, color.HiBlackString(bar.Label))
		fmt.Fprintf(w, "   %s\n", RenderBar(bar.Percent, barWidth))
	}
	fmt.Fprintln(w)

	green.Fprintf(w, "🌾 %s:\n", strings.ToUpper(cat.T(i18n.CommonDiseases)))
	if d.Diseases.Placeholder != "" {
		fmt.Fprintf(w, "   %s\n", color.HiBlackString(d.Diseases.Placeholder))
	}
	for _, item := range d.Diseases.Items {
		fmt.Fprintf(w, "   %-20s %s\n", item.Name, item.Frequency)
		fmt.Fprintf(w, "   %s\n", color.HiBlackString(item.Crop+" - "+item.Season))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, strings.Repeat("─", lineWidth))
	fmt.Fprintf(w, "💡 %s\n", color.HiBlackString("Run with -o json or -o yaml for machine-readable output"))
}

// RenderBar draws a horizontal bar of width cells filled to percent.
func RenderBar(percent float64, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := int(percent/100*float64(width) + 0.5)
	return color.GreenString(strings.Repeat("█", filled)) + strings.Repeat("░", width-filled)
}

// DisplayTreatments prints the treatment catalogue for a disease.
func DisplayTreatments(w io.Writer, resp *model.TreatmentsResponse, cat *i18n.Catalog, format string) error {
	return display(w, resp, format, func() {
		green := color.New(color.FgGreen, color.Bold)
		fmt.Fprintln(w)
		green.Fprintf(w, "💊 %s: %s\n", strings.ToUpper(cat.T(i18n.TreatmentsHeading)), resp.DiseaseID)
		if len(resp.Treatments) == 0 {
			fmt.Fprintf(w, "   %s\n\n", cat.T(i18n.NoTreatments))
			return
		}
		for i, t := range resp.Treatments {
			fmt.Fprintf(w, "   %d. %s\n", i+1, t.Name)
			if t.Description != "" {
				fmt.Fprintln(w, wrapText(t.Description, lineWidth, "      "))
			}
			if t.ApplicationMethod != "" {
				fmt.Fprintf(w, "      Method: %s\n", t.ApplicationMethod)
			}
			if t.Frequency != "" {
				fmt.Fprintf(w, "      Frequency: %s\n", t.Frequency)
			}
			if t.CostEstimate != "" {
				fmt.Fprintf(w, "      Cost: %s\n", t.CostEstimate)
			}
			for _, p := range t.Precautions {
				fmt.Fprintf(w, "      %s %s\n", color.YellowString("⚠"), p)
			}
			if t.Organic {
				fmt.Fprintf(w, "      %s\n", color.GreenString("✓ "+cat.T(i18n.OrganicTreatment)))
			}
			fmt.Fprintln(w)
		}
	})
}

// DisplayHealth prints the API health report.
func DisplayHealth(w io.Writer, h *model.Health, baseURL, format string) error {
	return display(w, h, format, func() {
		c := color.New(color.FgGreen)
		if h.Status != "healthy" {
			c = color.New(color.FgRed)
		}
		c.Fprintf(w, "● %s %s\n", baseURL, h.Status)
		if h.Version != "" {
			fmt.Fprintf(w, "  version %s\n", h.Version)
		}
	})
}

func DisplayFeedback(w io.Writer, resp *model.FeedbackResponse, format string) error {
	return display(w, resp, format, func() {
		c := color.New(color.FgGreen)
		if resp.Status != "success" {
			c = color.New(color.FgRed)
		}
		msg := resp.Message
		if msg == "" {
			msg = resp.Status
		}
		c.Fprintf(w, "✓ %s\n", msg)
		if resp.FeedbackID != "" {
			fmt.Fprintf(w, "  feedback id %s\n", resp.FeedbackID)
		}
	})
}

func wrapText(text string, width int, indent string) string {
	var result strings.Builder
	lines := strings.Split(text, "\n")

	for _, line := range lines {
		words := strings.Fields(line)
		if len(words) == 0 {
			result.WriteString("\n")
			continue
		}

		currentLine := indent
		for _, word := range words {
			if len(currentLine)+len(word)+1 > width {
				result.WriteString(currentLine + "\n")
				currentLine = indent + word
			} else if currentLine == indent {
				currentLine += word
			} else {
				currentLine += " " + word
			}
		}

		if currentLine != indent {
			result.WriteString(currentLine + "\n")
		}
	}

	return strings.TrimSuffix(result.String(), "\n")
}
