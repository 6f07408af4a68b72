package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/gin-gonic/gin"
	"github.com/helmcode/agridetect/pkg/flow"
	"github.com/helmcode/agridetect/pkg/i18n"
	"github.com/helmcode/agridetect/pkg/mockapi"
	"github.com/helmcode/agridetect/pkg/view"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func setUpServer(t *testing.T, format string) {
	gin.SetMode(gin.TestMode)
	color.NoColor = true

	srv := httptest.NewServer(mockapi.NewServer().Router())
	t.Cleanup(srv.Close)

	t.Setenv("AGRIDETECT_REPLY_DELAY", "0s")
	t.Setenv("AGRIDETECT_LOCALE", "en")
	envFile = ""
	apiURL = srv.URL
	locale = ""
	outputFormat = format
	verbose = false
	SetupLogging()
}

func execute(t *testing.T, c *cobra.Command, args ...string) (string, error) {
	var buf bytes.Buffer
	c.SetOut(&buf)
	c.SetErr(&bytes.Buffer{})
	c.SetArgs(args)
	err := c.ExecuteContext(context.Background())
	return buf.String(), err
}

func TestDashboardCmd_JSON(t *testing.T) {
	setUpServer(t, "json")

	out, err := execute(t, NewDashboardCmd())
	require.NoError(t, err)

	var dash view.DashboardView
	require.NoError(t, json.Unmarshal([]byte(out), &dash))
	assert.Equal(t, "1543", dash.Stats.TotalDetections)
	assert.Equal(t, "87.5%", dash.Stats.SuccessRate)
	assert.Equal(t, "3", dash.Stats.DiseaseTypes)
	require.Len(t, dash.Chart.Bars, 3)
	assert.Equal(t, "Mildew", dash.Chart.Bars[0].Name)
	assert.Len(t, dash.Diseases.Items, 3)
}

func TestDashboardCmd_UnreachableAPI(t *testing.T) {
	setUpServer(t, "json")
	srv := httptest.NewServer(nil)
	apiURL = srv.URL
	srv.Close()

	out, err := execute(t, NewDashboardCmd())
	require.NoError(t, err)

	var dash view.DashboardView
	require.NoError(t, json.Unmarshal([]byte(out), &dash))
	assert.Equal(t, view.FallbackStats(), dash.Stats)
	assert.Equal(t, "Failed to load data", dash.Diseases.Placeholder)
}

func TestDetectCmd_JSON(t *testing.T) {
	setUpServer(t, "json")
	path := filepath.Join(t.TempDir(), "leaf.png")
	require.NoError(t, os.WriteFile(path, pngHeader, 0o600))

	out, err := execute(t, NewDetectCmd(), path, "--crop", "Onion")
	require.NoError(t, err)

	var result view.DetectionView
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "Leaf mildew", result.DiseaseName)
	assert.Equal(t, "Onion", result.AffectedCrop)
	assert.Equal(t, view.TierSuccess, result.Tier)
}

func TestDetectCmd_RejectsNonImage(t *testing.T) {
	setUpServer(t, "human")
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("just some notes"), 0o600))

	_, err := execute(t, NewDetectCmd(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "File is not an image")
}

func TestChatCmd_OneShot(t *testing.T) {
	setUpServer(t, "json")

	out, err := execute(t, NewChatCmd(), "-m", "hello", "--session", "s-1")
	require.NoError(t, err)

	var transcript struct {
		Entries     []view.ChatEntry `json:"entries"`
		Suggestions []string         `json:"suggestions"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &transcript))
	require.Len(t, transcript.Entries, 2)
	assert.Equal(t, view.SenderUser, transcript.Entries[0].Sender)
	assert.Equal(t, "hello", transcript.Entries[0].Text)
	assert.Equal(t, view.SenderBot, transcript.Entries[1].Sender)
	assert.Len(t, transcript.Suggestions, 3)
}

func TestChatLoop_Suggestions(t *testing.T) {
	setUpServer(t, "human")
	s, err := loadSetup()
	require.NoError(t, err)

	chat := flow.NewChatFlow(s.client, i18n.Default(), "s-1", flow.WithReplyDelay(0))
	in := strings.NewReader("hello\n\n/2\n/9\n/quit\nignored\n")
	var out bytes.Buffer

	require.NoError(t, chatLoop(context.Background(), in, &out, chat, i18n.Default()))

	entries := chat.Transcript.Entries()
	require.Len(t, entries, 4)
	assert.Equal(t, "hello", entries[0].Text)
	assert.Equal(t, "What are the symptoms?", entries[2].Text)
	assert.Contains(t, out.String(), "/1 How do I prevent this disease?")
}

func TestLoadSetup_RejectsUnknownFormat(t *testing.T) {
	setUpServer(t, "xml")
	_, err := loadSetup()
	assert.Error(t, err)
}

func TestReadImage_FallsBackToExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leaf.jpg")
	require.NoError(t, os.WriteFile(path, []byte{0x00, 0x01, 0x02}, 0o600))

	f, err := readImage(path)
	require.NoError(t, err)
	assert.Equal(t, "leaf.jpg", f.Name)
	assert.Equal(t, "image/jpeg", f.MediaType)
}

func TestDashboardCmd_CropFilter(t *testing.T) {
	setUpServer(t, "json")

	out, err := execute(t, NewDashboardCmd(), "--crop", "Maize")
	require.NoError(t, err)

	var dash view.DashboardView
	require.NoError(t, json.Unmarshal([]byte(out), &dash))
	require.Len(t, dash.Diseases.Items, 1)
	assert.Equal(t, "Rust", dash.Diseases.Items[0].Name)
	assert.Equal(t, "1543", dash.Stats.TotalDetections)
}

func TestDashboardCmd_HumanHeaderOnCommandWriter(t *testing.T) {
	setUpServer(t, "human")

	out, err := execute(t, NewDashboardCmd())
	require.NoError(t, err)

	header := strings.Index(out, "AgriDetect Dashboard")
	require.GreaterOrEqual(t, header, 0)
	assert.Contains(t, out, "API: "+apiURL)
	assert.Less(t, header, strings.Index(out, "Mildew"))
}

func TestDetectCmd_HumanSuccessOnCommandWriter(t *testing.T) {
	setUpServer(t, "human")
	path := filepath.Join(t.TempDir(), "leaf.png")
	require.NoError(t, os.WriteFile(path, pngHeader, 0o600))

	out, err := execute(t, NewDetectCmd(), path)
	require.NoError(t, err)
	assert.Contains(t, out, "Image: leaf.png")
	assert.Contains(t, out, "✓ Analysis complete")
	assert.Contains(t, out, "Leaf mildew")
}

func TestFeedbackCmd_JSON(t *testing.T) {
	setUpServer(t, "json")

	out, err := execute(t, NewFeedbackCmd(), "leaf_blight_001", "--correct=false", "--actual", "Rust")
	require.NoError(t, err)

	var resp struct {
		Status     string `json:"status"`
		FeedbackID string `json:"feedback_id"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.NotEmpty(t, resp.FeedbackID)
}

func TestFeedbackCmd_ActualNeedsIncorrect(t *testing.T) {
	setUpServer(t, "json")

	_, err := execute(t, NewFeedbackCmd(), "leaf_blight_001", "--actual", "Rust")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--correct=false")
}

func TestChatLoop_HeaderShowsSession(t *testing.T) {
	setUpServer(t, "human")
	t.Cleanup(func() { chatSession = "" })

	c := NewChatCmd()
	c.SetIn(strings.NewReader("/quit\n"))
	out, err := execute(t, c, "--session", "s-42")
	require.NoError(t, err)
	assert.Contains(t, out, "Session: s-42")
}
