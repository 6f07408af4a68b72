package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/helmcode/agridetect/pkg/config"
	"github.com/helmcode/agridetect/pkg/mockapi"
	"github.com/helmcode/agridetect/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.Default()
	cfg.BaseURL = srv.URL
	cfg.Timeout = 5 * time.Second
	require.NoError(t, cfg.Validate())
	return New(cfg)
}

func newMockClient(t *testing.T) *Client {
	gin.SetMode(gin.TestMode)
	return newTestClient(t, mockapi.NewServer().Router())
}

func TestDetectDisease_SendsMultipartFile(t *testing.T) {
	var gotName, gotType, gotBody, gotCrop string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/detect-disease", r.URL.Path)
		gotCrop = r.URL.Query().Get("crop_type")

		file, header, err := r.FormFile("file")
		if !assert.NoError(t, err) {
			return
		}
		defer file.Close()
		data, _ := io.ReadAll(file)
		gotName = header.Filename
		gotType = header.Header.Get("Content-Type")
		gotBody = string(data)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"disease_name": "Rust", "confidence": 0.7, "treatments": [], "prevention_tips": []}`))
	}))

	result, err := client.DetectDisease(context.Background(), model.ImageUpload{
		Filename: "/tmp/photos/leaf.JPG",
		Body:     strings.NewReader("jpeg-bytes"),
		CropType: "Maize",
	})
	require.NoError(t, err)
	assert.Equal(t, "Rust", result.DiseaseName)
	assert.Equal(t, "leaf.JPG", gotName)
	assert.Equal(t, "image/jpeg", gotType)
	assert.Equal(t, "jpeg-bytes", gotBody)
	assert.Equal(t, "Maize", gotCrop)
}

func TestChat_SendsJSONBody(t *testing.T) {
	var got map[string]interface{}
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/chat", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"response": "Use neem oil", "suggestions": ["Dose?"]}`))
	}))

	resp, err := client.Chat(context.Background(), model.ChatRequest{Message: "hello", SessionID: "abc"})
	require.NoError(t, err)
	assert.Equal(t, "Use neem oil", resp.Response)
	assert.Equal(t, []string{"Dose?"}, resp.Suggestions)
	assert.Equal(t, map[string]interface{}{"message": "hello", "session_id": "abc"}, got)
}

func TestChat_OmitsEmptySession(t *testing.T) {
	var got map[string]interface{}
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"response": "ok"}`))
	}))

	_, err := client.Chat(context.Background(), model.ChatRequest{Message: "hello"})
	require.NoError(t, err)
	_, hasSession := got["session_id"]
	assert.False(t, hasSession)
}

func TestNon2xxReturnsStatusError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	_, err := client.DashboardStats(context.Background())
	require.Error(t, err)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusInternalServerError, se.StatusCode)
	assert.Contains(t, err.Error(), "500")
	assert.True(t, IsStatus(err, http.StatusInternalServerError))
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	cfg := config.Default()
	cfg.BaseURL = srv.URL
	client := New(cfg)

	_, err := client.CommonDiseases(context.Background(), "")
	require.Error(t, err)
	var se *StatusError
	assert.False(t, errors.As(err, &se))
}

func TestContextCancellation(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Health(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestAgainstMockServer(t *testing.T) {
	client := newMockClient(t)
	ctx := context.Background()

	h, err := client.Health(ctx)
	require.NoError(t, err)
	assert.Equal(t, "healthy", h.Status)

	result, err := client.DetectDisease(ctx, model.ImageUpload{Filename: "leaf.png", Body: strings.NewReader("png")})
	require.NoError(t, err)
	assert.Equal(t, "Tomato", result.AffectedCrop)
	assert.NotEmpty(t, result.Treatments)

	stats, err := client.DashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1544, stats.TotalDetections)
	require.NotNil(t, stats.SuccessRate)

	common, err := client.CommonDiseases(ctx, "")
	require.NoError(t, err)
	assert.Len(t, common.Diseases, 3)

	maize, err := client.CommonDiseases(ctx, "Maize")
	require.NoError(t, err)
	require.Len(t, maize.Diseases, 1)
	assert.Equal(t, "Rust", maize.Diseases[0].Name)

	fb, err := client.Feedback(ctx, model.FeedbackRequest{DetectionID: result.DiseaseID, Correct: true})
	require.NoError(t, err)
	assert.Equal(t, "success", fb.Status)
	assert.NotEmpty(t, fb.FeedbackID)

	treatments, err := client.Treatments(ctx, "mld_001")
	require.NoError(t, err)
	assert.Equal(t, "mld_001", treatments.DiseaseID)
	assert.Len(t, treatments.Treatments, 2)

	_, err = client.DetectDisease(ctx, model.ImageUpload{Filename: "photo", MediaType: "text/plain", Body: strings.NewReader("text")})
	assert.True(t, IsStatus(err, http.StatusBadRequest))
}

func TestTreatments_RequiresID(t *testing.T) {
	client := New(config.Default())
	_, err := client.Treatments(context.Background(), "")
	assert.Error(t, err)
}

func TestCommonDiseases_SendsCropType(t *testing.T) {
	var gotQuery string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"diseases": []}`))
	}))

	_, err := client.CommonDiseases(context.Background(), "Sweet potato")
	require.NoError(t, err)
	assert.Equal(t, "crop_type=Sweet+potato", gotQuery)

	_, err = client.CommonDiseases(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, gotQuery)
}

func TestFeedback_SendsQueryParameters(t *testing.T) {
	var gotMethod, gotPath string
	var gotQuery url.Values
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`{"status": "success", "message": "Merci pour votre retour", "feedback_id": "fb_1"}`))
	}))

	resp, err := client.Feedback(context.Background(), model.FeedbackRequest{
		DetectionID:   "leaf_blight_001",
		Correct:       false,
		ActualDisease: "Rust",
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/api/v1/feedback", gotPath)
	assert.Equal(t, "leaf_blight_001", gotQuery.Get("detection_id"))
	assert.Equal(t, "false", gotQuery.Get("correct"))
	assert.Equal(t, "Rust", gotQuery.Get("actual_disease"))
	assert.Equal(t, "fb_1", resp.FeedbackID)

	_, err = client.Feedback(context.Background(), model.FeedbackRequest{DetectionID: "d1", Correct: true})
	require.NoError(t, err)
	assert.Equal(t, "true", gotQuery.Get("correct"))
	assert.False(t, gotQuery.Has("actual_disease"))
}

func TestFeedback_RequiresDetectionID(t *testing.T) {
	client := New(config.Default())
	_, err := client.Feedback(context.Background(), model.FeedbackRequest{Correct: true})
	assert.Error(t, err)
}

func TestStatusError_TruncatesOnRuneBoundary(t *testing.T) {
	body := strings.Repeat("a", 199) + "é" + strings.Repeat("b", 50)
	err := &StatusError{StatusCode: http.StatusUnprocessableEntity, Body: body}

	msg := err.Error()
	assert.True(t, utf8.ValidString(msg))
	assert.True(t, strings.HasSuffix(msg, strings.Repeat("a", 199)+"..."))

	short := &StatusError{StatusCode: http.StatusBadRequest, Body: "Données invalides"}
	assert.Equal(t, "HTTP error: 400: Données invalides", short.Error())
}
