package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"path/filepath"
	"strconv"
	"time"

	"github.com/apex/log"
	"github.com/helmcode/agridetect/pkg/config"
	"github.com/helmcode/agridetect/pkg/model"
	"github.com/helmcode/agridetect/pkg/parser"
)

// maxBodySize caps how much of a response body is read.
const maxBodySize = 10 << 20

// Client talks to the AgriDetect HTTP API. It never retries.
type Client struct {
	baseURL string
	prefix  string
	client  *http.Client
}

func New(cfg *config.Config) *Client {
	return NewWithHTTPClient(cfg, &http.Client{Timeout: cfg.Timeout})
}

func NewWithHTTPClient(cfg *config.Config, httpClient *http.Client) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		prefix:  cfg.APIPrefix,
		client:  httpClient,
	}
}

// BaseURL returns the server root the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) endpoint(path string) string {
	return c.baseURL + c.prefix + path
}

// DetectDisease uploads an image as the multipart field "file". The crop type
// is sent as a query parameter when set.
func (c *Client) DetectDisease(ctx context.Context, upload model.ImageUpload) (*model.DetectionResult, error) {
	if upload.Body == nil {
		return nil, fmt.Errorf("image is required")
	}
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreatePart(fileHeader(upload.Filename, upload.MediaType))
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, upload.Body); err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close form: %w", err)
	}

	target := c.endpoint("/detect-disease")
	if upload.CropType != "" {
		target += "?" + url.Values{"crop_type": {upload.CropType}}.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}
	return parser.ParseDetectionResponse(body)
}

func (c *Client) Chat(ctx context.Context, chatReq model.ChatRequest) (*model.ChatResponse, error) {
	jsonBody, err := json.Marshal(chatReq)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/chat"), bytes.NewReader(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}
	return parser.ParseChatResponse(body)
}

func (c *Client) DashboardStats(ctx context.Context) (*model.DashboardStats, error) {
	body, err := c.get(ctx, c.endpoint("/statistics/dashboard"))
	if err != nil {
		return nil, err
	}
	return parser.ParseDashboardResponse(body)
}

// CommonDiseases lists the frequent diseases, restricted to cropType when it
// is not empty.
func (c *Client) CommonDiseases(ctx context.Context, cropType string) (*model.CommonDiseasesResponse, error) {
	target := c.endpoint("/diseases/common")
	if cropType != "" {
		target += "?" + url.Values{"crop_type": {cropType}}.Encode()
	}
	body, err := c.get(ctx, target)
	if err != nil {
		return nil, err
	}
	return parser.ParseCommonDiseasesResponse(body)
}

func (c *Client) Treatments(ctx context.Context, diseaseID string) (*model.TreatmentsResponse, error) {
	if diseaseID == "" {
		return nil, fmt.Errorf("disease id is required")
	}
	body, err := c.get(ctx, c.endpoint("/treatments/"+url.PathEscape(diseaseID)))
	if err != nil {
		return nil, err
	}
	return parser.ParseTreatmentsResponse(body)
}

// Feedback reports on a past detection. The server reads the fields from the
// query string, not from a JSON body.
func (c *Client) Feedback(ctx context.Context, fb model.FeedbackRequest) (*model.FeedbackResponse, error) {
	if fb.DetectionID == "" {
		return nil, fmt.Errorf("detection id is required")
	}
	q := url.Values{
		"detection_id": {fb.DetectionID},
		"correct":      {strconv.FormatBool(fb.Correct)},
	}
	if fb.ActualDisease != "" {
		q.Set("actual_disease", fb.ActualDisease)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/feedback")+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}
	return parser.ParseFeedbackResponse(body)
}

// Health hits /health on the server root, outside the version prefix.
func (c *Client) Health(ctx context.Context) (*model.Health, error) {
	body, err := c.get(ctx, c.baseURL+"/health")
	if err != nil {
		return nil, err
	}
	return parser.ParseHealthResponse(body)
}

func (c *Client) get(ctx context.Context, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	return c.do(req)
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", req.URL.Path, err)
	}

	log.WithFields(log.Fields{
		"method":   req.Method,
		"path":     req.URL.Path,
		"status":   resp.StatusCode,
		"duration": time.Since(start).String(),
	}).Debug("api request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(respBytes)}
	}
	return respBytes, nil
}

func fileHeader(filename, mediaType string) textproto.MIMEHeader {
	name := filepath.Base(filename)
	if mediaType == "" {
		mediaType = ContentTypeFor(name)
	}
	return textproto.MIMEHeader{
		"Content-Disposition": {fmt.Sprintf(`form-data; name="file"; filename=%q`, name)},
		"Content-Type":        {mediaType},
	}
}
