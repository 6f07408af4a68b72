package mockapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
	"github.com/helmcode/agridetect/pkg/model"
)

const Version = "1.0.0"

// Server serves canned AgriDetect responses. Detections are counted so the
// dashboard reflects what was uploaded during the process lifetime.
type Server struct {
	mu         sync.Mutex
	detections map[string]int
	total      int
	now        func() time.Time
}

func NewServer() *Server {
	return &Server{
		detections: map[string]int{
			"Mildew":         234,
			"Rust":           187,
			"Bacterial spot": 156,
		},
		total: 1543,
		now:   time.Now,
	}
}

// Router builds the gin engine with every endpoint under /api/v1 plus /health.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger())

	router.GET("/health", s.health)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/detect-disease", s.detectDisease)
		v1.POST("/chat", s.chat)
		v1.GET("/statistics/dashboard", s.dashboard)
		v1.GET("/diseases/common", s.commonDiseases)
		v1.GET("/treatments/:disease_id", s.treatments)
		v1.POST("/feedback", s.feedback)
	}

	return router
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.WithFields(log.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		}).Info("request")
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, model.Health{
		Status:    "healthy",
		Version:   Version,
		Timestamp: s.now().Format(time.RFC3339),
	})
}

func (s *Server) detectDisease(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "file is required"})
		return
	}
	if !strings.HasPrefix(file.Header.Get("Content-Type"), "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "file must be an image"})
		return
	}

	crop := c.Query("crop_type")
	if crop == "" {
		crop = "Tomato"
	}

	result := model.DetectionResult{
		DiseaseID:    "leaf_blight_001",
		DiseaseName:  "Leaf mildew",
		Confidence:   0.89,
		Severity:     "Moderate",
		AffectedCrop: crop,
		Treatments: []model.Treatment{{
			TreatmentID: "trt_001",
			Name:        "Organic fungicide",
			Description: "Apply Bordeaux mixture",
			Organic:     true,
		}},
		PreventionTips: []string{
			"Keep air moving between plants",
			"Avoid overhead watering",
			"Remove infected leaves",
		},
		DetectionDate: s.now().Format(time.RFC3339),
	}

	s.mu.Lock()
	s.total++
	s.detections[result.DiseaseName]++
	s.mu.Unlock()

	c.JSON(http.StatusOK, result)
}

func (s *Server) chat(c *gin.Context) {
	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "message is required"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"response": "I understand your question. Here are my recommendations...",
		"language": "English",
		"suggestions": []string{
			"How do I prevent this disease?",
			"What are the symptoms?",
			"Is an organic treatment available?",
		},
		"session_id": req.SessionID,
		"timestamp":  s.now().Format(time.RFC3339),
	})
}

func (s *Server) dashboard(c *gin.Context) {
	s.mu.Lock()
	counts := make(map[string]int, len(s.detections))
	for name, n := range s.detections {
		counts[name] = n
	}
	total := s.total
	s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{
		"total_detections":  total,
		"active_users":      342,
		"diseases_detected": counts,
		"success_rate":      0.875,
		"period":            "last 30 days",
	})
}

var commonDiseases = []model.CommonDisease{
	{ID: "mld_001", Name: "Mildew", CropsAffected: []string{"Tomato", "Potato", "Onion"}, Season: "Rainy season", Frequency: "Frequent", Severity: "High"},
	{ID: "rlt_002", Name: "Rust", CropsAffected: []string{"Maize", "Wheat", "Bean"}, Season: "All year", Frequency: "Common", Severity: "Moderate"},
	{ID: "anth_003", Name: "Anthracnose", CropsAffected: []string{"Mango", "Papaya", "Avocado"}, Season: "Wet season", Severity: "High"},
}

func (s *Server) commonDiseases(c *gin.Context) {
	crop := c.Query("crop_type")
	diseases := make([]model.CommonDisease, 0, len(commonDiseases))
	for _, d := range commonDiseases {
		if crop == "" || contains(d.CropsAffected, crop) {
			diseases = append(diseases, d)
		}
	}
	c.JSON(http.StatusOK, model.CommonDiseasesResponse{Diseases: diseases, Total: len(diseases)})
}

func (s *Server) treatments(c *gin.Context) {
	c.JSON(http.StatusOK, model.TreatmentsResponse{
		DiseaseID: c.Param("disease_id"),
		Treatments: []model.TreatmentDetail{
			{
				TreatmentID:       "trt_001",
				Name:              "Bordeaux mixture",
				Description:       "Copper based fungicide",
				ApplicationMethod: "Foliar spray",
				Frequency:         "Every 7-10 days",
				Precautions:       []string{"Wear gloves", "Avoid windy weather"},
				Organic:           true,
				CostEstimate:      "5000 FCFA/hectare",
			},
			{
				TreatmentID:       "trt_002",
				Name:              "Neem oil",
				Description:       "Natural neem oil",
				ApplicationMethod: "Spray",
				Frequency:         "Weekly",
				Precautions:       []string{"Apply in the evening"},
				Organic:           true,
				CostEstimate:      "3000 FCFA/hectare",
			},
		},
	})
}

// feedback reads its fields from the query string. detection_id and correct
// are required.
func (s *Server) feedback(c *gin.Context) {
	if c.Query("detection_id") == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "detection_id is required"})
		return
	}
	if _, err := strconv.ParseBool(c.Query("correct")); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "correct must be a boolean"})
		return
	}

	c.JSON(http.StatusOK, model.FeedbackResponse{
		Status:     "success",
		Message:    "Thank you for your feedback",
		FeedbackID: fmt.Sprintf("fb_%d", s.now().Unix()),
	})
}

func contains(items []string, v string) bool {
	for _, item := range items {
		if strings.EqualFold(item, v) {
			return true
		}
	}
	return false
}
