package server

import (
	"context"
	"encoding/base64"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/finsights/argus/internal/config"
	"github.com/finsights/argus/internal/core"
	"github.com/finsights/argus/internal/core/aggregate"
	"github.com/finsights/argus/internal/core/analysis"
	"github.com/finsights/argus/internal/core/model"
	"github.com/finsights/argus/internal/docchat"
	"github.com/finsights/argus/internal/driver"
	"github.com/finsights/argus/internal/fetch"
	"github.com/finsights/argus/internal/history"
	"github.com/finsights/argus/internal/llm"
	"github.com/finsights/argus/internal/report"
	"github.com/finsights/argus/internal/search"
)

type Server struct {
	Screener  *core.Screener
	History   *history.Store
	Chat      *docchat.ChatService
	Processor *docchat.Processor
	Log       *logrus.Logger
}

// NewServer wires every collaborator from config. Missing credentials are
// fatal; optional subsystems (history store, document chat) are skipped
// when disabled.
func NewServer(cfg *config.Config, log *logrus.Logger) (*Server, error) {
	applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ctx := context.Background()

	baseLLM, embedder, err := llm.NewClient(ctx, cfg.LLM)
	if err != nil {
		return nil, err
	}
	limited := llm.NewRateLimited(baseLLM, cfg.LLM.RequestsPerSecond, cfg.LLM.Burst)

	searcher := search.NewSerpAPIClient(cfg.Search.APIKey, cfg.Search.BaseURL, log)
	fetcher := fetch.NewHTTPFetcher(log)
	analyzer := analysis.NewAnalyzer(limited, cfg, log)
	aggregator := aggregate.NewAggregator(limited, cfg.Prompts.NarrativeSummary, cfg.Pipeline.NarrativeTopN, log)

	var hist *history.Store
	if cfg.Memgraph.Enabled {
		d, err := driver.NewMemgraphDriver(cfg.Memgraph.URI, cfg.Memgraph.User, cfg.Memgraph.Password, log)
		if err != nil {
			return nil, err
		}
		if err := d.BuildIndices(ctx); err != nil {
			log.WithError(err).Warn("failed to build history indices")
		}
		hist = history.NewStore(d, log)
	}

	srv := &Server{
		Screener: core.NewScreener(searcher, fetcher, analyzer, aggregator, hist, cfg, log),
		History:  hist,
		Log:      log,
	}

	if cfg.Weaviate.Enabled {
		store, err := docchat.NewStore(cfg.Weaviate.Host, cfg.Weaviate.Scheme, cfg.Weaviate.Class)
		if err != nil {
			return nil, err
		}
		if err := store.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		srv.Chat = docchat.NewChatService(limited, embedder, store, cfg.Prompts.ChatSystem, log)
		srv.Processor = docchat.NewProcessor(fetcher, embedder, store, log)
	}

	return srv, nil
}

func applyEnvOverrides(cfg *config.Config) {
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("LLM_EMBEDDING_MODEL"); v != "" {
		cfg.LLM.EmbeddingModel = v
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv("SERPAPI_KEY"); v != "" {
		cfg.Search.APIKey = v
	}
	if v := os.Getenv("MEMGRAPH_URI"); v != "" {
		cfg.Memgraph.URI = v
		cfg.Memgraph.Enabled = true
	}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()

	r.GET("/healthz", s.Healthz)
	r.POST("/search", s.Search)
	r.POST("/report", s.Report)
	r.GET("/runs", s.Runs)
	r.POST("/documents", s.IngestDocument)
	r.POST("/chat", s.AskChat)

	return r
}

func (s *Server) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type SearchRequest struct {
	Entity     string  `json:"entity" binding:"required"`
	Months     int     `json:"months"`
	NumResults int     `json:"num_results"`
	MinScore   float64 `json:"min_score"`
}

func (s *Server) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	result, err := s.Screener.RunSearch(c.Request.Context(), core.SearchParams{
		Entity:     req.Entity,
		Months:     req.Months,
		NumResults: req.NumResults,
		MinScore:   req.MinScore,
	})
	if err != nil {
		s.Log.WithError(err).Error("screening run failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Screening failed"})
		return
	}

	c.JSON(http.StatusOK, result)
}

type ReportRequest struct {
	Entity                    string                  `json:"entity" binding:"required"`
	Summary                   model.SearchSummary     `json:"summary"`
	Results                   []model.ScreeningResult `json:"results"`
	IncludeScoringExplanation bool                    `json:"include_scoring_explanation"`
}

func (s *Server) Report(c *gin.Context) {
	var req ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	md := report.GenerateMarkdown(req.Entity, req.Summary, req.Results, req.IncludeScoringExplanation)
	c.JSON(http.StatusOK, gin.H{"markdown": md})
}

func (s *Server) Runs(c *gin.Context) {
	if s.History == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "History store not configured"})
		return
	}

	limit := 20
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = n
	}

	runs, err := s.History.RecentRuns(c.Request.Context(), limit)
	if err != nil {
		s.Log.WithError(err).Error("failed to list runs")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list runs"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs})
}

type IngestRequest struct {
	Title      string `json:"title"`
	URL        string `json:"url"`
	PDFContent string `json:"pdf_content"` // base64
}

func (s *Server) IngestDocument(c *gin.Context) {
	if s.Processor == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "Document chat not configured"})
		return
	}

	var req IngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var chunks int
	var err error
	switch {
	case req.PDFContent != "":
		var data []byte
		data, err = base64.StdEncoding.DecodeString(req.PDFContent)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid PDF encoding"})
			return
		}
		chunks, err = s.Processor.IngestPDF(c.Request.Context(), req.Title, data)
	case req.URL != "":
		chunks, err = s.Processor.IngestURL(c.Request.Context(), req.URL)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Either url or pdf_content is required"})
		return
	}

	if err != nil {
		s.Log.WithError(err).Error("document ingestion failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ingestion failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "chunks": chunks})
}

type ChatRequest struct {
	Question string            `json:"question" binding:"required"`
	History  []docchat.Message `json:"history"`
}

func (s *Server) AskChat(c *gin.Context) {
	if s.Chat == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "Document chat not configured"})
		return
	}

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	answer, err := s.Chat.Ask(c.Request.Context(), req.Question, req.History)
	if err != nil {
		s.Log.WithError(err).Error("chat failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Chat failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"answer": answer})
}
