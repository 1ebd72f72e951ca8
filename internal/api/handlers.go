// Package api wires a Gin router over the draft engine and
// suggestion ranker, mirroring cmd/server/main.go's gin.Default() +
// corsMiddleware() + versioned route-group shape.
package api

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/kihw/draftlens/internal/apiauth"
	"github.com/kihw/draftlens/internal/artifact"
	"github.com/kihw/draftlens/internal/cache"
	"github.com/kihw/draftlens/internal/draft"
	"github.com/kihw/draftlens/internal/draftresult"
	"github.com/kihw/draftlens/internal/role"
	"github.com/kihw/draftlens/internal/store"
	"github.com/kihw/draftlens/internal/suggest"
)

// Server exposes the precompute/draft-evaluate/draft-suggest HTTP API
// over a mutable engine reference — a successful /precompute call
// rebuilds the index that /draft/evaluate and /draft/suggest read.
type Server struct {
	engine  *draft.Engine
	oracle  draftresult.Analyzer
	dataset draftresult.Dataset
	refs    suggest.ReferenceDataset

	store *store.Store
	cache *cache.Service
	auth  *apiauth.Manager

	blobDir string
}

// NewServer builds a Server over an already-loaded engine.
func NewServer(engine *draft.Engine, oracle draftresult.Analyzer, dataset draftresult.Dataset, refs suggest.ReferenceDataset, st *store.Store, ch *cache.Service, auth *apiauth.Manager, blobDir string) *Server {
	return &Server{engine: engine, oracle: oracle, dataset: dataset, refs: refs, store: st, cache: ch, auth: auth, blobDir: blobDir}
}

// Router builds the Gin engine, registering every route this service
// exposes.
func (s *Server) Router(debug bool) *gin.Engine {
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(corsMiddleware())

	r.GET("/healthz", s.handleHealthz)

	v1 := r.Group("/api/v1")
	{
		v1.POST("/precompute", s.auth.RequireAuth(), s.handlePrecompute)
		v1.POST("/draft/evaluate", s.handleEvaluate)
		v1.POST("/draft/suggest", s.handleSuggest)
	}

	return r
}

func (s *Server) handleHealthz(c *gin.Context) {
	status := gin.H{
		"status":        "ok",
		"timestamp":     time.Now().UTC(),
		"artifactReady": s.engine != nil,
	}
	if s.store != nil {
		if err := s.store.Ping(); err != nil {
			status["status"] = "degraded"
			status["database"] = err.Error()
		} else {
			status["database"] = "ok"
		}
	}
	c.JSON(http.StatusOK, status)
}

func (s *Server) handleEvaluate(c *gin.Context) {
	if s.engine == nil {
		serverError(c, "no_artifact_loaded", "no precompute artifact is currently loaded")
		return
	}

	var req evaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	team, err := toAssignments(req.Team)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	enemy, err := toAssignments(req.Enemy)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	players := make(map[role.Role]string, len(team))
	for _, a := range team {
		if a.Player != "" {
			players[a.Role] = a.Player
		}
	}

	eval := s.engine.Evaluate(team, enemy, players)
	c.JSON(http.StatusOK, eval)
}

func (s *Server) handleSuggest(c *gin.Context) {
	if s.engine == nil {
		serverError(c, "no_artifact_loaded", "no precompute artifact is currently loaded")
		return
	}

	var req suggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	team, err := toAssignments(req.Team)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	enemy, err := toAssignments(req.Enemy)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	stage := suggest.Stage(req.Stage)

	key := ""
	if s.cache != nil {
		key = cache.SuggestionKey(s.engine.Artifact().Patch, string(stage), team, enemy)
		var cached []suggest.Suggestion
		if err := s.cache.GetJSON(key, &cached); err == nil {
			c.JSON(http.StatusOK, gin.H{"suggestions": cached, "cached": true})
			return
		}
	}

	suggestions, err := suggest.Rank(c.Request.Context(), s.engine, s.oracle, s.dataset, s.refs, team, enemy, stage)
	if err != nil {
		serverError(c, "ranking_error", err.Error())
		return
	}

	if s.cache != nil {
		_ = s.cache.SetJSON(key, suggestions, 5*time.Minute)
	}

	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions, "cached": false})
}

// handlePrecompute loads a precompute artifact that must already
// exist in the blob directory under "<patch>.json"; running the
// actual C1-C5 pipeline is cmd/precompute's job, not this endpoint's —
// this handler only hot-swaps the server's live engine to point at a
// freshly generated artifact.
func (s *Server) handlePrecompute(c *gin.Context) {
	var req precomputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	path := fmt.Sprintf("%s/%s.json", s.blobDir, req.Patch)
	f, err := os.Open(path)
	if err != nil {
		serverError(c, "artifact_not_found", err.Error())
		return
	}
	defer f.Close()

	a, err := artifact.Decode(f)
	if err != nil {
		serverError(c, "artifact_decode_error", err.Error())
		return
	}

	s.engine = draft.NewEngine(&a)
	s.refs = suggest.NewArtifactReferences(s.engine.Index())

	if s.store != nil {
		run, err := s.store.RecordRunStart(req.Patch, a.SampleSize)
		if err == nil {
			_ = s.store.RecordRunSuccess(run, path)
		}
		if view, err := s.store.ActivateDataset(req.DatasetName, path, req.Patch); err == nil {
			s.dataset = store.DatasetHandle{View: *view}
		}
	}
	if s.cache != nil {
		_ = s.cache.Invalidate("draftlens:suggest:*")
	}

	c.JSON(http.StatusOK, gin.H{"status": "loaded", "patch": req.Patch, "sampleSize": a.SampleSize})
}

func toAssignments(dtos []assignmentDTO) ([]draft.Assignment, error) {
	out := make([]draft.Assignment, 0, len(dtos))
	for _, d := range dtos {
		r, ok := role.Parse(d.Role)
		if !ok {
			return nil, fmt.Errorf("unknown role %q", d.Role)
		}
		out = append(out, draft.Assignment{Role: r, Champion: d.Champion, Player: d.Player})
	}
	return out, nil
}

// corsMiddleware mirrors cmd/server/main.go's permissive local-dev CORS
// policy via gin-contrib/cors, since this service has no browser client
// of its own and every caller is a trusted internal tool.
func corsMiddleware() gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	cfg.AllowAllOrigins = true
	cfg.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	cfg.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	return cors.New(cfg)
}
