package api

import (
	"net/http"
	"path/filepath"
	"sync"

	"garderobe/internal/catalog"
	"garderobe/internal/evaluation"
	"garderobe/internal/gateway"
	"garderobe/internal/monitoring"
	"garderobe/internal/notify"
	"garderobe/internal/persistence"
	"garderobe/internal/planner"
	"garderobe/internal/wardrobe"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
	"github.com/tmc/langchaingo/llms"
)

// Server is the HTTP surface the mobile clients talk to. It keeps one
// wardrobe store per authenticated user, built lazily on first request
// and kept for the process lifetime.
type Server struct {
	Router *gin.Engine

	db        *gorm.DB
	llm       llms.LLM
	hub       *notify.Hub
	monitor   *monitoring.Monitor
	evaluator *evaluation.Evaluator
	secret    []byte
	stateDir  string

	mu       sync.Mutex
	sessions map[string]*session
}

// session bundles the per-user state owner with its planner.
type session struct {
	store   *wardrobe.Store
	planner *planner.Planner
}

// NewServer wires the router. llm may be nil; planning then always uses
// the random path.
func NewServer(db *gorm.DB, llm llms.LLM, hub *notify.Hub, secret []byte, stateDir string) *Server {
	s := &Server{
		Router:    gin.Default(),
		db:        db,
		llm:       llm,
		hub:       hub,
		monitor:   monitoring.NewMonitor(),
		evaluator: evaluation.New(),
		secret:    secret,
		stateDir:  stateDir,
		sessions:  make(map[string]*session),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all API endpoints
func (s *Server) setupRoutes() {
	// Health check
	s.Router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Garderobe API is running"})
	})

	// The garment catalog is static and public
	s.Router.GET("/catalog", func(c *gin.Context) {
		c.JSON(http.StatusOK, catalog.All())
	})

	v1 := s.Router.Group("/api/v1")
	v1.Use(s.authMiddleware())
	{
		// Wardrobe inventory
		v1.GET("/wardrobe", s.GetWardrobe)
		v1.POST("/wardrobe/refresh", s.RefreshWardrobe)
		v1.POST("/wardrobe/:id/colors", s.AddColor)
		v1.PUT("/wardrobe/:id/colors/:index", s.UpdateColor)
		v1.DELETE("/wardrobe/:id/colors/:index", s.RemoveColor)
		v1.DELETE("/wardrobe/:id", s.DeleteItem)

		// Outfit calendar
		v1.GET("/outfits", s.GetOutfits)
		v1.PUT("/outfits/:date", s.SetOutfit)
		v1.PUT("/outfits/:date/image", s.SetOutfitImage)

		// Week planning
		v1.POST("/planner/week", s.PlanWeek)

		// Operational status and the change feed
		v1.GET("/status", s.GetStatus)
		v1.GET("/ws", s.hub.HandleWebSocket)
	}
}

// session returns the caller's wardrobe session, creating the store and
// planner on first use.
func (s *Server) session(c *gin.Context) (*session, error) {
	uid := c.GetString("user_id")

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[uid]; ok {
		return sess, nil
	}

	snap := persistence.NewFileSnapshot(filepath.Join(s.stateDir, uid+".json"))
	store, err := wardrobe.NewStore(uid, gateway.NewRemote(s.db, uid), snap, s.hub)
	if err != nil {
		return nil, err
	}

	sess := &session{store: store, planner: planner.New(s.llm, store)}
	s.sessions[uid] = sess
	monitoring.ActiveStores.Inc()
	return sess, nil
}
