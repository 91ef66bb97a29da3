// Command ripperserver is the gin HTTP front door for the RIPPER learner:
// POST /train, /predict and /test, wired to pkg/rconfig and pkg/logging the
// way the teacher's root main.go wires rock-share/base/config and
// rock-share/base/logger.
package main

import (
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ripper-core/model"
	"ripper-core/pkg/logging"
	"ripper-core/pkg/rconfig"
	"ripper-core/pkg/wire"
	"ripper-core/ripper"
)

type modelStore struct {
	mu     sync.RWMutex
	models map[string]*model.RuleBasedModel
	nextID uint64
}

func newModelStore() *modelStore {
	return &modelStore{models: make(map[string]*model.RuleBasedModel)}
}

func (s *modelStore) put(m *model.RuleBasedModel) string {
	id := "m" + strconv.FormatUint(atomic.AddUint64(&s.nextID, 1), 10)
	s.mu.Lock()
	s.models[id] = m
	s.mu.Unlock()
	return id
}

func (s *modelStore) get(id string) (*model.RuleBasedModel, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.models[id]
	return m, ok
}

type server struct {
	store  *modelStore
	cfg    *rconfig.AllConfig
	logger *zap.Logger
}

type trainRequest struct {
	Dataset          wire.DatasetSpec `json:"dataset" binding:"required"`
	NumOptimizations int              `json:"num_optimizations"`
	Seed             int64            `json:"seed"`
	NumFolds         int              `json:"num_folds"`
	MinNo            float64          `json:"min_no"`
	CheckErr         *bool            `json:"check_err"`
	UsePruning       *bool            `json:"use_pruning"`
}

func (s *server) configFromRequest(req trainRequest) ripper.Config {
	cfg := ripper.Config{
		NumOptimizations: s.cfg.Learner.NumOptimizations,
		Seed:             s.cfg.Learner.Seed,
		NumFolds:         s.cfg.Learner.NumFolds,
		MinNo:            s.cfg.Learner.MinNo,
		CheckErr:         s.cfg.Learner.CheckErr,
		UsePruning:       s.cfg.Learner.UsePruning,
	}
	if req.NumOptimizations != 0 {
		cfg.NumOptimizations = req.NumOptimizations
	}
	if req.Seed != 0 {
		cfg.Seed = req.Seed
	}
	if req.NumFolds != 0 {
		cfg.NumFolds = req.NumFolds
	}
	if req.MinNo != 0 {
		cfg.MinNo = req.MinNo
	}
	if req.CheckErr != nil {
		cfg.CheckErr = *req.CheckErr
	}
	if req.UsePruning != nil {
		cfg.UsePruning = *req.UsePruning
	}
	return cfg
}

func (s *server) train(c *gin.Context) {
	var req trainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	d, err := wire.BuildDataset(req.Dataset)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	learner := ripper.New(s.configFromRequest(req), s.logger)
	m, err := learner.Train(d)
	if err != nil {
		s.logger.Error("train failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	id := s.store.put(m)
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"model_id":  id,
		"ruleset":   m.String(),
		"num_rules": len(m.Rules),
	})
}

type modelRequest struct {
	ModelID string           `json:"model_id" binding:"required"`
	Dataset wire.DatasetSpec `json:"dataset" binding:"required"`
}

func (s *server) predict(c *gin.Context) {
	var req modelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	m, ok := s.store.get(req.ModelID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown model_id"})
		return
	}
	d, err := wire.BuildDataset(req.Dataset)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	preds, err := m.Predict(d)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	labels := make([]string, len(preds))
	classAttr := m.Schema[0]
	for i, p := range preds {
		labels[i] = classAttr.ReprVal(float64(p))
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "predictions": labels})
}

func (s *server) test(c *gin.Context) {
	var req modelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	m, ok := s.store.get(req.ModelID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown model_id"})
		return
	}
	d, err := wire.BuildDataset(req.Dataset)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	report, err := m.Test(d)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"measures": report.Measures,
		"table":    report.String(),
	})
}

func main() {
	cfg, err := rconfig.Load("./config", nil)
	if err != nil {
		panic(err)
	}

	logger, err := logging.New(logging.Config{
		ModuleName: "ripperserver",
		LogPath:    cfg.Logger.Path,
	})
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	s := &server{store: newModelStore(), cfg: cfg, logger: logger}

	r := gin.Default()
	r.POST("/train", s.train)
	r.POST("/predict", s.predict)
	r.POST("/test", s.test)

	address := cfg.Server.HTTPPort
	if address == "" {
		address = ":8080"
	}
	logger.Info("ripperserver listening", zap.String("address", address))
	if err := r.Run(address); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}
