// Command server hosts the Gin HTTP API over a precompute artifact,
// mirroring backend/cmd/server/main.go's config → store → router
// wiring.
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/kihw/draftlens/internal/api"
	"github.com/kihw/draftlens/internal/apiauth"
	"github.com/kihw/draftlens/internal/artifact"
	"github.com/kihw/draftlens/internal/blobstore"
	"github.com/kihw/draftlens/internal/cache"
	"github.com/kihw/draftlens/internal/config"
	"github.com/kihw/draftlens/internal/draft"
	"github.com/kihw/draftlens/internal/draftresult"
	"github.com/kihw/draftlens/internal/store"
	"github.com/kihw/draftlens/internal/suggest"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("draftlens: failed to load config: %v", err)
	}

	st, err := store.Open(cfg)
	if err != nil {
		log.Fatalf("draftlens: failed to open store: %v", err)
	}
	defer st.Close()

	blobDir := os.Getenv("DRAFT_ARTIFACT_DIR")
	if blobDir == "" {
		blobDir = "./artifacts"
	}
	blobs, err := blobstore.NewLocalStore(blobDir)
	if err != nil {
		log.Fatalf("draftlens: failed to open blob store: %v", err)
	}

	engine, err := loadEngine(blobs)
	if err != nil {
		log.Printf("draftlens: no artifact loaded at startup: %v", err)
	}

	cacheService := cache.New(cache.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		Enabled:  cfg.Redis.Host != "",
	})

	authManager := apiauth.NewManager(cfg.Auth.Secret, cfg.Auth.Expiration)

	oracleURL := os.Getenv("DRAFTRESULT_ORACLE_URL")
	if oracleURL == "" {
		oracleURL = "http://localhost:9090"
	}
	oracle := draftresult.NewHTTPClient(oracleURL, 10*time.Second)

	datasetName := os.Getenv("DRAFT_DATASET_NAME")
	if datasetName == "" {
		datasetName = "default"
	}
	dataset := resolveDataset(st, datasetName)

	var refs suggest.ReferenceDataset
	if engine != nil {
		refs = suggest.NewArtifactReferences(engine.Index())
	}

	srv := api.NewServer(engine, oracle, dataset, refs, st, cacheService, authManager, blobDir)
	router := srv.Router(cfg.Server.Debug)

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	log.Printf("draftlens: server starting on %s", addr)
	log.Printf("draftlens: environment=%s database=%s", cfg.Server.Environment, cfg.Database.Driver)

	if err := router.Run(addr); err != nil {
		log.Fatalf("draftlens: server failed: %v", err)
	}
}

func loadEngine(blobs *blobstore.LocalStore) (*draft.Engine, error) {
	patch := os.Getenv("DRAFT_METRICS_PATCH")
	if patch == "" {
		patch = "15.20"
	}

	r, err := blobs.Fetch(patch + ".json")
	if err != nil {
		return nil, err
	}
	defer r.Close()

	a, err := artifact.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode artifact: %w", err)
	}

	return draft.NewEngine(&a), nil
}

type namedDataset struct{ name string }

func (d namedDataset) Name() string { return d.name }

func resolveDataset(st *store.Store, name string) draftresult.Dataset {
	view, err := st.ActiveDataset(name)
	if err != nil {
		return namedDataset{name: name}
	}
	return store.DatasetHandle{View: *view}
}
