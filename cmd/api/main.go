// @title           CyberRAG Retrieval API
// @version         1.0
// @description     Multilingual (EN/TH) retrieval over security standards, plus asynchronous document ingestion.
// @termsOfService  http://swagger.io/terms/

// @contact.name    API Support
// @contact.url
// @contact.email

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:3000
// @BasePath  /
// @schemes   http https
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/akolanti/CyberRAG/internal/config"
	"github.com/akolanti/CyberRAG/internal/customHttpClient"
	"github.com/akolanti/CyberRAG/internal/data/store"
	jobmodel "github.com/akolanti/CyberRAG/internal/domain/jobModel"
	"github.com/akolanti/CyberRAG/internal/handlers"
	"github.com/akolanti/CyberRAG/internal/job"
	"github.com/akolanti/CyberRAG/internal/mcpserver"
	"github.com/akolanti/CyberRAG/internal/rag"
	"github.com/akolanti/CyberRAG/internal/rag/embedding"
	"github.com/akolanti/CyberRAG/internal/rag/embedding/googleEmbedding"
	"github.com/akolanti/CyberRAG/internal/rag/embedding/openaiEmbedding"
	"github.com/akolanti/CyberRAG/internal/rag/index"
	"github.com/akolanti/CyberRAG/internal/rag/vectorDB/qdrantDB"
	"github.com/akolanti/CyberRAG/internal/server"
	"github.com/akolanti/CyberRAG/internal/worker"
	"github.com/akolanti/CyberRAG/pkg/logger_i"
)

var (
	listenAddr        string
	requestCount      int64
	stopWorkerChannel chan bool
	workerWaitGroup   sync.WaitGroup
)

func main() {

	config.LoadEnv()
	logger_i.Init()
	var logger = logger_i.NewLogger("main")

	//config
	flag.StringVar(&listenAddr, "listen-addr", config.ServerListenAddr, "server listen address")
	flag.Parse()

	lexicon, err := loadLexicon()
	if err != nil {
		logger.Error("Could not load lexicon", "path", config.LexiconPath, "err", err)
		return
	}

	//init buffered job channel
	jobChannel := make(chan jobmodel.Job, config.BufferLimit)
	dispatcherChannel := make(chan bool, 1)
	stopWorkerChannel = make(chan bool, 1)

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	//init job service and job store
	serviceConfig := job.ServiceConfig{
		JobChannel:        jobChannel,
		RequestCount:      requestCount,
		DispatcherChannel: dispatcherChannel,
	}
	logger.Info("Starting job service")

	if redisJobs := store.GetRedisJobStore(serviceContext); redisJobs != nil {
		serviceConfig.JobStore = redisJobs
	} else if config.FALLBACK_REDIS_TO_INTERNALSTORE {
		logger.Error("Redis job store is offline, using in-memory store")
		serviceConfig.JobStore = store.InitInMemoryJobStore()
	} else {
		logger.Error("Redis job store is offline. Shutting down.")
		return
	}
	service := job.InitJobService(serviceConfig)

	vectorDB, err := qdrantDB.NewClient(serviceContext)
	if err != nil {
		logger.Error("Vector DB failed to initialize. Shutting down.", "err", err)
		return
	}
	embedder, err := newEmbedder(serviceContext)
	if err != nil {
		logger.Error("Embedding service failed to initialize. Shutting down.", "provider", config.EmbeddingProvider, "err", err)
		return
	}

	textIndex := index.NewTextIndex(embedder, vectorDB, newEmbeddingCache(serviceContext, logger), config.EmbeddingDBName)
	ragService := rag.NewService(textIndex, vectorDB, embedder, lexicon)

	handlers.InitJobHandler(service)
	handlers.InitRetrieveHandler(ragService)

	mcpServer, err := mcpserver.NewServer(ragService)
	if err != nil {
		logger.Error("MCP server failed to initialize", "err", err)
		return
	}

	//init worker pool
	worker.InitServices(service, ragService)
	worker.InitWorkerPool(stopWorkerChannel, &workerWaitGroup)

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		WorkerStop:       stopWorkerChannel,
		Group:            &workerWaitGroup,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(listenAddr, mcpServer.Handler())

	<-stopExecution
	logger.Info("Server stopped")
}

func loadLexicon() (*config.Lexicon, error) {
	if config.LexiconPath == "" {
		return config.DefaultLexicon(), nil
	}
	return config.LoadLexicon(config.LexiconPath)
}

func newEmbedder(ctx context.Context) (embedding.Embedder, error) {
	switch config.EmbeddingProvider {
	case config.EmbeddingProviderGoogle:
		return googleEmbedding.NewGoogleEmbedder(ctx, config.GoogleEmbeddingModel, config.GoogleAPIKey, customHttpClient.Pooled())
	case config.EmbeddingProviderOpenAI:
		return openaiEmbedding.NewOpenAIEmbedder(config.OpenAIEmbeddingModel, config.OpenAIAPIKey, customHttpClient.Pooled())
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", config.EmbeddingProvider)
	}
}

// a nil *RedisEmbeddingCache must not end up inside the interface
func newEmbeddingCache(ctx context.Context, logger *logger_i.Logger) embedding.Cache {
	if cache := store.GetRedisEmbeddingCache(ctx); cache != nil {
		return cache
	}
	logger.Warn("Redis embedding cache is offline, using in-memory cache")
	return store.InitInMemoryEmbeddingCache(config.InMemoryEmbeddingCacheSize)
}
