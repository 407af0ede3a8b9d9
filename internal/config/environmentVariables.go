package config

import (
	"log/slog"
	"time"
)

const (
	IS_PROD                         = false
	LOG_LEVEL_PROD                  = slog.LevelInfo
	FALLBACK_REDIS_TO_INTERNALSTORE = true //if redis init fails, it falls back to an internals in-memory store
	TRACE_ID_KEY                    = "traceId"
	RATE_LIMIT_PER_SECOND           = 2
	BURST_RATE_LIMIT_PER_SECOND     = 5

	//TODO:this will differ based on the request and provider
	EmbeddingOutputDimensionality int32 = 1536
	EmbeddingDBName                     = "security-knowledge-base"

	RequestsPerNewWorkerCount int64 = 10
	MaxWorkerCount            int64 = 4
	MinWorkerCount            int64 = 1
	IdleWorkerTimeout               = 1 * time.Minute
	IngestJobTimeout                = 10 * time.Minute

	//serverTimeouts
	ReadTimeout            = 5 * time.Second
	WriteTimeout           = 30 * time.Second
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//server listening port
	ServerListenAddr = ":3000"

	//job requests buffer limit
	BufferLimit = 100

	//vectorDB
	QdrantConnectionTimeout = 30 * time.Second
	QdrantHost              = "localhost"
	QdrantPort              = 6333 //http
	QdrantGrpcPort          = 6334
	QdrantUseTLS            = false //set for https
	QdrantPoolSize          = 2     //2-5 is preferred for prod according to documentation

	//index circuit breaker
	IndexBreakerMaxRequests  = 3
	IndexBreakerInterval     = 30 * time.Second
	IndexBreakerOpenTimeout  = 15 * time.Second
	IndexBreakerMinRequests  = 5
	IndexBreakerFailureRatio = 0.6

	//embeddings
	EmbeddingProviderGoogle = "google"
	EmbeddingProviderOpenAI = "openai"
	GoogleEmbeddingModel    = "gemini-embedding-001"
	OpenAIEmbeddingModel    = "text-embedding-3-small"
	EmbeddingBatchSize      = 100
	HugeDataSetChunkCount   = 1000000 //only switch to the async batch api for really huge documents

	MaxIdleConns        = 50
	MaxIdleConnsPerHost = 25
	IdleConnTimeout     = 60 * time.Second

	//redis
	redisHost = "127.0.0.1"
	redisPort = "6379"
	RedisAddr = redisHost + ":" + redisPort

	//redis has 16 DB we can use
	RedisJobStore       = 0
	RedisEmbeddingCache = 1

	//redis timeouts
	RedisJobStoreTTL       = 24 * time.Hour
	RedisEmbeddingCacheTTL = 7 * 24 * time.Hour

	//used when redis is offline
	InMemoryEmbeddingCacheSize = 2000

	//retrieval
	DefaultRetrieveK           = 5
	MaxRequestedK              = 50
	AdaptiveKDelta             = 5
	AdaptiveKMax               = 15
	FingerprintLength          = 100
	VariantSearchTimeout       = 10 * time.Second
	MaxParallelVariantSearches = 4
	RetrieveTimeout            = 30 * time.Second

	//chunking windows (characters)
	TextbookChunkSize    = 1000
	TextbookChunkOverlap = 200
	ThaiChunkSize        = 800
	ThaiChunkOverlap     = 150
	SlideChunkSize       = 1000
	SlideChunkOverlap    = 100

	//ingestion uploads
	MaxUploadSize  = 32 << 20 //32mb
	UploadDirName  = "temporary_data"
	PageExtractTTL = 10 * time.Second

	//mcp
	MCPServerName    = "cyber-rag"
	MCPServerVersion = "0.1.0"
)
