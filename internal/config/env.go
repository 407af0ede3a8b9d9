package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// values that must never be committed are only read from the environment
var (
	AuthToken         string
	NoAuthBypass      bool
	RedisPassword     string
	GoogleAPIKey      string
	OpenAIAPIKey      string
	EmbeddingProvider = EmbeddingProviderGoogle
	LexiconPath       string
)

// LoadEnv reads an optional .env file and then the process environment.
// Call it once from main before any client is constructed.
func LoadEnv() {
	_ = godotenv.Load()

	AuthToken = os.Getenv("API_AUTH_TOKEN")
	NoAuthBypass, _ = strconv.ParseBool(os.Getenv("NO_AUTH_BYPASS"))
	RedisPassword = os.Getenv("REDIS_PASSWORD")
	GoogleAPIKey = os.Getenv("GOOGLE_API_KEY")
	OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	LexiconPath = os.Getenv("RAG_LEXICON_PATH")

	if p := os.Getenv("EMBEDDING_PROVIDER"); p != "" {
		EmbeddingProvider = p
	}
}
