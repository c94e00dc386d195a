package model

import "time"

// Config is the complete termlens configuration. Field groups map onto the
// config file sections; see DefaultConfig for the built-in defaults.
type Config struct {
	Canon       CanonConfig       `yaml:"canon" json:"canon"`
	Registry    RegistryConfig    `yaml:"registry" json:"registry"`
	Classifier  ClassifierConfig  `yaml:"classifier" json:"classifier"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" json:"concurrency"`
	HTTP        HTTPConfig        `yaml:"http" json:"http"`
	Cache       CacheConfig       `yaml:"cache" json:"cache"`
	LLM         LLMConfig         `yaml:"llm" json:"llm"`
	Output      OutputConfig      `yaml:"output" json:"output"`
}

// CaseFolding selects how the canonicalizer treats letter case.
type CaseFolding string

const (
	CaseSensitive        CaseFolding = "sensitive"
	CaseInsensitive      CaseFolding = "insensitive"
	CaseTitleInsensitive CaseFolding = "title-insensitive"
)

// CanonConfig controls term canonicalization.
type CanonConfig struct {
	Folding       CaseFolding `yaml:"folding" json:"folding"`
	StripSuffixes []string    `yaml:"strip_suffixes" json:"strip_suffixes"`
	AcronymMaxLen int         `yaml:"acronym_max_len" json:"acronym_max_len"`
	KnownAcronyms []string    `yaml:"known_acronyms" json:"known_acronyms"`
}

// RegistryConfig controls duplicate/conflict detection.
type RegistryConfig struct {
	// SimilarityThreshold is the token-set Jaccard similarity at or above
	// which two duplicate definition texts count as "same meaning".
	SimilarityThreshold float64 `yaml:"similarity_threshold" json:"similarity_threshold"`
}

// ClassifierConfig controls usage classification.
type ClassifierConfig struct {
	// NoiseWords are capitalized tokens that are never defined terms:
	// section headers, party proper nouns, and similar caller-known words.
	NoiseWords []string `yaml:"noise_words" json:"noise_words"`
}

// ConcurrencyConfig controls worker pools.
type ConcurrencyConfig struct {
	ClassifyWorkers int `yaml:"classify_workers" json:"classify_workers"`
	BatchWorkers    int `yaml:"batch_workers" json:"batch_workers"`
}

// HTTPConfig controls document fetching.
type HTTPConfig struct {
	Timeout       time.Duration `yaml:"timeout" json:"timeout"`
	UserAgent     string        `yaml:"user_agent" json:"user_agent"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes" json:"max_body_bytes"`
	RatePerHost   float64       `yaml:"rate_per_host" json:"rate_per_host"`
	RateBurst     int           `yaml:"rate_burst" json:"rate_burst"`
	RespectRobots bool          `yaml:"respect_robots" json:"respect_robots"`
	HTTPProxy     string        `yaml:"http_proxy" json:"http_proxy"`
	HTTPSProxy    string        `yaml:"https_proxy" json:"https_proxy"`
}

// CacheConfig controls the fetch cache.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" json:"enabled"`
	Dir     string        `yaml:"dir" json:"dir"`
	TTL     time.Duration `yaml:"ttl" json:"ttl"`
}

// LLMConfig controls the optional model-based candidate generator.
// The LLM only proposes candidates; it never participates in reconciliation.
type LLMConfig struct {
	Provider  string `yaml:"provider" json:"provider"` // "openai" or "" (disabled)
	Model     string `yaml:"model" json:"model"`
	APIKey    string `yaml:"-" json:"-"`
	BaseURL   string `yaml:"base_url" json:"base_url"` // OpenAI-compatible endpoint override
	Timeout   int    `yaml:"timeout" json:"timeout"`   // seconds
	MaxTokens int    `yaml:"max_tokens" json:"max_tokens"`
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" json:"verbose"`
	IncludeFooter bool `yaml:"include_footer" json:"include_footer"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Canon: CanonConfig{
			Folding:       CaseTitleInsensitive,
			StripSuffixes: []string{"'s", "s'", "s"},
			AcronymMaxLen: 6,
		},
		Registry: RegistryConfig{
			SimilarityThreshold: 0.85,
		},
		Classifier: ClassifierConfig{
			NoiseWords: []string{
				"Section", "Article", "Exhibit", "Schedule", "Appendix",
				"Annex", "Clause", "Recitals", "Whereas", "Witnesseth",
			},
		},
		Concurrency: ConcurrencyConfig{
			ClassifyWorkers: 4,
			BatchWorkers:    4,
		},
		HTTP: HTTPConfig{
			Timeout:       2 * time.Minute,
			UserAgent:     "Termlens/0.2 (+https://github.com/mwalden/termlens)",
			MaxBodyBytes:  4_000_000,
			RatePerHost:   2,
			RateBurst:     5,
			RespectRobots: true,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     24 * time.Hour,
		},
		LLM: LLMConfig{
			Provider:  "",
			Timeout:   60,
			MaxTokens: 4000,
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
	}
}
