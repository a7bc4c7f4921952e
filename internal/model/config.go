package model

import (
	"os"
	"path/filepath"
	"time"
)

// Config is the complete newscred configuration. It is built once at startup
// and passed by value into constructors; no package holds it as a global.
type Config struct {
	HTTP        HTTPConfig        `yaml:"http" mapstructure:"http"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	FactCheck   FactCheckConfig   `yaml:"factcheck" mapstructure:"factcheck"`
	Social      SocialConfig      `yaml:"social" mapstructure:"social"`
	Classifier  ClassifierConfig  `yaml:"classifier" mapstructure:"classifier"`
	Scoring     ScoringConfig     `yaml:"scoring" mapstructure:"scoring"`
	Reputation  ReputationConfig  `yaml:"reputation" mapstructure:"reputation"`
	Store       StoreConfig       `yaml:"store" mapstructure:"store"`
	Server      ServerConfig      `yaml:"server" mapstructure:"server"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Verbose     bool              `yaml:"verbose" mapstructure:"verbose"`
}

// HTTPConfig controls outbound page fetching
type HTTPConfig struct {
	Timeout       time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent     string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	RespectRobots bool          `yaml:"respect_robots" mapstructure:"respect_robots"`
	RatePerSecond float64       `yaml:"rate_per_second" mapstructure:"rate_per_second"`
	RateBurst     int           `yaml:"rate_burst" mapstructure:"rate_burst"`
	HTTPProxy     string        `yaml:"http_proxy" mapstructure:"http_proxy"`
	HTTPSProxy    string        `yaml:"https_proxy" mapstructure:"https_proxy"`
}

// CacheConfig controls page and fact-check response caching
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// FactCheckConfig configures the fact-check evidence collaborator
type FactCheckConfig struct {
	APIKey       string        `yaml:"api_key" mapstructure:"api_key"`
	BaseURL      string        `yaml:"base_url" mapstructure:"base_url"`
	LanguageCode string        `yaml:"language_code" mapstructure:"language_code"`
	PageSize     int           `yaml:"page_size" mapstructure:"page_size"`
	Timeout      time.Duration `yaml:"timeout" mapstructure:"timeout"`
	MaxQueries   int           `yaml:"max_queries" mapstructure:"max_queries"` // Key phrases queried per request
}

// SocialConfig configures the social platform collaborator
type SocialConfig struct {
	AccessToken string        `yaml:"access_token" mapstructure:"access_token"`
	BaseURL     string        `yaml:"base_url" mapstructure:"base_url"`
	Timeout     time.Duration `yaml:"timeout" mapstructure:"timeout"`
	Hostnames   []string      `yaml:"hostnames" mapstructure:"hostnames"` // Hosts treated as social platforms
}

// ClassifierConfig configures the black-box text classifier
type ClassifierConfig struct {
	Provider  string        `yaml:"provider" mapstructure:"provider"` // "openai" or "lexical"
	Model     string        `yaml:"model" mapstructure:"model"`
	APIKey    string        `yaml:"api_key" mapstructure:"api_key"`
	BaseURL   string        `yaml:"base_url" mapstructure:"base_url"`
	Timeout   time.Duration `yaml:"timeout" mapstructure:"timeout"`
	MaxTokens int           `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// ScoringConfig holds the aggregation weights. The five weights must sum to
// exactly 1.0 and are never renormalized when a signal defaults.
type ScoringConfig struct {
	ClassifierWeight  float64 `yaml:"classifier_weight" mapstructure:"classifier_weight"`
	EvidenceWeight    float64 `yaml:"evidence_weight" mapstructure:"evidence_weight"`
	AccountRiskWeight float64 `yaml:"account_risk_weight" mapstructure:"account_risk_weight"`
	TextFlagsWeight   float64 `yaml:"text_flags_weight" mapstructure:"text_flags_weight"`
	SourceRepWeight   float64 `yaml:"source_reputation_weight" mapstructure:"source_reputation_weight"`
}

// Weight returns the configured weight for a signal family
func (s ScoringConfig) Weight(name SignalName) float64 {
	switch name {
	case SignalClassifier:
		return s.ClassifierWeight
	case SignalEvidence:
		return s.EvidenceWeight
	case SignalAccountRisk:
		return s.AccountRiskWeight
	case SignalTextFlags:
		return s.TextFlagsWeight
	case SignalSourceRep:
		return s.SourceRepWeight
	default:
		return 0
	}
}

// Sum returns the total of the five weights
func (s ScoringConfig) Sum() float64 {
	return s.ClassifierWeight + s.EvidenceWeight + s.AccountRiskWeight +
		s.TextFlagsWeight + s.SourceRepWeight
}

// ReputationConfig is the fixed domain reputation table. Entries are exact
// hostname matches; TLD and social-platform fallbacks are applied by the
// scorer in priority order.
type ReputationConfig struct {
	Reliable   map[string]float64 `yaml:"reliable" mapstructure:"reliable"`
	Unreliable map[string]float64 `yaml:"unreliable" mapstructure:"unreliable"`
}

// StoreConfig controls verdict persistence
type StoreConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Dir     string `yaml:"dir" mapstructure:"dir"`
}

// ServerConfig controls the HTTP API surface
type ServerConfig struct {
	Addr         string        `yaml:"addr" mapstructure:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
}

// ConcurrencyConfig bounds parallel work
type ConcurrencyConfig struct {
	StageTimeout time.Duration `yaml:"stage_timeout" mapstructure:"stage_timeout"` // Per signal-gathering stage
	BatchWorkers int           `yaml:"batch_workers" mapstructure:"batch_workers"`
}

// DefaultConfig returns the built-in configuration
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:       30 * time.Second,
			UserAgent:     "newscred/0.3 (+https://github.com/pdelacruz/newscred)",
			MaxBodyBytes:  2_000_000,
			RespectRobots: true,
			RatePerSecond: 2,
			RateBurst:     5,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       filepath.Join(os.TempDir(), "newscred-cache"),
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		FactCheck: FactCheckConfig{
			BaseURL:      "https://factchecktools.googleapis.com/v1alpha1/claims:search",
			LanguageCode: "en",
			PageSize:     10,
			Timeout:      10 * time.Second,
			MaxQueries:   3,
		},
		Social: SocialConfig{
			BaseURL: "https://graph.facebook.com/v18.0",
			Timeout: 10 * time.Second,
			Hostnames: []string{
				"facebook.com", "www.facebook.com", "m.facebook.com",
				"fb.com", "fb.watch",
			},
		},
		Classifier: ClassifierConfig{
			Provider:  "lexical",
			Model:     "gpt-4o-mini",
			Timeout:   20 * time.Second,
			MaxTokens: 200,
		},
		Scoring: ScoringConfig{
			ClassifierWeight:  0.35,
			EvidenceWeight:    0.30,
			AccountRiskWeight: 0.15,
			TextFlagsWeight:   0.10,
			SourceRepWeight:   0.10,
		},
		Reputation: ReputationConfig{
			Reliable: map[string]float64{
				"bbc.com":            0.9,
				"reuters.com":        0.9,
				"ap.org":             0.9,
				"cnn.com":            0.8,
				"nytimes.com":        0.8,
				"washingtonpost.com": 0.8,
				"theguardian.com":    0.8,
				"npr.org":            0.8,
				"abscbn.com":         0.7,
				"gmanetwork.com":     0.7,
				"inquirer.net":       0.7,
				"rappler.com":        0.7,
			},
			Unreliable: map[string]float64{
				"fake-news-site.com":      0.1,
				"clickbait-news.com":      0.2,
				"conspiracy-theories.com": 0.1,
			},
		},
		Store: StoreConfig{
			Enabled: false,
			Dir:     "./newscred-verdicts",
		},
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			MaxBodyBytes: 1 << 20,
		},
		Concurrency: ConcurrencyConfig{
			StageTimeout: 25 * time.Second,
			BatchWorkers: 4,
		},
	}
}
