package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Load reads and validates a YAML configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// Secrets holds API credentials. They never live in the YAML file;
// they come from the environment, optionally seeded by a .env file.
type Secrets struct {
	AssemblyAIKey  string
	ElevenLabsKey  string
	GeminiKeys     []string
	MeetingAPIKey  string
	ElevenLabsBase string
}

// LoadSecrets reads credentials from the environment. A missing .env
// file is not an error; the process environment still applies.
func LoadSecrets() Secrets {
	_ = godotenv.Load()

	var geminiKeys []string
	for _, k := range strings.Split(os.Getenv("GEMINI_API_KEYS"), ",") {
		if k = strings.TrimSpace(k); k != "" {
			geminiKeys = append(geminiKeys, k)
		}
	}

	return Secrets{
		AssemblyAIKey:  os.Getenv("ASSEMBLYAI_API_KEY"),
		ElevenLabsKey:  os.Getenv("ELEVENLABS_API_KEY"),
		GeminiKeys:     geminiKeys,
		MeetingAPIKey:  os.Getenv("MEETSTREAM_API_KEY"),
		ElevenLabsBase: os.Getenv("ELEVENLABS_BASE_URL"),
	}
}
