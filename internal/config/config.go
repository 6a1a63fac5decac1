/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

// Package config loads the runtime configuration from the environment, with
// an optional .env file for development.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config carries everything the process reads from the environment.
//
// SessionSecret may be empty: the server still boots, but login and signup
// fail at request time since no session can be issued.
type Config struct {
	Port          uint16   // HTTP listen port
	DatabasePath  string   // Path of the SQLite database file
	SessionSecret string   // Key used to sign the session cookie
	CORSOrigins   []string // Allowed browser origins

	GenAIURL string // Base URL of the generative-AI provider
	GenAIKey string // API key for the generative-AI provider

	LogLevel  string
	LogFormat string
}

// Load reads the .env file (if any) and the environment. Missing values fall
// back to development defaults; nothing here is fatal.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:          envUint16("PORT", 5001),
		DatabasePath:  envString("DATABASE_PATH", "connecto.db"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		CORSOrigins:   envList("CORS_ORIGINS", []string{"http://localhost:5176", "http://127.0.0.1:5176"}),
		GenAIURL:      envString("GENAI_API_URL", "https://generativelanguage.googleapis.com/v1beta/models/gemini-1.5-flash:generateContent"),
		GenAIKey:      os.Getenv("GENAI_API_KEY"),
		LogLevel:      envString("LOG_LEVEL", "info"),
		LogFormat:     envString("LOG_FORMAT", "json"),
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envUint16(key string, fallback uint16) uint16 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseUint(v, 10, 16)
	if err != nil {
		return fallback
	}
	return uint16(n)
}

func envList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
