package main

import (
	"os"
	"strings"
	"time"

	"github.com/rishi95122/helix-core/pkg/middleware"
)

var environment = envOr("HelixEnv", "dev")
var indexerRestUrl = envOr("HelixIndexerRestUrl", "http://localhost:4444")
var indexerWsUrl = envOr("HelixIndexerWsUrl", "ws://localhost:4444/ws")
var accountAddress = os.Getenv("HelixAccountAddress")
var marketIds = splitList(os.Getenv("HelixMarketIds"))
var duckdbPath = os.Getenv("HelixDuckDbPath")
var journalDir = os.Getenv("HelixJournalDir")

const (
	RouterEventCapacity = 1000
	AccountPollInterval = 30 * time.Second
	MonitorFlags        = middleware.MonitorBankBalances | middleware.MonitorSubaccountBalances | middleware.MonitorPositions
)

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
