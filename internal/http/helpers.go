package http

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"cassa/internal/core"
)

// parseDate parses a date string in YYYY-MM-DD format.
func parseDate(dateStr string) (core.Date, error) {
	parsedTime, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return core.Date{}, err
	}
	return core.Date{Time: parsedTime}, nil
}

// parseID parses a positive numeric ID from a form or query value.
func parseID(value string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", value)
	}
	if id < 1 {
		return 0, fmt.Errorf("invalid id %d", id)
	}
	return id, nil
}

// parsePercent parses a percentage form value in [0, 100].
func parsePercent(value string) (uint, error) {
	p, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("invalid percentage %q", value)
	}
	if p < 0 || p > 100 {
		return 0, fmt.Errorf("percentage %d out of range", p)
	}
	return uint(p), nil
}

// formatAmount renders a Money value as a Euro currency string (e.g. "€12.34").
func formatAmount(m core.Money) string {
	if m.IsNegative() {
		return "-€" + strings.TrimPrefix(m.String(), "-")
	}
	return "€" + m.String()
}

// sanitizeInput removes potentially dangerous characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	result := strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
	return result
}

// generateRequestID creates a unique request ID for tracing.
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

// clientIPFrom extracts the client address, honoring proxy headers.
func clientIPFrom(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return ip
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	return r.RemoteAddr
}
