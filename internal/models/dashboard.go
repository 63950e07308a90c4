package models

import (
	"encoding/json"
	"time"
)

// StatCard is one summary card on a role dashboard.
type StatCard struct {
	Key   string      `json:"key"`
	Label string      `json:"label"`
	Value json.Number `json:"value"`
	Tone  Tone        `json:"tone,omitempty"`
}

// DashboardSummary is the dashboard payload of one role.
type DashboardSummary struct {
	Role          string                   `json:"role"`
	Cards         []StatCard               `json:"cards"`
	Notifications []Notification           `json:"notifications,omitempty"`
	Schools       []map[string]interface{} `json:"schools,omitempty"`
}

// Notification is a row of the dashboard notification list.
type Notification struct {
	ID      ID     `json:"id"`
	Title   string `json:"judul"`
	Message string `json:"pesan"`
	Time    string `json:"waktu"`
	Read    bool   `json:"dibaca"`
}

// GatewayMetrics is a point-in-time summary of gateway traffic.
type GatewayMetrics struct {
	RequestsTotal             uint64    `json:"requestsTotal"`
	AverageRequestDurationMs  float64   `json:"averageRequestDurationMs"`
	UpstreamCallsTotal        uint64    `json:"upstreamCallsTotal"`
	UpstreamErrorsTotal       uint64    `json:"upstreamErrorsTotal"`
	AverageUpstreamDurationMs float64   `json:"averageUpstreamDurationMs"`
	ActiveConnections         int64     `json:"activeConnections"`
	Goroutines                int       `json:"goroutines"`
	GeneratedAt               time.Time `json:"generatedAt"`
}
