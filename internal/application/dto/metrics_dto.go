package dto

import "github.com/shopspring/decimal"

// DashboardResponse métricas agregadas para el panel.
type DashboardResponse struct {
	TotalReceived  int               `json:"total_received"`
	TotalDelivered int               `json:"total_delivered"`
	TotalFalta     int               `json:"total_falta"`
	Revenue        decimal.Decimal   `json:"revenue"`
	ClientTotals   []ClientTotal     `json:"client_totals"`
	DailyTrend     []DailyTrendPoint `json:"daily_trend"`
}

// ClientTotal cantidad entregada acumulada por cliente.
type ClientTotal struct {
	Client    string `json:"client"`
	Delivered int    `json:"delivered"`
}

// DailyTrendPoint recibido/entregado por día (YYYY-MM-DD).
type DailyTrendPoint struct {
	Date      string `json:"date"`
	Received  int    `json:"received"`
	Delivered int    `json:"delivered"`
}
