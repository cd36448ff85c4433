// Package analytics genera las métricas agregadas del panel: cantidades
// globales, ingresos reconocidos, acumulado por cliente y tendencia diaria.
package analytics

import (
	"context"
	"fmt"
	"sort"

	"github.com/hawlader/taller-api/internal/application/dto"
	"github.com/hawlader/taller-api/internal/application/finance"
	"github.com/hawlader/taller-api/internal/domain/entity"
	"github.com/hawlader/taller-api/internal/domain/quantity"
	"github.com/hawlader/taller-api/internal/domain/repository"
)

const trendDateLayout = "2006-01-02"

// DashboardUseCase construye el resumen del panel a partir de entradas y
// entregas. Todo se calcula en memoria sobre los listados completos: el
// volumen de un taller cabe de sobra.
type DashboardUseCase struct {
	entryRepo    repository.EntryRepository
	deliveryRepo repository.DeliveryRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(entryRepo repository.EntryRepository, deliveryRepo repository.DeliveryRepository) *DashboardUseCase {
	return &DashboardUseCase{entryRepo: entryRepo, deliveryRepo: deliveryRepo}
}

// GetSummary calcula las métricas del panel.
//
// Dos consultas en paralelo:
//  1. List de entradas  → recibido, ingresos
//  2. List de entregas  → entregado, acumulado por cliente, tendencia
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardResponse, error) {
	type entriesResult struct {
		entries []*entity.Entry
		err     error
	}
	type deliveriesResult struct {
		deliveries []entity.Delivery
		err        error
	}

	entriesCh := make(chan entriesResult, 1)
	deliveriesCh := make(chan deliveriesResult, 1)

	go func() {
		entries, err := uc.entryRepo.List()
		entriesCh <- entriesResult{entries, err}
	}()
	go func() {
		deliveries, err := uc.deliveryRepo.List()
		deliveriesCh <- deliveriesResult{deliveries, err}
	}()

	er := <-entriesCh
	dr := <-deliveriesCh
	if er.err != nil {
		return nil, fmt.Errorf("dashboard: entradas: %w", er.err)
	}
	if dr.err != nil {
		return nil, fmt.Errorf("dashboard: entregas: %w", dr.err)
	}

	clientByCode := make(map[int]string, len(er.entries))
	received := 0
	trend := make(map[string]*dto.DailyTrendPoint)
	for _, e := range er.entries {
		clientByCode[e.Code] = e.Client
		for _, item := range e.Items {
			n := quantity.Sum(item.SizeQuantities)
			received += n
			trendPoint(trend, e.Date.Format(trendDateLayout)).Received += n
		}
	}

	delivered := 0
	byClient := make(map[string]int)
	for _, d := range dr.deliveries {
		n := 0
		for _, item := range d.Items {
			n += quantity.Sum(item.DeliveryQuantities)
		}
		delivered += n
		byClient[clientByCode[d.Code]] += n
		trendPoint(trend, d.DeliveryDate.Format(trendDateLayout)).Delivered += n
	}

	clientTotals := make([]dto.ClientTotal, 0, len(byClient))
	for client, qty := range byClient {
		clientTotals = append(clientTotals, dto.ClientTotal{Client: client, Delivered: qty})
	}
	sort.Slice(clientTotals, func(i, j int) bool {
		return clientTotals[i].Delivered > clientTotals[j].Delivered
	})

	dates := make([]string, 0, len(trend))
	for date := range trend {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	dailyTrend := make([]dto.DailyTrendPoint, 0, len(dates))
	for _, date := range dates {
		dailyTrend = append(dailyTrend, *trend[date])
	}

	return &dto.DashboardResponse{
		TotalReceived:  received,
		TotalDelivered: delivered,
		TotalFalta:     received - delivered,
		Revenue:        finance.Revenue(er.entries),
		ClientTotals:   clientTotals,
		DailyTrend:     dailyTrend,
	}, nil
}

func trendPoint(trend map[string]*dto.DailyTrendPoint, date string) *dto.DailyTrendPoint {
	p, ok := trend[date]
	if !ok {
		p = &dto.DailyTrendPoint{Date: date}
		trend[date] = p
	}
	return p
}
