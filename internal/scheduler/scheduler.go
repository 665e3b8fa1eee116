// Package scheduler ejecuta el recálculo nocturno de los resúmenes de
// stock: la ventana móvil de 30 días se desliza con el calendario, así que
// tasa y proyección pierden vigencia aunque no entren consumos nuevos.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/Granja-api/internal/application/feed"
	"github.com/jhoicas/Granja-api/pkg/config"
)

// Scheduler envuelve el cron de recálculo.
type Scheduler struct {
	cron    *cron.Cron
	stockUC *feed.StockUseCase
	cfg     config.SchedulerConfig
}

// New construye el scheduler. No arranca nada hasta Start.
func New(cfg config.SchedulerConfig, stockUC *feed.StockUseCase) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		stockUC: stockUC,
		cfg:     cfg,
	}
}

// Start registra el job de recálculo (cron estándar de 5 campos, por
// defecto medianoche) y arranca el cron. No hace nada si está deshabilitado.
func (s *Scheduler) Start() {
	if !s.cfg.Enabled {
		log.Info().Msg("scheduler deshabilitado por configuración")
		return
	}
	_, err := s.cron.AddFunc(s.cfg.RecomputeCron, s.recompute)
	if err != nil {
		log.Error().Err(err).Str("cron", s.cfg.RecomputeCron).Msg("no se pudo registrar el recálculo nocturno")
		return
	}
	s.cron.Start()
	log.Info().Str("cron", s.cfg.RecomputeCron).Msg("scheduler iniciado")
}

// Stop detiene el cron y espera a que termine el job en curso.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(30 * time.Second):
		log.Warn().Msg("recálculo en curso no terminó antes del timeout de apagado")
	}
}

func (s *Scheduler) recompute() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	s.stockUC.RecomputeAll(ctx)
}
