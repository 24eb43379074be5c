package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/cataloghub/product-service/internal/pkg/clock"
	"github.com/cataloghub/product-service/internal/product"
	"github.com/cataloghub/product-service/internal/report"
)

func (a *Application) initJob() {
	loc, _ := time.LoadLocation(a.appConfig.System.Location)
	a.sched = cron.New(cron.WithLocation(loc))

	_, err := a.sched.AddFunc("@daily", func() {
		a.SchedCatalogSnapshotTask()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	a.sched.Start()
}

// SchedCatalogSnapshotTask writes a full catalog report PDF into the workdir
// so yesterday's state stays available after later mutations.
func (a *Application) SchedCatalogSnapshotTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	store := product.NewGormStore(a.gormDB)
	svc := product.NewService(store, report.NewGenerator(), clock.RealClock{})

	data, err := svc.GenerateReport(context.Background(), nil, nil)
	if err != nil {
		zap.S().Errorf("catalog snapshot report failed: %v", err)
		return
	}

	dir := filepath.Join(a.appConfig.System.Workdir, "reports")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		zap.S().Errorf("catalog snapshot dir error: %v", err)
		return
	}

	name := fmt.Sprintf("product-report-%s.pdf", time.Now().Format("20060102"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		zap.S().Errorf("catalog snapshot write error: %v", err)
		return
	}
	zap.S().Infof("catalog report snapshot written: %s (%d bytes)", path, len(data))
}
