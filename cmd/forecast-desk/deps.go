package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/cristianoliveira/forecast-desk/internal/colors"
	"github.com/cristianoliveira/forecast-desk/internal/data"
	"github.com/cristianoliveira/forecast-desk/internal/domain"
	"github.com/cristianoliveira/forecast-desk/internal/hooks"
	"github.com/cristianoliveira/forecast-desk/internal/storage"
	"github.com/cristianoliveira/forecast-desk/internal/version"
)

// forecastClient opens the configured store on first use, after the root
// command has loaded the configuration. Changes run the user's hook scripts.
type forecastClient struct {
	open  func() (storage.ForecastStore, error)
	store storage.ForecastStore
	hooks *hooks.Runner
}

func newForecastClient(open func() (storage.ForecastStore, error)) *forecastClient {
	return &forecastClient{open: open}
}

var coreClient = newForecastClient(storage.NewFromConfig)

func (c *forecastClient) Store() (storage.ForecastStore, error) {
	if c.store != nil {
		return c.store, nil
	}
	store, err := c.open()
	if err != nil {
		return nil, err
	}
	c.store = store
	if c.hooks == nil {
		c.hooks = hooks.NewFromConfig()
		c.hooks.Output = os.Stderr
	}
	return store, nil
}

// afterChange runs a post hook. The change already happened, so failures only warn.
func (c *forecastClient) afterChange(ctx context.Context, point string, env map[string]string) {
	if err := c.hooks.Run(ctx, point, env); err != nil {
		colors.Warning(err.Error())
	}
}

// Close closes the store if it was opened.
func (c *forecastClient) Close() error {
	if c.store == nil {
		return nil
	}
	err := c.store.Close()
	c.store = nil
	return err
}

func (c *forecastClient) ListForecasts(ctx context.Context, filter data.Filter) ([]domain.Forecast, int, error) {
	store, err := c.Store()
	if err != nil {
		return nil, 0, err
	}
	total, err := store.GetRecordCount(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	list, err := store.GetRecordList(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (c *forecastClient) GetForecast(ctx context.Context, id int64) (domain.Forecast, error) {
	store, err := c.Store()
	if err != nil {
		return domain.Forecast{}, err
	}
	return store.GetRecord(ctx, id)
}

func (c *forecastClient) AddForecast(ctx context.Context, f domain.Forecast) data.Result {
	store, err := c.Store()
	if err != nil {
		return data.Failed("", err)
	}
	if err := c.hooks.Run(ctx, hooks.PreSave, hooks.ForecastEnv(f)); err != nil {
		return data.Failed("", err)
	}
	result := store.CreateRecord(ctx, f)
	if result.Success {
		f.ID = result.NewID
		c.afterChange(ctx, hooks.PostSave, hooks.ForecastEnv(f))
	}
	return result
}

func (c *forecastClient) UpdateForecast(ctx context.Context, f domain.Forecast) data.Result {
	store, err := c.Store()
	if err != nil {
		return data.Failed("", err)
	}
	if err := c.hooks.Run(ctx, hooks.PreSave, hooks.ForecastEnv(f)); err != nil {
		return data.Failed("", err)
	}
	result := store.UpdateRecord(ctx, f)
	if result.Success {
		c.afterChange(ctx, hooks.PostSave, hooks.ForecastEnv(f))
	}
	return result
}

func (c *forecastClient) DeleteForecast(ctx context.Context, id int64) data.Result {
	store, err := c.Store()
	if err != nil {
		return data.Failed("", err)
	}
	env := map[string]string{"FORECAST_ID": strconv.FormatInt(id, 10)}
	if err := c.hooks.Run(ctx, hooks.PreDelete, env); err != nil {
		return data.Failed("", err)
	}
	result := store.DeleteRecord(ctx, domain.Forecast{ID: id})
	if result.Success {
		c.afterChange(ctx, hooks.PostDelete, env)
	}
	return result
}

func (c *forecastClient) PruneOlderThan(ctx context.Context, days int, dryRun bool) (int, error) {
	store, err := c.Store()
	if err != nil {
		return 0, err
	}
	n, err := store.PruneOlderThan(ctx, days, dryRun)
	if err == nil && !dryRun && n > 0 {
		c.afterChange(ctx, hooks.PostPrune, map[string]string{
			"FORECAST_PRUNED":         strconv.Itoa(n),
			"FORECAST_RETENTION_DAYS": strconv.Itoa(days),
		})
	}
	return n, err
}

func (c *forecastClient) ImportTSV(ctx context.Context, r io.Reader, dryRun bool) (domain.ImportStats, error) {
	store, err := c.Store()
	if err != nil {
		return domain.ImportStats{}, fmt.Errorf("import: %w", err)
	}
	stats, err := store.ImportTSV(ctx, r, dryRun)
	if err == nil && !dryRun && stats.ImportedRows > 0 {
		c.afterChange(ctx, hooks.PostImport, map[string]string{
			"FORECAST_IMPORTED": strconv.Itoa(stats.ImportedRows),
		})
	}
	return stats, err
}

func (c *forecastClient) Version() string {
	return version.String()
}
