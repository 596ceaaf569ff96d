package wiseoldman

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"clan-points-tracker/internal/adapters/metrics"
	"clan-points-tracker/internal/adapters/wiseoldman/api"
	"clan-points-tracker/internal/adapters/wiseoldman/scraper"
	"clan-points-tracker/internal/core/domain"
	"clan-points-tracker/internal/core/ports"

	"github.com/tidwall/gjson"
)

var errNoSnapshot = errors.New("player has no tracked snapshot")

// FetchSnapshot reads the player from Wise Old Man and falls back to the
// official hiscores page when that fails and the fallback is enabled.
func (a *Adapter) FetchSnapshot(ctx context.Context, playerName string) (ports.RawDocument, error) {
	raw, err := a.fetchWiseOldMan(ctx, playerName)
	if err == nil {
		return raw, nil
	}

	if !a.config.UseHiscoresFallback || ctx.Err() != nil {
		slog.Error("Failed to fetch player from Wise Old Man", "player", playerName, "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrSnapshotUnavailable, err)
	}

	slog.Warn("Wise Old Man unavailable, falling back to hiscores", "player", playerName, "error", err)

	fallback, herr := a.FetchHiscores(ctx, playerName)
	if herr != nil {
		slog.Error("Failed to fetch player from hiscores", "player", playerName, "error", herr)
		return nil, fmt.Errorf("%w: %w", domain.ErrSnapshotUnavailable, errors.Join(err, herr))
	}

	return fallback, nil
}

func (a *Adapter) fetchWiseOldMan(ctx context.Context, playerName string) (ports.RawDocument, error) {
	if a.config.TrackOnUpdate {
		body, err := a.client.UpdatePlayer(ctx, playerName)
		if err == nil {
			return body, nil
		}
		slog.Warn("Wise Old Man update failed, reading stored player", "player", playerName, "error", err)
	}

	body, err := a.client.GetPlayer(ctx, playerName)
	if err != nil {
		var statusErr *api.StatusError
		if a.config.TrackOnUpdate || !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusNotFound {
			return nil, err
		}
		// Players Wise Old Man has never seen are created by their first update.
		return a.refresh(ctx, playerName)
	}

	if !gjson.GetBytes(body, "latestSnapshot").IsObject() {
		return a.refresh(ctx, playerName)
	}

	return body, nil
}

func (a *Adapter) refresh(ctx context.Context, playerName string) (ports.RawDocument, error) {
	body, err := a.client.UpdatePlayer(ctx, playerName)
	if err != nil {
		return nil, err
	}
	if !gjson.GetBytes(body, "latestSnapshot").IsObject() {
		return nil, errNoSnapshot
	}
	return body, nil
}

// FetchHiscores scrapes the official hiscores personal page into a raw
// progress document.
func (a *Adapter) FetchHiscores(ctx context.Context, playerName string) (ports.RawDocument, error) {
	start := time.Now()
	targetURL := a.hiscoresURL + url.QueryEscape(playerName)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	a.addBrowserHeaders(req)

	resp, err := a.hiscoresClient.Do(req)

	status := "error"
	if err == nil {
		status = fmt.Sprintf("%d", resp.StatusCode)
	}
	duration := time.Since(start).Seconds()

	metrics.HiscoresRequestDuration.WithLabelValues(status).Observe(duration)
	metrics.HiscoresRequests.WithLabelValues(status).Inc()

	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	raw, err := scraper.ParseHiscores(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}

	slog.Info("Fetched player from hiscores", "player", playerName)
	return raw, nil
}

func (a *Adapter) addBrowserHeaders(req *http.Request) {
	agent := a.config.UserAgent
	if agent == "" {
		agent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	}
	req.Header.Set("User-Agent", agent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
}
