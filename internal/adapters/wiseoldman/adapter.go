package wiseoldman

import (
	"net/http"
	"time"

	"clan-points-tracker/internal/adapters/wiseoldman/api"
	"clan-points-tracker/internal/config"
)

const defaultHiscoresURL = "https://secure.runescape.com/m=hiscore_oldschool/hiscorepersonal?user1="

type Adapter struct {
	client         *api.Client
	hiscoresClient *http.Client
	hiscoresURL    string
	config         *config.Config
}

func NewAdapter(client *api.Client, cfg *config.Config) *Adapter {
	return &Adapter{
		client:      client,
		config:      cfg,
		hiscoresURL: defaultHiscoresURL,
		hiscoresClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}
