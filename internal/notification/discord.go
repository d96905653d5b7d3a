package notification

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/forest-guardian/landsat-lst/internal/properties"
	"github.com/forest-guardian/landsat-lst/output"
)

const (
	colorRed   = 16711680
	colorGreen = 65280
)

type DiscordMessage struct {
	Embeds []DiscordEmbed `json:"embeds"`
}

type DiscordEmbed struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Color       int    `json:"color"`
}

func send(url string, embed DiscordEmbed) error {
	if url == "" {
		return nil
	}

	payload, err := json.Marshal(DiscordMessage{Embeds: []DiscordEmbed{embed}})
	if err != nil {
		return err
	}

	resp, err := http.Post(url, "application/json", bytes.NewBuffer(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to send Discord notification, status code: %d", resp.StatusCode)
	}
	return nil
}

// SendDiscordErrorNotification is a no-op when no webhook is configured.
func SendDiscordErrorNotification(errorMessage string) error {
	return send(properties.DiscordErrorNotificationUrl(), DiscordEmbed{
		Title:       "🚨 LST run failed",
		Description: errorMessage,
		Color:       colorRed,
	})
}

func SendDiscordSuccessNotification(successMessage string) error {
	return send(properties.DiscordSuccessNotificationUrl(), DiscordEmbed{
		Title:       "✅ LST run finished",
		Description: successMessage,
		Color:       colorGreen,
	})
}

// DiscordPublisher announces every published product on a webhook.
type DiscordPublisher struct {
	URL string
}

func (p DiscordPublisher) Publish(a output.Artifact) error {
	return send(p.URL, DiscordEmbed{
		Title: fmt.Sprintf("🛰️ %s", a.Name),
		Description: fmt.Sprintf("%s written to %s\nmin %.4f, max %.4f, mean %.4f over %d pixels",
			a.Product, a.Location, a.Stats.Min, a.Stats.Max, a.Stats.Mean, a.Stats.Valid),
		Color: colorGreen,
	})
}
