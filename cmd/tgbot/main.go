package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"Radiant/internal/calc/dashboard"
	"Radiant/internal/config"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(config.DefaultPath)
	if err != nil {
		log.WithError(err).Fatal("load config")
	}
	log.SetLevel(cfg.LogLevel)
	if cfg.BotToken == "" {
		log.Fatal("TOKEN_BOT missing")
	}

	log.Info("bot started")
	poll(ctx, NewClient(cfg.BotToken), cfg.Defaults)
	log.Info("bot stopped")
}

// poll long-polls for updates until ctx is done.
func poll(ctx context.Context, c *Client, defaults dashboard.Input) {
	offset := 0
	for ctx.Err() == nil {
		updates, err := c.GetUpdates(ctx, offset)
		if err != nil {
			if !errors.Is(err, context.Canceled) {
				log.WithError(err).Warn("getUpdates")
				sleep(ctx, 2*time.Second)
			}
			continue
		}
		for _, u := range updates {
			offset = u.UpdateID + 1
			handleUpdate(ctx, c, u, defaults)
		}
	}
}

func handleUpdate(ctx context.Context, c *Client, u Update, defaults dashboard.Input) {
	if u.Message == nil {
		return
	}
	text, ok := reply(u.Message.Text, defaults)
	if !ok {
		return
	}
	if err := c.SendMessage(ctx, u.Message.Chat.ID, text); err != nil {
		log.WithError(err).WithField("chat_id", u.Message.Chat.ID).Warn("sendMessage")
	}
}

func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
