package main

import (
	"context"
	"os"

	"github.com/boardcast/boardcast/collector"
	"github.com/boardcast/boardcast/config"
	"github.com/boardcast/boardcast/dedup"
	"github.com/boardcast/boardcast/engine"
	"github.com/boardcast/boardcast/formatter"
	"github.com/boardcast/boardcast/preview"
	"github.com/boardcast/boardcast/publisher"
	"github.com/boardcast/boardcast/utils/dotenv"
	Logger "github.com/boardcast/boardcast/utils/log"
)

// buildPublishers creates the adapter for every enabled platform. A
// platform that fails to authenticate is fatal when marked required,
// otherwise it is disabled for this run. With no platform enabled the run
// falls back to a dry-run publisher.
func buildPublishers(ctx context.Context, cfg *config.Config, httpClient collector.HttpClient) []publisher.Publisher {
	publishers := []publisher.Publisher{}

	if cfg.EnableTwitter {
		pub, err := publisher.NewTwitterPublisher(cfg.Twitter, cfg.HashtagName)
		if err != nil {
			if cfg.TwitterRequired {
				Logger.Log.Fatalf("fail to initialize required twitter client: %v", err)
			}
			Logger.Log.Warnf("twitter disabled for this run: %v", err)
		} else {
			publishers = append(publishers, pub)
		}
	}

	if cfg.EnableBluesky {
		resolver := preview.NewOgResolver(httpClient)
		pub, err := publisher.NewBlueskyPublisher(
			ctx, cfg.Bluesky, cfg.HashtagName, resolver, httpClient, cfg.FallbackImageUrl)
		if err != nil {
			if cfg.BlueskyRequired {
				Logger.Log.Fatalf("fail to initialize required bluesky client: %v", err)
			}
			Logger.Log.Warnf("bluesky disabled for this run: %v", err)
		} else {
			publishers = append(publishers, pub)
		}
	}

	if len(publishers) == 0 {
		Logger.Log.Warn("no platform enabled, running in dry-run mode")
		publishers = append(publishers, publisher.NewStdErrPublisher())
	}
	return publishers
}

func main() {
	dotenv.LoadDotEnvs()

	cfg, err := config.Load()
	if err != nil {
		Logger.Log.Fatal("invalid configuration: ", err)
	}
	Logger.InitLogger(cfg.LogFile, cfg.LogMaxSizeMb)

	ctx := context.Background()
	httpClient := collector.HttpClient{}

	e := engine.NewEngine(
		collector.NewBoardClient(httpClient, cfg.BoardUrl),
		dedup.NewStore(cfg.StateDir),
		formatter.NewFormatter(cfg.PostFormat, cfg.DomainName, cfg.BodyLimit),
		buildPublishers(ctx, cfg, httpClient),
		cfg.MinThreadAge,
	)
	e.Run(ctx)

	os.Exit(0)
}
