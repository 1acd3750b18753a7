package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/fsdevblog/shortlinks/internal/config"
	"github.com/fsdevblog/shortlinks/internal/db"
	"github.com/fsdevblog/shortlinks/internal/models"
	"github.com/fsdevblog/shortlinks/internal/services"

	"github.com/sirupsen/logrus"
)

const opTimeout = 10 * time.Second

// cliFlags флаги команд. Регистрируются до config.MustLoadConfig,
// т.к. flag.Parse вызывается внутри загрузки конфига.
type cliFlags struct {
	command string
	longURL string
	alias   string
	code    string
	owner   string
	ttl     time.Duration
}

func main() {
	var cf cliFlags
	flag.StringVar(&cf.command, "cmd", "", "Команда: create|resolve|stats|list|delete")
	flag.StringVar(&cf.longURL, "u", "", "Длинный URL (для create)")
	flag.StringVar(&cf.alias, "alias", "", "Пользовательский алиас (для create)")
	flag.StringVar(&cf.code, "code", "", "Короткий код (для resolve|stats|delete)")
	flag.StringVar(&cf.owner, "owner", "cli", "Идентификатор владельца")
	flag.DurationVar(&cf.ttl, "ttl", 0, "Срок жизни ссылки, 0 — бессрочно")

	appConf := config.MustLoadConfig()
	logger := appConf.Logger

	svc, svcErr := buildServices(appConf)
	if svcErr != nil {
		logger.WithError(svcErr).Fatal("init services")
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if err := run(ctx, svc.URLService, appConf, cf); err != nil {
		logger.WithError(err).Fatal("command failed")
	}
}

func buildServices(appConf *config.Config) (*services.Services, error) {
	conn, connErr := db.NewConnectionFactory(db.FactoryConfig{
		StorageType:  db.StorageType(appConf.DBType),
		SQLiteDBPath: &appConf.SQLiteDBPath,
	})
	if connErr != nil {
		return nil, fmt.Errorf("connection factory: %w", connErr)
	}

	svc, svcErr := services.Factory(services.FactoryParams{
		Conn:          conn,
		Type:          services.ServiceType(appConf.DBType),
		BaseURL:       appConf.BaseURL,
		CacheCapacity: appConf.CacheCapacity,
		Codec:         passthroughCodec{},
		Logger:        appConf.Logger,
	})
	if svcErr != nil {
		return nil, fmt.Errorf("services factory: %w", svcErr)
	}
	return svc, nil
}

//nolint:cyclop
func run(ctx context.Context, urlService services.URLShortener, appConf *config.Config, cf cliFlags) error {
	logger := appConf.Logger

	switch cf.command {
	case "create":
		var expiresAt *time.Time
		if cf.ttl > 0 {
			t := time.Now().Add(cf.ttl).UTC()
			expiresAt = &t
		}
		record, err := urlService.Create(ctx, services.CreateParams{
			LongURL:     cf.longURL,
			CustomAlias: cf.alias,
			ExpiresAt:   expiresAt,
			OwnerID:     cf.owner,
		})
		if err != nil {
			return err
		}
		logger.WithFields(logrus.Fields{
			"shortUrl": record.ShortURL,
			"code":     record.ShortCode,
		}).Info("created")
		fmt.Fprintln(os.Stdout, record.ShortURL)
	case "resolve":
		record, err := urlService.Resolve(ctx, cf.code)
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, record.LongURL)
	case "stats":
		stats, err := urlService.Stats(ctx, cf.code)
		if err != nil {
			return err
		}
		printStats(stats)
	case "list":
		records, err := urlService.ListForOwner(ctx, cf.owner)
		if err != nil {
			return err
		}
		for _, record := range records {
			fmt.Fprintf(os.Stdout, "%s\t%s\t%d clicks\n", record.ShortURL, record.LongURL, record.ClickCount)
		}
	case "delete":
		if err := urlService.Delete(ctx, cf.code, cf.owner); err != nil {
			return err
		}
		logger.WithField("code", cf.code).Info("deleted")
	default:
		return fmt.Errorf("unknown command: %q", cf.command)
	}
	return nil
}

func printStats(stats *models.Stats) {
	fmt.Fprintf(os.Stdout, "total clicks:\t%d\n", stats.TotalClicks)
	fmt.Fprintf(os.Stdout, "avg clicks/day:\t%.2f\n", stats.AverageClicksPerDay)
	if stats.LastClicked != nil {
		fmt.Fprintf(os.Stdout, "last clicked:\t%s\n", stats.LastClicked.Format(time.RFC3339))
	}
	for browser, count := range stats.BrowserStats {
		fmt.Fprintf(os.Stdout, "browser %s:\t%d\n", browser, count)
	}
	for referrer, count := range stats.ReferrerStats {
		fmt.Fprintf(os.Stdout, "referrer %s:\t%d\n", referrer, count)
	}
	for _, dc := range stats.ClicksByDate {
		fmt.Fprintf(os.Stdout, "%s:\t%d\n", dc.Date, dc.Count)
	}
}

// passthroughCodec заглушка кодека изображений: QR рендерится внешним
// сервисом, CLI хранит полезную нагрузку как есть.
type passthroughCodec struct{}

func (passthroughCodec) EncodeAsImage(text string) ([]byte, error) {
	return []byte(text), nil
}
