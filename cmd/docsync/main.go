// Command docsync copies the JSON content documents from a directory into the
// SQL documents table read by the gateway when CONTENT_SOURCE=sql.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/mind-engage/imuno/internal/bank"
	"github.com/mind-engage/imuno/internal/config"
	"github.com/mind-engage/imuno/internal/content"
	"github.com/mind-engage/imuno/internal/db"
	"github.com/mind-engage/imuno/internal/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "no .env file found, relying on environment")
	}
	cfg := config.FromEnv()
	config.InitLogger(cfg)

	dir := flag.String("dir", cfg.ContentDir, "directory holding questoes.json, modulo<N>.json and referencias.json")
	driver := flag.String("driver", cfg.DBDriver, "sqlite|postgres")
	dsn := flag.String("dsn", cfg.DBDSN, "database DSN")
	flag.Parse()

	if err := run(*dir, db.Driver(*driver), *dsn); err != nil {
		config.Logger.WithError(err).Error("docsync failed")
		os.Exit(1)
	}
}

func run(dir string, driver db.Driver, dsn string) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	fsrc, err := storage.NewFSSource(dir)
	if err != nil {
		return err
	}
	dbh, err := db.Open(ctx, driver, dsn)
	if err != nil {
		return fmt.Errorf("db open: %w", err)
	}
	defer dbh.Close()

	return syncDocs(ctx, fsrc, storage.NewSQLSource(dbh))
}

// syncDocs validates the question bank before copying anything, so a malformed
// bank never replaces a good one.
func syncDocs(ctx context.Context, from *storage.FSSource, to storage.Writer) error {
	log := config.WithContext(ctx)

	names, err := from.List()
	if err != nil {
		return err
	}
	bodies := make(map[string][]byte, len(names))
	for _, name := range names {
		b, err := from.Fetch(ctx, name)
		if err != nil {
			return err
		}
		bodies[name] = b
	}

	if b, ok := bodies[content.BankDocument]; ok {
		if err := bank.NewRepository().Load(b); err != nil {
			return fmt.Errorf("%s: %w", content.BankDocument, err)
		}
	}

	for _, name := range names {
		if err := to.Put(ctx, name, bodies[name]); err != nil {
			return fmt.Errorf("put %s: %w", name, err)
		}
		log.WithField("document", name).Info("synced")
	}
	log.Infof("synced %d documents", len(names))
	return nil
}
