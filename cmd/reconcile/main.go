// reconcile adalah CLI operasional untuk membandingkan saldo stok
// tersimpan dengan saldo turunan dari log movement, dan memperbaikinya
// bila diminta. Dipakai operator saat dicurigai ada drift tanpa harus
// menunggu scheduler API.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/amanahtour/gudang-api/internal/application/ledger"
	"github.com/amanahtour/gudang-api/internal/infrastructure/postgres"
	"github.com/amanahtour/gudang-api/pkg/config"
	"github.com/amanahtour/gudang-api/pkg/logger"
)

func buildUseCase(c *cli.Context) (*ledger.ReconcileUseCase, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("muat konfigurasi: %w", err)
	}
	if dbURL := c.String("db-url"); dbURL != "" {
		cfg.DB.DatabaseURL = dbURL
	}

	pool, err := postgres.NewPool(c.Context, cfg.DB)
	if err != nil {
		return nil, nil, fmt.Errorf("koneksi PostgreSQL: %w", err)
	}

	txRunner := postgres.NewTxRunner(pool)
	itemRepo := postgres.NewItemRepository(pool)
	return ledger.NewReconcileUseCase(txRunner, itemRepo), pool.Close, nil
}

func printDrifts(drifts []ledger.DriftEntry, repaired bool) {
	if len(drifts) == 0 {
		fmt.Println("Tidak ada drift. Seluruh saldo konsisten dengan log movement.")
		return
	}
	verb := "ditemukan"
	if repaired {
		verb = "diperbaiki"
	}
	fmt.Printf("%d drift %s:\n", len(drifts), verb)
	for _, d := range drifts {
		scope := d.WarehouseID
		if scope == "" {
			scope = "(global)"
		}
		fmt.Printf("  barang=%s gudang=%s tersimpan=%s turunan=%s\n",
			d.ItemID, scope, d.Stored, d.Derived)
	}
}

func main() {
	app := &cli.App{
		Name:  "reconcile",
		Usage: "Rekonsiliasi saldo stok terhadap log movement",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "db-url",
				Usage:   "Connection string PostgreSQL (override konfigurasi)",
				EnvVars: []string{"DATABASE_URL"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "check",
				Usage: "Laporkan drift tanpa mengubah apa pun",
				Action: func(c *cli.Context) error {
					uc, closeFn, err := buildUseCase(c)
					if err != nil {
						return err
					}
					defer closeFn()

					drifts, err := uc.Check(c.Context)
					if err != nil {
						return err
					}
					printDrifts(drifts, false)
					if len(drifts) > 0 {
						return cli.Exit("", 1)
					}
					return nil
				},
			},
			{
				Name:  "repair",
				Usage: "Perbaiki drift: tulis ulang saldo dari log movement",
				Action: func(c *cli.Context) error {
					uc, closeFn, err := buildUseCase(c)
					if err != nil {
						return err
					}
					defer closeFn()

					drifts, err := uc.Repair(c.Context)
					if err != nil {
						return err
					}
					printDrifts(drifts, true)
					return nil
				},
			},
		},
	}

	log := logger.New(logger.Config{Env: "development", Level: "info"})
	if err := app.Run(os.Args); err != nil {
		if exitErr, ok := err.(cli.ExitCoder); ok {
			os.Exit(exitErr.ExitCode())
		}
		log.Fatal().Err(err).Msg("reconcile gagal")
	}
}
