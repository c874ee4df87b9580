package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"strings"

	"prospector/internal/modkit"
	"prospector/internal/modkit/module"
	"prospector/internal/modkit/repokit"
	"prospector/internal/platform/config"
	"prospector/internal/platform/logger"
	"prospector/internal/platform/store"

	discdom "prospector/internal/services/discovery/domain"
	discmod "prospector/internal/services/discovery/module"
	prospmod "prospector/internal/services/prospects/module"
)

func main() {
	var (
		intentID  = flag.String("intent", "", "intent id from the catalog (required)")
		mode      = flag.String("mode", "manual", "run mode: manual, daily, test")
		dryRun    = flag.Bool("dry-run", false, "execute the pipeline but persist nothing")
		countries = flag.String("countries", "", "comma separated ISO country codes overriding the intent")
		keywords  = flag.String("keywords", "", "comma separated extra keywords")
		channels  = flag.String("channels", "", "comma separated channels overriding the intent")
		budget    = flag.Duration("budget", 0, "wall clock budget, e.g. 90s (0 = intent default)")
		maxComp   = flag.Int("max-companies", 0, "company cap override")
		maxLeads  = flag.Int("max-leads", 0, "lead cap override")
	)
	flag.Parse()

	root := config.New()
	pgCfg := root.Prefix("SERVICE_PGSQL_")
	l := logger.Get()

	if *intentID == "" {
		flag.Usage()
		l.Fatal().Msg("-intent is required")
	}

	st, err := store.Open(context.Background(), store.Config{
		PG: store.PGConfig{
			Enabled:     true,
			URL:         pgCfg.MustString("DBURL"),
			MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:      pgCfg.MayBool("LOG_SQL", false),
		},
	}, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()
	repokit.MustGuard(context.Background(), st)

	deps := modkit.Deps{
		Cfg: root,
		PG:  st.PG,
		Log: *l,
	}

	pm := prospmod.New(deps)
	dm := discmod.New(deps, discmod.WithSinkFrom(pm))

	module.Register(pm.Name(), pm.Ports())
	module.Register(dm.Name(), dm.Ports())

	ports := dm.Ports().(discmod.Ports)
	report, err := ports.Runner.Run(context.Background(), discdom.RunRequest{
		DryRun:    *dryRun,
		Mode:      discdom.RunMode(*mode),
		Trigger:   "cli",
		IntentID:  *intentID,
		Countries: splitCSV(*countries),
		Keywords:  splitCSV(*keywords),
		Channels:  splitCSV(*channels),
		Limits: discdom.LimitOverrides{
			MaxCompanies: *maxComp,
			MaxLeads:     *maxLeads,
		},
		Budget: *budget,
	})
	if err != nil {
		l.Fatal().Err(err).Msg("discovery run failed")
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		l.Fatal().Err(err).Msg("encode report")
	}
	if report.Status == discdom.RunFailed {
		os.Exit(1)
	}
}

func splitCSV(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
