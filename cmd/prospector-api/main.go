package main

import (
	"context"

	"prospector/internal/modkit"
	"prospector/internal/modkit/httpkit"
	"prospector/internal/modkit/module"
	"prospector/internal/modkit/repokit"
	"prospector/internal/platform/config"
	"prospector/internal/platform/logger"
	phttp "prospector/internal/platform/net/http"
	"prospector/internal/platform/store"

	runsdom "prospector/internal/services/api/runs/domain"
	runsmod "prospector/internal/services/api/runs/module"
	discmod "prospector/internal/services/discovery/module"
	prospmod "prospector/internal/services/prospects/module"
)

func main() {
	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	pgCfg := root.Prefix("SERVICE_PGSQL_") // pgCfg lives under SERVICE_PGSQL_*
	l := logger.Get()

	st, err := store.Open(
		context.Background(),
		store.Config{
			PG: store.PGConfig{
				Enabled:     true,
				URL:         pgCfg.MustString("DBURL"),
				MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
				SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
				LogSQL:      pgCfg.MayBool("LOG_SQL", true),
			},
		},
		store.WithLogger(*logger.Get()),
	)
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

	// persistence first, then the pipeline over it
	pm := prospmod.New(deps)
	dm := discmod.New(deps, discmod.WithSinkFrom(pm))

	discPorts := dm.Ports().(discmod.Ports)
	rm := runsmod.New(deps, modkit.WithPorts(runsdom.Ports{
		Runner: discPorts.Runner,
		Reader: discPorts.Reader,
	}))

	module.Register(pm.Name(), pm.Ports())
	module.Register(dm.Name(), dm.Ports())
	module.Register(rm.Name(), rm.Ports())

	// http server (reads CORE_API_PORT / CORE_API_ADDR)
	srv := phttp.NewServer(apiCfg)

	httpkit.MountAPIV1(srv.Router(), httpkit.CommonStack(), func(api httpkit.Router) {
		rm.MountRoutes(api)
	})

	if err := srv.Run(context.Background()); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
