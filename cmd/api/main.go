package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/asynkron/protoactor-go/actor"
	zLog "github.com/rs/zerolog/log"

	"go-preplan/internal/api"
	"go-preplan/internal/config"
	"go-preplan/internal/controller"
	"go-preplan/internal/executors"
	"go-preplan/internal/plans"
	"go-preplan/internal/retrieval"
	"go-preplan/internal/steps"
	"go-preplan/internal/tools"
	"go-preplan/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "path to the yaml config file")
	flag.Parse()

	log.Println("starting server")
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Panicf("failed to load config: %v", err)
	}
	if err := logger.NewGlobal(cfg.LogLevel, cfg.Pretty); err != nil {
		log.Panicf("failed to initialize logger: %v", err)
	}

	registry := tools.NewRegistry()
	tools.RegisterGridTools(registry)
	retriever := retrieval.NewKeywordRetriever(retrieval.DefaultKnowledge())
	handler := steps.NewHandler(registry, retriever)

	system := actor.NewActorSystem()
	router := executors.NewRouter()
	router.Register(executors.NewSequential(handler))
	router.Register(executors.NewDelegated(system, handler, cfg.ExecutionTimeout))

	library := plans.NewLibrary()
	if err := library.LoadDir(cfg.PlansDir); err != nil {
		zLog.Warn().Err(err).Msg("plan library not loaded")
	}

	ctrl := controller.New(library, router)
	app := api.New(ctrl, cfg.Addr, cfg.ExecutionTimeout, cfg.DefaultStrategy)

	go func() {
		err := app.Start()
		if err != nil {
			zLog.Panic().Err(err).Msg("server crash")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	stop()
	zLog.Info().Msg("shutting down gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := app.Stop(ctx); err != nil {
		zLog.Panic().Err(err).Msg("server forced to shutdown")
	}
	// todo shutdown actor system?

	zLog.Info().Msg("server exiting")
}
