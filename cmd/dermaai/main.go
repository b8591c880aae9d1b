package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/ashfiatanveer/DermaAI-SkinDiseaseDiagnosis/internal/config"
	"github.com/ashfiatanveer/DermaAI-SkinDiseaseDiagnosis/internal/engine"
	"github.com/ashfiatanveer/DermaAI-SkinDiseaseDiagnosis/internal/engine/catalog"
	"github.com/ashfiatanveer/DermaAI-SkinDiseaseDiagnosis/internal/engine/classifier"
	"github.com/ashfiatanveer/DermaAI-SkinDiseaseDiagnosis/internal/engine/responder"
	"github.com/ashfiatanveer/DermaAI-SkinDiseaseDiagnosis/internal/logging"
	"github.com/ashfiatanveer/DermaAI-SkinDiseaseDiagnosis/internal/metrics"
	"github.com/ashfiatanveer/DermaAI-SkinDiseaseDiagnosis/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("dermaai starting",
		zap.Int("port", cfg.Server.Port),
		zap.String("model_dir", cfg.Models.Dir))

	// Both classifiers must load before the service can answer anything.
	textCls, err := classifier.NewONNXText(cfg.Models.TextModelPath(), cfg.Models.TextVocabPath())
	if err != nil {
		logger.Fatal("failed to load text classifier", zap.Error(err))
	}
	defer textCls.Close()

	imageCls, err := classifier.NewONNXImage(cfg.Models.ImageModelPath())
	if err != nil {
		logger.Fatal("failed to load image classifier", zap.Error(err))
	}
	defer imageCls.Close()

	textResp, err := responder.New(responder.DefaultTextTemplates(), nil)
	if err != nil {
		logger.Fatal("failed to build text responder", zap.Error(err))
	}
	imageResp, err := responder.New(responder.DefaultImageTemplates(), nil)
	if err != nil {
		logger.Fatal("failed to build image responder", zap.Error(err))
	}

	eng := engine.New(
		engine.TextPipeline{
			Classifier: textCls,
			Catalog:    catalog.DefaultText(),
			Responder:  textResp,
			Threshold:  cfg.Triage.TextThreshold,
		},
		engine.ImagePipeline{
			Classifier: imageCls,
			Catalog:    catalog.DefaultImage(),
			Responder:  imageResp,
			Threshold:  cfg.Triage.ImageThreshold,
		},
		logger,
	)

	handler := server.NewHandler(eng, metrics.New(), logger)
	srv := server.New(server.Options{
		Port:         cfg.Server.Port,
		MaxUploadMiB: cfg.Server.MaxUploadMiB,
	}, handler, logger)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Run() }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown incomplete", zap.Error(err))
	}
}
