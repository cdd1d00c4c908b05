package main

import (
	"os"

	"pos-service/config"
	"pos-service/internal/database"
	"pos-service/internal/logger"
	"pos-service/internal/producer"
	"pos-service/internal/repository"
	"pos-service/internal/router"
	"pos-service/internal/service"
	"pos-service/internal/units"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	isDev := os.Getenv("ENV") == "development"
	if err := logger.Init(isDev); err != nil {
		panic(err)
	}

	defer logger.Sync()

	log := logger.L()

	cfg := config.Load(log)
	db := database.ConnectDB(&cfg.DB.Config, log)
	defer database.CloseDB(db, log)

	repos := repository.New(db)
	tbl := units.DefaultTable()

	policy := service.Policy{
		AllowItemEditInPreparing: cfg.AllowItemEditInPreparing,
		EagerDirectDeduct:        cfg.EagerDirectDeduct,
		AllowCompletedCancel:     cfg.AllowCompletedCancel,
	}

	// Без брокеров события не публикуются (nil отключает шину)
	var events service.EventBus
	if len(cfg.KafkaBrokers) > 0 {
		kp := producer.NewOrderEventProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer kp.Close()
		events = kp
	}

	orders := service.NewOrderService(repos, tbl, policy, events, log)
	catalog := service.NewCatalogService(repos, tbl, log)
	inventory := service.NewInventoryService(repos, tbl, log)

	r := router.Router(orders, catalog, inventory, log)

	log.Info("Запуск HTTP сервера", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("failed to run http server", zap.Error(err))
	}
}
