package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"github.com/Anugrah-Ajith/service-connect/internal/auth"
	"github.com/Anugrah-Ajith/service-connect/internal/chat"
	"github.com/Anugrah-Ajith/service-connect/internal/config"
	"github.com/Anugrah-Ajith/service-connect/internal/db"
	"github.com/Anugrah-Ajith/service-connect/internal/model"
	"github.com/Anugrah-Ajith/service-connect/internal/mq"
	"github.com/Anugrah-Ajith/service-connect/internal/payment"
	"github.com/Anugrah-Ajith/service-connect/internal/repository"
	"github.com/Anugrah-Ajith/service-connect/internal/server"
	"github.com/Anugrah-Ajith/service-connect/internal/service"
)

func main() {
	// .env опционален, в контейнере переменные приходят из окружения.
	_ = godotenv.Load()

	// 1. Загружаем конфиги из env.
	dbCfg, err := config.LoadDBConfig()
	if err != nil {
		log.Fatalf("load db config: %v", err)
	}
	appCfg, err := config.LoadAppConfig()
	if err != nil {
		log.Fatalf("load app config: %v", err)
	}

	// 2. Подключаемся к БД через GORM.
	gormDB, err := db.NewGormDB(dbCfg)
	if err != nil {
		log.Fatalf("init db: %v", err)
	}

	// 3. Миграции моделей.
	if err := model.AutoMigrate(gormDB); err != nil {
		log.Fatalf("auto migrate: %v", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Fatalf("sql DB: %v", err)
	}
	defer sqlDB.Close()

	// 4. Репозитории (реализации на GORM).
	userRepo := repository.NewGormUserRepository(gormDB)
	providerRepo := repository.NewGormProviderRepository(gormDB)
	bookingRepo := repository.NewGormBookingRepository(gormDB)
	messageRepo := repository.NewGormMessageRepository(gormDB)
	reviewRepo := repository.NewGormReviewRepository(gormDB)
	eventRepo := repository.NewGormEventRepository(gormDB)

	// 5. Внешние коллабораторы: брокер, Redis, Stripe. Каждый опционален.
	var events mq.Publisher = mq.NopPublisher{}
	if appCfg.AMQPURL != "" {
		pub, err := mq.NewAMQPPublisher(appCfg.AMQPURL, appCfg.MQExchange)
		if err != nil {
			log.Fatalf("init amqp publisher: %v", err)
		}
		defer pub.Close()
		events = pub
	}

	var intentLock *payment.IntentLock
	if appCfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: appCfg.RedisAddr})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Fatalf("redis ping: %v", err)
		}
		defer rdb.Close()
		intentLock = payment.NewIntentLock(rdb)
	}

	var gateway payment.Gateway
	if appCfg.StripeSecretKey != "" {
		gateway, err = payment.NewStripeGateway(appCfg.StripeSecretKey)
		if err != nil {
			log.Fatalf("init stripe gateway: %v", err)
		}
	}

	// 6. Сервисы.
	tokens := auth.NewManager(appCfg.JWTSecret, time.Duration(appCfg.JWTExpireMin)*time.Minute)
	hub := chat.NewHub()

	identitySvc := service.NewIdentityService(userRepo, tokens)
	providerSvc := service.NewProviderService(providerRepo)
	bookingSvc := service.NewBookingService(bookingRepo, providerRepo, eventRepo, events)
	chatSvc := service.NewChatService(bookingRepo, providerRepo, messageRepo, hub)
	paymentSvc := service.NewPaymentService(bookingSvc, bookingRepo, gateway, intentLock)
	reviewSvc := service.NewReviewService(reviewRepo, bookingRepo, providerRepo)

	// 7. HTTP-сервер.
	router := server.NewRouter(&server.Handlers{
		Identity:  identitySvc,
		Providers: providerSvc,
		Bookings:  bookingSvc,
		Chat:      chatSvc,
		Payments:  paymentSvc,
		Reviews:   reviewSvc,
	}, tokens)

	srv := &http.Server{
		Addr:    appCfg.HTTPAddr,
		Handler: router,
	}

	log.Printf("service-connect HTTP server listening on %s", appCfg.HTTPAddr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http serve: %v", err)
		}
	}()

	// 8. Грейсфул-шатдаун по сигналу.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("shutting down HTTP server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("shutdown: %v", err)
	}
}
