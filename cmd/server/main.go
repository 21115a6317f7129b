package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	redisv9 "github.com/redis/go-redis/v9"

	"magang_backend/internal/app/router"
	"magang_backend/internal/config"
	appadapters "magang_backend/internal/feature/application/adapters"
	apphandler "magang_backend/internal/feature/application/transport/handler"
	appusecase "magang_backend/internal/feature/application/usecase"
	authadapters "magang_backend/internal/feature/auth/adapters"
	authhandler "magang_backend/internal/feature/auth/transport/handler"
	authusecase "magang_backend/internal/feature/auth/usecase"
	"magang_backend/internal/feature/chat/adapters/gemini"
	chathandler "magang_backend/internal/feature/chat/transport/handler"
	chatusecase "magang_backend/internal/feature/chat/usecase"
	posadapters "magang_backend/internal/feature/position/adapters"
	poshandler "magang_backend/internal/feature/position/transport/handler"
	posusecase "magang_backend/internal/feature/position/usecase"
	infradb "magang_backend/internal/platform/db"
	jwtmw "magang_backend/internal/platform/jwt"
	"magang_backend/internal/platform/mailer"
	"magang_backend/internal/platform/ratelimit"
	infraredis "magang_backend/internal/platform/redis"
	"magang_backend/internal/platform/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db := infradb.OpenDB(cfg.DB)

	// Redis backs the OTP resend throttle; the server runs without it.
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(cfg.Redis); err != nil {
		log.Println("[WARN] Redis unavailable. OTP resends are not throttled.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	store, err := storage.NewStorage(cfg.Upload.Dir, cfg.Upload.TmpDir, cfg.Upload.MaxFileSize)
	if err != nil {
		log.Fatal(err)
	}

	// Repositories
	userRepo := authadapters.NewUserRepository(db)
	positionRepo := posadapters.NewPositionRepository(db)
	applicationRepo := appadapters.NewApplicationRepository(db)

	// Platform services
	tokens := jwtmw.NewGenerator(cfg.JWT.Secret, cfg.JWT.Lifetime)
	mail := mailer.NewMailer(cfg.SMTP)
	throttle := ratelimit.NewOTPThrottle(rdb, cfg.OTP.ResendCooldown, "otp_resend")

	responder, err := gemini.NewResponder(context.Background(), cfg.Chat.Model)
	if err != nil {
		log.Fatal(err)
	}

	// Usecases
	authUC := authusecase.NewAuthUsecase(userRepo, tokens, mail, throttle, cfg.OTP.Lifetime)
	positionUC := posusecase.NewPositionUsecase(positionRepo, applicationRepo)
	applicationUC := appusecase.NewApplicationUsecase(applicationRepo, positionRepo, store)
	chatUC := chatusecase.NewChatUsecase(responder)

	// Handlers
	authH := authhandler.NewAuthHandler(authUC)
	positionH := poshandler.NewPositionHandler(positionUC)
	applicationH := apphandler.NewApplicationHandler(applicationUC, store)
	chatH := chathandler.NewChatHandler(chatUC)

	r := router.NewRouter(cfg.JWT.Secret, userRepo, authH, positionH, applicationH, chatH)

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
