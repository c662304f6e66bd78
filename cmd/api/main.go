package main

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"inventory/internal/config"
	"inventory/internal/domain/model"
	"inventory/internal/handler"
	"inventory/internal/infra/db"
	infraRepo "inventory/internal/infra/repository"
	"inventory/internal/seed"
	"inventory/internal/server"
	"inventory/internal/usecase"
)

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

type jwtIssuer struct {
	secret    []byte
	accessTTL time.Duration
}

func newJWTIssuer(secret string) *jwtIssuer {
	//アクセストークン
	return &jwtIssuer{
		secret:    []byte(secret),
		accessTTL: 24 * time.Hour,
	}
}

func (i *jwtIssuer) Issue(userID int64, tokenVersion int, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.accessTTL)

	claims := jwt.MapClaims{
		"sub": userID,
		"tv":  tokenVersion,
		"jti": uuid.NewString(),
		"iat": now.Unix(),
		"exp": expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

func main() {
	//.envは無くてもよい（本番は環境変数だけ）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	var logger *zap.Logger
	if cfg.GoEnv == "prod" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		logger.Fatal("db connect failed", zap.Error(err))
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.Customer{},
		&model.Order{},
		&model.OrderItem{},
		&model.AuditLog{},
	); err != nil {
		logger.Fatal("migrate failed", zap.Error(err))
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	customerRepo := infraRepo.NewCustomerGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	dashRepo := infraRepo.NewDashboardGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//usecaseに渡す部品
	clock := &realClock{}
	hasher := usecase.NewBcryptPasswordHasher(12)
	verifier := usecase.NewBcryptPasswordVerifier()
	issuer := newJWTIssuer(cfg.JWTSecret)

	//Usecase生成
	authUC := usecase.NewAuthUsecase(userRepo, verifier, issuer, clock)
	productUC := usecase.NewProductUsecase(productRepo, auditRepo, txManager)
	customerUC := usecase.NewCustomerUsecase(customerRepo, txManager)
	orderUC := usecase.NewOrderUsecase(txManager, customerRepo)
	dashboardUC := usecase.NewDashboardUsecase(dashRepo, clock)

	//初期ユーザー
	if err := seed.EnsureDefaultUser(context.Background(), userRepo, hasher, logger); err != nil {
		logger.Fatal("seed failed", zap.Error(err))
	}

	//Handler生成
	h := server.Handlers{
		Auth:      handler.NewAuthHandler(authUC),
		Product:   handler.NewProductHandler(productUC),
		Customer:  handler.NewCustomerHandler(customerUC),
		Order:     handler.NewOrderHandler(orderUC),
		Dashboard: handler.NewDashboardHandler(dashboardUC),
	}

	//Server起動
	srv := server.New(logger)
	srv.RegisterRoutes(cfg, userRepo, h)

	logger.Info("listening", zap.String("port", cfg.Port))
	if err := srv.Start(cfg.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
