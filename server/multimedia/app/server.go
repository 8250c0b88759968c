package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	commonauth "lodging_server/server/common/auth"
	"lodging_server/server/common/infra/cache"
	"lodging_server/server/common/infra/db"
	"lodging_server/server/common/infra/mq"
	"lodging_server/server/common/infra/object"
	commonlog "lodging_server/server/common/log"
	multimediaapi "lodging_server/server/multimedia/api"
	"lodging_server/server/multimedia/repository"
	"lodging_server/server/multimedia/service"
)

type Server struct {
	HTTPServer *http.Server
	DB         *pgxpool.Pool

	redisClient *redis.Client
	mqConn      *amqp.Connection
	mqPublisher *mq.Publisher
}

func NewServer(cfg Config) (*Server, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbPool, err := db.NewPool(ctx, cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("initialize postgres: %w", err)
	}

	userRepo := repository.NewUserRepository(dbPool)
	accommodationRepo := repository.NewAccommodationRepository(dbPool)
	bookingRepo := repository.NewBookingRepository(dbPool)

	blobs := blobStore{users: userRepo, accommodations: accommodationRepo}
	transferSvc := service.NewTransferService(blobs, bookingRepo)
	transferSvc.SetChunkSize(cfg.ChunkSize)
	statisticsSvc := service.NewStatisticsService(bookingRepo)

	server := &Server{DB: dbPool}

	if cfg.UseCache {
		redisClient, err := cache.Connect(ctx, cfg.RedisAddr)
		if err != nil {
			commonlog.Warnf("redis unavailable, statistics cache disabled: %v", err)
		} else {
			statisticsSvc.UseCache(redisClient)
			server.redisClient = redisClient
		}
	}

	if cfg.UseThumbnails {
		minioClient, err := object.Connect(ctx, object.Config{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			UseSSL:    cfg.MinioUseSSL,
		})
		if err != nil {
			commonlog.Warnf("minio unavailable, thumbnails disabled: %v", err)
		} else {
			transferSvc.UseThumbnailer(service.NewMinioThumbnailer(minioClient, cfg.MinioBucket))
		}
	}

	if cfg.UseMQ {
		mqConn, err := mq.NewConnection(cfg.LavinMQURL)
		if err != nil {
			commonlog.Warnf("mq unavailable, events disabled: %v", err)
		} else {
			publisher, err := mq.NewPublisher(mqConn)
			if err != nil {
				commonlog.Warnf("mq publisher setup failed, events disabled: %v", err)
				_ = mqConn.Close()
			} else {
				transferSvc.UsePublisher(publisher)
				server.mqConn = mqConn
				server.mqPublisher = publisher
			}
		}
	}

	authSvc := commonauth.NewService(cfg.JWTSecret, cfg.JWTTTLMinutes)

	h := multimediaapi.NewHandler(transferSvc, statisticsSvc, authSvc)
	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	h.RegisterRoutes(r)

	server.HTTPServer = &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return server, nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.mqPublisher != nil {
		s.mqPublisher.Close()
	}
	if s.mqConn != nil {
		_ = s.mqConn.Close()
	}
	if s.redisClient != nil {
		_ = s.redisClient.Close()
	}
	if s.DB != nil {
		s.DB.Close()
	}
	return s.HTTPServer.Shutdown(ctx)
}

// blobStore joins the two repositories behind the transfer service's
// single adapter interface.
type blobStore struct {
	users          *repository.UserRepository
	accommodations *repository.AccommodationRepository
}

func (b blobStore) ReadProfilePhoto(ctx context.Context, userID string) ([]byte, error) {
	return b.users.ReadProfilePhoto(ctx, userID)
}

func (b blobStore) WriteProfilePhoto(ctx context.Context, userID string, data []byte) error {
	return b.users.WriteProfilePhoto(ctx, userID, data)
}

func (b blobStore) AppendMultimedia(ctx context.Context, accommodationID string, data []byte) (int, error) {
	return b.accommodations.AppendMultimedia(ctx, accommodationID, data)
}

func (b blobStore) ReadMultimediaAt(ctx context.Context, accommodationID string, index int) ([]byte, error) {
	return b.accommodations.ReadMultimediaAt(ctx, accommodationID, index)
}

func (b blobStore) WriteMultimediaAt(ctx context.Context, accommodationID string, index int, data []byte) error {
	return b.accommodations.WriteMultimediaAt(ctx, accommodationID, index, data)
}
