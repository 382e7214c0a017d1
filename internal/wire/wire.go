package wire

import (
	"IronProof/internal/api"
	"IronProof/internal/api/config"
	"IronProof/internal/api/handler"
	"IronProof/internal/job"
	"IronProof/internal/pkg/cron"
	"IronProof/internal/pkg/kafka"
	"IronProof/internal/pkg/mongo"
	"IronProof/internal/service"

	"github.com/gin-gonic/gin"
	mongoDB "go.mongodb.org/mongo-driver/mongo"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router       *gin.Engine
	CronMgr      *cron.Manager
	KafkaManager *kafka.ConsumerManager
	Producer     kafka.ShareEventProducer
}

func BuildApplication(db *mongoDB.Database, cfg *config.Config) (*ApplicationContainer, error) {
	sharedItemRepo := mongo.NewSharedItemRepo(db)
	userRepo := mongo.NewUserRepo(db)
	rateLimitRepo := mongo.NewRateLimitRepo(db)
	rankingRepo := mongo.NewRankingRepo(db)

	rateLimitService := service.NewRateLimitService(rateLimitRepo, cfg.RateLimit)
	rankingService := service.NewRankingService(rankingRepo, cfg.Leaderboard)
	validationService := service.NewValidationService(sharedItemRepo, rankingService, cfg.Community)

	producer, err := kafka.NewShareEventProducer(cfg)
	if err != nil {
		return nil, err
	}

	voteService := service.NewVoteService(sharedItemRepo, rateLimitService, validationService, producer)
	shareService := service.NewShareService(sharedItemRepo, userRepo, rateLimitService)
	userService := service.NewUserService(userRepo)

	handlers := &api.HandlersGroup{
		CommunityHandler:   handler.NewCommunityHandler(shareService, voteService),
		LeaderboardHandler: handler.NewLeaderboardHandler(rankingService),
		AdminHandler:       handler.NewAdminHandler(userService),
	}

	router := api.SetupRouter(handlers)

	leaderboardJob := job.NewLeaderboardJob(rankingService)
	cronMgr := cron.NewCronManager(leaderboardJob, cfg.Leaderboard.RebuildSpec)

	kafkaMgr, err := kafka.NewConsumerManager(cfg, validationService.TryFinalize)
	if err != nil {
		return nil, err
	}

	return &ApplicationContainer{
		Router:       router,
		CronMgr:      cronMgr,
		KafkaManager: kafkaMgr,
		Producer:     producer,
	}, nil
}
