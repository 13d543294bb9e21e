package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"inkpost/internal/blogservice"
	"inkpost/internal/common"
	"inkpost/internal/engageservice"
	"inkpost/internal/followservice"
	"inkpost/internal/mailservice"
	"inkpost/internal/userservice"
)

type application struct {
	config        *Config
	logger        *slog.Logger
	userService   *userservice.UserService
	blogService   *blogservice.BlogService
	followService *followservice.FollowService
	engageService *engageservice.EngageService
	mailService   *mailservice.MailService
	broker        *common.Broker
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := loadConfig(".env")
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	db, err := common.NewDB(cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, 10, 5, 15*time.Minute)
	if err != nil {
		logger.Error("failed to connect to the database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer common.CloseDB(db)

	URI := fmt.Sprintf("amqp://%s:%s@%s:%s/", cfg.MQUser, cfg.MQPassword, cfg.MQHost, cfg.MQPort)
	broker, err := common.NewBroker(URI)
	if err != nil {
		logger.Error("failed to connect to the message broker", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer broker.Close()

	err = broker.DeclareAccountEvents()
	if err != nil {
		logger.Error("failed to declare the account exchange", slog.String("error", err.Error()))
		os.Exit(1)
	}

	cache := common.NewCache(5*time.Minute, 10*time.Minute)

	app := &application{
		config:        cfg,
		logger:        logger,
		userService:   userservice.NewUserService(db, broker),
		blogService:   blogservice.NewBlogService(db, cache),
		followService: followservice.NewFollowService(db),
		engageService: engageservice.NewEngageService(db),
		mailService:   mailservice.NewMailService(broker, cfg.MailHost, cfg.MailUser, cfg.MailPassword, cfg.MailSender, cfg.MailPort, logger),
		broker:        broker,
	}
	defer app.mailService.Close()

	app.mailService.SendActivationEmail()

	err = app.serve(cfg.Port)
	if err != nil {
		logger.Error("failed to start the server", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
