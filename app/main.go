package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/sushihentaime/inkwell/internal/blogservice"
	"github.com/sushihentaime/inkwell/internal/common"
	"github.com/sushihentaime/inkwell/internal/mailservice"
	"github.com/sushihentaime/inkwell/internal/uploadservice"
	"github.com/sushihentaime/inkwell/internal/userservice"
)

type application struct {
	config        *Config
	logger        *slog.Logger
	userService   *userservice.UserService
	blogService   *blogservice.BlogService
	uploadService *uploadservice.UploadService
	mailService   *mailservice.MailService
}

// stores bundles the user and blog backends for the configured driver.
type stores struct {
	users userservice.Store
	blogs blogservice.Store
	close func()
}

func main() {
	configPath := flag.String("config", ".env", "path to the .env configuration file")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := loadConfig(*configPath)
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	st, err := openStores(cfg, logger)
	if err != nil {
		logger.Error("failed to open the store", slog.String("driver", cfg.StoreDriver), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer st.close()

	tokens, err := userservice.NewTokenIssuer(cfg.SecretAccessKey, cfg.TokenTTL)
	if err != nil {
		logger.Error("failed to create the token issuer", slog.String("error", err.Error()))
		os.Exit(1)
	}

	userService := userservice.NewUserService(st.users, tokens)

	// Author reads go through RabbitMQ when a broker is configured and are written inline otherwise.
	var reads blogservice.ReadRecorder = userService
	if cfg.MQHost != "" {
		broker, err := common.NewMessageBroker(cfg.rabbitMQURI())
		if err != nil {
			logger.Error("failed to connect to the message broker", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer broker.Close()

		err = common.SetupBlogExchange(broker)
		if err != nil {
			logger.Error("failed to setup the blog exchange", slog.String("error", err.Error()))
			os.Exit(1)
		}

		counter := userservice.NewReadCounter(broker, st.users, logger)
		if err := counter.Start(); err != nil {
			logger.Error("failed to start the read counter", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer counter.Close()

		reads = blogservice.NewBrokerReadRecorder(broker)
	}

	uploadService, err := uploadservice.NewUploadService(cfg.AWSRegion, cfg.AWSAccessKey, cfg.AWSSecretAccessKey, cfg.AWSBucket, cfg.UploadURLExpiry)
	if err != nil {
		logger.Error("failed to create the upload service", slog.String("error", err.Error()))
		os.Exit(1)
	}

	cache := common.NewCache(cfg.CacheTTL, 2*cfg.CacheTTL)

	app := &application{
		config:        cfg,
		logger:        logger,
		userService:   userService,
		blogService:   blogservice.NewBlogService(st.blogs, userService, reads, cache, logger),
		uploadService: uploadService,
		mailService:   mailservice.NewMailService(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPassword, cfg.MailSender, cfg.MailRecipient, logger),
	}

	err = app.serve(cfg.Port)
	if err != nil {
		logger.Error("failed to start the server", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func openStores(cfg *Config, logger *slog.Logger) (*stores, error) {
	switch cfg.StoreDriver {
	case storeDriverMongo:
		db, err := common.NewMongo(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		users := userservice.NewMongoModel(db)
		if err := users.EnsureIndexes(ctx); err != nil {
			common.CloseMongo(db)
			return nil, err
		}

		blogs := blogservice.NewMongoModel(db)
		if err := blogs.EnsureIndexes(ctx); err != nil {
			common.CloseMongo(db)
			return nil, err
		}

		return &stores{users: users, blogs: blogs, close: func() { common.CloseMongo(db) }}, nil

	default:
		db, err := common.NewDB(cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, 10, 5, 15*time.Minute)
		if err != nil {
			return nil, err
		}

		if cfg.MigrationsSource != "" {
			m, err := common.Migrate(cfg.MigrationsSource, common.PostgresURI(cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName))
			if err != nil {
				common.CloseDB(db)
				return nil, err
			}
			m.Close()
			logger.Info("applied migrations", slog.String("source", cfg.MigrationsSource))
		}

		return &stores{
			users: userservice.NewDBModel(db),
			blogs: blogservice.NewDBModel(db),
			close: func() { common.CloseDB(db) },
		}, nil
	}
}
