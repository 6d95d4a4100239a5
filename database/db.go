package database

import (
	"context"
	"fmt"
	"time"

	"localconnect/config"
	"localconnect/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Connection names. Users and orders share the main connection.
const (
	MainConnection    = "main"
	WorkersConnection = "workers"
	TicketsConnection = "tickets"
	ReviewsConnection = "reviews"
)

// Clients holds one client per configured connection name.
var Clients = map[string]*mongo.Client{}

// InitDB connects every document database named in AppConfig.
// Connections pointing at the same URL share a client.
func InitDB() {
	logger := utils.GetLogger()
	urls := map[string]string{
		MainConnection:    config.AppConfig.DatabaseURL,
		WorkersConnection: config.AppConfig.WorkersDatabaseURL,
		TicketsConnection: config.AppConfig.TicketsDatabaseURL,
		ReviewsConnection: config.AppConfig.ReviewsDatabaseURL,
	}

	byURL := map[string]*mongo.Client{}
	for name, url := range urls {
		if client, ok := byURL[url]; ok {
			Clients[name] = client
			continue
		}
		client, err := connect(url)
		if err != nil {
			logger.Fatal("failed to connect to MongoDB", zap.String("connection", name), zap.Error(err))
		}
		byURL[url] = client
		Clients[name] = client
		logger.Info("Connected to MongoDB", zap.String("connection", name))
	}
}

func connect(url string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(url).
		SetServerSelectionTimeout(10 * time.Second).
		SetSocketTimeout(45 * time.Second).
		SetMaxPoolSize(10).
		SetMinPoolSize(5).
		SetMaxConnIdleTime(30 * time.Second)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping: %w", err)
	}
	return client, nil
}

// DB returns the application database on the named connection.
func DB(connection string) *mongo.Database {
	client, ok := Clients[connection]
	if !ok {
		client = Clients[MainConnection]
	}
	return client.Database(config.AppConfig.DatabaseName)
}

// Disconnect closes every distinct client.
func Disconnect(ctx context.Context) {
	seen := map[*mongo.Client]bool{}
	for name, client := range Clients {
		if seen[client] {
			continue
		}
		seen[client] = true
		if err := client.Disconnect(ctx); err != nil {
			utils.GetLogger().Warn("failed to disconnect MongoDB", zap.String("connection", name), zap.Error(err))
		}
	}
}
