// utils/firebase.go
package utils

import (
	"context"

	"localconnect/config"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

var FCMClient *messaging.Client

// FirebaseInit initializes the Firebase App and Messaging client.
// Push notifications stay disabled when no credentials file is configured.
func FirebaseInit() {
	logger := GetLogger()
	path := config.AppConfig.FirebaseCredentialsFile
	if path == "" {
		logger.Warn("firebase: no credentials configured, push notifications disabled")
		return
	}

	ctx := context.Background()
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(path))
	if err != nil {
		logger.Fatal("firebase: error initializing app", zap.Error(err))
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		logger.Fatal("firebase: error getting Messaging client", zap.Error(err))
	}

	FCMClient = client
}
