package firebase

import (
	"context"
	"log"
	"os"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// App holds the initialized Firebase app and messaging client
type App struct {
	FirebaseApp *firebase.App
	Messaging   *messaging.Client
}

// InitFirebase initializes the Firebase application and Cloud Messaging
// client. Returns an App with a nil Messaging client when no credentials are
// configured, so push delivery degrades to a no-op in development.
func InitFirebase(ctx context.Context, credentialsPath string) (*App, error) {
	if credentialsPath == "" {
		log.Println("Firebase credentials path not provided, push delivery disabled.")
		return &App{}, nil
	}

	if _, err := os.Stat(credentialsPath); os.IsNotExist(err) {
		log.Printf("Firebase credentials file not found at %s, push delivery disabled.", credentialsPath)
		return &App{}, nil
	}

	opt := option.WithCredentialsFile(credentialsPath)

	firebaseApp, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		log.Printf("Error initializing firebase app: %v, push delivery disabled.", err)
		return &App{}, nil
	}

	messagingClient, err := firebaseApp.Messaging(ctx)
	if err != nil {
		log.Printf("Error getting firebase messaging client: %v, push delivery disabled.", err)
		return &App{FirebaseApp: firebaseApp}, nil
	}

	log.Println("Firebase app and messaging client initialized successfully!")
	return &App{FirebaseApp: firebaseApp, Messaging: messagingClient}, nil
}
