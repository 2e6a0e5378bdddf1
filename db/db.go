package db

import (
	"context"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	Client *mongo.Client

	UserCollection         *mongo.Collection
	PlacesCollection       *mongo.Collection
	ReviewsCollection      *mongo.Collection
	FavoritesCollection    *mongo.Collection
	SubmissionsCollection  *mongo.Collection
	PlaceUpdatesCollection *mongo.Collection
)

// Init connects to MongoDB and binds the package collections. uri falls
// back to MONGO_URI, then to a local instance.
func Init(ctx context.Context, uri string) error {
	if uri == "" {
		uri = os.Getenv("MONGO_URI")
	}
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return err
	}
	Client = client

	dbase := client.Database("cityguide")
	UserCollection = dbase.Collection("users")
	PlacesCollection = dbase.Collection("places")
	ReviewsCollection = dbase.Collection("reviews")
	FavoritesCollection = dbase.Collection("favorites")
	SubmissionsCollection = dbase.Collection("submissions")
	PlaceUpdatesCollection = dbase.Collection("placeupdates")
	return nil
}

// EnsureIndexes creates the indexes the application relies on. The unique
// (placeid, userid) review index is what makes duplicate submissions fail
// atomically instead of being caught by a racy pre-read.
func EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := ReviewsCollection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "placeid", Value: 1}, {Key: "userid", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "placeid", Value: 1}, {Key: "createdAt", Value: -1}},
		},
	})
	if err != nil {
		return err
	}

	_, err = PlacesCollection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "placeid", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "city", Value: 1}, {Key: "rating", Value: -1}}},
		{Keys: bson.D{{Key: "name", Value: "text"}, {Key: "category", Value: "text"}}},
	})
	if err != nil {
		return err
	}

	_, err = UserCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = FavoritesCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userid", Value: 1}, {Key: "placeid", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// Close disconnects the client. Safe to call with a nil client.
func Close(ctx context.Context) error {
	if Client == nil {
		return nil
	}
	return Client.Disconnect(ctx)
}
