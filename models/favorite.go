package models

import "time"

type Favorite struct {
	FavoriteID string    `json:"favoriteid" bson:"favoriteid"`
	UserID     string    `json:"userid" bson:"userid"`
	PlaceID    string    `json:"placeid" bson:"placeid"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt"`
}

// FavoriteWithPlace is the listing shape: the favorite joined with the
// place it points at.
type FavoriteWithPlace struct {
	FavoriteID string    `json:"favoriteid" bson:"favoriteid"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt"`
	Place      Place     `json:"place" bson:"place"`
}

// Index represents an entity event published on the message queue.
type Index struct {
	EntityType string `json:"entity_type"`
	Method     string `json:"method"`
	EntityId   string `json:"entity_id"`
	ItemId     string `json:"item_id,omitempty"`
	ItemType   string `json:"item_type,omitempty"`
}
