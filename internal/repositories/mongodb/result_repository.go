package mongodb

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/caribelotto/results-backend/internal/models"
	"github.com/caribelotto/results-backend/internal/repositories"
)

// ResultRepository implements the repositories.ResultRepository interface
type ResultRepository struct {
	collection *mongo.Collection
}

// NewResultRepository creates a new ResultRepository
func NewResultRepository(db *mongo.Database) repositories.ResultRepository {
	return &ResultRepository{
		collection: db.Collection("results"),
	}
}

// resultDocument wraps a GameAggregate with the lowercase game key used
// for case-insensitive identity matching.
type resultDocument struct {
	Island    string               `bson:"island"`
	GameKey   string               `bson:"gameKey"`
	Game      models.GameAggregate `bson:"game"`
	UpdatedAt time.Time            `bson:"updatedAt"`
}

// UpsertGame replaces the cached aggregate for island+gameName.
func (r *ResultRepository) UpsertGame(ctx context.Context, game *models.GameAggregate) error {
	doc := resultDocument{
		Island:    game.Island,
		GameKey:   strings.ToLower(game.GameName),
		Game:      *game,
		UpdatedAt: time.Now(),
	}
	filter := bson.M{"island": doc.Island, "gameKey": doc.GameKey}
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, filter, doc, opts)
	return err
}

// FindByIsland returns the cached aggregates for an island.
func (r *ResultRepository) FindByIsland(ctx context.Context, island string) ([]*models.GameAggregate, error) {
	opts := options.Find().SetSort(bson.M{"gameKey": 1})
	cursor, err := r.collection.Find(ctx, bson.M{"island": island}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []resultDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	games := make([]*models.GameAggregate, 0, len(docs))
	for i := range docs {
		games = append(games, &docs[i].Game)
	}
	return games, nil
}

// FindByGame returns the cached aggregate for one island+game identity.
func (r *ResultRepository) FindByGame(ctx context.Context, island, gameName string) (*models.GameAggregate, error) {
	filter := bson.M{"island": island, "gameKey": strings.ToLower(gameName)}
	var doc resultDocument
	err := r.collection.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &doc.Game, nil
}
