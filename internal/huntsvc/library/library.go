package library

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/huntmaster/hunt-services/internal/huntsvc/models"
)

// The clue library is authored by an external tool and lives in Mongo; this
// service only reads it. Sequencing copies the document into a value
// snapshot, so later library edits never reach an already-sequenced game.

const collectionName = "clues"

// clueDoc is the library document shape.
type clueDoc struct {
	ClueID         string `bson:"clue_id"`
	Type           string `bson:"type"`
	Title          string `bson:"title"`
	Description    string `bson:"description"`
	RequiredPhotos int    `bson:"required_photos"`
	OptionATitle   string `bson:"option_a_title,omitempty"`
	OptionBTitle   string `bson:"option_b_title,omitempty"`
	SoloTask       string `bson:"solo_task,omitempty"`
}

type Library struct {
	coll *mongo.Collection
}

func New(db *mongo.Database) *Library {
	return &Library{coll: db.Collection(collectionName)}
}

// GetClue resolves a library id into a fresh snapshot. Returns nil when the
// id is unknown.
func (l *Library) GetClue(ctx context.Context, clueID string) (*models.ClueSnapshot, error) {
	var doc clueDoc
	err := l.coll.FindOne(ctx, bson.M{"clue_id": clueID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get clue %s: %w", clueID, err)
	}

	return &models.ClueSnapshot{
		ClueID:         doc.ClueID,
		Type:           models.ClueType(doc.Type),
		Title:          doc.Title,
		Description:    doc.Description,
		RequiredPhotos: doc.RequiredPhotos,
		OptionATitle:   doc.OptionATitle,
		OptionBTitle:   doc.OptionBTitle,
		SoloTask:       doc.SoloTask,
	}, nil
}
