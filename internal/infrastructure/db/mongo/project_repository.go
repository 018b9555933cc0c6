package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rpdbs/research-databank/internal/core/domain"
)

type ProjectRepository struct {
	col *mongo.Collection
	seq sequence
}

func NewProjectRepository(db *mongo.Database) *ProjectRepository {
	return &ProjectRepository{col: db.Collection(collectionProjects), seq: newSequence(db)}
}

// projectUpdate is the $set document for Update; owner and creation time are
// never rewritten.
type projectUpdate struct {
	domain.ProjectFields `bson:",inline"`
	UpdatedAt            time.Time `bson:"updated_at"`
}

// Create assigns the next sequence id and inserts the project document.
func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.seq.next(ctx, collectionProjects)
	if err != nil {
		return nil, err
	}

	created := *p
	created.ID = id
	if _, err := r.col.InsertOne(ctx, &created); err != nil {
		return nil, fmt.Errorf("insert project: %w", err)
	}
	return &created, nil
}

// List returns projects ordered by id, optionally restricted to one owner.
func (r *ProjectRepository) List(ctx context.Context, ownerID int64) ([]*domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, ownerFilter(bson.M{}, ownerID), options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find projects: %w", err)
	}
	defer cur.Close(ctx)

	projects := make([]*domain.Project, 0)
	if err := cur.All(ctx, &projects); err != nil {
		return nil, fmt.Errorf("decode projects: %w", err)
	}
	return projects, nil
}

// FindByID retrieves a project by id.
// When ownerID is non-zero, an additional filter by owner_id is applied.
func (r *ProjectRepository) FindByID(ctx context.Context, id, ownerID int64) (*domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.Project
	if err := r.col.FindOne(ctx, ownerFilter(bson.M{"_id": id}, ownerID)).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("find project: %w", err)
	}
	return &p, nil
}

func (r *ProjectRepository) Update(ctx context.Context, p *domain.Project, ownerID int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		ownerFilter(bson.M{"_id": p.ID}, ownerID),
		bson.M{"$set": projectUpdate{ProjectFields: p.ProjectFields, UpdatedAt: p.UpdatedAt}},
	)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id, ownerID int64) (*domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.Project
	if err := r.col.FindOneAndDelete(ctx, ownerFilter(bson.M{"_id": id}, ownerID)).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("delete project: %w", err)
	}
	return &p, nil
}
