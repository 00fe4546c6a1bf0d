package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taskboard/task-api/internal/core/domain"
)

// TaskRepository stores tasks in the tasks collection. Every query carries
// the owner's id next to the document id.
type TaskRepository struct {
	col *mongo.Collection
}

func NewTaskRepository(db *mongo.Database) *TaskRepository {
	return &TaskRepository{col: db.Collection(collectionTasks)}
}

type mongoTask struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	DueDate     *time.Time         `bson:"dueDate,omitempty"`
	Completed   bool               `bson:"completed"`
	Status      string             `bson:"status"`
	CategoryID  string             `bson:"categoryId,omitempty"`
	UserID      string             `bson:"userId"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func (m *mongoTask) toDomain() *domain.Task {
	t := &domain.Task{
		ID:          m.ID.Hex(),
		Title:       m.Title,
		Description: m.Description,
		Completed:   m.Completed,
		Status:      domain.TaskStatus(m.Status),
		CategoryID:  m.CategoryID,
		OwnerID:     m.UserID,
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
	if m.DueDate != nil {
		d := m.DueDate.UTC()
		t.DueDate = &d
	}
	return t
}

// Create inserts a new task document.
func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) (*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoTask{
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Completed:   t.Completed,
		Status:      string(t.Status),
		CategoryID:  t.CategoryID,
		UserID:      t.OwnerID,
		CreatedAt:   t.CreatedAt.UTC(),
		UpdatedAt:   t.UpdatedAt.UTC(),
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}
	return doc.toDomain(), nil
}

// ListByOwner returns the owner's tasks, oldest first.
func (r *TaskRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"userId": ownerID}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find tasks: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoTask
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}

	out := make([]*domain.Task, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id, ownerID string) (*domain.Task, error) {
	filter, ok := ownedFilter(id, ownerID)
	if !ok {
		return nil, domain.ErrTaskNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoTask
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	return doc.toDomain(), nil
}

// Update applies the patch with a single find-and-modify so a concurrent
// delete yields ErrTaskNotFound rather than a partial write.
func (r *TaskRepository) Update(ctx context.Context, id, ownerID string, p domain.TaskPatch) (*domain.Task, error) {
	filter, ok := ownedFilter(id, ownerID)
	if !ok {
		return nil, domain.ErrTaskNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"updatedAt": time.Now().UTC()}
	update := bson.M{"$set": set}
	if p.Title != nil {
		set["title"] = *p.Title
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	if p.DueDate != nil {
		set["dueDate"] = p.DueDate.UTC()
	}
	if p.Completed != nil {
		set["completed"] = *p.Completed
	}
	if p.Status != nil {
		set["status"] = string(*p.Status)
	}
	if p.CategoryID != nil {
		if *p.CategoryID == "" {
			update["$unset"] = bson.M{"categoryId": ""}
		} else {
			set["categoryId"] = *p.CategoryID
		}
	}

	var doc mongoTask
	if err := r.col.FindOneAndUpdate(ctx, filter, update, afterUpdate()).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("update task: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *TaskRepository) Delete(ctx context.Context, id, ownerID string) error {
	filter, ok := ownedFilter(id, ownerID)
	if !ok {
		return domain.ErrTaskNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

// ClearCategory unsets categoryId on every task of ownerID that references
// categoryID and reports how many were modified.
func (r *TaskRepository) ClearCategory(ctx context.Context, categoryID, ownerID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateMany(ctx,
		bson.M{"userId": ownerID, "categoryId": categoryID},
		bson.M{
			"$unset": bson.M{"categoryId": ""},
			"$set":   bson.M{"updatedAt": time.Now().UTC()},
		},
	)
	if err != nil {
		return 0, fmt.Errorf("clear category: %w", err)
	}
	return res.ModifiedCount, nil
}
