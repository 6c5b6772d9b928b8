package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	infraMongo "github.com/davicafu/hexasocial/internal/infra/db/mongodb"
	postDomain "github.com/davicafu/hexasocial/internal/post/domain"
	sharedDomain "github.com/davicafu/hexasocial/shared/domain"
	"github.com/davicafu/hexasocial/shared/persistence/mongostore"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const postsCollection = "posts"

// PostCollection mapea los campos públicos de Post a claves BSON.
var PostCollection = mongostore.Collection{
	Fields: postDomain.PostFields,
	Keys:   map[string]string{"id": "_id"},
}

// PostRepoMongoDB implementa PostRepository para MongoDB.
type PostRepoMongoDB struct {
	*mongostore.Store[mongoPost, *postDomain.Post]
	client     *mongo.Client
	db         *mongo.Database
	postsColl  *mongo.Collection
	outboxColl *mongo.Collection
}

// NewPostRepoMongoDB es el constructor del repositorio.
func NewPostRepoMongoDB(client *mongo.Client, dbName string) *PostRepoMongoDB {
	db := client.Database(dbName)
	posts := db.Collection(postsCollection)
	return &PostRepoMongoDB{
		Store:      mongostore.NewStore[mongoPost, *postDomain.Post](posts, PostCollection, fromMongoPost),
		client:     client,
		db:         db,
		postsColl:  posts,
		outboxColl: db.Collection(infraMongo.OutboxCollection),
	}
}

// --- Structs de BSON para el mapeo ---

type mongoPost struct {
	ID           int64     `bson:"_id"`
	AuthorID     int64     `bson:"authorId"`
	Title        string    `bson:"title"`
	Content      string    `bson:"content"`
	LikeCount    int64     `bson:"likeCount"`
	CommentCount int64     `bson:"commentCount"`
	CreatedAt    time.Time `bson:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt"`
}

func toMongoPost(p *postDomain.Post) *mongoPost {
	return &mongoPost{
		ID:           p.ID,
		AuthorID:     p.AuthorID,
		Title:        p.Title,
		Content:      p.Content,
		LikeCount:    p.LikeCount,
		CommentCount: p.CommentCount,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func fromMongoPost(mp *mongoPost) *postDomain.Post {
	return &postDomain.Post{
		ID:           mp.ID,
		AuthorID:     mp.AuthorID,
		Title:        mp.Title,
		Content:      mp.Content,
		LikeCount:    mp.LikeCount,
		CommentCount: mp.CommentCount,
		CreatedAt:    mp.CreatedAt.UTC(),
		UpdatedAt:    mp.UpdatedAt.UTC(),
	}
}

// EnsureIndexes crea los índices usados por los listados.
func (r *PostRepoMongoDB) EnsureIndexes(ctx context.Context) error {
	_, err := r.postsColl.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "authorId", Value: 1}, {Key: "_id", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create post indexes: %w", err)
	}
	return nil
}

// --- CRUD Transaccional ---

func (r *PostRepoMongoDB) withTransaction(ctx context.Context, fn func(sessCtx mongo.SessionContext) error) error {
	session, err := r.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		return nil, fn(sessCtx)
	})
	return err
}

func (r *PostRepoMongoDB) Create(ctx context.Context, p *postDomain.Post, newEvent sharedDomain.OutboxFactory[*postDomain.Post]) error {
	id, err := infraMongo.NextSequence(ctx, r.db, postsCollection)
	if err != nil {
		return err
	}
	p.ID = id

	return r.withTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if _, err := r.postsColl.InsertOne(sessCtx, toMongoPost(p)); err != nil {
			return err
		}
		return infraMongo.InsertOutbox(sessCtx, r.outboxColl, newEvent(p))
	})
}

func (r *PostRepoMongoDB) Update(ctx context.Context, p *postDomain.Post, evt sharedDomain.OutboxEvent) error {
	return r.withTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		update := bson.M{"$set": bson.M{"title": p.Title, "content": p.Content, "updatedAt": p.UpdatedAt}}
		res, err := r.postsColl.UpdateOne(sessCtx, bson.M{"_id": p.ID}, update)
		if err != nil {
			return err
		}
		if res.MatchedCount == 0 {
			return postDomain.ErrPostNotFound
		}
		return infraMongo.InsertOutbox(sessCtx, r.outboxColl, evt)
	})
}

func (r *PostRepoMongoDB) DeleteByID(ctx context.Context, id int64, evt sharedDomain.OutboxEvent) error {
	return r.withTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		res, err := r.postsColl.DeleteOne(sessCtx, bson.M{"_id": id})
		if err != nil {
			return err
		}
		if res.DeletedCount == 0 {
			return postDomain.ErrPostNotFound
		}
		return infraMongo.InsertOutbox(sessCtx, r.outboxColl, evt)
	})
}

// --- Lectura ---

func (r *PostRepoMongoDB) GetByID(ctx context.Context, id int64) (*postDomain.Post, error) {
	var mp mongoPost
	err := r.postsColl.FindOne(ctx, bson.M{"_id": id}).Decode(&mp)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, postDomain.ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}
	return fromMongoPost(&mp), nil
}

// AddCommentCount usa un pipeline de actualización para no bajar de cero.
func (r *PostRepoMongoDB) AddCommentCount(ctx context.Context, id int64, delta int64) error {
	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"commentCount": bson.M{"$max": bson.A{0, bson.M{"$add": bson.A{"$commentCount", delta}}}},
		}}},
	}
	res, err := r.postsColl.UpdateOne(ctx, bson.M{"_id": id}, pipeline, options.Update())
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return postDomain.ErrPostNotFound
	}
	return nil
}

// Verificación en tiempo de compilación.
var _ postDomain.PostRepository = (*PostRepoMongoDB)(nil)
