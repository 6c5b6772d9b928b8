package mongostore

import (
	"context"
	"fmt"

	"github.com/davicafu/hexasocial/shared/platform/query"
	"go.mongodb.org/mongo-driver/mongo"
)

// Store implementa query.RowStore sobre una colección. D es el documento BSON
// y T la entidad de dominio.
type Store[D any, T any] struct {
	coll    *mongo.Collection
	mapping Collection
	convert func(*D) T
}

func NewStore[D any, T any](coll *mongo.Collection, mapping Collection, convert func(*D) T) *Store[D, T] {
	return &Store[D, T]{coll: coll, mapping: mapping, convert: convert}
}

func (s *Store[D, T]) Find(ctx context.Context, q query.Query) ([]T, error) {
	filter, err := s.mapping.Filter(q.Filters, q.Keyset)
	if err != nil {
		return nil, err
	}
	opts, err := s.mapping.FindOptions(q)
	if err != nil {
		return nil, err
	}

	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo find %s: %w", s.coll.Name(), err)
	}
	defer cursor.Close(ctx)

	var out []T
	for cursor.Next(ctx) {
		var doc D
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, s.convert(&doc))
	}
	return out, cursor.Err()
}

func (s *Store[D, T]) Count(ctx context.Context, filters query.FilterSpec) (int64, error) {
	filter, err := s.mapping.Filter(filters, nil)
	if err != nil {
		return 0, err
	}
	n, err := s.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("mongo count %s: %w", s.coll.Name(), err)
	}
	return n, nil
}
