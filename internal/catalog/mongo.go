// Discograph - Music Catalog Analytics and Discovery
// Copyright 2026 Discograph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/discograph/discograph

package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/discograph/discograph/internal/metrics"
	"github.com/discograph/discograph/internal/models"
)

// Collection names written by the ingestion pipeline.
const (
	collArtists = "artists"
	collAlbums  = "albums"
	collTracks  = "tracks"
	collUsers   = "users"
)

// MongoStore implements Store over a MongoDB database.
type MongoStore struct {
	client  *mongo.Client
	db      *mongo.Database
	artists *mongo.Collection
	albums  *mongo.Collection
	tracks  *mongo.Collection
	users   *mongo.Collection
}

// Connect dials MongoDB, pings it, and returns a ready MongoStore.
func Connect(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	db := client.Database(database)
	return &MongoStore{
		client:  client,
		db:      db,
		artists: db.Collection(collArtists),
		albums:  db.Collection(collAlbums),
		tracks:  db.Collection(collTracks),
		users:   db.Collection(collUsers),
	}, nil
}

// Close disconnects the underlying client.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ping verifies store connectivity.
func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

// User returns a user profile, or ErrNotFound.
func (s *MongoStore) User(ctx context.Context, id string) (*models.UserProfile, error) {
	start := time.Now()

	var user models.UserProfile
	err := s.users.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	metrics.RecordMongoQuery("find_one", collUsers, time.Since(start), err)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user %s: %w", id, err)
	}
	return &user, nil
}

// SaveRecommendationCache writes the cache sub-record on the user document.
func (s *MongoStore) SaveRecommendationCache(ctx context.Context, userID string, cache *models.RecommendationCache) error {
	start := time.Now()

	_, err := s.users.UpdateByID(ctx, userID, bson.M{
		"$set": bson.M{"recommendation_cache": cache},
	})
	metrics.RecordMongoQuery("update_one", collUsers, time.Since(start), err)

	if err != nil {
		return fmt.Errorf("save recommendation cache for %s: %w", userID, err)
	}
	return nil
}

// ArtistsByIDs resolves an id set to artist documents.
func (s *MongoStore) ArtistsByIDs(ctx context.Context, ids []string) ([]models.Artist, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var out []models.Artist
	err := s.find(ctx, s.artists, collArtists, bson.M{"_id": bson.M{"$in": ids}}, nil, &out)
	return out, err
}

// AlbumsByIDs resolves an id set to album documents.
func (s *MongoStore) AlbumsByIDs(ctx context.Context, ids []string) ([]models.Album, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var out []models.Album
	err := s.find(ctx, s.albums, collAlbums, bson.M{"_id": bson.M{"$in": ids}}, nil, &out)
	return out, err
}

// TracksByIDs resolves an id set to track documents.
func (s *MongoStore) TracksByIDs(ctx context.Context, ids []string) ([]models.Track, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var out []models.Track
	err := s.find(ctx, s.tracks, collTracks, bson.M{"_id": bson.M{"$in": ids}}, nil, &out)
	return out, err
}

// ArtistsByGenres returns genre-matched artists by popularity descending.
func (s *MongoStore) ArtistsByGenres(ctx context.Context, genres, excludeIDs []string, limit int) ([]models.Artist, error) {
	if len(genres) == 0 {
		return nil, nil
	}

	filter := bson.M{"genres": bson.M{"$in": genres}}
	applyExclusion(filter, excludeIDs)

	opts := options.Find().
		SetSort(bson.D{{Key: "popularity", Value: -1}}).
		SetLimit(int64(limit))

	var out []models.Artist
	err := s.find(ctx, s.artists, collArtists, filter, opts, &out)
	return out, err
}

// PopularArtists returns artists by popularity descending.
func (s *MongoStore) PopularArtists(ctx context.Context, excludeIDs []string, limit int) ([]models.Artist, error) {
	filter := bson.M{}
	applyExclusion(filter, excludeIDs)

	opts := options.Find().
		SetSort(bson.D{{Key: "popularity", Value: -1}}).
		SetLimit(int64(limit))

	var out []models.Artist
	err := s.find(ctx, s.artists, collArtists, filter, opts, &out)
	return out, err
}

// AlbumsByLabels returns label-matched albums by popularity descending.
func (s *MongoStore) AlbumsByLabels(ctx context.Context, labels, excludeIDs []string, limit int) ([]models.Album, error) {
	if len(labels) == 0 {
		return nil, nil
	}

	filter := bson.M{"label": bson.M{"$in": labels}}
	applyExclusion(filter, excludeIDs)

	opts := options.Find().
		SetSort(bson.D{{Key: "popularity", Value: -1}}).
		SetLimit(int64(limit))

	var out []models.Album
	err := s.find(ctx, s.albums, collAlbums, filter, opts, &out)
	return out, err
}

// RecentAlbums returns albums released on or after q.Since, newest first.
// Release dates are ISO-8601 prefix strings so $gte compares correctly.
func (s *MongoStore) RecentAlbums(ctx context.Context, q RecentAlbumsQuery) ([]models.Album, error) {
	filter := bson.M{"release_date": bson.M{"$gte": q.Since}}
	if len(q.Genres) > 0 {
		filter["genres"] = bson.M{"$in": q.Genres}
	} else if q.MinPopularity > 0 {
		filter["popularity"] = bson.M{"$gte": q.MinPopularity}
	}
	applyExclusion(filter, q.ExcludeIDs)

	opts := options.Find().
		SetSort(bson.D{{Key: "release_date", Value: -1}}).
		SetLimit(int64(q.Limit))

	var out []models.Album
	err := s.find(ctx, s.albums, collAlbums, filter, opts, &out)
	return out, err
}

// TracksByArtists returns tracks credited to any of artistIDs by
// popularity descending.
func (s *MongoStore) TracksByArtists(ctx context.Context, artistIDs, excludeIDs []string, limit int) ([]models.Track, error) {
	if len(artistIDs) == 0 {
		return nil, nil
	}

	filter := bson.M{"artist_ids": bson.M{"$in": artistIDs}}
	applyExclusion(filter, excludeIDs)

	opts := options.Find().
		SetSort(bson.D{{Key: "popularity", Value: -1}}).
		SetLimit(int64(limit))

	var out []models.Track
	err := s.find(ctx, s.tracks, collTracks, filter, opts, &out)
	return out, err
}

// TrendingTracks returns high-popularity tracks by popularity descending.
func (s *MongoStore) TrendingTracks(ctx context.Context, minPopularity int, excludeIDs []string, limit int) ([]models.Track, error) {
	filter := bson.M{"popularity": bson.M{"$gte": minPopularity}}
	applyExclusion(filter, excludeIDs)

	opts := options.Find().
		SetSort(bson.D{{Key: "popularity", Value: -1}}).
		SetLimit(int64(limit))

	var out []models.Track
	err := s.find(ctx, s.tracks, collTracks, filter, opts, &out)
	return out, err
}

// CollaborativeTracks returns multi-artist tracks crediting at least one
// of artistIDs. The any-match pre-filter bounds the fetch; callers
// intersect the credit list precisely.
func (s *MongoStore) CollaborativeTracks(ctx context.Context, artistIDs []string) ([]models.Track, error) {
	if len(artistIDs) == 0 {
		return nil, nil
	}

	// artist_ids.1 exists <=> the credit list has at least two entries
	filter := bson.M{
		"artist_ids.1": bson.M{"$exists": true},
		"artist_ids":   bson.M{"$in": artistIDs},
	}

	var out []models.Track
	err := s.find(ctx, s.tracks, collTracks, filter, nil, &out)
	return out, err
}

// LabelStats aggregates albums per label: count, average popularity, and
// distinct credited artists.
func (s *MongoStore) LabelStats(ctx context.Context, limit int) ([]models.LabelStat, error) {
	pipeline := []bson.M{
		{"$match": bson.M{"label": bson.M{"$nin": bson.A{"", nil}}}},
		{"$group": bson.M{
			"_id":            "$label",
			"album_count":    bson.M{"$sum": 1},
			"avg_popularity": bson.M{"$avg": "$popularity"},
			"artist_sets":    bson.M{"$addToSet": "$artist_ids"},
		}},
		{"$addFields": bson.M{
			"artist_count": bson.M{"$size": bson.M{"$reduce": bson.M{
				"input":        "$artist_sets",
				"initialValue": bson.A{},
				"in":           bson.M{"$setUnion": bson.A{"$$value", "$$this"}},
			}}},
		}},
		{"$project": bson.M{"artist_sets": 0}},
		{"$sort": bson.M{"album_count": -1, "_id": 1}},
		{"$limit": limit},
	}

	var out []models.LabelStat
	err := s.aggregate(ctx, s.albums, collAlbums, pipeline, &out)
	return out, err
}

// ReleaseCohorts buckets albums by release year or decade.
func (s *MongoStore) ReleaseCohorts(ctx context.Context, granularity CohortGranularity) ([]models.ReleaseCohort, error) {
	var period interface{}
	switch granularity {
	case CohortByDecade:
		period = bson.M{"$concat": bson.A{
			bson.M{"$substrCP": bson.A{"$release_date", 0, 3}},
			"0",
		}}
	default:
		period = bson.M{"$substrCP": bson.A{"$release_date", 0, 4}}
	}

	pipeline := []bson.M{
		{"$match": bson.M{"release_date": bson.M{"$nin": bson.A{"", nil}}}},
		{"$group": bson.M{
			"_id": period,
			"album_count": bson.M{"$sum": bson.M{
				"$cond": bson.A{bson.M{"$eq": bson.A{"$album_type", models.AlbumTypeAlbum}}, 1, 0},
			}},
			"single_count": bson.M{"$sum": bson.M{
				"$cond": bson.A{bson.M{"$eq": bson.A{"$album_type", models.AlbumTypeSingle}}, 1, 0},
			}},
			"total_releases": bson.M{"$sum": 1},
			"avg_popularity": bson.M{"$avg": "$popularity"},
		}},
		{"$sort": bson.M{"_id": 1}},
	}

	var out []models.ReleaseCohort
	err := s.aggregate(ctx, s.albums, collAlbums, pipeline, &out)
	return out, err
}

// find runs an instrumented Find and decodes all results into out.
func (s *MongoStore) find(ctx context.Context, coll *mongo.Collection, name string, filter bson.M, opts *options.FindOptions, out interface{}) error {
	start := time.Now()

	var cursor *mongo.Cursor
	var err error
	if opts != nil {
		cursor, err = coll.Find(ctx, filter, opts)
	} else {
		cursor, err = coll.Find(ctx, filter)
	}
	if err != nil {
		metrics.RecordMongoQuery("find", name, time.Since(start), err)
		return fmt.Errorf("find %s: %w", name, err)
	}

	err = cursor.All(ctx, out)
	metrics.RecordMongoQuery("find", name, time.Since(start), err)
	if err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

// aggregate runs an instrumented aggregation pipeline.
func (s *MongoStore) aggregate(ctx context.Context, coll *mongo.Collection, name string, pipeline []bson.M, out interface{}) error {
	start := time.Now()

	cursor, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		metrics.RecordMongoQuery("aggregate", name, time.Since(start), err)
		return fmt.Errorf("aggregate %s: %w", name, err)
	}

	err = cursor.All(ctx, out)
	metrics.RecordMongoQuery("aggregate", name, time.Since(start), err)
	if err != nil {
		return fmt.Errorf("decode %s aggregation: %w", name, err)
	}
	return nil
}

// applyExclusion adds a $nin clause on _id when excludeIDs is non-empty.
func applyExclusion(filter bson.M, excludeIDs []string) {
	if len(excludeIDs) > 0 {
		filter["_id"] = bson.M{"$nin": excludeIDs}
	}
}

// compile-time interface check
var _ Store = (*MongoStore)(nil)
