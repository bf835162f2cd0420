package index

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"github.com/google/uuid"
	qdrantclient "github.com/qdrant/go-client/qdrant"
	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/ashok49473/DocuMind-AI/internal/config"
	"github.com/ashok49473/DocuMind-AI/internal/models"
)

const (
	upsertBatchSize = 100
	readyPollEvery  = 500 * time.Millisecond
)

// QdrantStore keeps the collection in a remote Qdrant deployment,
// reached over gRPC.
type QdrantStore struct {
	conn         *grpc.ClientConn
	collections  qdrantclient.CollectionsClient
	points       qdrantclient.PointsClient
	collection   string
	dimension    int
	apiKey       string
	readyTimeout time.Duration
}

func NewQdrantStore(cfg *config.QdrantConfig, collection string, dimension int, readyTimeout time.Duration) (*QdrantStore, error) {
	creds := insecure.NewCredentials()
	if cfg.UseTLS {
		creds = credentials.NewTLS(&tls.Config{})
	}

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	conn, err := grpc.Dial(addr, grpc.WithTransportCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to qdrant at %s: %w", addr, err)
	}

	return &QdrantStore{
		conn:         conn,
		collections:  qdrantclient.NewCollectionsClient(conn),
		points:       qdrantclient.NewPointsClient(conn),
		collection:   collection,
		dimension:    dimension,
		apiKey:       cfg.APIKey,
		readyTimeout: readyTimeout,
	}, nil
}

// withAuth attaches the api-key for managed deployments.
func (s *QdrantStore) withAuth(ctx context.Context) context.Context {
	if s.apiKey == "" {
		return ctx
	}
	return metadata.AppendToOutgoingContext(ctx, "api-key", s.apiKey)
}

func (s *QdrantStore) EnsureReady(ctx context.Context) error {
	ctx = s.withAuth(ctx)

	exists, err := s.collectionExists(ctx)
	if err != nil {
		return &models.IndexError{Op: "ensure", Err: err}
	}

	if !exists {
		log.Info().Str("collection", s.collection).Msg("Creating qdrant collection")
		_, err = s.collections.Create(ctx, &qdrantclient.CreateCollection{
			CollectionName: s.collection,
			VectorsConfig: &qdrantclient.VectorsConfig{
				Config: &qdrantclient.VectorsConfig_Params{
					Params: &qdrantclient.VectorParams{
						Size:     uint64(s.dimension),
						Distance: qdrantclient.Distance_Cosine,
					},
				},
			},
		})
		if err != nil {
			return &models.IndexError{Op: "create", Err: err}
		}
	}

	if err := s.waitReady(ctx); err != nil {
		return &models.IndexError{Op: "ensure", Err: err}
	}
	return nil
}

func (s *QdrantStore) collectionExists(ctx context.Context) (bool, error) {
	list, err := s.collections.List(ctx, &qdrantclient.ListCollectionsRequest{})
	if err != nil {
		return false, fmt.Errorf("failed to list collections: %w", err)
	}
	for _, col := range list.GetCollections() {
		if col.GetName() == s.collection {
			return true, nil
		}
	}
	return false, nil
}

// waitReady polls collection status until green instead of sleeping a
// fixed delay, so writes are never issued against a provisioning index.
func (s *QdrantStore) waitReady(ctx context.Context) error {
	deadline := time.Now().Add(s.readyTimeout)
	for {
		info, err := s.collections.Get(ctx, &qdrantclient.GetCollectionInfoRequest{
			CollectionName: s.collection,
		})
		if err == nil && info.GetResult().GetStatus() == qdrantclient.CollectionStatus_Green {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("collection %q not ready after %s", s.collection, s.readyTimeout)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(readyPollEvery):
		}
	}
}

func (s *QdrantStore) Add(ctx context.Context, docs []models.Document, vectors [][]float32) error {
	if len(docs) != len(vectors) {
		return &models.IndexError{Op: "add", Err: fmt.Errorf("got %d documents but %d vectors", len(docs), len(vectors))}
	}
	ctx = s.withAuth(ctx)
	wait := true

	points := make([]*qdrantclient.PointStruct, 0, upsertBatchSize)
	for i, doc := range docs {
		payload := map[string]*qdrantclient.Value{
			"text": {Kind: &qdrantclient.Value_StringValue{StringValue: doc.Content}},
		}
		for k, v := range doc.Metadata {
			payload[k] = &qdrantclient.Value{Kind: &qdrantclient.Value_StringValue{StringValue: v}}
		}

		points = append(points, &qdrantclient.PointStruct{
			Id: &qdrantclient.PointId{
				PointIdOptions: &qdrantclient.PointId_Uuid{Uuid: uuid.NewString()},
			},
			Vectors: &qdrantclient.Vectors{
				VectorsOptions: &qdrantclient.Vectors_Vector{
					Vector: &qdrantclient.Vector{Data: vectors[i]},
				},
			},
			Payload: payload,
		})

		if len(points) >= upsertBatchSize || i == len(docs)-1 {
			_, err := s.points.Upsert(ctx, &qdrantclient.UpsertPoints{
				CollectionName: s.collection,
				Wait:           &wait,
				Points:         points,
			})
			if err != nil {
				return &models.IndexError{Op: "add", Err: err}
			}
			points = points[:0]
		}
	}
	return nil
}

func (s *QdrantStore) Search(ctx context.Context, vector []float32, k int) ([]models.Document, error) {
	if k <= 0 {
		return nil, nil
	}
	ctx = s.withAuth(ctx)

	resp, err := s.points.Search(ctx, &qdrantclient.SearchPoints{
		CollectionName: s.collection,
		Vector:         vector,
		Limit:          uint64(k),
		WithPayload: &qdrantclient.WithPayloadSelector{
			SelectorOptions: &qdrantclient.WithPayloadSelector_Enable{Enable: true},
		},
	})
	if err != nil {
		// an absent collection is "no results", not a failure
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, &models.IndexError{Op: "search", Err: err}
	}

	docs := make([]models.Document, 0, len(resp.GetResult()))
	for _, point := range resp.GetResult() {
		doc := models.Document{Metadata: map[string]string{}}
		for k, v := range point.GetPayload() {
			if k == "text" {
				doc.Content = v.GetStringValue()
				continue
			}
			doc.Metadata[k] = v.GetStringValue()
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (s *QdrantStore) Clear(ctx context.Context) (uint64, error) {
	ctx = s.withAuth(ctx)

	count, err := s.count(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return 0, nil
		}
		return 0, &models.IndexError{Op: "clear", Err: err}
	}
	if count == 0 {
		return 0, nil
	}

	wait := true
	_, err = s.points.Delete(ctx, &qdrantclient.DeletePoints{
		CollectionName: s.collection,
		Wait:           &wait,
		Points: &qdrantclient.PointsSelector{
			// an empty filter matches every point
			PointsSelectorOneOf: &qdrantclient.PointsSelector_Filter{
				Filter: &qdrantclient.Filter{},
			},
		},
	})
	if err != nil {
		return 0, &models.IndexError{Op: "clear", Err: err}
	}
	return count, nil
}

func (s *QdrantStore) Drop(ctx context.Context) error {
	ctx = s.withAuth(ctx)
	_, err := s.collections.Delete(ctx, &qdrantclient.DeleteCollection{
		CollectionName: s.collection,
	})
	if err != nil && status.Code(err) != codes.NotFound {
		return &models.IndexError{Op: "drop", Err: err}
	}
	return nil
}

func (s *QdrantStore) Stats(ctx context.Context) (models.IndexStats, error) {
	ctx = s.withAuth(ctx)

	info, err := s.collections.Get(ctx, &qdrantclient.GetCollectionInfoRequest{
		CollectionName: s.collection,
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return models.IndexStats{Status: "absent", Dimension: s.dimension}, nil
		}
		return models.IndexStats{}, &models.IndexError{Op: "stats", Err: err}
	}

	count, err := s.count(ctx)
	if err != nil {
		return models.IndexStats{}, &models.IndexError{Op: "stats", Err: err}
	}

	return models.IndexStats{
		Records:   count,
		Status:    info.GetResult().GetStatus().String(),
		Dimension: s.dimension,
	}, nil
}

func (s *QdrantStore) count(ctx context.Context) (uint64, error) {
	exact := true
	resp, err := s.points.Count(ctx, &qdrantclient.CountPoints{
		CollectionName: s.collection,
		Exact:          &exact,
	})
	if err != nil {
		return 0, err
	}
	return resp.GetResult().GetCount(), nil
}

func (s *QdrantStore) Close() error {
	return s.conn.Close()
}
