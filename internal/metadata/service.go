package metadata

import (
	"context"
	"fmt"
)

// URIReader reads a token's metadata URI.
type URIReader interface {
	TokenURI(ctx context.Context, tokenID uint64) (string, error)
}

type Service interface {
	Resolve(ctx context.Context, tokenID uint64) (Rendering, error)
}

type service struct {
	reader URIReader
}

func NewService(reader URIReader) Service {
	return &service{reader: reader}
}

func (s *service) Resolve(ctx context.Context, tokenID uint64) (Rendering, error) {
	uri, err := s.reader.TokenURI(ctx, tokenID)
	if err != nil {
		return Rendering{}, fmt.Errorf("failed to read token %d uri: %w", tokenID, err)
	}
	return Resolve(uri), nil
}
