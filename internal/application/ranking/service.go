package ranking

import (
	"context"
	"fmt"

	"github.com/nippo-inc/nippo/internal/domain/report"
)

// RankingLimit caps both dashboard rankings.
const RankingLimit = 5

// Dashboard is the manager view: who posts the most, and who most often
// reports the distress condition.
type Dashboard struct {
	TopAuthors  []report.AuthorCount
	TopDistress []report.AuthorCount
}

type Service struct {
	rankingRepo report.RankingRepository
}

func NewService(rankingRepo report.RankingRepository) *Service {
	return &Service{rankingRepo: rankingRepo}
}

func (s *Service) GetDashboard(ctx context.Context) (*Dashboard, error) {
	topAuthors, err := s.rankingRepo.TopAuthors(ctx, RankingLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load activity ranking: %w", err)
	}

	topDistress, err := s.rankingRepo.TopDistress(ctx, RankingLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load distress ranking: %w", err)
	}

	return &Dashboard{
		TopAuthors:  topAuthors,
		TopDistress: topDistress,
	}, nil
}
