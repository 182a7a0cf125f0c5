package community

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/AdonisVillanueva/crypto-defi-yield-farming-agent/internal/domain"
)

// Rejects markup and script fragments in user-shared strategies.
var validStrategyRe = regexp.MustCompile(`^[a-zA-Z0-9\s.,!?()\-']+$`)

var (
	ErrInvalidStrategy   = errors.New("strategy contains unsupported characters")
	ErrDuplicateStrategy = errors.New("strategy already shared for this asset")
)

// Store keeps user-shared strategies in a JSON file. All mutations rewrite
// the file under a lock, matching how small a community file stays in
// practice.
type Store struct {
	mu         sync.Mutex
	path       string
	strategies []domain.CommunityStrategy
	now        func() time.Time
}

// NewStore loads the community file. A missing file starts an empty store; a
// malformed one is logged and treated as empty rather than blocking startup.
func NewStore(path string) *Store {
	s := &Store{path: path, now: time.Now}
	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("community: read %s: %v", path, err)
		}
		return s
	}
	if err := json.Unmarshal(raw, &s.strategies); err != nil {
		log.Printf("community: malformed %s, starting empty: %v", path, err)
		s.strategies = nil
	}
	return s
}

// List returns a copy of every shared strategy in insertion order.
func (s *Store) List() []domain.CommunityStrategy {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.CommunityStrategy, len(s.strategies))
	copy(out, s.strategies)
	return out
}

// Share validates and appends one strategy, then persists the file.
func (s *Store) Share(asset, strategy string, condition domain.MarketCondition) (domain.CommunityStrategy, error) {
	asset = domain.CanonicalAsset(asset)
	strategy = strings.TrimSpace(strategy)
	if asset == "" {
		return domain.CommunityStrategy{}, fmt.Errorf("asset is required")
	}
	if strategy == "" || !validStrategyRe.MatchString(strategy) {
		return domain.CommunityStrategy{}, ErrInvalidStrategy
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, entry := range s.strategies {
		if strings.EqualFold(entry.Asset, asset) && strings.EqualFold(entry.Strategy, strategy) {
			return domain.CommunityStrategy{}, ErrDuplicateStrategy
		}
	}

	record := domain.CommunityStrategy{
		Asset:           asset,
		Strategy:        strategy,
		MarketCondition: string(condition),
		Timestamp:       s.now().UTC().Format(time.RFC3339),
	}
	s.strategies = append(s.strategies, record)
	if err := s.save(); err != nil {
		s.strategies = s.strategies[:len(s.strategies)-1]
		return domain.CommunityStrategy{}, err
	}
	return record, nil
}

func (s *Store) save() error {
	raw, err := json.MarshalIndent(s.strategies, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(s.path, raw, 0o644)
}
