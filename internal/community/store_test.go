package community

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/AdonisVillanueva/crypto-defi-yield-farming-agent/internal/domain"
)

func TestShareAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "community.json")
	store := NewStore(path)

	record, err := store.Share("eth", "Stake ETH in Lido for steady rewards", domain.ConditionBullish)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.Asset != "ETH" || record.Timestamp == "" {
		t.Fatalf("unexpected record: %+v", record)
	}

	reloaded := NewStore(path)
	got := reloaded.List()
	if len(got) != 1 || got[0].Strategy != "Stake ETH in Lido for steady rewards" {
		t.Fatalf("unexpected reloaded strategies: %+v", got)
	}
}

func TestShareRejectsInvalidCharacters(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "community.json"))
	if _, err := store.Share("ETH", "<script>alert(1)</script>", domain.ConditionBullish); !errors.Is(err, ErrInvalidStrategy) {
		t.Fatalf("expected ErrInvalidStrategy, got %v", err)
	}
	if _, err := store.Share("ETH", "   ", domain.ConditionBullish); !errors.Is(err, ErrInvalidStrategy) {
		t.Fatalf("expected ErrInvalidStrategy for blank input, got %v", err)
	}
}

func TestShareRejectsDuplicates(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "community.json"))
	if _, err := store.Share("SOL", "Stake SOL with Marinade", domain.ConditionBullish); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := store.Share("sol", "stake sol with marinade", domain.ConditionBullish); !errors.Is(err, ErrDuplicateStrategy) {
		t.Fatalf("expected ErrDuplicateStrategy, got %v", err)
	}
}

func TestNewStoreMalformedFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "community.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	store := NewStore(path)
	if got := store.List(); len(got) != 0 {
		t.Fatalf("expected empty store, got %+v", got)
	}
}

func TestListReturnsCopy(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "community.json"))
	if _, err := store.Share("ETH", "Provide liquidity in Curve pools", domain.ConditionNeutral); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first := store.List()
	first[0].Strategy = "mutated"
	if store.List()[0].Strategy == "mutated" {
		t.Fatal("List must return a copy")
	}
}
