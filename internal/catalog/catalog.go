// Package catalog resolves the 14 tile skins from a community CS2 dataset.
// The resolved set is cached on disk so restarts do not refetch, and a
// built-in list covers total source failure.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/fystack/stream-giveaway/pkg/common/logger"
	"github.com/fystack/stream-giveaway/pkg/kvstore"
	"github.com/fystack/stream-giveaway/pkg/retry"
)

// SkinCount is one skin per board tile.
const SkinCount = 14

const (
	cacheKey = "skins"
	steamCDN = "https://steamcommunity-a.akamaihd.net/economy/image/"
)

type Skin struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Weapon string `json:"weapon"`
	Image  string `json:"image"`
	Rarity string `json:"rarity,omitempty"`
}

type Service struct {
	mu     sync.RWMutex
	skins  []Skin
	urls   []string
	store  kvstore.Store
	client *http.Client
}

// NewService builds a catalog service. store may be nil to disable the disk
// cache (tests).
func NewService(urls []string, store kvstore.Store) *Service {
	return &Service{
		urls:   urls,
		store:  store,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

// Load resolves the skin set: disk cache first, then the dataset mirrors,
// then the built-in fallback. It always leaves exactly SkinCount skins
// available.
func (s *Service) Load(ctx context.Context) error {
	if s.store != nil {
		var cached []Skin
		if ok, err := s.store.GetAny(cacheKey, &cached); err == nil && ok && len(cached) == SkinCount {
			s.setSkins(cached)
			logger.Info("Skins loaded from cache", "count", len(cached))
			return nil
		}
	}

	data := s.fetchDataset(ctx)
	var selected []Skin
	if len(data) == 0 {
		logger.Warn("All skin sources failed, using built-in fallback")
		selected = fallbackSkins()
	} else {
		selected = selectSkins(data)
	}

	s.setSkins(selected)
	if s.store != nil {
		if err := s.store.SetAny(cacheKey, selected); err != nil {
			logger.Warn("Failed to cache skins", "err", err)
		}
	}
	return nil
}

// Skins returns the resolved set. Safe before Load; the fallback list is
// served until Load completes.
func (s *Service) Skins() []Skin {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.skins) == 0 {
		return fallbackSkins()
	}
	out := make([]Skin, len(s.skins))
	copy(out, s.skins)
	return out
}

// Refresh drops the cache and refetches.
func (s *Service) Refresh(ctx context.Context) error {
	if s.store != nil {
		if err := s.store.Delete(cacheKey); err != nil {
			return err
		}
	}
	s.setSkins(nil)
	return s.Load(ctx)
}

func (s *Service) setSkins(skins []Skin) {
	s.mu.Lock()
	s.skins = skins
	s.mu.Unlock()
}

type datasetItem struct {
	ID             string `json:"id"`
	ClassID        string `json:"classid"`
	Name           string `json:"name"`
	MarketHashName string `json:"market_hash_name"`
	Image          string `json:"image"`
	IconURL        string `json:"icon_url"`
	IconURLLarge   string `json:"icon_url_large"`
	Rarity         string `json:"rarity"`
}

func (it datasetItem) displayName() string {
	if it.Name != "" {
		return it.Name
	}
	return it.MarketHashName
}

// fetchDataset tries each mirror with exponential backoff and returns the
// first parseable result, or nil when every source fails.
func (s *Service) fetchDataset(ctx context.Context) []datasetItem {
	for _, url := range s.urls {
		var items []datasetItem
		err := retry.Exponential(func() error {
			body, err := s.fetchURL(ctx, url)
			if err != nil {
				return err
			}
			items, err = parseDataset(body)
			return err
		}, retry.ExponentialConfig{
			InitialInterval: 500 * time.Millisecond,
			MaxElapsedTime:  10 * time.Second,
			OnRetry: func(err error, next time.Duration) {
				logger.Warn("Skin fetch retry", "url", url, "err", err, "next", next)
			},
		})
		if err == nil && len(items) > 0 {
			logger.Info("Fetched skin dataset", "url", url, "items", len(items))
			return items
		}
		logger.Warn("Skin source failed", "url", url, "err", err)
	}
	return nil
}

func (s *Service) fetchURL(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}
	return io.ReadAll(resp.Body)
}

// parseDataset accepts either a JSON array of items or an object keyed by id.
func parseDataset(body []byte) ([]datasetItem, error) {
	var items []datasetItem
	if err := json.Unmarshal(body, &items); err == nil {
		return items, nil
	}

	var byID map[string]datasetItem
	if err := json.Unmarshal(body, &byID); err == nil {
		items = make([]datasetItem, 0, len(byID))
		for _, it := range byID {
			items = append(items, it)
		}
		return items, nil
	}
	return nil, errors.New("dataset is neither an array nor an object of items")
}

var (
	statTrakRe = regexp.MustCompile(`(?i)stattrak™?\s*`)
	souvenirRe = regexp.MustCompile(`(?i)souvenir\s*`)
	wearRe     = regexp.MustCompile(`\s*\(.*?\)\s*`)
)

// normalizeName strips StatTrak/Souvenir markers, wear conditions and the
// knife star so dataset names match the preferred list.
func normalizeName(name string) string {
	n := strings.ToLower(name)
	n = statTrakRe.ReplaceAllString(n, "")
	n = souvenirRe.ReplaceAllString(n, "")
	n = wearRe.ReplaceAllString(n, "")
	n = strings.ReplaceAll(n, "★", "")
	return strings.TrimSpace(n)
}

func fuzzyMatch(itemName, weapon, skin string) bool {
	normalized := normalizeName(itemName)
	return strings.Contains(normalized, normalizeName(weapon)) &&
		strings.Contains(normalized, normalizeName(skin))
}

func imageURL(it datasetItem, pref preferredSkin) string {
	img := it.Image
	if img == "" {
		img = it.IconURL
	}
	if img == "" {
		img = it.IconURLLarge
	}
	if img != "" && !strings.HasPrefix(img, "http") {
		img = steamCDN + img
	}
	if img == "" || img == steamCDN {
		return pref.fallbackImage()
	}
	return img
}

// selectSkins picks one dataset entry per preferred skin, falling back per
// entry when no match exists. Always returns exactly SkinCount skins.
func selectSkins(data []datasetItem) []Skin {
	selected := make([]Skin, 0, SkinCount)

	for _, pref := range preferredSkins {
		var found *datasetItem
		for i := range data {
			if fuzzyMatch(data[i].displayName(), pref.Weapon, pref.Skin) {
				found = &data[i]
				break
			}
		}
		if found == nil {
			// Loose pass: match on the skin name alone.
			for i := range data {
				if strings.Contains(normalizeName(data[i].displayName()), normalizeName(pref.Skin)) {
					found = &data[i]
					break
				}
			}
		}

		if found == nil {
			selected = append(selected, pref.fallback(len(selected)))
			continue
		}

		id := found.ID
		if id == "" {
			id = found.ClassID
		}
		if id == "" {
			id = fmt.Sprintf("skin-%d", len(selected))
		}
		name := found.displayName()
		if name == "" {
			name = pref.Weapon + " | " + pref.Skin
		}
		rarity := found.Rarity
		if rarity == "" {
			rarity = "covert"
		}
		selected = append(selected, Skin{
			ID:     id,
			Name:   name,
			Weapon: pref.Weapon,
			Image:  imageURL(*found, pref),
			Rarity: rarity,
		})
	}

	return selected[:SkinCount]
}
