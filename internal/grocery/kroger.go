package grocery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/localplate/localplate/internal"
	"github.com/localplate/localplate/internal/crypto"
	"github.com/localplate/localplate/internal/repository"
)

const (
	krogerProviderName = "kroger"
	krogerTokenPath    = "/v1/connect/oauth2/token"
	krogerProductsPath = "/v1/products"
	krogerScope        = "product.compact"

	// maxSearchLimit is the most products Kroger returns per request.
	maxSearchLimit = 50

	// tokenRefreshSlack refreshes tokens slightly before they expire so
	// in-flight requests don't race the expiry.
	tokenRefreshSlack = time.Minute
)

// KrogerProvider implements Provider against the Kroger public API.
// Access tokens come from the OAuth2 client-credentials flow and are
// cached encrypted in grocery_credentials so restarts and multiple
// instances share one token.
type KrogerProvider struct {
	client    *http.Client
	repo      repository.Querier
	encryptor crypto.Encryptor
	logger    *slog.Logger

	clientID     string
	clientSecret string
	baseURL      string

	mu          sync.Mutex
	accessToken string
	expiresAt   time.Time
}

var _ Provider = (*KrogerProvider)(nil)

// NewKrogerProvider creates a Kroger product search provider.
func NewKrogerProvider(cfg internal.KrogerConfig, repo repository.Querier, encryptor crypto.Encryptor, logger *slog.Logger) (*KrogerProvider, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, ErrNotConfigured
	}
	if logger == nil {
		logger = slog.Default()
	}

	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.kroger.com"
	}

	return &KrogerProvider{
		client:       &http.Client{Timeout: 15 * time.Second},
		repo:         repo,
		encryptor:    encryptor,
		logger:       logger,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		baseURL:      baseURL,
	}, nil
}

// SearchProducts queries the Kroger products endpoint. A stale cached
// token triggers one refresh-and-retry before the error surfaces.
func (p *KrogerProvider) SearchProducts(ctx context.Context, term string, limit int) ([]Product, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, ErrEmptyTerm
	}
	if limit <= 0 {
		limit = 10
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	products, status, err := p.search(ctx, term, limit)
	if status == http.StatusUnauthorized {
		// The cached token was revoked or expired server-side.
		p.invalidateToken()
		products, _, err = p.search(ctx, term, limit)
	}
	return products, err
}

func (p *KrogerProvider) search(ctx context.Context, term string, limit int) ([]Product, int, error) {
	token, err := p.getToken(ctx)
	if err != nil {
		return nil, 0, err
	}

	query := url.Values{}
	query.Set("filter.term", term)
	query.Set("filter.limit", strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+krogerProductsPath+"?"+query.Encode(), nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create search request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("kroger search request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read search response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, resp.StatusCode, ErrRateLimited
	default:
		return nil, resp.StatusCode, fmt.Errorf("kroger search returned status %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	var parsed krogerSearchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to parse search response: %w", err)
	}

	products := make([]Product, 0, len(parsed.Data))
	for _, item := range parsed.Data {
		products = append(products, item.toProduct())
	}
	return products, resp.StatusCode, nil
}

// getToken returns a valid access token, in order of preference: the
// in-memory copy, the encrypted row in grocery_credentials, a fresh
// fetch from Kroger.
func (p *KrogerProvider) getToken(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := time.Now()
	if p.accessToken != "" && now.Before(p.expiresAt.Add(-tokenRefreshSlack)) {
		return p.accessToken, nil
	}

	if token, expiresAt, ok := p.loadStoredToken(ctx, now); ok {
		p.accessToken = token
		p.expiresAt = expiresAt
		return token, nil
	}

	token, expiresAt, err := p.fetchToken(ctx)
	if err != nil {
		return "", err
	}

	p.accessToken = token
	p.expiresAt = expiresAt
	p.storeToken(ctx, token, expiresAt)
	return token, nil
}

func (p *KrogerProvider) invalidateToken() {
	p.mu.Lock()
	p.accessToken = ""
	p.expiresAt = time.Time{}
	p.mu.Unlock()
}

// loadStoredToken decrypts the cached credential row. Any failure just
// means a fresh token fetch; a corrupt row is logged and ignored.
func (p *KrogerProvider) loadStoredToken(ctx context.Context, now time.Time) (string, time.Time, bool) {
	cred, err := p.repo.GetGroceryCredential(ctx, krogerProviderName)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			p.logger.Warn("failed to load cached grocery credential", slog.String("error", err.Error()))
		}
		return "", time.Time{}, false
	}

	if !cred.ExpiresAt.Valid || !now.Before(cred.ExpiresAt.Time.Add(-tokenRefreshSlack)) {
		return "", time.Time{}, false
	}

	plaintext, err := p.encryptor.Decrypt(cred.AccessTokenCiphertext)
	if err != nil {
		p.logger.Warn("failed to decrypt cached grocery credential", slog.String("error", err.Error()))
		return "", time.Time{}, false
	}

	return string(plaintext), cred.ExpiresAt.Time, true
}

func (p *KrogerProvider) storeToken(ctx context.Context, token string, expiresAt time.Time) {
	ciphertext, err := p.encryptor.Encrypt([]byte(token))
	if err != nil {
		p.logger.Warn("failed to encrypt grocery credential", slog.String("error", err.Error()))
		return
	}

	_, err = p.repo.UpsertGroceryCredential(ctx, repository.UpsertGroceryCredentialParams{
		Provider:              krogerProviderName,
		AccessTokenCiphertext: ciphertext,
		ExpiresAt:             pgtype.Timestamptz{Time: expiresAt, Valid: true},
	})
	if err != nil {
		p.logger.Warn("failed to store grocery credential", slog.String("error", err.Error()))
	}
}

// fetchToken runs the OAuth2 client-credentials flow.
func (p *KrogerProvider) fetchToken(ctx context.Context) (string, time.Time, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("scope", krogerScope)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+krogerTokenPath, strings.NewReader(form.Encode()))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to create token request: %w", err)
	}
	req.SetBasicAuth(p.clientID, p.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("kroger token request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to read token response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", time.Time{}, fmt.Errorf("kroger token endpoint returned status %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	var parsed krogerTokenResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", time.Time{}, fmt.Errorf("failed to parse token response: %w", err)
	}
	if parsed.AccessToken == "" {
		return "", time.Time{}, fmt.Errorf("kroger token response missing access_token")
	}

	expiresIn := parsed.ExpiresIn
	if expiresIn <= 0 {
		expiresIn = 1800
	}
	return parsed.AccessToken, time.Now().Add(time.Duration(expiresIn) * time.Second), nil
}

type krogerTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type krogerSearchResponse struct {
	Data []krogerProduct `json:"data"`
}

type krogerProduct struct {
	ProductID   string   `json:"productId"`
	Description string   `json:"description"`
	Brand       string   `json:"brand"`
	Categories  []string `json:"categories"`
	Items       []struct {
		Size  string `json:"size"`
		Price struct {
			Regular float64 `json:"regular"`
			Promo   float64 `json:"promo"`
		} `json:"price"`
	} `json:"items"`
	Images []struct {
		Perspective string `json:"perspective"`
		Sizes       []struct {
			Size string `json:"size"`
			URL  string `json:"url"`
		} `json:"sizes"`
	} `json:"images"`
}

func (k krogerProduct) toProduct() Product {
	p := Product{
		ID:         k.ProductID,
		Name:       k.Description,
		Brand:      k.Brand,
		Categories: k.Categories,
	}

	if len(k.Items) > 0 {
		item := k.Items[0]
		p.Size = item.Size
		p.PriceCents = dollarsToCents(item.Price.Regular)
		p.PromoPriceCents = dollarsToCents(item.Price.Promo)
	}

	for _, img := range k.Images {
		if img.Perspective != "front" && p.ImageURL != "" {
			continue
		}
		for _, size := range img.Sizes {
			if size.Size == "medium" || p.ImageURL == "" {
				p.ImageURL = size.URL
			}
		}
	}

	return p
}

func dollarsToCents(dollars float64) int64 {
	return int64(math.Round(dollars * 100))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
