package indexer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/rishi95122/helix-core/pkg/common"
	"github.com/rishi95122/helix-core/pkg/utility"
	"github.com/rishi95122/helix-core/pkg/utility/fixed"
)

// Client talks to the indexer REST API. All methods return decoded common
// types; wire-level decode problems inside a collection drop the bad record
// and keep the rest.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(baseURL string, logger *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("unable to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		// The body often carries the indexer's reason, keep a snippet for the log.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		c.logger.Warn("indexer request rejected",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", snippet))
		return fmt.Errorf("unexpected status %d for %s", resp.StatusCode, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("unable to decode response: %w", err)
	}
	return nil
}

func (c *Client) FetchOrderbook(ctx context.Context, marketID string) (common.OrderbookSnapshot, error) {
	var resp orderbookResponse
	query := url.Values{"marketId": {marketID}}
	if err := c.get(ctx, "/api/exchange/v1/orderbook", query, &resp); err != nil {
		return common.OrderbookSnapshot{}, fmt.Errorf("unable to fetch orderbook: %w", err)
	}
	return toSnapshot(marketID, resp.Orderbook), nil
}

func (c *Client) FetchBankBalances(ctx context.Context, address string) ([]common.BankBalance, error) {
	var resp bankBalancesResponse
	query := url.Values{"address": {address}}
	if err := c.get(ctx, "/api/bank/v1/balances", query, &resp); err != nil {
		return nil, fmt.Errorf("unable to fetch bank balances: %w", err)
	}
	return toBankBalances(resp.Balances), nil
}

func (c *Client) FetchSubaccountBalances(ctx context.Context, subaccountID string) ([]common.SubaccountBalance, error) {
	var resp subaccountBalancesResponse
	query := url.Values{"subaccountId": {subaccountID}}
	if err := c.get(ctx, "/api/exchange/v1/subaccount/balances", query, &resp); err != nil {
		return nil, fmt.Errorf("unable to fetch subaccount balances: %w", err)
	}
	return toSubaccountBalances(resp.Balances), nil
}

func (c *Client) FetchPositions(ctx context.Context, subaccountID string) ([]common.Position, error) {
	var resp positionsResponse
	query := url.Values{"subaccountId": {subaccountID}}
	if err := c.get(ctx, "/api/exchange/v1/positions", query, &resp); err != nil {
		return nil, fmt.Errorf("unable to fetch positions: %w", err)
	}
	return toPositions(resp.Positions), nil
}

func (c *Client) FetchMarkPrice(ctx context.Context, marketID string) (common.MarkPrice, error) {
	var resp markPriceResponse
	query := url.Values{"marketId": {marketID}}
	if err := c.get(ctx, "/api/exchange/v1/oracle/price", query, &resp); err != nil {
		return common.MarkPrice{}, fmt.Errorf("unable to fetch mark price: %w", err)
	}

	price, err := fixed.Parse(resp.Price)
	if err != nil {
		return common.MarkPrice{}, fmt.Errorf("unable to parse mark price %q: %w", resp.Price, err)
	}
	return common.MarkPrice{
		MarketID:  marketID,
		Price:     price,
		Source:    sourceName,
		TraceID:   utility.CreateTraceID(),
		TimeStamp: time.Now(),
	}, nil
}

func (c *Client) FetchMarkets(ctx context.Context) ([]common.Market, error) {
	var resp marketsResponse
	if err := c.get(ctx, "/api/exchange/v1/markets", nil, &resp); err != nil {
		return nil, fmt.Errorf("unable to fetch markets: %w", err)
	}

	markets := make([]common.Market, 0, len(resp.Markets))
	for _, p := range resp.Markets {
		markets = append(markets, toMarket(p))
	}
	return markets, nil
}
