package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"college-central/backend/config"
)

const (
	fetchTimeout    = 15 * time.Second
	maxResponseSize = 1 * 1024 * 1024 // 1MB
)

// Current 当前天气数据
type Current struct {
	Temperature float64 `json:"temperature_2m"`
	Humidity    float64 `json:"relative_humidity_2m"`
	WindSpeed   float64 `json:"wind_speed_10m"`
	WeatherCode int     `json:"weather_code"`
}

// forecastResponse open-meteo /forecast 响应
type forecastResponse struct {
	Current Current `json:"current"`
}

// Client 天气 API 客户端
type Client struct {
	baseURL   string
	latitude  float64
	longitude float64
	http      *http.Client
	logger    *zap.Logger
}

// NewClient 创建天气客户端
func NewClient(cfg *config.WeatherConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL:   cfg.BaseURL,
		latitude:  cfg.Latitude,
		longitude: cfg.Longitude,
		http:      &http.Client{Timeout: fetchTimeout},
		logger:    logger,
	}
}

// FetchCurrent 获取校区当前天气
func (c *Client) FetchCurrent(ctx context.Context) (*Current, error) {
	url := fmt.Sprintf(
		"%s?latitude=%.4f&longitude=%.4f&current=temperature_2m,relative_humidity_2m,wind_speed_10m,weather_code",
		c.baseURL, c.latitude, c.longitude,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("构造天气请求失败: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("获取天气失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("获取天气失败: HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("读取天气响应失败: %w", err)
	}

	var forecast forecastResponse
	if err := json.Unmarshal(body, &forecast); err != nil {
		return nil, fmt.Errorf("解析天气响应失败: %w", err)
	}

	return &forecast.Current, nil
}
