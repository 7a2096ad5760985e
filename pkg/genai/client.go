package genai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"college-central/backend/config"
)

// ── 生成式 AI 客户端 ────────────────────────────────────────
//
// 职责：封装对 generateContent 风格 API 的两类调用：
//   - 文档理解（成绩单图片/PDF → 结构化 JSON 文本）
//   - 文本生成（校园动态搜索提示词 → JSON 列表文本）
//
// 约定：客户端只负责传输与取出首个候选文本；JSON 结构校验
// 由各业务服务在边界完成，失败一律折叠为 ErrCallFailed。
// ─────────────────────────────────────────────────────────────

var ErrCallFailed = errors.New("AI 服务调用失败")

const maxResponseSize = 4 * 1024 * 1024 // 4MB

// Client 生成式 AI HTTP 客户端
type Client struct {
	baseURL string
	apiKey  string
	model   string
	http    *http.Client
	logger  *zap.Logger
}

// NewClient 创建生成式 AI 客户端
func NewClient(cfg *config.GenAIConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		http:    &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
	}
}

// ── 请求/响应报文 ──

type generatePart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"` // base64
}

type generateContent struct {
	Parts []generatePart `json:"parts"`
}

type generateRequest struct {
	Contents []generateContent `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// GenerateText 纯文本提示词调用
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	req := generateRequest{
		Contents: []generateContent{{Parts: []generatePart{{Text: prompt}}}},
	}
	return c.call(ctx, &req)
}

// GenerateFromDocument 文档理解调用：提示词 + 内嵌文件（图片或 PDF）
func (c *Client) GenerateFromDocument(ctx context.Context, prompt string, fileBytes []byte, mimeType string) (string, error) {
	req := generateRequest{
		Contents: []generateContent{{Parts: []generatePart{
			{Text: prompt},
			{InlineData: &inlineData{
				MimeType: mimeType,
				Data:     base64.StdEncoding.EncodeToString(fileBytes),
			}},
		}}},
	}
	return c.call(ctx, &req)
}

func (c *Client) call(ctx context.Context, reqBody *generateRequest) (string, error) {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("序列化请求失败: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("构造请求失败: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.logger.Error("AI 服务请求失败", zap.Error(err))
		return "", ErrCallFailed
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", ErrCallFailed
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Error("AI 服务返回非 200",
			zap.Int("status", resp.StatusCode),
			zap.String("model", c.model),
		)
		return "", ErrCallFailed
	}

	var genResp generateResponse
	if err := json.Unmarshal(body, &genResp); err != nil {
		return "", ErrCallFailed
	}
	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return "", ErrCallFailed
	}

	return genResp.Candidates[0].Content.Parts[0].Text, nil
}

// StripCodeFence 去除模型输出中的 Markdown 代码围栏（```json … ```）
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if idx := strings.Index(s, "\n"); idx >= 0 {
		s = s[idx+1:] // 去掉语言标记行（如 "json"）
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
