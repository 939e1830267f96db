// Package gsheets connects to Google Sheets and Drive with a pre-provisioned OAuth token
// and reads external spreadsheets for imports.
package gsheets

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/ethanbaker/influencer-hub/pkg/utils"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Services bundles the Google API clients used by the hub
type Services struct {
	Sheets *sheets.Service
	Drive  *drive.Service
}

// tokenSavingSource wraps an oauth2.TokenSource and writes refreshed tokens back to disk
type tokenSavingSource struct {
	source    oauth2.TokenSource
	tokenPath string
	logger    *zap.Logger

	mu        sync.Mutex
	lastToken *oauth2.Token
}

// Token returns a valid token, refreshing if necessary and saving to disk
func (t *tokenSavingSource) Token() (*oauth2.Token, error) {
	token, err := t.source.Token()
	if err != nil {
		return nil, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.lastToken == nil || t.lastToken.AccessToken != token.AccessToken {
		if err := saveToken(t.tokenPath, token); err != nil {
			t.logger.Warn("failed to save refreshed token", zap.String("path", t.tokenPath), zap.Error(err))
		}
		t.lastToken = token
	}

	return token, nil
}

// NewServices builds Sheets and Drive clients from GOOGLE_CREDENTIALS_JSON and GOOGLE_TOKEN_JSON
func NewServices(ctx context.Context, cfg *utils.Config, logger *zap.Logger) (*Services, error) {
	credentialsPath := cfg.Get(utils.KEY_GOOGLE_CREDENTIALS)
	if credentialsPath == "" {
		return nil, fmt.Errorf("%s not set in environment", utils.KEY_GOOGLE_CREDENTIALS)
	}

	tokenPath := cfg.Get(utils.KEY_GOOGLE_TOKEN)
	if tokenPath == "" {
		return nil, fmt.Errorf("%s not set in environment", utils.KEY_GOOGLE_TOKEN)
	}

	credentialsJSON, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	token, err := loadToken(tokenPath)
	if err != nil {
		return nil, err
	}

	config, err := google.ConfigFromJSON(credentialsJSON, sheets.SpreadsheetsScope, drive.DriveMetadataReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse credentials: %w", err)
	}

	source := &tokenSavingSource{
		source:    config.TokenSource(ctx, token),
		tokenPath: tokenPath,
		logger:    logger,
	}

	// Refresh once up front so a revoked token fails at startup
	if _, err := source.Token(); err != nil {
		return nil, fmt.Errorf("failed to refresh token: %w", err)
	}

	client := oauth2.NewClient(ctx, source)

	sheetsService, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	driveService, err := drive.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &Services{Sheets: sheetsService, Drive: driveService}, nil
}

// A1 builds an A1-notation range on a tab, quoting the tab name
func A1(tab, cells string) string {
	return "'" + strings.ReplaceAll(tab, "'", "''") + "'!" + cells
}

// CellString renders a cell value returned by the Sheets API
func CellString(cell any) string {
	if cell == nil {
		return ""
	}
	if s, ok := cell.(string); ok {
		return s
	}
	return fmt.Sprint(cell)
}

// Rows converts a Sheets value grid into strings
func Rows(values [][]any) [][]string {
	rows := make([][]string, len(values))
	for i, row := range values {
		rows[i] = make([]string, len(row))
		for j, cell := range row {
			rows[i][j] = CellString(cell)
		}
	}
	return rows
}

func loadToken(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("failed to parse token JSON: %w", err)
	}
	return &token, nil
}

func saveToken(path string, token *oauth2.Token) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("unable to save token: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	return encoder.Encode(token)
}
