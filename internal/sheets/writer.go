package sheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/Veraticus/segscope/internal/common"
	"github.com/Veraticus/segscope/internal/model"
	"github.com/Veraticus/segscope/internal/segment"
	"github.com/Veraticus/segscope/internal/service"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Writer pushes a filtered view and its summary into a spreadsheet tab.
type Writer struct {
	service *sheets.Service
	logger  *slog.Logger
	config  Config
}

// NewWriter creates a new Google Sheets writer.
func NewWriter(ctx context.Context, config Config, logger *slog.Logger) (*Writer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidConfig, err)
	}

	service, err := createSheetsService(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Writer{
		config:  config,
		service: service,
		logger:  logger,
	}, nil
}

// Write replaces the contents of the configured tab with the snapshot and
// returns the spreadsheet URL.
func (w *Writer) Write(ctx context.Context, snap segment.Snapshot, profiles model.ClusterProfiles) (string, error) {
	w.logger.Info("starting sheets export",
		"customers", snap.Summary.Total,
		"clusters", snap.View.Selection().String())

	spreadsheet, err := w.getOrCreateSpreadsheet(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrExportFailed, err)
	}

	sheetID, err := w.ensureSheet(ctx, spreadsheet)
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrExportFailed, err)
	}

	if clearErr := w.clearSheet(ctx, spreadsheet.SpreadsheetId); clearErr != nil {
		return "", fmt.Errorf("%w: failed to clear sheet: %w", common.ErrExportFailed, clearErr)
	}

	layout := prepareValues(snap, profiles, w.config.Currency, time.Now())

	retryOpts := service.RetryOptions{
		MaxAttempts:  w.config.RetryAttempts,
		InitialDelay: w.config.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}

	err = common.WithRetry(ctx, "sheets.write", func() error {
		return w.writeData(ctx, spreadsheet.SpreadsheetId, layout.values)
	}, retryOpts)
	if err != nil {
		return "", fmt.Errorf("%w: failed to write data: %w", common.ErrExportFailed, err)
	}

	if w.config.EnableFormatting {
		err = common.WithRetry(ctx, "sheets.format", func() error {
			return w.applyFormatting(ctx, spreadsheet.SpreadsheetId, sheetID, layout)
		}, retryOpts)
		if err != nil {
			// Formatting is cosmetic; the data is already written.
			w.logger.Warn("failed to apply formatting", "error", err)
		}
	}

	w.logger.Info("sheets export completed",
		"spreadsheet_id", spreadsheet.SpreadsheetId,
		"rows_written", len(layout.values))

	return spreadsheet.SpreadsheetUrl, nil
}

func createSheetsService(ctx context.Context, config Config) (*sheets.Service, error) {
	var tokenSource oauth2.TokenSource

	if config.ServiceAccountPath != "" {
		jsonKey, err := os.ReadFile(config.ServiceAccountPath)
		if err != nil {
			return nil, fmt.Errorf("unable to read service account key file: %w", err)
		}

		jwtConfig, err := google.JWTConfigFromJSON(jsonKey, sheets.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("unable to parse service account key: %w", err)
		}

		tokenSource = jwtConfig.TokenSource(ctx)
	} else {
		client := &oauth2.Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{sheets.SpreadsheetsScope},
		}

		tokenSource = client.TokenSource(ctx, &oauth2.Token{
			RefreshToken: config.RefreshToken,
			TokenType:    "Bearer",
		})
	}

	httpClient := oauth2.NewClient(ctx, tokenSource)
	srv, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}

	return srv, nil
}

func (w *Writer) getOrCreateSpreadsheet(ctx context.Context) (*sheets.Spreadsheet, error) {
	if w.config.SpreadsheetID != "" {
		existing, err := w.service.Spreadsheets.Get(w.config.SpreadsheetID).Context(ctx).Do()
		if err != nil {
			return nil, fmt.Errorf("unable to access spreadsheet %s: %w", w.config.SpreadsheetID, err)
		}
		return existing, nil
	}

	spreadsheet := &sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{
			Title:    w.config.SpreadsheetName,
			TimeZone: w.config.TimeZone,
		},
		Sheets: []*sheets.Sheet{
			{Properties: &sheets.SheetProperties{Title: w.config.SheetTitle}},
		},
	}

	created, err := w.service.Spreadsheets.Create(spreadsheet).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to create spreadsheet: %w", err)
	}

	w.logger.Info("created new spreadsheet",
		"id", created.SpreadsheetId,
		"url", created.SpreadsheetUrl)

	return created, nil
}

// ensureSheet returns the id of the configured tab, adding it when missing.
func (w *Writer) ensureSheet(ctx context.Context, spreadsheet *sheets.Spreadsheet) (int64, error) {
	if id, ok := findSheet(spreadsheet, w.config.SheetTitle); ok {
		return id, nil
	}

	resp, err := w.service.Spreadsheets.BatchUpdate(spreadsheet.SpreadsheetId, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: w.config.SheetTitle},
			},
		}},
	}).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("unable to add sheet %q: %w", w.config.SheetTitle, err)
	}
	if len(resp.Replies) == 0 || resp.Replies[0].AddSheet == nil {
		return 0, fmt.Errorf("unable to add sheet %q: empty reply", w.config.SheetTitle)
	}
	return resp.Replies[0].AddSheet.Properties.SheetId, nil
}

func findSheet(spreadsheet *sheets.Spreadsheet, title string) (int64, bool) {
	for _, s := range spreadsheet.Sheets {
		if s.Properties != nil && s.Properties.Title == title {
			return s.Properties.SheetId, true
		}
	}
	return 0, false
}

func (w *Writer) clearSheet(ctx context.Context, spreadsheetID string) error {
	_, err := w.service.Spreadsheets.Values.Clear(spreadsheetID, quoteSheet(w.config.SheetTitle), &sheets.ClearValuesRequest{}).Context(ctx).Do()
	return err
}

// writeData writes in batches to stay under API request limits.
func (w *Writer) writeData(ctx context.Context, spreadsheetID string, values [][]any) error {
	for i := 0; i < len(values); i += w.config.BatchSize {
		end := min(i+w.config.BatchSize, len(values))

		batch := values[i:end]
		rangeStr := fmt.Sprintf("%s!A%d", quoteSheet(w.config.SheetTitle), i+1)
		_, err := w.service.Spreadsheets.Values.Update(spreadsheetID, rangeStr, &sheets.ValueRange{Values: batch}).
			ValueInputOption("RAW").
			Context(ctx).
			Do()
		if err != nil {
			return classifyAPIError(fmt.Errorf("failed to write batch starting at row %d: %w", i+1, err))
		}

		w.logger.Debug("wrote batch", "start_row", i+1, "rows", len(batch))
	}

	return nil
}

func (w *Writer) applyFormatting(ctx context.Context, spreadsheetID string, sheetID int64, layout sheetLayout) error {
	requests := formattingRequests(sheetID, layout, w.config.Currency)
	_, err := w.service.Spreadsheets.BatchUpdate(spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: requests,
	}).Context(ctx).Do()
	return classifyAPIError(err)
}

// classifyAPIError marks quota errors as rate limited and other client
// errors as permanent so WithRetry stops early.
func classifyAPIError(err error) error {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return err
	}
	switch {
	case apiErr.Code == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %w", common.ErrRateLimit, err)
	case apiErr.Code >= 400 && apiErr.Code < 500:
		return &common.RetryableError{Err: err, Retryable: false}
	default:
		return err
	}
}

func formattingRequests(sheetID int64, layout sheetLayout, currency string) []*sheets.Request {
	bold := func(row int64, size int64) *sheets.Request {
		return &sheets.Request{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: &sheets.GridRange{
					SheetId:          sheetID,
					StartRowIndex:    row,
					EndRowIndex:      row + 1,
					StartColumnIndex: 0,
					EndColumnIndex:   int64(layout.width),
				},
				Cell: &sheets.CellData{
					UserEnteredFormat: &sheets.CellFormat{
						TextFormat: &sheets.TextFormat{Bold: true, FontSize: size},
					},
				},
				Fields: "userEnteredFormat.textFormat",
			},
		}
	}

	requests := []*sheets.Request{bold(0, 16)}
	for _, row := range layout.headingRows {
		requests = append(requests, bold(int64(row), 0))
	}

	if layout.monetaryColumn >= 0 {
		requests = append(requests, &sheets.Request{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: &sheets.GridRange{
					SheetId:          sheetID,
					StartRowIndex:    int64(layout.dataStart),
					EndRowIndex:      int64(len(layout.values)),
					StartColumnIndex: int64(layout.monetaryColumn),
					EndColumnIndex:   int64(layout.monetaryColumn + 1),
				},
				Cell: &sheets.CellData{
					UserEnteredFormat: &sheets.CellFormat{
						NumberFormat: &sheets.NumberFormat{
							Type:    "CURRENCY",
							Pattern: "\"" + currency + "\"#,##0.00",
						},
					},
				},
				Fields: "userEnteredFormat.numberFormat",
			},
		})
	}

	requests = append(requests, &sheets.Request{
		AutoResizeDimensions: &sheets.AutoResizeDimensionsRequest{
			Dimensions: &sheets.DimensionRange{
				SheetId:    sheetID,
				Dimension:  "COLUMNS",
				StartIndex: 0,
				EndIndex:   int64(layout.width),
			},
		},
	})

	return requests
}

func quoteSheet(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}
