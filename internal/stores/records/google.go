package records

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/ethanbaker/influencer-hub/internal/gsheets"
	"github.com/ethanbaker/influencer-hub/pkg/hub"
	"go.uber.org/zap"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/sheets/v4"
)

const SPREADSHEET_MIME_TYPE = "application/vnd.google-apps.spreadsheet"

// GoogleStore keeps the hub in a Google spreadsheet, one tab per collection
type GoogleStore struct {
	sheets *sheets.Service
	drive  *drive.Service
	title  string
	logger *zap.Logger

	mutex         sync.Mutex
	spreadsheetID string
}

// NewGoogleStore creates a store over an authenticated Sheets/Drive pair. A non-empty
// spreadsheetID pins the spreadsheet; otherwise it is found by title through Drive
func NewGoogleStore(services *gsheets.Services, spreadsheetID, title string, logger *zap.Logger) *GoogleStore {
	if title == "" {
		title = hub.DEFAULT_SPREADSHEET_TITLE
	}

	return &GoogleStore{
		sheets:        services.Sheets,
		drive:         services.Drive,
		title:         title,
		logger:        logger,
		spreadsheetID: spreadsheetID,
	}
}

/** ---- SPREADSHEET ---- */

// EnsureSpreadsheet finds the hub spreadsheet, creating and formatting it when missing
func (s *GoogleStore) EnsureSpreadsheet(ctx context.Context) error {
	_, err := s.resolve(ctx, true)
	return err
}

// resolve returns the spreadsheet id, looking it up once. With create set, a missing
// spreadsheet is created; otherwise hub.ErrNoSpreadsheet is returned
func (s *GoogleStore) resolve(ctx context.Context, create bool) (string, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.spreadsheetID != "" {
		return s.spreadsheetID, nil
	}

	query := fmt.Sprintf("name='%s' and mimeType='%s' and trashed=false",
		strings.ReplaceAll(s.title, "'", "\\'"), SPREADSHEET_MIME_TYPE)

	list, err := s.drive.Files.List().Q(query).Fields("files(id, name)").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to search for spreadsheet: %w", err)
	}
	if len(list.Files) > 0 {
		s.spreadsheetID = list.Files[0].Id
		return s.spreadsheetID, nil
	}

	if !create {
		return "", hub.ErrNoSpreadsheet
	}

	id, err := s.create(ctx)
	if err != nil {
		return "", err
	}

	s.logger.Info("created spreadsheet", zap.String("spreadsheet_id", id), zap.String("title", s.title))
	s.spreadsheetID = id
	return id, nil
}

// create makes the spreadsheet with every tab, writes the header rows and formats them
func (s *GoogleStore) create(ctx context.Context) (string, error) {
	schemas := hub.Schemas()

	spreadsheet := &sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{Title: s.title},
	}
	for i, schema := range schemas {
		spreadsheet.Sheets = append(spreadsheet.Sheets, &sheets.Sheet{
			Properties: &sheets.SheetProperties{Title: schema.Tab, Index: int64(i)},
		})
	}

	created, err := s.sheets.Spreadsheets.Create(spreadsheet).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to create spreadsheet: %w", err)
	}
	id := created.SpreadsheetId

	// Header rows
	data := make([]*sheets.ValueRange, 0, len(schemas))
	for _, schema := range schemas {
		data = append(data, &sheets.ValueRange{
			Range:  gsheets.A1(schema.Tab, "A1"),
			Values: [][]any{toCells(schema.Headers())},
		})
	}
	if _, err := s.sheets.Spreadsheets.Values.BatchUpdate(id, &sheets.BatchUpdateValuesRequest{
		ValueInputOption: "RAW",
		Data:             data,
	}).Context(ctx).Do(); err != nil {
		return "", fmt.Errorf("failed to write headers: %w", err)
	}

	// Bold dark header row, frozen
	var requests []*sheets.Request
	for _, sheet := range created.Sheets {
		sheetID := sheet.Properties.SheetId
		requests = append(requests,
			&sheets.Request{RepeatCell: &sheets.RepeatCellRequest{
				Range: &sheets.GridRange{SheetId: sheetID, StartRowIndex: 0, EndRowIndex: 1},
				Cell: &sheets.CellData{UserEnteredFormat: &sheets.CellFormat{
					BackgroundColor: &sheets.Color{Red: 0.2, Green: 0.2, Blue: 0.2},
					TextFormat: &sheets.TextFormat{
						Bold:            true,
						ForegroundColor: &sheets.Color{Red: 1, Green: 1, Blue: 1},
					},
				}},
				Fields: "userEnteredFormat(backgroundColor,textFormat)",
			}},
			&sheets.Request{UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
				Properties: &sheets.SheetProperties{
					SheetId:        sheetID,
					GridProperties: &sheets.GridProperties{FrozenRowCount: 1},
				},
				Fields: "gridProperties.frozenRowCount",
			}},
		)
	}
	if _, err := s.sheets.Spreadsheets.BatchUpdate(id, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: requests,
	}).Context(ctx).Do(); err != nil {
		return "", fmt.Errorf("failed to format headers: %w", err)
	}

	return id, nil
}

/** ---- ROWS ---- */

// ReadSheet zips every data row with the tab's header row. A missing spreadsheet reads as empty
func (s *GoogleStore) ReadSheet(ctx context.Context, tab string) ([]hub.Record, error) {
	if _, err := hub.SchemaFor(tab); err != nil {
		return nil, err
	}

	id, err := s.resolve(ctx, false)
	if errors.Is(err, hub.ErrNoSpreadsheet) {
		return []hub.Record{}, nil
	}
	if err != nil {
		return nil, err
	}

	resp, err := s.sheets.Spreadsheets.Values.Get(id, gsheets.A1(tab, "A:Z")).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", tab, err)
	}

	rows := gsheets.Rows(resp.Values)
	if len(rows) < 2 {
		return []hub.Record{}, nil
	}

	out := make([]hub.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		out = append(out, hub.FromRow(rows[0], row))
	}
	return out, nil
}

// AppendRow adds a row after the last data row of a tab
func (s *GoogleStore) AppendRow(ctx context.Context, tab string, rec hub.Record) error {
	return s.BatchAppendRows(ctx, tab, []hub.Record{rec})
}

// BatchAppendRows adds rows after the last data row of a tab in one request
func (s *GoogleStore) BatchAppendRows(ctx context.Context, tab string, recs []hub.Record) error {
	schema, err := hub.SchemaFor(tab)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		return nil
	}

	id, err := s.resolve(ctx, false)
	if err != nil {
		return err
	}

	values := make([][]any, 0, len(recs))
	for _, rec := range recs {
		values = append(values, toCells(schema.Project(rec)))
	}

	if _, err := s.sheets.Spreadsheets.Values.Append(id, gsheets.A1(tab, "A:Z"), &sheets.ValueRange{Values: values}).
		ValueInputOption("RAW").Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to append %d rows to %s: %w", len(recs), tab, err)
	}

	return nil
}

// UpdateRow overwrites the first row of a tab with the given ID
func (s *GoogleStore) UpdateRow(ctx context.Context, tab, id string, rec hub.Record) error {
	schema, err := hub.SchemaFor(tab)
	if err != nil {
		return err
	}

	spreadsheetID, err := s.resolve(ctx, false)
	if err != nil {
		return err
	}

	idx, err := s.rowIndex(ctx, spreadsheetID, tab, id)
	if err != nil {
		return err
	}

	rng := gsheets.A1(tab, fmt.Sprintf("A%d", idx+1))
	if _, err := s.sheets.Spreadsheets.Values.Update(spreadsheetID, rng, &sheets.ValueRange{
		Values: [][]any{toCells(schema.Project(rec))},
	}).ValueInputOption("RAW").Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to update %s row %s: %w", tab, id, err)
	}

	return nil
}

// DeleteRow removes the first row of a tab with the given ID, shifting later rows up
func (s *GoogleStore) DeleteRow(ctx context.Context, tab, id string) error {
	if _, err := hub.SchemaFor(tab); err != nil {
		return err
	}

	spreadsheetID, err := s.resolve(ctx, false)
	if err != nil {
		return err
	}

	idx, err := s.rowIndex(ctx, spreadsheetID, tab, id)
	if err != nil {
		return err
	}

	sheetID, err := s.sheetID(ctx, spreadsheetID, tab)
	if err != nil {
		return err
	}

	if _, err := s.sheets.Spreadsheets.BatchUpdate(spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			DeleteDimension: &sheets.DeleteDimensionRequest{
				Range: &sheets.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "ROWS",
					StartIndex: int64(idx),
					EndIndex:   int64(idx + 1),
				},
			},
		}},
	}).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to delete %s row %s: %w", tab, id, err)
	}

	return nil
}

// HasData reports whether any influencer rows exist
func (s *GoogleStore) HasData(ctx context.Context) (bool, error) {
	rows, err := s.ReadSheet(ctx, hub.TabInfluencers)
	if err != nil {
		return false, err
	}
	return len(rows) > 0, nil
}

// ClearAll clears every data row, keeping the header rows
func (s *GoogleStore) ClearAll(ctx context.Context) error {
	id, err := s.resolve(ctx, false)
	if errors.Is(err, hub.ErrNoSpreadsheet) {
		return nil
	}
	if err != nil {
		return err
	}

	ranges := make([]string, 0, len(hub.Tabs()))
	for _, tab := range hub.Tabs() {
		ranges = append(ranges, gsheets.A1(tab, "A2:Z"))
	}

	if _, err := s.sheets.Spreadsheets.Values.BatchClear(id, &sheets.BatchClearValuesRequest{
		Ranges: ranges,
	}).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to clear tabs: %w", err)
	}

	return nil
}

// Close is a no-op; the HTTP clients need no teardown
func (s *GoogleStore) Close() error {
	return nil
}

/** ---- HELPERS ---- */

// rowIndex returns the 0-based sheet row holding id, never the header row
func (s *GoogleStore) rowIndex(ctx context.Context, spreadsheetID, tab, id string) (int, error) {
	resp, err := s.sheets.Spreadsheets.Values.Get(spreadsheetID, gsheets.A1(tab, "A:A")).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("failed to read %s ids: %w", tab, err)
	}

	for i, row := range resp.Values {
		if i > 0 && len(row) > 0 && gsheets.CellString(row[0]) == id {
			return i, nil
		}
	}
	return 0, hub.NotFound(tab, id)
}

// sheetID returns the numeric id of a tab within the spreadsheet
func (s *GoogleStore) sheetID(ctx context.Context, spreadsheetID, tab string) (int64, error) {
	meta, err := s.sheets.Spreadsheets.Get(spreadsheetID).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("failed to read spreadsheet metadata: %w", err)
	}

	for _, sheet := range meta.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == tab {
			return sheet.Properties.SheetId, nil
		}
	}
	return 0, fmt.Errorf("sheet %s not found: %w", tab, hub.ErrUnknownTab)
}

func toCells(values []string) []any {
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}
