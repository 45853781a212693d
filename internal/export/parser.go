// Package export reads a LinkedIn data export into record collections.
//
// Every table is optional. A missing file yields an empty collection and a
// malformed date falls back to a default, so partial exports still analyse.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"regexp"
	"strings"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"

	"github.com/thomaskoefod/linkedintel/internal/logging"
	"github.com/thomaskoefod/linkedintel/pkg/models"
)

const (
	ConnectionsFile             = "Connections.csv"
	MessagesFile                = "messages.csv"
	EndorsementsReceivedFile    = "Endorsement_Received_Info.csv"
	EndorsementsGivenFile       = "Endorsement_Given_Info.csv"
	RecommendationsReceivedFile = "Recommendations_Received.csv"
	RecommendationsGivenFile    = "Recommendations_Given.csv"
)

// Column labels of the export format. Matching is exact and case-sensitive.
const (
	colFirstName      = "First Name"
	colLastName       = "Last Name"
	colEmail          = "Email Address"
	colCompany        = "Company"
	colPosition       = "Position"
	colConnectedOn    = "Connected On"
	colConversationID = "CONVERSATION ID"
	colFrom           = "FROM"
	colTo             = "TO"
	colDate           = "DATE"
	colContent        = "CONTENT"
	colEndorserFirst  = "Endorser First Name"
	colEndorserLast   = "Endorser Last Name"
	colSkill          = "Skill Name"
	colRecommendation = "Recommendation"
)

const (
	connectionLayout  = "02 Jan 2006"
	connectionLayout2 = "2 Jan 2006"
	messageLayout     = "2006-01-02 15:04:05 UTC"
	messageDateLayout = "2006-01-02"

	// Connection dates that cannot be parsed are treated as this old.
	defaultConnectionAge = 365 * 24 * time.Hour
)

// htmlTag matches the elements LinkedIn wraps message bodies in. Other
// angle-bracketed text, such as "Name <mail@example.com>", is left alone.
var htmlTag = regexp.MustCompile(`(?i)</?(p|br|div|span|a|b|i|em|strong|ul|ol|li)(\s[^>]*)?/?>`)

type Parser struct {
	fsys      fs.FS
	now       time.Time
	log       *slog.Logger
	stripHTML bool
	converter *md.Converter
}

type Option func(*Parser)

// WithNow fixes the parse time used for date defaults.
func WithNow(now time.Time) Option {
	return func(p *Parser) { p.now = now }
}

func WithLogger(log *slog.Logger) Option {
	return func(p *Parser) {
		if log != nil {
			p.log = log
		}
	}
}

// WithHTMLStripping converts HTML message and recommendation bodies to text.
// Off by default.
func WithHTMLStripping(on bool) Option {
	return func(p *Parser) { p.stripHTML = on }
}

func New(fsys fs.FS, opts ...Option) *Parser {
	p := &Parser{
		fsys:      fsys,
		now:       time.Now(),
		log:       logging.Discard(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.stripHTML {
		p.converter = md.NewConverter("", true, &md.Options{EscapeMode: "disabled"})
	}
	return p
}

// ParseDir parses the export found in dir.
func ParseDir(dir string, opts ...Option) (*models.Dataset, error) {
	return New(os.DirFS(dir), opts...).Parse()
}

// Parse reads all six tables.
func (p *Parser) Parse() (*models.Dataset, error) {
	ds := &models.Dataset{}
	var err error

	if ds.Connections, err = p.parseConnections(); err != nil {
		return nil, err
	}
	if ds.Messages, err = p.parseMessages(); err != nil {
		return nil, err
	}
	if ds.EndorsementsReceived, err = p.parseEndorsements(EndorsementsReceivedFile, colEndorserFirst, colEndorserLast); err != nil {
		return nil, err
	}
	if ds.EndorsementsGiven, err = p.parseEndorsements(EndorsementsGivenFile, colFirstName, colLastName); err != nil {
		return nil, err
	}
	if ds.RecommendationsReceived, err = p.parseRecommendations(RecommendationsReceivedFile); err != nil {
		return nil, err
	}
	if ds.RecommendationsGiven, err = p.parseRecommendations(RecommendationsGivenFile); err != nil {
		return nil, err
	}

	p.log.Info("parsed export",
		"connections", len(ds.Connections),
		"messages", len(ds.Messages),
		"endorsements_received", len(ds.EndorsementsReceived),
		"endorsements_given", len(ds.EndorsementsGiven),
		"recommendations_received", len(ds.RecommendationsReceived),
		"recommendations_given", len(ds.RecommendationsGiven),
	)
	return ds, nil
}

func (p *Parser) parseConnections() ([]models.Connection, error) {
	t, err := p.readTable(ConnectionsFile, colFirstName)
	if err != nil || t == nil {
		return nil, err
	}

	out := make([]models.Connection, 0, len(t.rows))
	for _, row := range t.rows {
		first, last := t.get(row, colFirstName), t.get(row, colLastName)
		if first == "" && last == "" {
			continue
		}
		raw := t.get(row, colConnectedOn)
		connectedOn, ok := parseTime(raw, connectionLayout, connectionLayout2)
		if !ok {
			p.log.Debug("bad connection date", "value", raw)
			connectedOn = p.now.Add(-defaultConnectionAge)
		}
		out = append(out, models.Connection{
			FirstName:   first,
			LastName:    last,
			Email:       t.get(row, colEmail),
			Company:     t.get(row, colCompany),
			Position:    t.get(row, colPosition),
			ConnectedOn: connectedOn,
		})
	}
	return out, nil
}

func (p *Parser) parseMessages() ([]models.Message, error) {
	t, err := p.readTable(MessagesFile, colFrom)
	if err != nil || t == nil {
		return nil, err
	}

	out := make([]models.Message, 0, len(t.rows))
	for _, row := range t.rows {
		out = append(out, models.Message{
			ConversationID: t.get(row, colConversationID),
			From:           t.get(row, colFrom),
			To:             t.get(row, colTo),
			Date:           p.messageDate(t.get(row, colDate)),
			Content:        p.text(t.get(row, colContent)),
		})
	}
	return out, nil
}

func (p *Parser) messageDate(raw string) time.Time {
	if d, ok := parseTime(raw, messageLayout); ok {
		return d
	}
	if len(raw) >= len(messageDateLayout) {
		if d, ok := parseTime(raw[:len(messageDateLayout)], messageDateLayout); ok {
			return d
		}
	}
	p.log.Debug("bad message date", "value", raw)
	return p.now
}

func (p *Parser) parseEndorsements(file, firstCol, lastCol string) ([]models.Endorsement, error) {
	t, err := p.readTable(file, firstCol)
	if err != nil || t == nil {
		return nil, err
	}

	out := make([]models.Endorsement, 0, len(t.rows))
	for _, row := range t.rows {
		out = append(out, models.Endorsement{
			Name:  t.get(row, firstCol) + " " + t.get(row, lastCol),
			Skill: t.get(row, colSkill),
			Date:  p.now,
		})
	}
	return out, nil
}

func (p *Parser) parseRecommendations(file string) ([]models.Recommendation, error) {
	t, err := p.readTable(file, colFirstName)
	if err != nil || t == nil {
		return nil, err
	}

	out := make([]models.Recommendation, 0, len(t.rows))
	for _, row := range t.rows {
		out = append(out, models.Recommendation{
			Name: t.get(row, colFirstName) + " " + t.get(row, colLastName),
			Text: p.text(t.get(row, colRecommendation)),
			Date: p.now,
		})
	}
	return out, nil
}

// text turns HTML bodies into plain markdown text and leaves the rest alone.
func (p *Parser) text(s string) string {
	if p.converter == nil || !htmlTag.MatchString(s) {
		return s
	}
	out, err := p.converter.ConvertString(s)
	if err != nil {
		p.log.Debug("html conversion failed", "error", err)
		return s
	}
	return out
}

func parseTime(raw string, layouts ...string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

type table struct {
	header map[string]int
	rows   [][]string
}

func (t *table) get(row []string, col string) string {
	i, ok := t.header[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// readTable loads a CSV file and indexes its header. It returns nil, nil when
// the file does not exist. Rows before the first one holding keyColumn are
// skipped, which drops the notes preamble LinkedIn puts in Connections.csv.
func (p *Parser) readTable(name, keyColumn string) (*table, error) {
	f, err := p.fsys.Open(name)
	if errors.Is(err, fs.ErrNotExist) {
		p.log.Debug("export table missing", "file", name)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", name, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	t := &table{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		if t.header == nil {
			if h := indexHeader(record); h != nil {
				if _, ok := h[keyColumn]; ok {
					t.header = h
				}
			}
			continue
		}
		if isBlank(record) {
			continue
		}
		t.rows = append(t.rows, record)
	}
	if t.header == nil {
		p.log.Warn("export table has no header", "file", name, "column", keyColumn)
		return &table{}, nil
	}
	return t, nil
}

func indexHeader(record []string) map[string]int {
	h := make(map[string]int, len(record))
	for i, col := range record {
		col = strings.TrimSpace(strings.TrimPrefix(col, "\ufeff"))
		if _, dup := h[col]; !dup {
			h[col] = i
		}
	}
	return h
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
