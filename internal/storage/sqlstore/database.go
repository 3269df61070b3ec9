package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"math"
	"math/big"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"opportunity-finder/internal/config"
	"opportunity-finder/internal/models"
)

// Store serves read-only queries against the opportunities table.
type Store struct {
	db      *sql.DB
	dialect Dialect
}

// Open connects to the configured database and verifies the connection.
func Open(cfg config.DatabaseConfig) (*Store, error) {
	dialect, err := DialectFor(cfg.Driver)
	if err != nil {
		return nil, err
	}
	dsn, err := DSN(cfg, false)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database connection: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("cannot reach database (ping failed): %w", err)
	}
	log.Printf("INFO: [Store] connected to %s database.", dialect.Name())
	return &Store{db: db, dialect: dialect}, nil
}

// DSN builds the driver connection string. multiStatements is only honored
// by MySQL and is needed for migration files holding several statements.
func DSN(cfg config.DatabaseConfig, multiStatements bool) (string, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		u := url.URL{
			Scheme: "postgres",
			User:   url.UserPassword(cfg.User, cfg.Password),
			Host:   net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
			Path:   "/" + cfg.DBName,
		}
		q := url.Values{}
		if cfg.SSLMode != "" {
			q.Set("sslmode", cfg.SSLMode)
		}
		u.RawQuery = q.Encode()
		return u.String(), nil
	case config.DriverMySQL:
		mc := mysql.NewConfig()
		mc.User = cfg.User
		mc.Passwd = cfg.Password
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
		mc.DBName = cfg.DBName
		mc.ParseTime = true
		mc.Loc = time.Local
		mc.Params = map[string]string{"charset": "utf8mb4"}
		mc.MultiStatements = multiStatements
		return mc.FormatDSN(), nil
	case config.DriverSQLite:
		if cfg.Path == "" {
			return "", fmt.Errorf("sqlite database path is empty")
		}
		return "file:" + cfg.Path + "?_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)", nil
	}
	return "", fmt.Errorf("unsupported database driver: %q", cfg.Driver)
}

// Close releases the connection pool.
func (s *Store) Close() error {
	if s.db != nil {
		log.Println("INFO: [Store] closing database connection...")
		return s.db.Close()
	}
	return nil
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOpportunity(r rowScanner) (models.Opportunity, error) {
	var o models.Opportunity
	err := r.Scan(
		&o.ID, &o.Title, &o.Category, &o.Description, &o.Opportunity, &o.Subreddit, &o.MemberCount,
		&o.Timestamp, &o.Points, &o.Comments, &o.SourceURL,
		&o.TechnicalComplexity, &o.RevenuePotential, &o.NoveltyScore, &o.MarketDemand, &o.OverallScore,
		&o.AIAnalysis, &o.AnalyzedAt, &o.CreatedAt,
	)
	return o, err
}

// ListOpportunities returns one page of analyzed opportunities matching f,
// together with the total number of matches.
func (s *Store) ListOpportunities(ctx context.Context, f models.OpportunityFilter) (*models.OpportunityPage, error) {
	countQ := BuildCountQuery(s.dialect, f)
	var total int64
	if err := s.db.QueryRowContext(ctx, countQ.SQL, countQ.Args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("counting opportunities: %w", err)
	}

	listQ := BuildListQuery(s.dialect, f)
	rows, err := s.db.QueryContext(ctx, listQ.SQL, listQ.Args...)
	if err != nil {
		return nil, fmt.Errorf("querying opportunities: %w", err)
	}
	defer rows.Close()

	page := &models.OpportunityPage{Opportunities: []models.Opportunity{}, Total: total}
	for rows.Next() {
		o, err := scanOpportunity(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning opportunity row: %w", err)
		}
		page.Opportunities = append(page.Opportunities, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating opportunity rows: %w", err)
	}
	return page, nil
}

// GetSubreddits returns up to 50 subreddits of analyzed rows, busiest first.
func (s *Store) GetSubreddits(ctx context.Context) ([]models.SubredditCount, error) {
	const q = `SELECT subreddit, COUNT(*) AS cnt
		FROM opportunities
		WHERE analyzed_at IS NOT NULL AND subreddit IS NOT NULL AND subreddit <> ''
		GROUP BY subreddit
		ORDER BY cnt DESC, subreddit ASC
		LIMIT 50`
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("querying subreddits: %w", err)
	}
	defer rows.Close()

	out := []models.SubredditCount{}
	for rows.Next() {
		var sc models.SubredditCount
		if err := rows.Scan(&sc.Subreddit, &sc.Count); err != nil {
			return nil, fmt.Errorf("scanning subreddit row: %w", err)
		}
		out = append(out, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating subreddit rows: %w", err)
	}
	return out, nil
}

// GetStats summarizes the whole table. Missing aggregates read as zero and
// the average is rounded to two decimals.
func (s *Store) GetStats(ctx context.Context) (*models.Stats, error) {
	const q = `SELECT
			COUNT(*),
			COUNT(CASE WHEN analyzed_at IS NOT NULL THEN 1 END),
			AVG(overall_score),
			MAX(overall_score)
		FROM opportunities`
	var (
		st       models.Stats
		avg, top sql.NullFloat64
	)
	if err := s.db.QueryRowContext(ctx, q).Scan(&st.Total, &st.Analyzed, &avg, &top); err != nil {
		return nil, fmt.Errorf("querying stats: %w", err)
	}
	if avg.Valid {
		st.AvgScore = roundDecimal(avg.Float64, 2)
	}
	if top.Valid {
		st.TopScore = top.Float64
	}
	return &st, nil
}

// roundDecimal rounds v half away from zero at the given number of decimal
// places, working on its shortest decimal form so 1.005 becomes 1.01.
func roundDecimal(v float64, places int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	s := strconv.FormatFloat(math.Abs(v), 'f', -1, 64)
	dot := strings.IndexByte(s, '.')
	if dot < 0 || len(s)-dot-1 <= places {
		return v
	}
	n, ok := new(big.Int).SetString(s[:dot]+s[dot+1:dot+1+places], 10)
	if !ok {
		return v
	}
	if s[dot+1+places] >= '5' {
		n.Add(n, big.NewInt(1))
	}
	r, err := strconv.ParseFloat(n.String()+"e-"+strconv.Itoa(places), 64)
	if err != nil {
		return v
	}
	return math.Copysign(r, v)
}

// GetKeywords returns the 100 most frequent title keywords of analyzed rows.
func (s *Store) GetKeywords(ctx context.Context) ([]models.KeywordCount, error) {
	const q = `SELECT title FROM opportunities WHERE analyzed_at IS NOT NULL AND title IS NOT NULL`
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("querying titles: %w", err)
	}
	defer rows.Close()

	var titles []string
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return nil, fmt.Errorf("scanning title row: %w", err)
		}
		titles = append(titles, title)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating title rows: %w", err)
	}
	return CountKeywords(titles), nil
}
